// Package ancestry models the spending relationships between the
// transactions of a single block and computes, for every transaction, how
// many transactions of the same block must be confirmed before it.
package ancestry

import (
	"sort"
)

// color marks the traversal state of a node.
type color uint8

const (
	white color = iota // not visited yet
	gray               // on the traversal stack
	black              // ancestorCount is final
)

// node is the graph's representation of one transaction of the block.
type node struct {
	id string

	// parents holds the in-block transactions this one spends, in the order
	// they were first added. parentSet de-duplicates them.
	parents   []*node
	parentSet map[string]struct{}

	ancestorCount uint64
	color         color
}

func newNode(id string) *node {
	return &node{
		id:        id,
		parentSet: make(map[string]struct{}),
	}
}

func (n *node) addParent(parent *node) {
	if _, ok := n.parentSet[parent.id]; ok {
		return
	}
	n.parentSet[parent.id] = struct{}{}
	n.parents = append(n.parents, parent)
}

// Graph is the intra-block dependency graph of one block. Its node set is
// fixed by Initialize, its edges grow through AddEdges, and it becomes
// read-only once ComputeAncestorCounts succeeds.
//
// Graph is not safe for concurrent use.
type Graph struct {
	nodes map[string]*node
	// order keeps the node IDs in the order they were first initialized.
	order []string
	ready bool
}

// New returns an empty graph. Call Initialize to populate its node set.
func New() *Graph {
	g := &Graph{}
	g.Initialize(nil)
	return g
}

// Initialize discards any previous state and creates one node, with no
// parents, for each of the given transaction IDs. Duplicate IDs collapse into
// a single node.
func (g *Graph) Initialize(transactionIDs []string) {
	g.nodes = make(map[string]*node, len(transactionIDs))
	g.order = make([]string, 0, len(transactionIDs))
	g.ready = false

	for _, id := range transactionIDs {
		if _, ok := g.nodes[id]; ok {
			continue
		}
		g.nodes[id] = newNode(id)
		g.order = append(g.order, id)
	}
}

// AddEdges records that txID spends outputs of each of parentIDs. Parents
// that are not nodes of the graph belong to other blocks and are ignored.
// Calls for the same txID accumulate, and a parent is recorded once.
func (g *Graph) AddEdges(txID string, parentIDs []string) error {
	if g.ready {
		return wrapAncestryError(ErrGraphFrozen, nil)
	}
	child, ok := g.nodes[txID]
	if !ok {
		return NewErrUnknownTransaction(txID)
	}

	for _, parentID := range parentIDs {
		parent, ok := g.nodes[parentID]
		if !ok {
			continue
		}
		child.addParent(parent)
	}
	return nil
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Contains returns whether txID is a node of the graph.
func (g *Graph) Contains(txID string) bool {
	_, ok := g.nodes[txID]
	return ok
}

// TransactionIDs returns the node IDs in initialization order.
func (g *Graph) TransactionIDs() []string {
	ids := make([]string, len(g.order))
	copy(ids, g.order)
	return ids
}

// Parents returns the in-block parents of txID in the order they were added.
func (g *Graph) Parents(txID string) ([]string, error) {
	n, ok := g.nodes[txID]
	if !ok {
		return nil, NewErrUnknownTransaction(txID)
	}
	parentIDs := make([]string, len(n.parents))
	for i, parent := range n.parents {
		parentIDs[i] = parent.id
	}
	return parentIDs, nil
}

// IsReady returns whether ancestor counts have been computed.
func (g *Graph) IsReady() bool {
	return g.ready
}

// AncestorCount returns the ancestor count of txID. It fails with
// ErrNotReady until ComputeAncestorCounts has succeeded.
func (g *Graph) AncestorCount(txID string) (uint64, error) {
	if !g.ready {
		return 0, wrapAncestryError(ErrNotReady, nil)
	}
	n, ok := g.nodes[txID]
	if !ok {
		return 0, NewErrUnknownTransaction(txID)
	}
	return n.ancestorCount, nil
}

// sortedNodes returns the nodes ordered by ascending ID.
func (g *Graph) sortedNodes() []*node {
	nodes := make([]*node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].id < nodes[j].id
	})
	return nodes
}
