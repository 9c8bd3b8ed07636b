package ancestry

import (
	"math"

	"github.com/kaspanet/txancestry/infrastructure/logger"
	"github.com/pkg/errors"
)

// traversalFrame is one entry of the explicit depth-first stack.
type traversalFrame struct {
	node       *node
	nextParent int
	count      uint64
}

// ComputeAncestorCounts sets the ancestor count of every node to the sum,
// over its direct parents, of one plus the parent's own ancestor count.
// Ancestors reachable through several parents are counted once per path.
//
// Nodes are visited in ascending ID order with an explicit stack, so chains
// of any length are handled without recursion. A cycle fails the whole
// computation with ErrCyclicDependency and leaves the graph not ready.
// Once the counts are computed further calls are no-ops.
func (g *Graph) ComputeAncestorCounts() error {
	if g.ready {
		return nil
	}
	onEnd := logger.LogAndMeasureExecutionTime(log, "ComputeAncestorCounts")
	defer onEnd()

	for _, n := range g.sortedNodes() {
		err := g.visit(n)
		if err != nil {
			g.resetCounts()
			return err
		}
	}
	g.ready = true
	log.Debugf("Computed ancestor counts of %d transactions", len(g.nodes))
	return nil
}

// visit finalizes the ancestor count of root and of every ancestor that is
// not final yet. Visiting a black node does nothing.
func (g *Graph) visit(root *node) error {
	if root.color == black {
		return nil
	}

	root.color = gray
	stack := []*traversalFrame{{node: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if top.nextParent == len(top.node.parents) {
			top.node.ancestorCount = top.count
			top.node.color = black
			stack = stack[:len(stack)-1]
			continue
		}

		parent := top.node.parents[top.nextParent]
		switch parent.color {
		case white:
			// Descend; this parent is looked at again once it is black.
			parent.color = gray
			stack = append(stack, &traversalFrame{node: parent})
		case gray:
			return NewErrCyclicDependency(cycleOf(stack, parent))
		case black:
			count, err := addParentCount(top.count, parent.ancestorCount)
			if err != nil {
				return errors.Wrapf(err, "counting ancestors of transaction %s", top.node.id)
			}
			top.count = count
			top.nextParent++
		}
	}
	return nil
}

// addParentCount returns count + 1 + parentCount, the contribution of one
// parent and everything it already counted.
func addParentCount(count, parentCount uint64) (uint64, error) {
	if parentCount == math.MaxUint64 || count > math.MaxUint64-1-parentCount {
		return 0, wrapAncestryError(ErrAncestorCountOverflow, nil)
	}
	return count + 1 + parentCount, nil
}

// cycleOf returns the IDs on the stack from the frame of start to the top.
// Each of them spends an output of the next one, and the top spends an
// output of start.
func cycleOf(stack []*traversalFrame, start *node) []string {
	for i, frame := range stack {
		if frame.node != start {
			continue
		}
		cycle := make([]string, 0, len(stack)-i)
		for _, member := range stack[i:] {
			cycle = append(cycle, member.node.id)
		}
		return cycle
	}
	return []string{start.id}
}

func (g *Graph) resetCounts() {
	for _, n := range g.nodes {
		n.ancestorCount = 0
		n.color = white
	}
}
