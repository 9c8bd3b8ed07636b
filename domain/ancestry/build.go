package ancestry

import (
	"context"

	"github.com/pkg/errors"
)

// Build creates the graph of the block identified by blockID: one node per
// transaction listed by source, and an edge to every in-block transaction it
// spends. The graph is returned only if every call to source succeeded.
func Build(ctx context.Context, blockID string, source BlockTransactionSource) (*Graph, error) {
	txIDs, err := source.ListTransactionIDs(ctx, blockID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed listing the transactions of block %s", blockID)
	}

	graph := New()
	graph.Initialize(txIDs)
	log.Debugf("Initialized a graph of %d transactions for block %s", graph.Len(), blockID)

	edgeCount := 0
	for _, txID := range graph.order {
		err := ctx.Err()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		parentIDs, err := source.ListInputs(ctx, txID)
		if err != nil {
			return nil, errors.Wrapf(err, "failed listing the inputs of transaction %s", txID)
		}
		err = graph.AddEdges(txID, parentIDs)
		if err != nil {
			return nil, err
		}
		edgeCount += len(graph.nodes[txID].parents)
	}
	log.Infof("Built the ancestry graph of block %s: %d transactions, %d in-block edges",
		blockID, graph.Len(), edgeCount)

	return graph, nil
}
