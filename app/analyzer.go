package app

import (
	"context"

	"github.com/kaspanet/txancestry/domain/ancestry"
	"github.com/kaspanet/txancestry/infrastructure/logger"
	"github.com/pkg/errors"
)

// Report is the outcome of analysing one block.
type Report struct {
	BlockID          string
	Limit            int
	TransactionCount int
	Sets             []*ancestry.AncestrySet
}

// Analyzer runs the ancestry analysis of blocks served by a
// BlockTransactionSource.
type Analyzer struct {
	source ancestry.BlockTransactionSource
}

// NewAnalyzer returns an Analyzer reading block data from source.
func NewAnalyzer(source ancestry.BlockTransactionSource) *Analyzer {
	return &Analyzer{source: source}
}

// Analyze builds the ancestry graph of the block identified by blockID,
// computes the ancestor counts of all its transactions and returns the limit
// transactions with the largest ones.
func (a *Analyzer) Analyze(ctx context.Context, blockID string, limit int) (*Report, error) {
	if limit < 0 {
		return nil, errors.Wrapf(ancestry.ErrInvalidLimit, "limit %d is negative", limit)
	}
	onEnd := logger.LogAndMeasureExecutionTime(log, "Analyze")
	defer onEnd()

	graph, err := ancestry.Build(ctx, blockID, a.source)
	if err != nil {
		return nil, err
	}
	err = graph.ComputeAncestorCounts()
	if err != nil {
		return nil, errors.Wrapf(err, "failed counting the ancestors in block %s", blockID)
	}
	sets, err := graph.LargestAncestrySets(limit)
	if err != nil {
		return nil, err
	}

	return &Report{
		BlockID:          blockID,
		Limit:            limit,
		TransactionCount: graph.Len(),
		Sets:             sets,
	}, nil
}
