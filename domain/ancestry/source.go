package ancestry

import (
	"context"
)

// BlockTransactionSource supplies the transactions of a block and the
// transactions each of them spends from.
type BlockTransactionSource interface {
	// ListTransactionIDs returns the IDs of all transactions confirmed in
	// the block identified by blockID.
	ListTransactionIDs(ctx context.Context, blockID string) ([]string, error)

	// ListInputs returns the IDs of the transactions whose outputs txID
	// spends. They may lie outside the block.
	ListInputs(ctx context.Context, txID string) ([]string, error)
}
