package esplora

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
)

// BlockHashByHeight returns the hash of the main chain block at height.
func (c *Client) BlockHashByHeight(ctx context.Context, height uint64) (string, error) {
	text, err := c.getText(ctx, "block-height", strconv.FormatUint(height, 10))
	if err != nil {
		return "", errors.Wrapf(err, "error getting the hash of block %d", height)
	}
	hash, err := normalizeHash(text)
	if err != nil {
		return "", errors.Wrapf(err, "the server returned an invalid hash for block %d", height)
	}
	return hash, nil
}

// ResolveBlockHash returns the hash of the block named by blockID, which is
// either a height or a hash. Hashes are returned without a request.
func (c *Client) ResolveBlockHash(ctx context.Context, blockID string) (string, error) {
	id, err := ParseBlockIdentifier(blockID)
	if err != nil {
		return "", err
	}
	if id.ByHash {
		return id.Hash, nil
	}
	return c.BlockHashByHeight(ctx, id.Height)
}

// Block returns the header data and transaction count of a block.
func (c *Client) Block(ctx context.Context, hash string) (*BlockResponse, error) {
	block := &BlockResponse{}
	err := c.get(ctx, block, "block", hash)
	if err != nil {
		return nil, errors.Wrapf(err, "error getting block %s", hash)
	}
	return block, nil
}

// BlockTransactionIDs returns the normalized IDs of all transactions in a
// block, in block order.
func (c *Client) BlockTransactionIDs(ctx context.Context, hash string) ([]string, error) {
	var txIDs []string
	err := c.get(ctx, &txIDs, "block", hash, "txids")
	if err != nil {
		return nil, errors.Wrapf(err, "error getting the transaction IDs of block %s", hash)
	}
	for i, txID := range txIDs {
		txIDs[i], err = NormalizeTransactionID(txID)
		if err != nil {
			return nil, errors.Wrapf(err, "block %s", hash)
		}
	}
	return txIDs, nil
}

// BlockTransactions returns the page of at most PageSize transactions of a
// block that starts at index start. start must be a multiple of PageSize.
func (c *Client) BlockTransactions(ctx context.Context, hash string, start int) ([]*TransactionResponse, error) {
	if start < 0 || start%PageSize != 0 {
		return nil, errors.Errorf("page start %d is not a non-negative multiple of %d", start, PageSize)
	}
	var transactions []*TransactionResponse
	err := c.get(ctx, &transactions, "block", hash, "txs", strconv.Itoa(start))
	if err != nil {
		return nil, errors.Wrapf(err, "error getting the transactions of block %s from index %d", hash, start)
	}
	return transactions, nil
}

// Transaction returns a single transaction.
func (c *Client) Transaction(ctx context.Context, txID string) (*TransactionResponse, error) {
	transaction := &TransactionResponse{}
	err := c.get(ctx, transaction, "tx", txID)
	if err != nil {
		return nil, errors.Wrapf(err, "error getting transaction %s", txID)
	}
	return transaction, nil
}
