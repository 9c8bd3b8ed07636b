package esplora

import (
	"context"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/kaspanet/txancestry/domain/ancestry"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// blockListing is the complete, immutable transaction listing of one block.
type blockListing struct {
	hash   string
	txIDs  []string
	inputs map[string][]string
}

// Source serves block transaction listings from an Esplora server. It
// implements ancestry.BlockTransactionSource.
//
// ListTransactionIDs fetches every transaction page of the block before it
// returns, so ListInputs for a transaction of that block is answered from
// memory.
type Source struct {
	client      *Client
	concurrency int

	listings     *lru.Cache[string, *blockListing]
	transactions *lru.Cache[string, []string]
}

var _ ancestry.BlockTransactionSource = (*Source)(nil)

// NewSource returns a source that fetches through client with the
// concurrency and cache size of cfg.
func NewSource(client *Client, cfg *Config) (*Source, error) {
	if cfg.Concurrency < 1 {
		return nil, errors.Errorf("concurrency must be at least 1, got %d", cfg.Concurrency)
	}
	if cfg.CacheSize < 1 {
		return nil, errors.Errorf("cache size must be at least 1, got %d", cfg.CacheSize)
	}
	listings, err := lru.New[string, *blockListing](cfg.CacheSize)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	transactions, err := lru.New[string, []string](cfg.CacheSize * PageSize)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &Source{
		client:       client,
		concurrency:  cfg.Concurrency,
		listings:     listings,
		transactions: transactions,
	}, nil
}

// ListTransactionIDs returns the IDs of all transactions in the block named
// by blockID, a height or a hash.
func (s *Source) ListTransactionIDs(ctx context.Context, blockID string) ([]string, error) {
	hash, err := s.client.ResolveBlockHash(ctx, blockID)
	if err != nil {
		return nil, err
	}

	listing, ok := s.listings.Get(hash)
	if ok {
		log.Debugf("Using the cached listing of block %s", hash)
	} else {
		listing, err = s.fetchListing(ctx, hash)
		if err != nil {
			return nil, err
		}
		s.listings.Add(hash, listing)
	}

	txIDs := make([]string, len(listing.txIDs))
	copy(txIDs, listing.txIDs)
	return txIDs, nil
}

// ListInputs returns the IDs of the transactions txID spends. Transactions of
// a listed block are answered from its listing; any other transaction is
// fetched on its own.
func (s *Source) ListInputs(ctx context.Context, txID string) ([]string, error) {
	txID, err := NormalizeTransactionID(txID)
	if err != nil {
		return nil, err
	}

	for _, hash := range s.listings.Keys() {
		listing, ok := s.listings.Peek(hash)
		if !ok {
			continue
		}
		if inputs, ok := listing.inputs[txID]; ok {
			return copyIDs(inputs), nil
		}
	}

	if inputs, ok := s.transactions.Get(txID); ok {
		return copyIDs(inputs), nil
	}
	log.Debugf("Transaction %s is not in a listed block, fetching it", txID)
	transaction, err := s.client.Transaction(ctx, txID)
	if err != nil {
		return nil, err
	}
	inputs, err := transaction.parentIDs()
	if err != nil {
		return nil, errors.Wrapf(err, "transaction %s", txID)
	}
	s.transactions.Add(txID, inputs)
	return copyIDs(inputs), nil
}

func (s *Source) fetchListing(ctx context.Context, hash string) (*blockListing, error) {
	block, err := s.client.Block(ctx, hash)
	if err != nil {
		return nil, err
	}
	txIDs, err := s.client.BlockTransactionIDs(ctx, hash)
	if err != nil {
		return nil, err
	}
	if len(txIDs) != block.TxCount {
		return nil, errors.Wrapf(ErrIncompleteListing, "block %s lists %d transaction IDs but reports %d transactions",
			hash, len(txIDs), block.TxCount)
	}

	pageCount := (len(txIDs) + PageSize - 1) / PageSize
	log.Infof("Fetching %d transactions of block %s (height %d) in %d pages",
		len(txIDs), hash, block.Height, pageCount)

	pages := make([][]*TransactionResponse, pageCount)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)
	for i := 0; i < pageCount; i++ {
		i := i
		group.Go(func() error {
			page, err := s.client.BlockTransactions(groupCtx, hash, i*PageSize)
			if err != nil {
				return err
			}
			pages[i] = page
			return nil
		})
	}
	err = group.Wait()
	if err != nil {
		return nil, err
	}

	inputs := make(map[string][]string, len(txIDs))
	for _, page := range pages {
		for _, transaction := range page {
			txID, err := NormalizeTransactionID(transaction.TxID)
			if err != nil {
				return nil, errors.Wrapf(err, "block %s", hash)
			}
			parentIDs, err := transaction.parentIDs()
			if err != nil {
				return nil, errors.Wrapf(err, "transaction %s", txID)
			}
			inputs[txID] = parentIDs
		}
	}
	for _, txID := range txIDs {
		if _, ok := inputs[txID]; !ok {
			return nil, errors.Wrapf(ErrIncompleteListing, "transaction %s of block %s is missing from its pages",
				txID, hash)
		}
	}

	return &blockListing{
		hash:   hash,
		txIDs:  txIDs,
		inputs: inputs,
	}, nil
}

func copyIDs(ids []string) []string {
	copied := make([]string, len(ids))
	copy(copied, ids)
	return copied
}
