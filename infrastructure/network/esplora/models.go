package esplora

// BlockResponse is the JSON returned by GET /block/{hash}.
type BlockResponse struct {
	ID                string  `json:"id"`
	Height            uint64  `json:"height"`
	Version           int32   `json:"version"`
	Timestamp         int64   `json:"timestamp"`
	TxCount           int     `json:"tx_count"`
	Size              uint64  `json:"size"`
	Weight            uint64  `json:"weight"`
	MerkleRoot        string  `json:"merkle_root"`
	PreviousBlockHash string  `json:"previousblockhash"`
	MedianTime        int64   `json:"mediantime"`
	Nonce             uint32  `json:"nonce"`
	Bits              uint32  `json:"bits"`
	Difficulty        float64 `json:"difficulty"`
}

// TransactionResponse is one transaction as returned by GET /tx/{txid} and
// the block transaction pages.
type TransactionResponse struct {
	TxID     string                 `json:"txid"`
	Version  int32                  `json:"version"`
	LockTime uint32                 `json:"locktime"`
	Inputs   []*InputResponse       `json:"vin"`
	Size     uint64                 `json:"size"`
	Weight   uint64                 `json:"weight"`
	Fee      uint64                 `json:"fee"`
	Status   *TransactionStatusData `json:"status,omitempty"`
}

// InputResponse is one entry of a transaction's vin.
type InputResponse struct {
	TxID       string `json:"txid"`
	Vout       uint32 `json:"vout"`
	IsCoinbase bool   `json:"is_coinbase"`
	Sequence   uint32 `json:"sequence"`
}

// TransactionStatusData tells whether and where a transaction is confirmed.
type TransactionStatusData struct {
	Confirmed   bool   `json:"confirmed"`
	BlockHeight uint64 `json:"block_height,omitempty"`
	BlockHash   string `json:"block_hash,omitempty"`
	BlockTime   int64  `json:"block_time,omitempty"`
}

// parentIDs returns the normalized IDs of the transactions tx spends, in
// input order and without duplicates. Coinbase inputs have no parent.
func (tx *TransactionResponse) parentIDs() ([]string, error) {
	parentIDs := make([]string, 0, len(tx.Inputs))
	seen := make(map[string]struct{}, len(tx.Inputs))
	for _, input := range tx.Inputs {
		if input.IsCoinbase {
			continue
		}
		parentID, err := NormalizeTransactionID(input.TxID)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[parentID]; ok {
			continue
		}
		seen[parentID] = struct{}{}
		parentIDs = append(parentIDs, parentID)
	}
	return parentIDs, nil
}
