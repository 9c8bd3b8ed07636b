package esplora

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

func testTxID(n int) string {
	return fmt.Sprintf("%064x", n)
}

// fakeEsplora serves a single block over the Esplora endpoints the client
// uses and counts the requests it receives.
type fakeEsplora struct {
	t *testing.T

	height       uint64
	hash         string
	transactions []*TransactionResponse
	extra        map[string]*TransactionResponse

	// reportedTxCount overrides tx_count when non-zero.
	reportedTxCount int
	// dropFromPages removes a transaction from the pages but not from txids.
	dropFromPages string
	// failPath makes every request whose path contains it fail with 500.
	failPath string

	mu       sync.Mutex
	requests map[string]int
}

func newFakeEsplora(t *testing.T, transactionCount int) *fakeEsplora {
	f := &fakeEsplora{
		t:        t,
		height:   680000,
		hash:     "000000000000000000076c036ff5119e5a5a74df77abf64203473364509f7732",
		extra:    make(map[string]*TransactionResponse),
		requests: make(map[string]int),
	}
	for i := 0; i < transactionCount; i++ {
		transaction := &TransactionResponse{TxID: testTxID(i + 1)}
		if i == 0 {
			transaction.Inputs = []*InputResponse{{TxID: testTxID(0), IsCoinbase: true}}
		} else {
			// Spend the previous transaction and something outside the block.
			transaction.Inputs = []*InputResponse{
				{TxID: testTxID(i)},
				{TxID: testTxID(100000 + i)},
				{TxID: testTxID(i)},
			}
		}
		f.transactions = append(f.transactions, transaction)
	}
	return f
}

func (f *fakeEsplora) start() (*httptest.Server, *Client) {
	server := httptest.NewServer(http.StripPrefix("/api", f))
	f.t.Cleanup(server.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL + "/api"
	cfg.Timeout = 5 * time.Second
	client, err := NewClient(cfg)
	if err != nil {
		f.t.Fatalf("NewClient: %s", err)
	}
	return server, client
}

func (f *fakeEsplora) requestCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for path, n := range f.requests {
		if strings.HasPrefix(path, prefix) {
			count += n
		}
	}
	return count
}

// configure changes the behaviour of a running server.
func (f *fakeEsplora) configure(change func(f *fakeEsplora)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	change(f)
}

func (f *fakeEsplora) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests[r.URL.Path]++
	failPath := f.failPath
	f.mu.Unlock()

	if failPath != "" && strings.Contains(r.URL.Path, failPath) {
		http.Error(w, "backend unavailable", http.StatusInternalServerError)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case len(parts) == 2 && parts[0] == "block-height":
		if parts[1] != strconv.FormatUint(f.height, 10) {
			http.Error(w, "Block not found", http.StatusNotFound)
			return
		}
		fmt.Fprint(w, f.hash)
	case len(parts) >= 2 && parts[0] == "block":
		if parts[1] != f.hash {
			http.Error(w, "Block not found", http.StatusNotFound)
			return
		}
		f.serveBlock(w, parts[2:])
	case len(parts) == 2 && parts[0] == "tx":
		transaction, ok := f.extra[parts[1]]
		if !ok {
			http.Error(w, "Transaction not found", http.StatusNotFound)
			return
		}
		f.writeJSON(w, transaction)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeEsplora) serveBlock(w http.ResponseWriter, rest []string) {
	f.mu.Lock()
	reportedTxCount, dropFromPages := f.reportedTxCount, f.dropFromPages
	f.mu.Unlock()

	switch {
	case len(rest) == 0:
		txCount := len(f.transactions)
		if reportedTxCount != 0 {
			txCount = reportedTxCount
		}
		f.writeJSON(w, &BlockResponse{ID: f.hash, Height: f.height, TxCount: txCount})
	case len(rest) == 1 && rest[0] == "txids":
		txIDs := make([]string, len(f.transactions))
		for i, transaction := range f.transactions {
			txIDs[i] = transaction.TxID
		}
		f.writeJSON(w, txIDs)
	case len(rest) == 2 && rest[0] == "txs":
		start, err := strconv.Atoi(rest[1])
		if err != nil || start%PageSize != 0 || start >= len(f.transactions) {
			http.Error(w, "start index out of range", http.StatusBadRequest)
			return
		}
		end := start + PageSize
		if end > len(f.transactions) {
			end = len(f.transactions)
		}
		page := make([]*TransactionResponse, 0, PageSize)
		for _, transaction := range f.transactions[start:end] {
			if transaction.TxID == dropFromPages {
				continue
			}
			page = append(page, transaction)
		}
		f.writeJSON(w, page)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

func (f *fakeEsplora) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		f.t.Errorf("encoding the response: %s", err)
	}
}
