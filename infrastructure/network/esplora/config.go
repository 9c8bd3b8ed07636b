package esplora

import (
	"time"
)

// Base URLs of the public Esplora instances.
const (
	MainnetURL = "https://blockstream.info/api"
	TestnetURL = "https://blockstream.info/testnet/api"
	SignetURL  = "https://blockstream.info/signet/api"
)

// PageSize is the number of transactions Esplora returns per
// /block/{hash}/txs/{start} page.
const PageSize = 25

const (
	defaultTimeout     = 30 * time.Second
	defaultConcurrency = 4
	defaultCacheSize   = 8
)

// Config holds everything the client needs to reach an Esplora server.
type Config struct {
	// BaseURL is the API root, e.g. MainnetURL.
	BaseURL string

	// Timeout bounds every single HTTP request.
	Timeout time.Duration

	// Concurrency is the maximum number of transaction pages fetched at
	// the same time.
	Concurrency int

	// CacheSize is the number of block listings, and separately of single
	// transactions, kept in memory.
	CacheSize int

	// Proxy is an optional SOCKS5 proxy address (host:port) all requests
	// are dialed through.
	Proxy     string
	ProxyUser string
	ProxyPass string
}

// DefaultConfig returns the configuration for the public mainnet instance.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     MainnetURL,
		Timeout:     defaultTimeout,
		Concurrency: defaultConcurrency,
		CacheSize:   defaultCacheSize,
	}
}
