package config

import (
	"github.com/kaspanet/txancestry/infrastructure/network/esplora"
	"github.com/pkg/errors"
)

// Network describes one of the Bitcoin networks an Esplora instance indexes.
type Network struct {
	Name       string
	EsploraURL string
}

var (
	// MainnetParams is the default network.
	MainnetParams = Network{Name: "mainnet", EsploraURL: esplora.MainnetURL}

	// TestnetParams selects the public testnet instance.
	TestnetParams = Network{Name: "testnet", EsploraURL: esplora.TestnetURL}

	// SignetParams selects the public signet instance.
	SignetParams = Network{Name: "signet", EsploraURL: esplora.SignetURL}
)

// NetworkFlags holds the network configuration, that is which network is selected.
type NetworkFlags struct {
	Testnet bool `long:"testnet" description:"Use the test network"`
	Signet  bool `long:"signet" description:"Use the signet network"`

	ActiveNetParams *Network
}

// ResolveNetwork sets ActiveNetParams from the network flags. Mainnet is
// used when no network flag is set; more than one is an error.
func (networkFlags *NetworkFlags) ResolveNetwork() error {
	networkFlags.ActiveNetParams = &MainnetParams

	numNets := 0
	if networkFlags.Testnet {
		numNets++
		networkFlags.ActiveNetParams = &TestnetParams
	}
	if networkFlags.Signet {
		numNets++
		networkFlags.ActiveNetParams = &SignetParams
	}
	if numNets > 1 {
		return errors.New("Multiple networks parameters (testnet, signet) cannot be used " +
			"together. Please choose only one network")
	}
	return nil
}

// NetParams returns the ActiveNetParams
func (networkFlags *NetworkFlags) NetParams() *Network {
	return networkFlags.ActiveNetParams
}
