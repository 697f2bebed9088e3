package keychain

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

const (
	// CoinTypeBitcoin specifies the BIP44 coin type used for livenet key
	// derivation.
	CoinTypeBitcoin uint32 = 0

	// CoinTypeTestnet specifies the BIP44 coin type for all testnet key
	// derivation.
	CoinTypeTestnet uint32 = 1
)

// ErrUnsupportedNetwork is returned when a network name or an extended key
// version does not belong to one of the known networks.
var ErrUnsupportedNetwork = errors.New("unsupported network")

// Network identifies the chain a set of credentials is bound to. It is fixed
// when the credentials are created and never changes afterwards.
type Network string

const (
	// Livenet is the main network.
	Livenet Network = "livenet"

	// Testnet is the public test network.
	Testnet Network = "testnet"
)

// networkParams maps every known network to the chain parameters that carry
// its extended key version bytes.
var networkParams = map[Network]*chaincfg.Params{
	Livenet: &chaincfg.MainNetParams,
	Testnet: &chaincfg.TestNet3Params,
}

// ParseNetwork maps a network name onto a Network.
func ParseNetwork(name string) (Network, error) {
	n := Network(name)
	if _, ok := networkParams[n]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedNetwork, name)
	}

	return n, nil
}

// String returns the network name.
func (n Network) String() string {
	return string(n)
}

// Params returns the chain parameters of the network.
func (n Network) Params() (*chaincfg.Params, error) {
	params, ok := networkParams[n]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedNetwork, n)
	}

	return params, nil
}

// CoinType returns the BIP44 coin type of the network.
func (n Network) CoinType() (uint32, error) {
	switch n {
	case Livenet:
		return CoinTypeBitcoin, nil
	case Testnet:
		return CoinTypeTestnet, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedNetwork, n)
	}
}

// NetworkFromExtendedKey reports which network an extended key was
// serialized for, based on its version bytes.
func NetworkFromExtendedKey(key *hdkeychain.ExtendedKey) (Network, error) {
	version := key.Version()
	for n, params := range networkParams {
		if bytes.Equal(version, params.HDPrivateKeyID[:]) ||
			bytes.Equal(version, params.HDPublicKeyID[:]) {

			return n, nil
		}
	}

	return "", fmt.Errorf("%w: version %x", ErrUnsupportedNetwork,
		version)
}
