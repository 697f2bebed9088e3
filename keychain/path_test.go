package keychain

import (
	"slices"
	"testing"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestParsePath tests parsing of well formed and malformed paths.
func TestParsePath(t *testing.T) {
	t.Parallel()

	const h = hdkeychain.HardenedKeyStart

	testCases := []struct {
		name     string
		path     string
		expected []uint32
		err      error
	}{{
		name:     "master",
		path:     "m",
		expected: []uint32{},
	}, {
		name:     "hardened and normal",
		path:     "m/44'/1'/2'/0/5",
		expected: []uint32{44 + h, 1 + h, 2 + h, 0, 5},
	}, {
		name: "missing root",
		path: "44'/0'",
		err:  ErrInvalidPath,
	}, {
		name: "empty step",
		path: "m//1",
		err:  ErrInvalidPath,
	}, {
		name: "not a number",
		path: "m/x'",
		err:  ErrInvalidPath,
	}, {
		name: "index too large",
		path: "m/2147483648",
		err:  ErrInvalidPath,
	}, {
		name: "negative index",
		path: "m/-1",
		err:  ErrInvalidPath,
	}}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			indexes, err := ParsePath(tc.path)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.expected, indexes)
		})
	}
}

// TestFormatPathRoundTrip asserts that formatting and parsing are inverse
// operations.
func TestFormatPathRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		indexes := rapid.SliceOfN(
			rapid.Uint32(), 0, 8,
		).Draw(t, "indexes")

		parsed, err := ParsePath(FormatPath(indexes))
		require.NoError(t, err)
		require.True(t, slices.Equal(indexes, parsed))
	})
}

// TestNetworks tests network parsing and lookups.
func TestNetworks(t *testing.T) {
	t.Parallel()

	net, err := ParseNetwork("testnet")
	require.NoError(t, err)
	require.Equal(t, Testnet, net)

	coinType, err := net.CoinType()
	require.NoError(t, err)
	require.Equal(t, CoinTypeTestnet, coinType)

	coinType, err = Livenet.CoinType()
	require.NoError(t, err)
	require.Equal(t, CoinTypeBitcoin, coinType)

	_, err = ParseNetwork("mainnet")
	require.ErrorIs(t, err, ErrUnsupportedNetwork)

	_, err = Network("regtest").Params()
	require.ErrorIs(t, err, ErrUnsupportedNetwork)

	master, err := hdkeychain.NewKeyFromString(livenetMaster)
	require.NoError(t, err)

	pub, err := master.Neuter()
	require.NoError(t, err)

	net, err = NetworkFromExtendedKey(pub)
	require.NoError(t, err)
	require.Equal(t, Livenet, net)
}
