package credentials

import (
	"encoding/hex"
	"testing"

	"github.com/DigiByte-Core/digibytejs-wallet-client/keychain"
	"github.com/stretchr/testify/require"
)

// TestAddWalletInfoKeepsAccount asserts joining a wallet keeps the account
// the credentials were imported with.
func TestAddWalletInfoKeepsAccount(t *testing.T) {
	t.Parallel()

	c, err := FromExtendedPrivateKey(livenetMaster, 8, keychain.BIP45)
	require.NoError(t, err)
	xPub := c.XPubKey()

	require.NoError(t, c.AddWalletInfo("1", "name", 1, 1, "juan"))
	require.Equal(t, uint32(8), c.Account())
	require.Equal(t, xPub, c.XPubKey())
	require.Equal(t, AddressTypeP2SH, c.AddressType())
	require.True(t, c.HasWalletInfo())
	require.Equal(t, "1", c.WalletID())
	require.Equal(t, "name", c.WalletName())
	require.Equal(t, 1, c.M())
	require.Equal(t, 1, c.N())
	require.Equal(t, "juan", c.CopayerName())
}

// TestAddWalletInfoAddressType asserts single signer BIP44 wallets use P2PKH
// and every other wallet P2SH.
func TestAddWalletInfoAddressType(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		strategy keychain.DerivationStrategy
		m, n     int
		expected AddressType
	}{{
		name:     "bip44 single signer",
		strategy: keychain.BIP44,
		m:        1,
		n:        1,
		expected: AddressTypeP2PKH,
	}, {
		name:     "bip44 multisig",
		strategy: keychain.BIP44,
		m:        2,
		n:        3,
		expected: AddressTypeP2SH,
	}, {
		name:     "bip45 single signer",
		strategy: keychain.BIP45,
		m:        1,
		n:        1,
		expected: AddressTypeP2SH,
	}, {
		name:     "bip48 single signer",
		strategy: keychain.BIP48,
		m:        1,
		n:        1,
		expected: AddressTypeP2SH,
	}}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c, err := FromExtendedPrivateKey(
				testnetMaster, 0, tc.strategy,
			)
			require.NoError(t, err)

			require.NoError(t, c.AddWalletInfo(
				"wallet", "name", tc.m, tc.n, "copayer",
			))
			require.Equal(t, tc.expected, c.AddressType())
		})
	}
}

// TestAddWalletInfoMismatch asserts credentials can't join a second wallet.
func TestAddWalletInfoMismatch(t *testing.T) {
	t.Parallel()

	c, err := Create(keychain.Testnet)
	require.NoError(t, err)

	require.NoError(t, c.AddWalletInfo("a", "first", 2, 3, "me"))

	err = c.AddWalletInfo("b", "second", 1, 1, "me")
	require.ErrorIs(t, err, ErrWalletMismatch)
	require.Equal(t, "a", c.WalletID())
	require.Equal(t, "first", c.WalletName())

	// Joining the same wallet again refreshes its details, an empty
	// copayer name keeps the previous one.
	require.NoError(t, c.AddWalletInfo("a", "renamed", 2, 3, ""))
	require.Equal(t, "renamed", c.WalletName())
	require.Equal(t, "me", c.CopayerName())
}

// TestAddWalletInfoInvalid asserts inconsistent wallet parameters are
// rejected without changing the credentials.
func TestAddWalletInfoInvalid(t *testing.T) {
	t.Parallel()

	c, err := Create(keychain.Testnet)
	require.NoError(t, err)

	testCases := []struct {
		walletID string
		m, n     int
	}{
		{walletID: "", m: 1, n: 1},
		{walletID: "w", m: 0, n: 1},
		{walletID: "w", m: 1, n: 0},
		{walletID: "w", m: 3, n: 2},
	}
	for _, tc := range testCases {
		err := c.AddWalletInfo(tc.walletID, "name", tc.m, tc.n, "me")
		require.ErrorIs(t, err, ErrInvalidWalletInfo)
	}

	require.False(t, c.HasWalletInfo())
	require.Empty(t, c.WalletName())
}

// TestAddWalletInfoAccount asserts an account override re-derives the
// identity of the credentials.
func TestAddWalletInfoAccount(t *testing.T) {
	t.Parallel()

	c, err := FromExtendedPrivateKey(livenetMaster, 0, keychain.BIP44)
	require.NoError(t, err)

	expected, err := FromExtendedPrivateKey(livenetMaster, 3, keychain.BIP44)
	require.NoError(t, err)

	require.NoError(t, c.AddWalletInfo(
		"wallet", "name", 1, 2, "me", WithAccount(3),
	))
	require.Equal(t, uint32(3), c.Account())
	require.Equal(t, expected.XPubKey(), c.XPubKey())
	require.Equal(t, expected.CopayerID(), c.CopayerID())

	path, err := c.BaseAddressDerivationPath()
	require.NoError(t, err)
	require.Equal(t, "m/44'/0'/3'", path)
}

// TestAddWalletInfoAccountEncrypted asserts the account can't be switched
// while the secrets are encrypted.
func TestAddWalletInfoAccountEncrypted(t *testing.T) {
	t.Parallel()

	c, err := FromExtendedPrivateKey(
		livenetMaster, 0, keychain.BIP44, fastCipher(t),
	)
	require.NoError(t, err)
	xPub := c.XPubKey()

	require.NoError(t, c.EncryptPrivateKey([]byte(testPassword)))

	err = c.AddWalletInfo("wallet", "name", 1, 2, "me", WithAccount(1))
	require.ErrorIs(t, err, ErrPasswordRequired)
	require.False(t, c.HasWalletInfo())
	require.Zero(t, c.Account())
	require.Equal(t, xPub, c.XPubKey())

	// Keeping the account works without the password.
	require.NoError(t, c.AddWalletInfo(
		"wallet", "name", 1, 2, "me", WithAccount(0),
	))
	require.True(t, c.HasWalletInfo())
}

// TestAddWalletInfoCreator asserts the creator's wallet key yields the
// shared encrypting key.
func TestAddWalletInfoCreator(t *testing.T) {
	t.Parallel()

	c, err := Create(keychain.Livenet)
	require.NoError(t, err)

	require.NoError(t, c.AddWalletInfo(
		"wallet", "name", 2, 2, "me", AsWalletCreator(walletKey),
	))
	require.Equal(t, walletKey, c.WalletPrivKey())
	require.Equal(t, "sWrVigKAb0dU2FuS+inTqA==", c.SharedEncryptingKey())

	other, err := Create(keychain.Livenet)
	require.NoError(t, err)

	err = other.AddWalletInfo(
		"wallet", "name", 2, 2, "me", AsWalletCreator("zz"),
	)
	require.ErrorIs(t, err, ErrInvalidWalletKey)
	require.False(t, other.HasWalletInfo())
}

// TestAddWalletPrivateKey asserts only valid secp256k1 scalars are accepted.
func TestAddWalletPrivateKey(t *testing.T) {
	t.Parallel()

	c, err := Create(keychain.Testnet)
	require.NoError(t, err)

	invalid := []string{
		"",
		"not hex",
		"a28840e18650b1de",
		hex.EncodeToString(make([]byte, 32)),
		"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
	}
	for _, key := range invalid {
		err := c.AddWalletPrivateKey(key)
		require.ErrorIs(t, err, ErrInvalidWalletKey, key)
	}
	require.Empty(t, c.WalletPrivKey())

	key, err := NewWalletPrivKey()
	require.NoError(t, err)
	require.Len(t, key, 64)

	require.NoError(t, c.AddWalletPrivateKey(key))
	require.Equal(t, key, c.WalletPrivKey())
	require.NotEmpty(t, c.SharedEncryptingKey())
}
