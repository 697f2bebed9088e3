package credentials

import (
	"github.com/DigiByte-Core/digibytejs-wallet-client/keychain"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// AddressType is the script type of the wallet's addresses.
type AddressType string

const (
	// AddressTypeP2SH is used by multisig wallets and BIP45 wallets.
	AddressTypeP2SH AddressType = "P2SH"

	// AddressTypeP2PKH is used by single signer BIP44 wallets.
	AddressTypeP2PKH AddressType = "P2PKH"
)

// SecretCipher encrypts secrets under a password and opens them again. A
// failure to authenticate on Decrypt must be reported with an error that
// matches vault.ErrAuthFailed.
type SecretCipher interface {
	// Encrypt encrypts plaintext under password with a fresh salt.
	Encrypt(plaintext, password []byte) (string, error)

	// Decrypt opens a blob produced by Encrypt.
	Decrypt(blob string, password []byte) ([]byte, error)
}

// cleartextSecrets are the secrets of credentials that aren't encrypted.
type cleartextSecrets struct {
	// xPrivKey is the serialized master extended private key.
	xPrivKey []byte

	// mnemonic is the recovery phrase, if still held.
	mnemonic fn.Option[[]byte]
}

// zero wipes the secret bytes.
func (s cleartextSecrets) zero() {
	zero(s.xPrivKey)
	s.mnemonic.WhenSome(zero)
}

// ciphertextSecrets are the secrets of credentials encrypted under a
// password.
type ciphertextSecrets struct {
	xPrivKey string
	mnemonic fn.Option[string]
}

// Keys is a snapshot of the secrets of a credential set.
type Keys struct {
	// XPrivKey is the serialized master extended private key.
	XPrivKey string

	// Mnemonic is the recovery phrase, unless it was cleared.
	Mnemonic fn.Option[string]
}

// Credentials is the identity of one copayer: its master key, the keys and
// identifiers derived from it and the wallet it belongs to.
//
// Credentials have no internal locking. Callers must serialize calls to
// EncryptPrivateKey, DecryptPrivateKey, ClearMnemonic, AddWalletInfo and
// AddWalletPrivateKey with every other call.
type Credentials struct {
	network             keychain.Network
	strategy            keychain.DerivationStrategy
	account             uint32
	compliantDerivation bool

	// secrets holds either the cleartext secrets (left) or the encrypted
	// secrets (right), never both.
	secrets fn.Either[cleartextSecrets, ciphertextSecrets]

	mnemonicHasPassphrase bool

	identity identity

	walletID            string
	walletName          string
	m                   int
	n                   int
	copayerName         string
	addressType         AddressType
	walletPrivKey       string
	sharedEncryptingKey string

	cipher SecretCipher
}

// Network returns the network the credentials are bound to.
func (c *Credentials) Network() keychain.Network {
	return c.network
}

// DerivationStrategy returns the strategy of the base derivation path.
func (c *Credentials) DerivationStrategy() keychain.DerivationStrategy {
	return c.strategy
}

// Account returns the account of the base derivation path.
func (c *Credentials) Account() uint32 {
	return c.account
}

// CompliantDerivation reports whether keys are derived with the BIP32
// compliant algorithm.
func (c *Credentials) CompliantDerivation() bool {
	return c.compliantDerivation
}

// MnemonicHasPassphrase reports whether the credentials were built from a
// recovery phrase and a non empty passphrase.
func (c *Credentials) MnemonicHasPassphrase() bool {
	return c.mnemonicHasPassphrase
}

// BaseAddressDerivationPath returns the path of the base address key.
func (c *Credentials) BaseAddressDerivationPath() (string, error) {
	return keychain.BaseAddressDerivationPath(
		c.strategy, c.network, c.account,
	)
}

// XPubKey returns the extended public key at the base derivation path.
func (c *Credentials) XPubKey() string {
	return c.identity.xPubKey
}

// CopayerID returns the stable identifier of the copayer.
func (c *Credentials) CopayerID() string {
	return c.identity.copayerID
}

// RequestPrivKey returns the hex encoded key that signs requests.
func (c *Credentials) RequestPrivKey() string {
	return c.identity.requestPrivKey
}

// RequestPubKey returns the hex encoded compressed public request key.
func (c *Credentials) RequestPubKey() string {
	return c.identity.requestPubKey
}

// EntropySource returns the hex encoded seed of the personal encrypting
// key.
func (c *Credentials) EntropySource() string {
	return c.identity.entropySource
}

// PersonalEncryptingKey returns the base64 encoded key protecting the
// copayer's own data.
func (c *Credentials) PersonalEncryptingKey() string {
	return c.identity.personalEncryptingKey
}

// WalletID returns the id of the wallet the credentials joined, if any.
func (c *Credentials) WalletID() string {
	return c.walletID
}

// WalletName returns the name of the joined wallet.
func (c *Credentials) WalletName() string {
	return c.walletName
}

// M returns the number of signatures the joined wallet requires.
func (c *Credentials) M() int {
	return c.m
}

// N returns the number of copayers of the joined wallet.
func (c *Credentials) N() int {
	return c.n
}

// CopayerName returns the name this copayer joined the wallet with.
func (c *Credentials) CopayerName() string {
	return c.copayerName
}

// AddressType returns the script type of the joined wallet.
func (c *Credentials) AddressType() AddressType {
	return c.addressType
}

// WalletPrivKey returns the hex encoded wallet private key, only known to
// the wallet creator.
func (c *Credentials) WalletPrivKey() string {
	return c.walletPrivKey
}

// SharedEncryptingKey returns the base64 encoded key shared by all copayers
// of the wallet.
func (c *Credentials) SharedEncryptingKey() string {
	return c.sharedEncryptingKey
}

// HasWalletInfo reports whether the credentials joined a wallet.
func (c *Credentials) HasWalletInfo() bool {
	return c.walletID != ""
}

// CanSign reports whether the credentials hold a private key, encrypted or
// not.
func (c *Credentials) CanSign() bool {
	return c.secrets.IsLeft() || c.secrets.IsRight()
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
