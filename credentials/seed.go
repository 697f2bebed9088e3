package credentials

import (
	"fmt"

	"github.com/DigiByte-Core/digibytejs-wallet-client/keychain"
	"github.com/DigiByte-Core/digibytejs-wallet-client/mnemonic"
	"github.com/DigiByte-Core/digibytejs-wallet-client/vault"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// options are the optional arguments of the constructors.
type options struct {
	nonCompliant  bool
	walletPrivKey fn.Option[string]
	strategy      fn.Option[keychain.DerivationStrategy]
	cipher        SecretCipher
}

// Option tweaks how credentials are built.
type Option func(*options)

// NonCompliantDerivation selects the legacy derivation algorithm. It is only
// honored when importing existing keys or phrases.
func NonCompliantDerivation() Option {
	return func(o *options) {
		o.nonCompliant = true
	}
}

// WithWalletPrivKey attaches the hex encoded private key of the wallet the
// credentials created.
func WithWalletPrivKey(walletPrivKey string) Option {
	return func(o *options) {
		o.walletPrivKey = fn.Some(walletPrivKey)
	}
}

// WithDerivationStrategy sets the strategy of freshly created credentials.
// BIP44 is used otherwise.
func WithDerivationStrategy(s keychain.DerivationStrategy) Option {
	return func(o *options) {
		o.strategy = fn.Some(s)
	}
}

// WithCipher sets the cipher used to encrypt the secrets. A scrypt based
// vault cipher with production parameters is used otherwise.
func WithCipher(cipher SecretCipher) Option {
	return func(o *options) {
		o.cipher = cipher
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Create builds credentials around a fresh random master key.
func Create(net keychain.Network, opts ...Option) (*Credentials, error) {
	o := newOptions(opts)

	master, err := keychain.NewMaster(net)
	if err != nil {
		return nil, err
	}

	c := &Credentials{
		network:             net,
		strategy:            o.strategy.UnwrapOr(keychain.BIP44),
		compliantDerivation: true,
		cipher:              o.cipher,
	}
	if err := c.init(master, fn.None[string](), o); err != nil {
		return nil, err
	}

	log.Debugf("Created credentials %v on %v", c.CopayerID(), net)

	return c, nil
}

// CreateWithMnemonic builds credentials from a fresh twelve word recovery
// phrase in lang, stretched with passphrase. New credentials always use the
// compliant derivation algorithm.
func CreateWithMnemonic(net keychain.Network, passphrase string,
	lang mnemonic.Language, account uint32,
	opts ...Option) (*Credentials, error) {

	o := newOptions(opts)

	phrase, err := mnemonic.Generate(mnemonic.DefaultEntropyBits, lang)
	if err != nil {
		return nil, err
	}

	master, err := keychain.NewMasterFromSeed(
		mnemonic.ToSeed(phrase, passphrase), net,
	)
	if err != nil {
		return nil, err
	}

	c := &Credentials{
		network:               net,
		strategy:              o.strategy.UnwrapOr(keychain.BIP44),
		account:               account,
		compliantDerivation:   true,
		mnemonicHasPassphrase: passphrase != "",
		cipher:                o.cipher,
	}
	if err := c.init(master, fn.Some(phrase), o); err != nil {
		return nil, err
	}

	log.Debugf("Created credentials %v on %v from a new %v phrase",
		c.CopayerID(), net, lang)

	return c, nil
}

// FromExtendedPrivateKey imports a serialized master extended private key.
// The network is taken from the key's version bytes.
func FromExtendedPrivateKey(xPrivKey string, account uint32,
	strategy keychain.DerivationStrategy,
	opts ...Option) (*Credentials, error) {

	o := newOptions(opts)

	master, net, err := parseMaster(xPrivKey)
	if err != nil {
		return nil, err
	}

	c := &Credentials{
		network:             net,
		strategy:            strategy,
		account:             account,
		compliantDerivation: !o.nonCompliant,
		cipher:              o.cipher,
	}
	if err := c.init(master, fn.None[string](), o); err != nil {
		return nil, err
	}

	log.Debugf("Imported credentials %v on %v, strategy=%v, "+
		"compliant=%v", c.CopayerID(), net, strategy,
		c.compliantDerivation)

	return c, nil
}

// FromMnemonic rebuilds credentials from a recovery phrase and its
// passphrase. The phrase is checked against the word tables, the passphrase
// can't be: a wrong one yields different, equally valid credentials.
func FromMnemonic(net keychain.Network, words, passphrase string,
	account uint32, strategy keychain.DerivationStrategy,
	opts ...Option) (*Credentials, error) {

	o := newOptions(opts)

	if _, err := mnemonic.Validate(words); err != nil {
		return nil, err
	}

	master, err := keychain.NewMasterFromSeed(
		mnemonic.ToSeed(words, passphrase), net,
	)
	if err != nil {
		return nil, err
	}

	c := &Credentials{
		network:               net,
		strategy:              strategy,
		account:               account,
		compliantDerivation:   !o.nonCompliant,
		mnemonicHasPassphrase: passphrase != "",
		cipher:                o.cipher,
	}
	if err := c.init(master, fn.Some(words), o); err != nil {
		return nil, err
	}

	log.Debugf("Restored credentials %v on %v from phrase, "+
		"strategy=%v, compliant=%v", c.CopayerID(), net, strategy,
		c.compliantDerivation)

	return c, nil
}

// parseMaster parses a serialized extended private key and returns it along
// with its network.
func parseMaster(xPrivKey string) (*hdkeychain.ExtendedKey, keychain.Network,
	error) {

	master, err := hdkeychain.NewKeyFromString(xPrivKey)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}

	if !master.IsPrivate() {
		return nil, "", fmt.Errorf("%w: extended key is public",
			ErrInvalidSeed)
	}

	net, err := keychain.NetworkFromExtendedKey(master)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}

	return master, net, nil
}

// init validates the strategy, stores the cleartext secrets and derives the
// identity.
func (c *Credentials) init(master *hdkeychain.ExtendedKey,
	phrase fn.Option[string], o *options) error {

	if _, err := keychain.ParseDerivationStrategy(
		c.strategy.String(),
	); err != nil {
		return err
	}

	if err := c.expand(master); err != nil {
		return err
	}

	c.secrets = fn.NewLeft[cleartextSecrets, ciphertextSecrets](
		cleartextSecrets{
			xPrivKey: []byte(master.String()),
			mnemonic: bytesOption(phrase),
		},
	)
	c.addressType = AddressTypeP2SH

	var err error
	o.walletPrivKey.WhenSome(func(key string) {
		err = c.AddWalletPrivateKey(key)
	})

	return err
}

// expand derives the identity of master at the credentials' base path.
func (c *Credentials) expand(master *hdkeychain.ExtendedKey) error {
	path, err := c.BaseAddressDerivationPath()
	if err != nil {
		return err
	}

	id, err := deriveIdentity(master, path, c.compliantDerivation)
	if err != nil {
		return err
	}
	c.identity = id

	return nil
}

// secretCipher returns the configured cipher or the default vault cipher.
func (c *Credentials) secretCipher() (SecretCipher, error) {
	if c.cipher != nil {
		return c.cipher, nil
	}

	cipher, err := vault.New(vault.DefaultConfig())
	if err != nil {
		return nil, err
	}

	return cipher, nil
}
