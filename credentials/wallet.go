package credentials

import (
	"encoding/hex"
	"fmt"

	"github.com/DigiByte-Core/digibytejs-wallet-client/keychain"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// walletInfoOptions are the optional arguments of AddWalletInfo.
type walletInfoOptions struct {
	account       fn.Option[uint32]
	walletPrivKey fn.Option[string]
}

// WalletInfoOption tweaks AddWalletInfo.
type WalletInfoOption func(*walletInfoOptions)

// WithAccount overrides the account of the credentials. Without it the
// account they were created with is kept.
func WithAccount(account uint32) WalletInfoOption {
	return func(o *walletInfoOptions) {
		o.account = fn.Some(account)
	}
}

// AsWalletCreator attaches the private key of the wallet, which only the
// copayer that created the wallet knows.
func AsWalletCreator(walletPrivKey string) WalletInfoOption {
	return func(o *walletInfoOptions) {
		o.walletPrivKey = fn.Some(walletPrivKey)
	}
}

// NewWalletPrivKey generates a fresh hex encoded wallet private key.
func NewWalletPrivKey() (string, error) {
	key, err := btcec.NewPrivateKey()
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(key.Serialize()), nil
}

// AddWalletInfo records the wallet the credentials joined. Credentials that
// already joined a wallet with a different id are rejected with
// ErrWalletMismatch. Overriding the account re-derives the identity, which
// requires cleartext secrets.
func (c *Credentials) AddWalletInfo(walletID, walletName string, m, n int,
	copayerName string, opts ...WalletInfoOption) error {

	o := &walletInfoOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if c.walletID != "" && c.walletID != walletID {
		return fmt.Errorf("%w: joined %v, got %v", ErrWalletMismatch,
			c.walletID, walletID)
	}

	if walletID == "" || m < 1 || n < 1 || m > n {
		return fmt.Errorf("%w: id=%q m=%d n=%d", ErrInvalidWalletInfo,
			walletID, m, n)
	}

	sharedKey := fn.None[string]()
	if o.walletPrivKey.IsSome() {
		key, err := sharedEncryptingKey(o.walletPrivKey.UnsafeFromSome())
		if err != nil {
			return err
		}
		sharedKey = fn.Some(key)
	}

	account := o.account.UnwrapOr(c.account)
	if account != c.account {
		if err := c.reexpand(account); err != nil {
			return err
		}
	}

	c.walletID = walletID
	c.walletName = walletName
	c.m = m
	c.n = n
	if copayerName != "" {
		c.copayerName = copayerName
	}

	c.addressType = AddressTypeP2SH
	if c.strategy == keychain.BIP44 && n == 1 {
		c.addressType = AddressTypeP2PKH
	}

	sharedKey.WhenSome(func(key string) {
		c.walletPrivKey = o.walletPrivKey.UnsafeFromSome()
		c.sharedEncryptingKey = key
	})

	log.Debugf("Credentials %v joined %d-of-%d wallet %v, account=%d, "+
		"address type %v", c.CopayerID(), m, n, walletID, c.account,
		c.addressType)

	return nil
}

// AddWalletPrivateKey attaches the hex encoded wallet private key and
// derives the shared encrypting key from it.
func (c *Credentials) AddWalletPrivateKey(walletPrivKey string) error {
	key, err := sharedEncryptingKey(walletPrivKey)
	if err != nil {
		return err
	}

	c.walletPrivKey = walletPrivKey
	c.sharedEncryptingKey = key

	return nil
}

// reexpand switches the credentials to another account, deriving the
// identity anew.
func (c *Credentials) reexpand(account uint32) error {
	secrets, ok := c.cleartext()
	if !ok {
		return fmt.Errorf("%w: changing the account re-derives keys",
			ErrPasswordRequired)
	}

	master, _, err := parseMaster(string(secrets.xPrivKey))
	if err != nil {
		return err
	}

	prev := c.account
	c.account = account
	if err := c.expand(master); err != nil {
		c.account = prev
		return err
	}

	return nil
}
