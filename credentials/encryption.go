package credentials

import (
	"errors"
	"fmt"

	"github.com/DigiByte-Core/digibytejs-wallet-client/keychain"
	"github.com/DigiByte-Core/digibytejs-wallet-client/vault"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// cleartext returns the cleartext secrets, if the credentials aren't
// encrypted.
func (c *Credentials) cleartext() (cleartextSecrets, bool) {
	var (
		secrets cleartextSecrets
		ok      bool
	)
	c.secrets.WhenLeft(func(s cleartextSecrets) {
		secrets, ok = s, true
	})

	return secrets, ok
}

// ciphertext returns the encrypted secrets, if the credentials are
// encrypted.
func (c *Credentials) ciphertext() (ciphertextSecrets, bool) {
	var (
		secrets ciphertextSecrets
		ok      bool
	)
	c.secrets.WhenRight(func(s ciphertextSecrets) {
		secrets, ok = s, true
	})

	return secrets, ok
}

// IsPrivKeyEncrypted reports whether the secrets are encrypted.
func (c *Credentials) IsPrivKeyEncrypted() bool {
	return c.secrets.IsRight()
}

// EncryptPrivateKey encrypts the master key and the recovery phrase under
// password and wipes their cleartext.
func (c *Credentials) EncryptPrivateKey(password []byte) error {
	secrets, ok := c.cleartext()
	if !ok {
		return ErrAlreadyEncrypted
	}

	cipher, err := c.secretCipher()
	if err != nil {
		return err
	}

	xPrivKey, err := cipher.Encrypt(secrets.xPrivKey, password)
	if err != nil {
		return fmt.Errorf("unable to encrypt private key: %w", err)
	}

	encrypted := ciphertextSecrets{
		xPrivKey: xPrivKey,
		mnemonic: fn.None[string](),
	}
	if secrets.mnemonic.IsSome() {
		phrase, err := cipher.Encrypt(
			secrets.mnemonic.UnsafeFromSome(), password,
		)
		if err != nil {
			return fmt.Errorf("unable to encrypt mnemonic: %w", err)
		}
		encrypted.mnemonic = fn.Some(phrase)
	}

	c.secrets = fn.NewRight[cleartextSecrets](encrypted)
	secrets.zero()

	log.Debugf("Encrypted private key of %v", c.CopayerID())

	return nil
}

// DecryptPrivateKey decrypts the secrets with password and keeps them in
// cleartext. With a wrong password ErrInvalidPassword is returned and the
// credentials stay encrypted.
func (c *Credentials) DecryptPrivateKey(password []byte) error {
	encrypted, ok := c.ciphertext()
	if !ok {
		return ErrNotEncrypted
	}

	secrets, err := c.open(encrypted, password)
	if err != nil {
		return err
	}

	c.secrets = fn.NewLeft[cleartextSecrets, ciphertextSecrets](secrets)

	log.Debugf("Decrypted private key of %v", c.CopayerID())

	return nil
}

// GetKeys returns the master key and recovery phrase. Encrypted secrets are
// decrypted with password into the returned snapshot only; the credentials
// stay encrypted.
func (c *Credentials) GetKeys(password []byte) (*Keys, error) {
	secrets, err := c.view(password)
	if err != nil {
		return nil, err
	}

	keys := &Keys{
		XPrivKey: string(secrets.xPrivKey),
		Mnemonic: stringOption(secrets.mnemonic),
	}

	if c.IsPrivKeyEncrypted() {
		secrets.zero()
	}

	return keys, nil
}

// DerivedXPrivKey returns the extended private key at the base derivation
// path, decrypting the master key with password if needed.
func (c *Credentials) DerivedXPrivKey(
	password []byte) (*hdkeychain.ExtendedKey, error) {

	secrets, err := c.view(password)
	if err != nil {
		return nil, err
	}
	if c.IsPrivKeyEncrypted() {
		defer secrets.zero()
	}

	master, _, err := parseMaster(string(secrets.xPrivKey))
	if err != nil {
		return nil, err
	}

	path, err := c.BaseAddressDerivationPath()
	if err != nil {
		return nil, err
	}

	return keychain.DerivePath(master, path, c.compliantDerivation)
}

// Mnemonic returns the recovery phrase if it is held in cleartext.
func (c *Credentials) Mnemonic() fn.Option[string] {
	secrets, ok := c.cleartext()
	if !ok {
		return fn.None[string]()
	}

	return stringOption(secrets.mnemonic)
}

// HasMnemonic reports whether a recovery phrase is held, encrypted or not.
func (c *Credentials) HasMnemonic() bool {
	if secrets, ok := c.cleartext(); ok {
		return secrets.mnemonic.IsSome()
	}

	encrypted, _ := c.ciphertext()

	return encrypted.mnemonic.IsSome()
}

// ClearMnemonic forgets the recovery phrase, in cleartext or encrypted. The
// master key is not affected. This can't be undone.
func (c *Credentials) ClearMnemonic() {
	c.secrets.WhenLeft(func(s cleartextSecrets) {
		s.mnemonic.WhenSome(zero)
		s.mnemonic = fn.None[[]byte]()
		c.secrets = fn.NewLeft[cleartextSecrets, ciphertextSecrets](s)
	})

	c.secrets.WhenRight(func(s ciphertextSecrets) {
		s.mnemonic = fn.None[string]()
		c.secrets = fn.NewRight[cleartextSecrets](s)
	})

	c.mnemonicHasPassphrase = false

	log.Debugf("Cleared mnemonic of %v", c.CopayerID())
}

// view returns the cleartext secrets, decrypting them into temporaries when
// the credentials are encrypted.
func (c *Credentials) view(password []byte) (cleartextSecrets, error) {
	if secrets, ok := c.cleartext(); ok {
		return secrets, nil
	}

	encrypted, _ := c.ciphertext()
	if password == nil {
		return cleartextSecrets{}, ErrPasswordRequired
	}

	return c.open(encrypted, password)
}

// open decrypts the encrypted secrets. Nothing is written to the
// credentials.
func (c *Credentials) open(encrypted ciphertextSecrets,
	password []byte) (cleartextSecrets, error) {

	cipher, err := c.secretCipher()
	if err != nil {
		return cleartextSecrets{}, err
	}

	xPrivKey, err := cipher.Decrypt(encrypted.xPrivKey, password)
	if err != nil {
		return cleartextSecrets{}, mapDecryptErr(err)
	}

	secrets := cleartextSecrets{
		xPrivKey: xPrivKey,
		mnemonic: fn.None[[]byte](),
	}
	if encrypted.mnemonic.IsSome() {
		phrase, err := cipher.Decrypt(
			encrypted.mnemonic.UnsafeFromSome(), password,
		)
		if err != nil {
			secrets.zero()
			return cleartextSecrets{}, mapDecryptErr(err)
		}
		secrets.mnemonic = fn.Some(phrase)
	}

	return secrets, nil
}

// mapDecryptErr turns cipher authentication failures into
// ErrInvalidPassword.
func mapDecryptErr(err error) error {
	if errors.Is(err, vault.ErrAuthFailed) {
		return fmt.Errorf("%w: %v", ErrInvalidPassword, err)
	}

	return fmt.Errorf("unable to decrypt private key: %w", err)
}

// stringOption copies an optional secret into an optional string.
func stringOption(o fn.Option[[]byte]) fn.Option[string] {
	s := fn.None[string]()
	o.WhenSome(func(b []byte) {
		s = fn.Some(string(b))
	})

	return s
}

// bytesOption copies an optional string into an optional secret.
func bytesOption(o fn.Option[string]) fn.Option[[]byte] {
	b := fn.None[[]byte]()
	o.WhenSome(func(s string) {
		b = fn.Some([]byte(s))
	})

	return b
}
