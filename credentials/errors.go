package credentials

import (
	"errors"

	"github.com/DigiByte-Core/digibytejs-wallet-client/keychain"
)

var (
	// ErrInvalidSeed is returned when an imported extended private key is
	// malformed, public or bound to an unknown network.
	ErrInvalidSeed = errors.New("invalid seed")

	// ErrUnsupportedDerivationStrategy is returned for an unknown
	// derivation strategy token.
	ErrUnsupportedDerivationStrategy = keychain.ErrUnsupportedDerivationStrategy

	// ErrAlreadyEncrypted is returned when encrypting secrets that are
	// already encrypted.
	ErrAlreadyEncrypted = errors.New("private key already encrypted")

	// ErrNotEncrypted is returned when decrypting secrets that are held in
	// cleartext.
	ErrNotEncrypted = errors.New("private key is not encrypted")

	// ErrInvalidPassword is returned when the encrypted secrets can't be
	// opened with the given password. The credentials are left untouched.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrPasswordRequired is returned when encrypted secrets are read
	// without a password.
	ErrPasswordRequired = errors.New("password required to access " +
		"encrypted private key")

	// ErrWalletMismatch is returned when attaching wallet information for
	// a wallet other than the one already attached.
	ErrWalletMismatch = errors.New("credentials belong to another wallet")

	// ErrInvalidWalletInfo is returned for inconsistent wallet
	// parameters, such as m greater than n.
	ErrInvalidWalletInfo = errors.New("invalid wallet info")

	// ErrInvalidWalletKey is returned for a wallet private key that isn't
	// a hex encoded secp256k1 scalar.
	ErrInvalidWalletKey = errors.New("invalid wallet private key")

	// ErrInvalidSerialization is returned when a serialized credential
	// set is inconsistent.
	ErrInvalidSerialization = errors.New("invalid serialized credentials")
)
