package vault

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcwallet/snacl"
	"github.com/btcsuite/btcwallet/waddrmgr"
)

// sealScrypt encrypts plaintext under a fresh snacl secret key derived from
// password with scrypt.
func sealScrypt(plaintext, password []byte,
	opts waddrmgr.ScryptOptions) (*envelope, error) {

	key, err := snacl.NewSecretKey(&password, opts.N, opts.R, opts.P)
	if err != nil {
		return nil, err
	}
	defer key.Zero()

	ciphertext, err := key.Encrypt(plaintext)
	if err != nil {
		return nil, err
	}

	return &envelope{
		suite:        SuiteScryptSecretbox,
		scryptParams: key.Marshal(),
		ciphertext:   ciphertext,
	}, nil
}

// openScrypt re-derives the snacl secret key described by the envelope and
// decrypts its ciphertext.
func openScrypt(e *envelope, password []byte) ([]byte, error) {
	key := snacl.SecretKey{Key: &snacl.CryptoKey{}}
	if err := key.Unmarshal(e.scryptParams); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}

	params := key.Parameters
	if err := validateScrypt(params.N, params.R, params.P); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}

	err := key.DeriveKey(&password)
	switch {
	case errors.Is(err, snacl.ErrInvalidPassword):
		return nil, ErrAuthFailed

	case err != nil:
		return nil, err
	}
	defer key.Zero()

	plaintext, err := key.Decrypt(e.ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}

	return plaintext, nil
}

// validateScrypt checks scrypt cost parameters, capping the memory they
// require.
func validateScrypt(n, r, p int) error {
	switch {
	case n < 2 || n&(n-1) != 0:
		return fmt.Errorf("scrypt N must be a power of two greater "+
			"than one, got %d", n)

	case n > maxScryptN:
		return fmt.Errorf("scrypt N must be at most %d, got %d",
			maxScryptN, n)

	case r <= 0 || p <= 0:
		return fmt.Errorf("scrypt R and P must be positive")

	case p > maxScryptP:
		return fmt.Errorf("scrypt P must be at most %d, got %d",
			maxScryptP, p)

	case r > maxKDFMemory/(128*n):
		return fmt.Errorf("scrypt N=%d R=%d needs more than %d bytes",
			n, r, maxKDFMemory)
	}

	return nil
}
