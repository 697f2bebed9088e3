package vault

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcwallet/waddrmgr"
)

var (
	// ErrAuthFailed is returned when a secret can't be decrypted, either
	// because the password is wrong or because the ciphertext was
	// tampered with.
	ErrAuthFailed = errors.New("vault authentication failed")

	// ErrInvalidEnvelope is returned for a blob that isn't a well formed
	// envelope.
	ErrInvalidEnvelope = errors.New("invalid vault envelope")

	// ErrUnknownSuite is returned for a cipher suite this package doesn't
	// implement.
	ErrUnknownSuite = errors.New("unknown cipher suite")
)

const (
	// maxKDFMemory bounds the memory, in bytes, either KDF may be asked
	// to use. Envelopes asking for more are rejected before any key is
	// derived.
	maxKDFMemory = 1 << 30

	// maxScryptN bounds the scrypt CPU/memory cost.
	maxScryptN = 1 << 20

	// maxScryptP bounds the scrypt parallelism.
	maxScryptP = 16

	// maxArgonTime bounds the number of argon2id passes.
	maxArgonTime = 64
)

// Suite identifies the KDF and cipher pair used to protect a secret.
type Suite uint8

const (
	// SuiteScryptSecretbox derives the key with scrypt and encrypts with
	// NaCl secretbox, using btcwallet's snacl.
	SuiteScryptSecretbox Suite = 1

	// SuiteArgon2XChaCha derives the key with argon2id and encrypts with
	// XChaCha20-Poly1305.
	SuiteArgon2XChaCha Suite = 2
)

// String returns the configuration name of the suite.
func (s Suite) String() string {
	switch s {
	case SuiteScryptSecretbox:
		return "scrypt-secretbox"
	case SuiteArgon2XChaCha:
		return "argon2id-xchacha20"
	default:
		return fmt.Sprintf("suite(%d)", uint8(s))
	}
}

// ParseSuite maps a suite configuration name onto a Suite.
func ParseSuite(name string) (Suite, error) {
	for _, s := range []Suite{SuiteScryptSecretbox, SuiteArgon2XChaCha} {
		if s.String() == name {
			return s, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownSuite, name)
}

// Config selects the suite new secrets are encrypted with along with the
// cost parameters of each suite.
type Config struct {
	Suite  Suite
	Scrypt waddrmgr.ScryptOptions
	Argon2 Argon2Params
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		Suite:  SuiteScryptSecretbox,
		Scrypt: waddrmgr.DefaultScryptOptions,
		Argon2: Argon2Params{
			Time:     2,
			MemoryKB: 64 * 1024,
			Threads:  1,
		},
	}
}

// FastConfig returns a configuration with very low KDF costs. It must only
// be used in tests.
func FastConfig() Config {
	return Config{
		Suite:  SuiteScryptSecretbox,
		Scrypt: waddrmgr.FastScryptOptions,
		Argon2: Argon2Params{
			Time:     1,
			MemoryKB: 64,
			Threads:  1,
		},
	}
}

// Validate checks the configuration for sanity.
func (c Config) Validate() error {
	switch c.Suite {
	case SuiteScryptSecretbox:
		return validateScrypt(c.Scrypt.N, c.Scrypt.R, c.Scrypt.P)

	case SuiteArgon2XChaCha:
		return c.Argon2.validate()

	default:
		return fmt.Errorf("%w: %v", ErrUnknownSuite, c.Suite)
	}
}

// Cipher encrypts secrets under a password using the configured suite.
type Cipher struct {
	cfg Config
}

// New creates a Cipher from a validated configuration.
func New(cfg Config) (*Cipher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Cipher{cfg: cfg}, nil
}

// Suite returns the suite new secrets are encrypted with.
func (c *Cipher) Suite() Suite {
	return c.cfg.Suite
}

// Encrypt encrypts plaintext under password with a fresh salt and nonce and
// returns the encoded envelope.
func (c *Cipher) Encrypt(plaintext, password []byte) (string, error) {
	var (
		e   *envelope
		err error
	)
	switch c.cfg.Suite {
	case SuiteScryptSecretbox:
		e, err = sealScrypt(plaintext, password, c.cfg.Scrypt)

	case SuiteArgon2XChaCha:
		e, err = sealArgon(plaintext, password, c.cfg.Argon2)

	default:
		err = fmt.Errorf("%w: %v", ErrUnknownSuite, c.cfg.Suite)
	}
	if err != nil {
		return "", err
	}

	log.Tracef("Encrypted %d byte secret with %v", len(plaintext),
		c.cfg.Suite)

	return e.encode()
}

// Decrypt opens an envelope produced by Cipher.Encrypt. The suite and its
// KDF parameters are read from the envelope itself, so blobs stay readable
// whatever the current configuration. A wrong password yields ErrAuthFailed.
func Decrypt(blob string, password []byte) ([]byte, error) {
	e, err := decodeEnvelope(blob)
	if err != nil {
		return nil, err
	}

	log.Tracef("Decrypting %d byte ciphertext with %v",
		len(e.ciphertext), e.suite)

	switch e.suite {
	case SuiteScryptSecretbox:
		return openScrypt(e, password)

	case SuiteArgon2XChaCha:
		return openArgon(e, password)

	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownSuite, e.suite)
	}
}

// Decrypt opens an envelope. It behaves exactly like the package level
// Decrypt and lets a Cipher stand in wherever both directions are needed.
func (c *Cipher) Decrypt(blob string, password []byte) ([]byte, error) {
	return Decrypt(blob, password)
}
