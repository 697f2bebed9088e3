package credcfg

import (
	"fmt"

	"github.com/DigiByte-Core/digibytejs-wallet-client/vault"
	"github.com/btcsuite/btcwallet/waddrmgr"
)

// Scrypt holds the cost parameters of the scrypt suite.
type Scrypt struct {
	N int `long:"n" description:"CPU/memory cost of scrypt, a power of two."`
	R int `long:"r" description:"Block size of scrypt."`
	P int `long:"p" description:"Parallelization of scrypt."`
}

// Argon2 holds the cost parameters of the argon2id suite.
type Argon2 struct {
	Time     uint32 `long:"time" description:"Number of argon2id passes."`
	MemoryKB uint32 `long:"memory" description:"Memory used by argon2id in KiB."`
	Threads  uint8  `long:"threads" description:"Number of argon2id lanes."`
}

// Vault configures how private keys and recovery phrases are encrypted.
// Blobs record their own suite and parameters, so changing these only
// affects newly encrypted secrets.
//
//nolint:ll
type Vault struct {
	Suite string `long:"suite" description:"Cipher suite used to encrypt new secrets." choice:"scrypt-secretbox" choice:"argon2id-xchacha20"`

	Scrypt *Scrypt `group:"scrypt" namespace:"scrypt"`

	Argon2 *Argon2 `group:"argon2" namespace:"argon2"`
}

// DefaultVault returns the production vault configuration.
func DefaultVault() *Vault {
	return fromCipherConfig(vault.DefaultConfig())
}

// FastVault returns a vault configuration with very low KDF costs. It must
// only be used in tests.
func FastVault() *Vault {
	return fromCipherConfig(vault.FastConfig())
}

func fromCipherConfig(cfg vault.Config) *Vault {
	return &Vault{
		Suite: cfg.Suite.String(),
		Scrypt: &Scrypt{
			N: cfg.Scrypt.N,
			R: cfg.Scrypt.R,
			P: cfg.Scrypt.P,
		},
		Argon2: &Argon2{
			Time:     cfg.Argon2.Time,
			MemoryKB: cfg.Argon2.MemoryKB,
			Threads:  cfg.Argon2.Threads,
		},
	}
}

// CipherConfig converts the options into a vault configuration.
func (v *Vault) CipherConfig() (vault.Config, error) {
	suite, err := vault.ParseSuite(v.Suite)
	if err != nil {
		return vault.Config{}, err
	}

	if v.Scrypt == nil || v.Argon2 == nil {
		return vault.Config{}, fmt.Errorf("vault: missing %v parameters",
			suite)
	}

	return vault.Config{
		Suite: suite,
		Scrypt: waddrmgr.ScryptOptions{
			N: v.Scrypt.N,
			R: v.Scrypt.R,
			P: v.Scrypt.P,
		},
		Argon2: vault.Argon2Params{
			Time:     v.Argon2.Time,
			MemoryKB: v.Argon2.MemoryKB,
			Threads:  v.Argon2.Threads,
		},
	}, nil
}

// Validate checks the suite name and the parameters of the selected suite.
//
// NOTE: Part of the Validator interface.
func (v *Vault) Validate() error {
	cfg, err := v.CipherConfig()
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("vault: %w", err)
	}

	return nil
}

// Compile-time constraint to ensure Vault implements the Validator
// interface.
var _ Validator = (*Vault)(nil)
