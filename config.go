package walletclient

import (
	"fmt"
	"io"

	"github.com/DigiByte-Core/digibytejs-wallet-client/credcfg"
	"github.com/DigiByte-Core/digibytejs-wallet-client/credentials"
	"github.com/DigiByte-Core/digibytejs-wallet-client/keychain"
	"github.com/DigiByte-Core/digibytejs-wallet-client/vault"
	flags "github.com/jessevdk/go-flags"
)

const (
	// defaultLogLevel is the level of every subsystem unless overridden.
	defaultLogLevel = "info"
)

// Config is the configuration of the wallet client.
//
//nolint:ll
type Config struct {
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <global-level>,<subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`

	Wallet *credcfg.Wallet `group:"wallet" namespace:"wallet"`

	Vault *credcfg.Vault `group:"vault" namespace:"vault"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DebugLevel: defaultLogLevel,
		Wallet:     credcfg.DefaultWallet(),
		Vault:      credcfg.DefaultVault(),
	}
}

// LoadConfig parses args over the default configuration and validates the
// result. Options are given in their long form with the group namespace,
// for example --wallet.network=testnet or --vault.scrypt.n=16384.
func LoadConfig(args []string) (*Config, error) {
	cfg := DefaultConfig()

	parser := flags.NewParser(&cfg, flags.HelpFlag|flags.PassDoubleDash)
	rest, err := parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", rest)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the debug level and every sub configuration.
func (c *Config) Validate() error {
	if c.Wallet == nil || c.Vault == nil {
		return fmt.Errorf("missing wallet or vault configuration")
	}

	if _, _, err := newLogManager(io.Discard, c.DebugLevel); err != nil {
		return err
	}

	return credcfg.Validate(c.Wallet, c.Vault)
}

// Cipher builds the cipher that encrypts new secrets.
func (c *Config) Cipher() (*vault.Cipher, error) {
	cipherCfg, err := c.Vault.CipherConfig()
	if err != nil {
		return nil, err
	}

	return vault.New(cipherCfg)
}

// Network returns the configured network.
func (c *Config) Network() (keychain.Network, error) {
	return c.Wallet.NetworkType()
}

// CredentialOptions returns the options that make the credentials
// constructors follow the configuration: the configured cipher, the
// derivation strategy of new credentials and, if enabled, the legacy
// derivation of imported keys.
func (c *Config) CredentialOptions() ([]credentials.Option, error) {
	cipher, err := c.Cipher()
	if err != nil {
		return nil, err
	}

	strategy, err := c.Wallet.DerivationStrategy()
	if err != nil {
		return nil, err
	}

	opts := []credentials.Option{
		credentials.WithCipher(cipher),
		credentials.WithDerivationStrategy(strategy),
	}
	if c.Wallet.NonCompliant {
		opts = append(opts, credentials.NonCompliantDerivation())
	}

	return opts, nil
}
