package credcfg

import (
	"fmt"

	"github.com/DigiByte-Core/digibytejs-wallet-client/keychain"
	"github.com/DigiByte-Core/digibytejs-wallet-client/mnemonic"
)

const (
	// DefaultNetwork is the network new credentials are created on.
	DefaultNetwork = "livenet"

	// DefaultStrategy is the derivation strategy of new credentials.
	DefaultStrategy = "BIP44"

	// DefaultLanguage is the language of new recovery phrases.
	DefaultLanguage = "en"
)

// Wallet holds the defaults used when creating or importing credentials.
//
//nolint:ll
type Wallet struct {
	Network string `long:"network" description:"Network the credentials are bound to." choice:"livenet" choice:"testnet"`

	Strategy string `long:"strategy" description:"Derivation strategy of the base address key." choice:"BIP44" choice:"BIP45" choice:"BIP48"`

	Language string `long:"language" description:"Language of new recovery phrases." choice:"en" choice:"es" choice:"fr" choice:"it" choice:"ja" choice:"ko" choice:"zh" choice:"zh-tw" choice:"cs"`

	Account uint32 `long:"account" description:"Account index of the base derivation path."`

	NonCompliant bool `long:"noncompliant" description:"Derive imported keys with the legacy, non BIP32 compliant algorithm."`
}

// DefaultWallet returns the default wallet configuration.
func DefaultWallet() *Wallet {
	return &Wallet{
		Network:  DefaultNetwork,
		Strategy: DefaultStrategy,
		Language: DefaultLanguage,
	}
}

// NetworkType returns the configured network.
func (w *Wallet) NetworkType() (keychain.Network, error) {
	return keychain.ParseNetwork(w.Network)
}

// DerivationStrategy returns the configured derivation strategy.
func (w *Wallet) DerivationStrategy() (keychain.DerivationStrategy, error) {
	return keychain.ParseDerivationStrategy(w.Strategy)
}

// PhraseLanguage returns the configured recovery phrase language.
func (w *Wallet) PhraseLanguage() (mnemonic.Language, error) {
	return mnemonic.ParseLanguage(w.Language)
}

// Validate checks that network, strategy and language are supported.
//
// NOTE: Part of the Validator interface.
func (w *Wallet) Validate() error {
	if _, err := w.NetworkType(); err != nil {
		return fmt.Errorf("wallet: %w", err)
	}

	if _, err := w.DerivationStrategy(); err != nil {
		return fmt.Errorf("wallet: %w", err)
	}

	if _, err := w.PhraseLanguage(); err != nil {
		return fmt.Errorf("wallet: %w", err)
	}

	return nil
}

// Compile-time constraint to ensure Wallet implements the Validator
// interface.
var _ Validator = (*Wallet)(nil)
