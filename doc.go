// Package walletclient holds the credential core of a multisig wallet
// client: the identity of one copayer, derived from a master key or a
// recovery phrase, and the password protection of its secrets.
//
// The work is split across packages. keychain derives keys along the
// supported derivation strategies, mnemonic encodes and stretches recovery
// phrases, vault encrypts secrets under a password and credentials ties them
// together. This package loads the configuration of the others and wires up
// their loggers.
package walletclient
