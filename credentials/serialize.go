package credentials

import (
	"encoding/json"
	"fmt"

	"github.com/DigiByte-Core/digibytejs-wallet-client/keychain"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// serializationVersion is written into every serialized credential set.
const serializationVersion = "1.0.0"

// Obj is the flat serialized form of a credential set. Field names follow
// the format shared with other wallet clients.
type Obj struct {
	Version string `json:"version,omitempty"`
	Network string `json:"network"`

	XPrivKey          string `json:"xPrivKey,omitempty"`
	XPrivKeyEncrypted string `json:"xPrivKeyEncrypted,omitempty"`
	Mnemonic          string `json:"mnemonic,omitempty"`
	MnemonicEncrypted string `json:"mnemonicEncrypted,omitempty"`

	MnemonicHasPassphrase bool `json:"mnemonicHasPassphrase,omitempty"`

	XPubKey               string `json:"xPubKey,omitempty"`
	CopayerID             string `json:"copayerId,omitempty"`
	RequestPrivKey        string `json:"requestPrivKey,omitempty"`
	RequestPubKey         string `json:"requestPubKey,omitempty"`
	EntropySource         string `json:"entropySource,omitempty"`
	PersonalEncryptingKey string `json:"personalEncryptingKey,omitempty"`

	DerivationStrategy  string `json:"derivationStrategy,omitempty"`
	Account             uint32 `json:"account"`
	CompliantDerivation bool   `json:"compliantDerivation"`

	WalletID            string `json:"walletId,omitempty"`
	WalletName          string `json:"walletName,omitempty"`
	M                   int    `json:"m,omitempty"`
	N                   int    `json:"n,omitempty"`
	CopayerName         string `json:"copayerName,omitempty"`
	AddressType         string `json:"addressType,omitempty"`
	WalletPrivKey       string `json:"walletPrivKey,omitempty"`
	SharedEncryptingKey string `json:"sharedEncryptingKey,omitempty"`
}

// ToObj returns the flat form of the credentials. Encrypted secrets are
// written encrypted.
func (c *Credentials) ToObj() Obj {
	obj := Obj{
		Version:               serializationVersion,
		Network:               c.network.String(),
		MnemonicHasPassphrase: c.mnemonicHasPassphrase,
		XPubKey:               c.identity.xPubKey,
		CopayerID:             c.identity.copayerID,
		RequestPrivKey:        c.identity.requestPrivKey,
		RequestPubKey:         c.identity.requestPubKey,
		EntropySource:         c.identity.entropySource,
		PersonalEncryptingKey: c.identity.personalEncryptingKey,
		DerivationStrategy:    c.strategy.String(),
		Account:               c.account,
		CompliantDerivation:   c.compliantDerivation,
		WalletID:              c.walletID,
		WalletName:            c.walletName,
		M:                     c.m,
		N:                     c.n,
		CopayerName:           c.copayerName,
		AddressType:           string(c.addressType),
		WalletPrivKey:         c.walletPrivKey,
		SharedEncryptingKey:   c.sharedEncryptingKey,
	}

	c.secrets.WhenLeft(func(s cleartextSecrets) {
		obj.XPrivKey = string(s.xPrivKey)
		obj.Mnemonic = stringOption(s.mnemonic).UnwrapOr("")
	})
	c.secrets.WhenRight(func(s ciphertextSecrets) {
		obj.XPrivKeyEncrypted = s.xPrivKey
		obj.MnemonicEncrypted = s.mnemonic.UnwrapOr("")
	})

	return obj
}

// FromObj rebuilds credentials from their flat form. Payloads written before
// a field existed get the legacy default for it: non-compliant derivation,
// the BIP45 strategy, P2SH addresses and account zero. The identity of a
// cleartext payload is always derived anew from its master key and must
// agree with whatever identity fields the payload carries.
func FromObj(obj Obj, opts ...Option) (*Credentials, error) {
	o := newOptions(opts)

	net, err := keychain.ParseNetwork(obj.Network)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSerialization, err)
	}

	strategy := keychain.BIP45
	if obj.DerivationStrategy != "" {
		strategy, err = keychain.ParseDerivationStrategy(
			obj.DerivationStrategy,
		)
		if err != nil {
			return nil, err
		}
	}

	addressType := AddressTypeP2SH
	switch AddressType(obj.AddressType) {
	case "", AddressTypeP2SH:
	case AddressTypeP2PKH:
		addressType = AddressTypeP2PKH
	default:
		return nil, fmt.Errorf("%w: unknown address type %q",
			ErrInvalidSerialization, obj.AddressType)
	}

	hasClear := obj.XPrivKey != ""
	hasEncrypted := obj.XPrivKeyEncrypted != ""
	if hasClear == hasEncrypted {
		return nil, fmt.Errorf("%w: exactly one of xPrivKey and "+
			"xPrivKeyEncrypted must be set", ErrInvalidSerialization)
	}
	if hasClear && obj.MnemonicEncrypted != "" ||
		hasEncrypted && obj.Mnemonic != "" {

		return nil, fmt.Errorf("%w: mnemonic and private key "+
			"encryption differ", ErrInvalidSerialization)
	}

	c := &Credentials{
		network:               net,
		strategy:              strategy,
		account:               obj.Account,
		compliantDerivation:   obj.CompliantDerivation,
		mnemonicHasPassphrase: obj.MnemonicHasPassphrase,
		identity: identity{
			xPubKey:               obj.XPubKey,
			copayerID:             obj.CopayerID,
			requestPrivKey:        obj.RequestPrivKey,
			requestPubKey:         obj.RequestPubKey,
			entropySource:         obj.EntropySource,
			personalEncryptingKey: obj.PersonalEncryptingKey,
		},
		walletID:            obj.WalletID,
		walletName:          obj.WalletName,
		m:                   obj.M,
		n:                   obj.N,
		copayerName:         obj.CopayerName,
		addressType:         addressType,
		walletPrivKey:       obj.WalletPrivKey,
		sharedEncryptingKey: obj.SharedEncryptingKey,
		cipher:              o.cipher,
	}

	if hasEncrypted {
		if obj.XPubKey == "" {
			return nil, fmt.Errorf("%w: encrypted credentials "+
				"without xPubKey", ErrInvalidSerialization)
		}

		// Only the copayer id can be checked without the password.
		copayer := copayerID(obj.XPubKey)
		if obj.CopayerID != "" && obj.CopayerID != copayer {
			return nil, fmt.Errorf("%w: copayerId doesn't match "+
				"xPubKey", ErrInvalidSerialization)
		}
		c.identity.copayerID = copayer

		c.secrets = fn.NewRight[cleartextSecrets](ciphertextSecrets{
			xPrivKey: obj.XPrivKeyEncrypted,
			mnemonic: optionalString(obj.MnemonicEncrypted),
		})

		return c, nil
	}

	master, keyNet, err := parseMaster(obj.XPrivKey)
	if err != nil {
		return nil, err
	}
	if keyNet != net {
		return nil, fmt.Errorf("%w: %v key for %v credentials",
			ErrInvalidSerialization, keyNet, net)
	}

	serialized := c.identity
	if err := c.expand(master); err != nil {
		return nil, err
	}
	if err := checkIdentity(serialized, c.identity); err != nil {
		return nil, err
	}

	c.secrets = fn.NewLeft[cleartextSecrets, ciphertextSecrets](
		cleartextSecrets{
			xPrivKey: []byte(obj.XPrivKey),
			mnemonic: bytesOption(optionalString(obj.Mnemonic)),
		},
	)

	return c, nil
}

// MarshalJSON encodes the flat form of the credentials.
func (c *Credentials) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToObj())
}

// FromJSON decodes credentials encoded with MarshalJSON.
func FromJSON(b []byte, opts ...Option) (*Credentials, error) {
	var obj Obj
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSerialization, err)
	}

	return FromObj(obj, opts...)
}

// checkIdentity returns an error if a serialized identity field disagrees
// with the one derived from the master key. Missing fields are fine.
func checkIdentity(serialized, derived identity) error {
	fields := []struct {
		name              string
		serialized, value string
	}{
		{"xPubKey", serialized.xPubKey, derived.xPubKey},
		{"copayerId", serialized.copayerID, derived.copayerID},
		{"requestPrivKey", serialized.requestPrivKey,
			derived.requestPrivKey},
		{"requestPubKey", serialized.requestPubKey,
			derived.requestPubKey},
		{"entropySource", serialized.entropySource,
			derived.entropySource},
		{"personalEncryptingKey", serialized.personalEncryptingKey,
			derived.personalEncryptingKey},
	}
	for _, f := range fields {
		if f.serialized != "" && f.serialized != f.value {
			return fmt.Errorf("%w: %v doesn't match xPrivKey",
				ErrInvalidSerialization, f.name)
		}
	}

	return nil
}

func optionalString(s string) fn.Option[string] {
	if s == "" {
		return fn.None[string]()
	}

	return fn.Some(s)
}
