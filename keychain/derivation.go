package keychain

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcwallet/waddrmgr"
)

const (
	// RequestKeyPath is the path, relative to the master key, of the key
	// used to sign requests sent to the wallet coordination service.
	RequestKeyPath = "m/1'/0"

	// TxProposalKeyPath is the path, relative to the master key, reserved
	// for signing transaction proposals.
	TxProposalKeyPath = "m/1'/1"
)

var (
	// ErrUnsupportedDerivationStrategy is returned for a strategy token
	// that is not one of BIP44, BIP45 or BIP48.
	ErrUnsupportedDerivationStrategy = errors.New("unsupported " +
		"derivation strategy")
)

// DerivationStrategy names the path layout used to derive the base address
// key of a copayer.
type DerivationStrategy string

const (
	// BIP44 is the single signature account layout:
	//
	//   - m/44'/coinType'/account'
	BIP44 DerivationStrategy = "BIP44"

	// BIP45 is the legacy multisig layout. It has neither a coin type nor
	// an account level:
	//
	//   - m/45'
	BIP45 DerivationStrategy = "BIP45"

	// BIP48 is the multisig account layout:
	//
	//   - m/48'/coinType'/account'
	BIP48 DerivationStrategy = "BIP48"
)

// strategyLayout describes how the base path of a strategy is built.
type strategyLayout struct {
	// purpose is the first hardened index of the path.
	purpose uint32

	// scoped is true if the purpose is followed by the coin type and the
	// account.
	scoped bool
}

// strategyLayouts is the closed set of known derivation strategies.
var strategyLayouts = map[DerivationStrategy]strategyLayout{
	BIP44: {purpose: 44, scoped: true},
	BIP45: {purpose: 45},
	BIP48: {purpose: 48, scoped: true},
}

// ParseDerivationStrategy maps a strategy token onto a DerivationStrategy.
func ParseDerivationStrategy(name string) (DerivationStrategy, error) {
	s := DerivationStrategy(name)
	if _, ok := strategyLayouts[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDerivationStrategy,
			name)
	}

	return s, nil
}

// String returns the strategy token.
func (s DerivationStrategy) String() string {
	return string(s)
}

// BaseAddressDerivationPath returns the path of the base address key for the
// given strategy, network and account. It is a pure function of its
// arguments.
func BaseAddressDerivationPath(s DerivationStrategy, net Network,
	account uint32) (string, error) {

	layout, ok := strategyLayouts[s]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDerivationStrategy,
			s)
	}

	if !layout.scoped {
		return fmt.Sprintf("m/%d'", layout.purpose), nil
	}

	coinType, err := net.CoinType()
	if err != nil {
		return "", err
	}

	scope := waddrmgr.KeyScope{
		Purpose: layout.purpose,
		Coin:    coinType,
	}

	return fmt.Sprintf("%s/%d'", scope.String(), account), nil
}

// DerivePath derives the descendant of key found at path. With compliant set
// every step follows BIP32. Otherwise hardened steps hash the parent private
// key without its leading zero bytes, which reproduces keys created by older
// wallets. In both modes an index that yields an invalid child is skipped in
// favour of the next one.
func DerivePath(key *hdkeychain.ExtendedKey, path string,
	compliant bool) (*hdkeychain.ExtendedKey, error) {

	indexes, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	child := key
	for _, index := range indexes {
		child, err = deriveChild(child, index, compliant)
		if err != nil {
			return nil, fmt.Errorf("unable to derive %v: %w", path,
				err)
		}
	}

	return child, nil
}

// deriveChild derives a single step, moving on to the next index for as long
// as the current one produces an invalid key.
func deriveChild(key *hdkeychain.ExtendedKey, index uint32,
	compliant bool) (*hdkeychain.ExtendedKey, error) {

	for {
		var (
			child *hdkeychain.ExtendedKey
			err   error
		)
		if compliant {
			child, err = key.Derive(index)
		} else {
			child, err = deriveLegacy(key, index)
		}

		if !errors.Is(err, hdkeychain.ErrInvalidChild) {
			return child, err
		}

		if index == math.MaxUint32 {
			return nil, err
		}

		log.Debugf("Child %d is invalid, moving on to %d", index,
			index+1)

		index++
	}
}

// deriveLegacy performs one non-compliant derivation step. Public and
// non-hardened steps only hash the parent public key and match BIP32, so they
// are handed to hdkeychain. Hardened private steps serialize the parent
// scalar in its minimal big-endian form.
func deriveLegacy(key *hdkeychain.ExtendedKey,
	index uint32) (*hdkeychain.ExtendedKey, error) {

	if !key.IsPrivate() || index < hdkeychain.HardenedKeyStart {
		return key.DeriveNonStandard(index)
	}

	if key.Depth() == math.MaxUint8 {
		return nil, hdkeychain.ErrDeriveBeyondMaxDepth
	}

	parent, err := key.ECPrivKey()
	if err != nil {
		return nil, err
	}

	scalar := bytes.TrimLeft(parent.Serialize(), "\x00")

	data := make([]byte, 0, 1+len(scalar)+4)
	data = append(data, 0x00)
	data = append(data, scalar...)
	data = binary.BigEndian.AppendUint32(data, index)

	mac := hmac.New(sha512.New, key.ChainCode())
	_, _ = mac.Write(data)
	ilr := mac.Sum(nil)

	var childScalar btcec.ModNScalar
	if overflow := childScalar.SetByteSlice(ilr[:32]); overflow {
		return nil, hdkeychain.ErrInvalidChild
	}
	childScalar.Add(&parent.Key)
	if childScalar.IsZero() {
		return nil, hdkeychain.ErrInvalidChild
	}

	childKey := childScalar.Bytes()
	parentFP := btcutil.Hash160(parent.PubKey().SerializeCompressed())[:4]

	return hdkeychain.NewExtendedKey(
		key.Version(), childKey[:], ilr[32:], parentFP, key.Depth()+1,
		index, true,
	), nil
}

// masterKeyLabel is the HMAC key a seed is stretched with into the master
// key and chain code.
var masterKeyLabel = []byte("DigiByte seed")

// NewMaster creates a master extended private key for the network from a
// fresh random seed.
func NewMaster(net Network) (*hdkeychain.ExtendedKey, error) {
	for {
		seed, err := hdkeychain.GenerateSeed(
			hdkeychain.RecommendedSeedLen,
		)
		if err != nil {
			return nil, err
		}

		master, err := NewMasterFromSeed(seed, net)
		if errors.Is(err, hdkeychain.ErrUnusableSeed) {
			continue
		}

		return master, err
	}
}

// NewMasterFromSeed creates the master extended private key of seed for the
// network. It follows BIP32 except that the seed is keyed with
// "DigiByte seed".
func NewMasterFromSeed(seed []byte,
	net Network) (*hdkeychain.ExtendedKey, error) {

	params, err := net.Params()
	if err != nil {
		return nil, err
	}

	if len(seed) < hdkeychain.MinSeedBytes ||
		len(seed) > hdkeychain.MaxSeedBytes {

		return nil, hdkeychain.ErrInvalidSeedLen
	}

	mac := hmac.New(sha512.New, masterKeyLabel)
	_, _ = mac.Write(seed)
	lr := mac.Sum(nil)

	secretKey := lr[:len(lr)/2]
	chainCode := lr[len(lr)/2:]

	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(secretKey); overflow ||
		scalar.IsZero() {

		return nil, hdkeychain.ErrUnusableSeed
	}

	return hdkeychain.NewExtendedKey(
		params.HDPrivateKeyID[:], secretKey, chainCode,
		[]byte{0x00, 0x00, 0x00, 0x00}, 0, 0, true,
	), nil
}
