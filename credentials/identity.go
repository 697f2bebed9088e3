package credentials

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/DigiByte-Core/digibytejs-wallet-client/keychain"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// personalKeyLabel is the HMAC key the personal encrypting key is derived
// with.
var personalKeyLabel = []byte("personalKey")

// encryptingKeySize is the size of the personal and shared encrypting keys.
const encryptingKeySize = 16

// identity holds everything derived from the master key.
type identity struct {
	xPubKey               string
	copayerID             string
	requestPrivKey        string
	requestPubKey         string
	entropySource         string
	personalEncryptingKey string
}

// deriveIdentity derives the identity of master for the given base path.
func deriveIdentity(master *hdkeychain.ExtendedKey, basePath string,
	compliant bool) (identity, error) {

	base, err := keychain.DerivePath(master, basePath, compliant)
	if err != nil {
		return identity{}, err
	}

	xPub, err := base.Neuter()
	if err != nil {
		return identity{}, err
	}

	request, err := keychain.DerivePath(
		master, keychain.RequestKeyPath, compliant,
	)
	if err != nil {
		return identity{}, err
	}

	requestKey, err := request.ECPrivKey()
	if err != nil {
		return identity{}, err
	}

	requestPriv := requestKey.Serialize()
	defer zero(requestPriv)

	entropy := chainhash.HashB(requestPriv)

	id := identity{
		xPubKey:        xPub.String(),
		requestPrivKey: hex.EncodeToString(requestPriv),
		requestPubKey: hex.EncodeToString(
			requestKey.PubKey().SerializeCompressed(),
		),
		entropySource:         hex.EncodeToString(entropy),
		personalEncryptingKey: personalEncryptingKey(entropy),
	}
	id.copayerID = copayerID(id.xPubKey)

	return id, nil
}

// copayerID hashes the serialized extended public key. The version bytes of
// the key tie the id to the network.
func copayerID(xPubKey string) string {
	return hex.EncodeToString(chainhash.HashB([]byte(xPubKey)))
}

// personalEncryptingKey derives the personal encrypting key from the raw
// entropy source.
func personalEncryptingKey(entropy []byte) string {
	mac := hmac.New(sha256.New, personalKeyLabel)
	_, _ = mac.Write(entropy)

	return base64.StdEncoding.EncodeToString(
		mac.Sum(nil)[:encryptingKeySize],
	)
}

// sharedEncryptingKey parses a hex encoded wallet private key and derives the
// key shared by all copayers from it.
func sharedEncryptingKey(walletPrivKey string) (string, error) {
	raw, err := hex.DecodeString(walletPrivKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidWalletKey, err)
	}

	var scalar btcec.ModNScalar
	if len(raw) != 32 || scalar.SetByteSlice(raw) || scalar.IsZero() {
		return "", fmt.Errorf("%w: not a valid secp256k1 scalar",
			ErrInvalidWalletKey)
	}

	return base64.StdEncoding.EncodeToString(
		chainhash.HashB(raw)[:encryptingKeySize],
	), nil
}
