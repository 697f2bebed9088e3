package vault

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/lightningnetwork/lnd/tlv"
)

const (
	typeSuite        tlv.Type = 0
	typeScryptParams tlv.Type = 2
	typeArgonTime    tlv.Type = 4
	typeArgonMemory  tlv.Type = 6
	typeArgonThreads tlv.Type = 8
	typeSalt         tlv.Type = 10
	typeNonce        tlv.Type = 12
	typeCiphertext   tlv.Type = 14
)

// envelope is the self describing container of an encrypted secret. Only the
// fields of its suite are populated.
type envelope struct {
	suite Suite

	// scryptParams is the marshalled snacl secret key, which holds the
	// scrypt salt and cost parameters along with a digest of the derived
	// key.
	scryptParams []byte

	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	salt         []byte
	nonce        []byte

	ciphertext []byte
}

// records returns the TLV records written for the envelope's suite.
func (e *envelope) records() []tlv.Record {
	suite := uint8(e.suite)
	records := []tlv.Record{
		tlv.MakePrimitiveRecord(typeSuite, &suite),
	}

	switch e.suite {
	case SuiteScryptSecretbox:
		records = append(records,
			tlv.MakePrimitiveRecord(
				typeScryptParams, &e.scryptParams,
			),
		)

	case SuiteArgon2XChaCha:
		records = append(records,
			tlv.MakePrimitiveRecord(typeArgonTime, &e.argonTime),
			tlv.MakePrimitiveRecord(
				typeArgonMemory, &e.argonMemory,
			),
			tlv.MakePrimitiveRecord(
				typeArgonThreads, &e.argonThreads,
			),
			tlv.MakePrimitiveRecord(typeSalt, &e.salt),
			tlv.MakePrimitiveRecord(typeNonce, &e.nonce),
		)
	}

	return append(records,
		tlv.MakePrimitiveRecord(typeCiphertext, &e.ciphertext),
	)
}

// encode serializes the envelope as a base64 encoded TLV stream.
func (e *envelope) encode() (string, error) {
	stream, err := tlv.NewStream(e.records()...)
	if err != nil {
		return "", err
	}

	var b bytes.Buffer
	if err := stream.Encode(&b); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(b.Bytes()), nil
}

// decodeEnvelope parses an envelope produced by encode.
func decodeEnvelope(blob string) (*envelope, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}

	var (
		e     envelope
		suite uint8
	)
	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(typeSuite, &suite),
		tlv.MakePrimitiveRecord(typeScryptParams, &e.scryptParams),
		tlv.MakePrimitiveRecord(typeArgonTime, &e.argonTime),
		tlv.MakePrimitiveRecord(typeArgonMemory, &e.argonMemory),
		tlv.MakePrimitiveRecord(typeArgonThreads, &e.argonThreads),
		tlv.MakePrimitiveRecord(typeSalt, &e.salt),
		tlv.MakePrimitiveRecord(typeNonce, &e.nonce),
		tlv.MakePrimitiveRecord(typeCiphertext, &e.ciphertext),
	)
	if err != nil {
		return nil, err
	}

	if err := stream.Decode(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	e.suite = Suite(suite)

	if len(e.ciphertext) == 0 {
		return nil, fmt.Errorf("%w: missing ciphertext",
			ErrInvalidEnvelope)
	}

	return &e, nil
}
