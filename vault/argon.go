package vault

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const argonSaltSize = 16

// Argon2Params are the argon2id cost parameters of the second suite.
type Argon2Params struct {
	Time     uint32
	MemoryKB uint32
	Threads  uint8
}

// sealArgon encrypts plaintext with XChaCha20-Poly1305 under a key derived
// from password with argon2id.
func sealArgon(plaintext, password []byte,
	params Argon2Params) (*envelope, error) {

	salt := make([]byte, argonSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	key := argon2.IDKey(
		password, salt, params.Time, params.MemoryKB, params.Threads,
		chacha20poly1305.KeySize,
	)
	defer zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	return &envelope{
		suite:        SuiteArgon2XChaCha,
		argonTime:    params.Time,
		argonMemory:  params.MemoryKB,
		argonThreads: params.Threads,
		salt:         salt,
		nonce:        nonce,
		ciphertext:   aead.Seal(nil, nonce, plaintext, nil),
	}, nil
}

// openArgon decrypts an argon2id envelope.
func openArgon(e *envelope, password []byte) ([]byte, error) {
	params := Argon2Params{
		Time:     e.argonTime,
		MemoryKB: e.argonMemory,
		Threads:  e.argonThreads,
	}
	if err := params.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}

	if len(e.salt) != argonSaltSize ||
		len(e.nonce) != chacha20poly1305.NonceSizeX {

		return nil, fmt.Errorf("%w: bad salt or nonce size",
			ErrInvalidEnvelope)
	}

	key := argon2.IDKey(
		password, e.salt, params.Time, params.MemoryKB, params.Threads,
		chacha20poly1305.KeySize,
	)
	defer zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, e.nonce, e.ciphertext, nil)
	if err != nil {
		return nil, ErrAuthFailed
	}

	return plaintext, nil
}

func (p Argon2Params) validate() error {
	switch {
	case p.Time == 0:
		return fmt.Errorf("argon2 time must be positive")

	case p.Threads == 0:
		return fmt.Errorf("argon2 threads must be positive")

	case p.Time > maxArgonTime:
		return fmt.Errorf("argon2 time must be at most %d, got %d",
			maxArgonTime, p.Time)

	case p.MemoryKB < 8*uint32(p.Threads):
		return fmt.Errorf("argon2 memory must be at least 8KB per " +
			"thread")

	case p.MemoryKB > maxKDFMemory/1024:
		return fmt.Errorf("argon2 memory must be at most %dKB, got %d",
			maxKDFMemory/1024, p.MemoryKB)
	}

	return nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
