package vault

import (
	"encoding/base64"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func testConfig(suite Suite) Config {
	cfg := FastConfig()
	cfg.Suite = suite

	return cfg
}

// TestEncryptDecrypt tests that both suites round trip a secret, reject a
// wrong password and reject modified ciphertext.
func TestEncryptDecrypt(t *testing.T) {
	t.Parallel()

	plaintext := []byte("xprv payload test plain text")

	for _, suite := range []Suite{SuiteScryptSecretbox, SuiteArgon2XChaCha} {
		suite := suite

		t.Run(suite.String(), func(t *testing.T) {
			t.Parallel()

			c, err := New(testConfig(suite))
			require.NoError(t, err)
			require.Equal(t, suite, c.Suite())

			blob, err := c.Encrypt(plaintext, []byte("password"))
			require.NoError(t, err)

			decrypted, err := Decrypt(blob, []byte("password"))
			require.NoError(t, err)
			require.Equal(t, plaintext, decrypted)

			_, err = Decrypt(blob, []byte("passw0rd"))
			require.ErrorIs(t, err, ErrAuthFailed)

			// Flip the last byte of the ciphertext, which is the
			// last value of the stream.
			raw, err := base64.StdEncoding.DecodeString(blob)
			require.NoError(t, err)
			raw[len(raw)-1] ^= 1
			tampered := base64.StdEncoding.EncodeToString(raw)

			_, err = Decrypt(tampered, []byte("password"))
			require.ErrorIs(t, err, ErrAuthFailed)
		})
	}
}

// TestEncryptFreshSalt asserts that encrypting the same secret twice never
// produces the same envelope.
func TestEncryptFreshSalt(t *testing.T) {
	t.Parallel()

	c, err := New(testConfig(SuiteArgon2XChaCha))
	require.NoError(t, err)

	first, err := c.Encrypt([]byte("secret"), []byte("pw"))
	require.NoError(t, err)

	second, err := c.Encrypt([]byte("secret"), []byte("pw"))
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

// TestDecryptAcrossConfigs asserts that a blob stays readable after the
// configured suite changes.
func TestDecryptAcrossConfigs(t *testing.T) {
	t.Parallel()

	scrypt, err := New(testConfig(SuiteScryptSecretbox))
	require.NoError(t, err)

	blob, err := scrypt.Encrypt([]byte("legacy"), []byte("pw"))
	require.NoError(t, err)

	// Nothing about the current configuration is consulted on decrypt.
	_, err = New(testConfig(SuiteArgon2XChaCha))
	require.NoError(t, err)

	plaintext, err := Decrypt(blob, []byte("pw"))
	require.NoError(t, err)
	require.Equal(t, []byte("legacy"), plaintext)
}

// TestDecryptMalformed tests rejection of blobs that are not envelopes.
func TestDecryptMalformed(t *testing.T) {
	t.Parallel()

	_, err := Decrypt("not base64!", []byte("pw"))
	require.ErrorIs(t, err, ErrInvalidEnvelope)

	_, err = Decrypt("", []byte("pw"))
	require.ErrorIs(t, err, ErrInvalidEnvelope)

	// A suite byte only, without ciphertext.
	_, err = Decrypt(base64.StdEncoding.EncodeToString(
		[]byte{0x00, 0x01, 0x01},
	), []byte("pw"))
	require.ErrorIs(t, err, ErrInvalidEnvelope)

	// An unknown suite with some ciphertext.
	_, err = Decrypt(base64.StdEncoding.EncodeToString(
		[]byte{0x00, 0x01, 0x09, 0x0e, 0x01, 0xff},
	), []byte("pw"))
	require.ErrorIs(t, err, ErrUnknownSuite)
}

// TestConfigValidate tests configuration validation.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, DefaultConfig().Validate())
	require.NoError(t, FastConfig().Validate())

	cfg := FastConfig()
	cfg.Scrypt.N = 1000
	_, err := New(cfg)
	require.Error(t, err)

	cfg = FastConfig()
	cfg.Suite = SuiteArgon2XChaCha
	cfg.Argon2.Threads = 0
	require.Error(t, cfg.Validate())

	cfg = FastConfig()
	cfg.Suite = 7
	require.ErrorIs(t, cfg.Validate(), ErrUnknownSuite)
}

// TestDecryptCostLimits asserts envelopes asking for excessive KDF costs are
// rejected before any key is derived.
func TestDecryptCostLimits(t *testing.T) {
	t.Parallel()

	// The marshalled snacl parameters are the salt and digest followed by
	// little endian N, R and P.
	const (
		scryptN = 64
		scryptR = 72
		scryptP = 80
	)

	testCases := []struct {
		name   string
		suite  Suite
		modify func(*envelope)
	}{{
		name:  "scrypt N",
		suite: SuiteScryptSecretbox,
		modify: func(e *envelope) {
			binary.LittleEndian.PutUint64(
				e.scryptParams[scryptN:], 1<<40,
			)
		},
	}, {
		name:  "scrypt R",
		suite: SuiteScryptSecretbox,
		modify: func(e *envelope) {
			binary.LittleEndian.PutUint64(
				e.scryptParams[scryptR:], 1<<30,
			)
		},
	}, {
		name:  "scrypt P",
		suite: SuiteScryptSecretbox,
		modify: func(e *envelope) {
			binary.LittleEndian.PutUint64(
				e.scryptParams[scryptP:], 1<<20,
			)
		},
	}, {
		name:  "argon2 memory",
		suite: SuiteArgon2XChaCha,
		modify: func(e *envelope) {
			e.argonMemory = 4_000_000_000
		},
	}, {
		name:  "argon2 time",
		suite: SuiteArgon2XChaCha,
		modify: func(e *envelope) {
			e.argonTime = 1 << 31
		},
	}}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c, err := New(testConfig(tc.suite))
			require.NoError(t, err)

			blob, err := c.Encrypt([]byte("secret"), []byte("pw"))
			require.NoError(t, err)

			e, err := decodeEnvelope(blob)
			require.NoError(t, err)
			tc.modify(e)

			modified, err := e.encode()
			require.NoError(t, err)

			_, err = Decrypt(modified, []byte("pw"))
			require.ErrorIs(t, err, ErrInvalidEnvelope)
		})
	}
}

// TestConfigCostLimits asserts configured KDF costs are capped too.
func TestConfigCostLimits(t *testing.T) {
	t.Parallel()

	cfg := FastConfig()
	cfg.Scrypt.N = maxScryptN
	cfg.Scrypt.R = 8
	require.NoError(t, cfg.Validate())

	cfg.Scrypt.N = maxScryptN * 2
	require.Error(t, cfg.Validate())

	cfg = FastConfig()
	cfg.Scrypt.R = maxKDFMemory / (128 * cfg.Scrypt.N)
	require.NoError(t, cfg.Validate())

	cfg.Scrypt.R++
	require.Error(t, cfg.Validate())

	cfg = FastConfig()
	cfg.Suite = SuiteArgon2XChaCha
	cfg.Argon2.MemoryKB = maxKDFMemory / 1024
	require.NoError(t, cfg.Validate())

	cfg.Argon2.MemoryKB++
	require.Error(t, cfg.Validate())

	cfg = FastConfig()
	cfg.Suite = SuiteArgon2XChaCha
	cfg.Argon2.Time = maxArgonTime + 1
	require.Error(t, cfg.Validate())
}

// TestRoundTripProperty asserts that any secret and password round trip.
func TestRoundTripProperty(t *testing.T) {
	t.Parallel()

	c, err := New(testConfig(SuiteArgon2XChaCha))
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		plaintext := rapid.SliceOfN(rapid.Byte(), 1, 256).Draw(
			t, "plaintext",
		)
		password := rapid.SliceOf(rapid.Byte()).Draw(t, "password")

		blob, err := c.Encrypt(plaintext, password)
		require.NoError(t, err)

		decrypted, err := Decrypt(blob, password)
		require.NoError(t, err)
		require.Equal(t, plaintext, decrypted)
	})
}

// TestParseSuite tests the mapping between suite names and suites.
func TestParseSuite(t *testing.T) {
	t.Parallel()

	for _, suite := range []Suite{SuiteScryptSecretbox, SuiteArgon2XChaCha} {
		parsed, err := ParseSuite(suite.String())
		require.NoError(t, err)
		require.Equal(t, suite, parsed)
	}

	_, err := ParseSuite("rot13")
	require.ErrorIs(t, err, ErrUnknownSuite)
}
