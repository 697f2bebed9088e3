package mnemonic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/text/unicode/norm"
)

const (
	// DefaultEntropyBits is the entropy of a freshly generated phrase,
	// which always has twelve words.
	DefaultEntropyBits = 128

	// bitsPerWord is the number of entropy and checksum bits every word
	// encodes.
	bitsPerWord = 11
)

var (
	// ErrInvalidEntropy is returned when entropy is not a multiple of 32
	// bits between 128 and 256 bits.
	ErrInvalidEntropy = errors.New("invalid phrase entropy")

	// ErrInvalidMnemonic is returned for a phrase with unknown words, a
	// bad word count or a checksum mismatch.
	ErrInvalidMnemonic = errors.New("invalid recovery phrase")
)

// Generate returns a new phrase in lang encoding entropyBits of fresh
// random entropy.
func Generate(entropyBits int, lang Language) (string, error) {
	if _, err := lang.table(); err != nil {
		return "", err
	}

	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEntropy, err)
	}

	phrase, err := Encode(entropy, lang)
	if err != nil {
		return "", err
	}

	log.Debugf("Generated %d bit phrase in language %v", entropyBits,
		lang)

	return phrase, nil
}

// Encode turns entropy into a phrase in lang. The entropy is followed by the
// leading bits of its SHA-256 as a checksum, one bit for every 32 bits of
// entropy, and every 11 bits select a word.
func Encode(entropy []byte, lang Language) (string, error) {
	table, err := lang.table()
	if err != nil {
		return "", err
	}

	entropyBits := len(entropy) * 8
	if entropyBits%32 != 0 || entropyBits < 128 || entropyBits > 256 {
		return "", fmt.Errorf("%w: %d bits", ErrInvalidEntropy,
			entropyBits)
	}

	data := make([]byte, 0, len(entropy)+1)
	data = append(data, entropy...)
	data = append(data, chainhash.HashB(entropy)[0])

	numWords := (entropyBits + entropyBits/32) / bitsPerWord
	words := make([]string, numWords)
	for i := range words {
		words[i] = table.words[readBits(data, i*bitsPerWord,
			bitsPerWord)]
	}

	return strings.Join(words, lang.Separator()), nil
}

// Decode returns the entropy encoded by phrase along with the language it is
// written in. Every supported language is tried in turn.
func Decode(phrase string) ([]byte, Language, error) {
	words := strings.Fields(norm.NFKD.String(phrase))
	if len(words)%3 != 0 || len(words) < 12 || len(words) > 24 {
		return nil, "", fmt.Errorf("%w: %d words", ErrInvalidMnemonic,
			len(words))
	}

	for _, lang := range languages {
		entropy, ok := tables[lang].decode(words)
		if ok {
			return entropy, lang, nil
		}
	}

	return nil, "", ErrInvalidMnemonic
}

// Validate checks the words and checksum of phrase and returns its language.
// The passphrase used alongside a phrase can't be checked and never is.
func Validate(phrase string) (Language, error) {
	_, lang, err := Decode(phrase)

	return lang, err
}

// ToSeed stretches phrase and passphrase into a 64 byte seed. Both are NFKD
// normalized first. Any passphrase yields a valid seed, a wrong one simply
// yields a different seed.
func ToSeed(phrase, passphrase string) []byte {
	return bip39.NewSeed(
		norm.NFKD.String(phrase), norm.NFKD.String(passphrase),
	)
}

// decode maps NFKD normalized words onto entropy, verifying the checksum.
func (t *wordTable) decode(words []string) ([]byte, bool) {
	totalBits := len(words) * bitsPerWord
	checksumBits := totalBits / 33
	entropyBits := totalBits - checksumBits

	buf := make([]byte, (totalBits+7)/8)
	for i, word := range words {
		index, ok := t.index[word]
		if !ok {
			return nil, false
		}
		writeBits(buf, i*bitsPerWord, bitsPerWord, index)
	}

	entropy := buf[:entropyBits/8]
	checksum := chainhash.HashB(entropy)
	if readBits(buf, entropyBits, checksumBits) !=
		readBits(checksum, 0, checksumBits) {

		return nil, false
	}

	return entropy, true
}

// readBits reads count bits starting at bit offset of data, most significant
// bit first.
func readBits(data []byte, offset, count int) int {
	var v int
	for i := offset; i < offset+count; i++ {
		v = v<<1 | int(data[i/8]>>(7-i%8)&1)
	}

	return v
}

// writeBits writes the count low bits of v into data starting at bit offset,
// most significant bit first.
func writeBits(data []byte, offset, count, v int) {
	for i := 0; i < count; i++ {
		if v>>(count-1-i)&1 == 1 {
			bit := offset + i
			data[bit/8] |= 1 << (7 - bit%8)
		}
	}
}
