package keychain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// ErrInvalidPath is returned when a derivation path string cannot be parsed.
var ErrInvalidPath = errors.New("invalid derivation path")

// ParsePath turns a derivation path such as m/44'/0'/0' into the list of
// child indexes it names. Hardened steps are marked with a trailing
// apostrophe and are returned with hdkeychain.HardenedKeyStart added.
func ParsePath(path string) ([]uint32, error) {
	parts := strings.Split(path, "/")
	if parts[0] != "m" {
		return nil, fmt.Errorf("%w: %q must start with m", ErrInvalidPath,
			path)
	}

	indexes := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := strings.HasSuffix(part, "'")
		digits := strings.TrimSuffix(part, "'")

		index, err := strconv.ParseUint(digits, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: bad index %q",
				ErrInvalidPath, path, part)
		}

		if index >= hdkeychain.HardenedKeyStart {
			return nil, fmt.Errorf("%w: %q: index %d out of range",
				ErrInvalidPath, path, index)
		}

		if hardened {
			index += hdkeychain.HardenedKeyStart
		}
		indexes = append(indexes, uint32(index))
	}

	return indexes, nil
}

// FormatPath is the inverse of ParsePath.
func FormatPath(indexes []uint32) string {
	var b strings.Builder
	b.WriteString("m")
	for _, index := range indexes {
		if index >= hdkeychain.HardenedKeyStart {
			fmt.Fprintf(&b, "/%d'", index-hdkeychain.HardenedKeyStart)
			continue
		}
		fmt.Fprintf(&b, "/%d", index)
	}

	return b.String()
}
