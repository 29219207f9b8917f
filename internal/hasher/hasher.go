// Package hasher computes the content hashes used in output filenames and
// manifest entries.
package hasher

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

// HexLen is the length of a full content hash: 16 hex chars, the whole
// 64-bit xxHash digest. Collision-safe for practical asset counts.
const HexLen = 16

// ShortLen is the truncated hash length embedded in filenames.
const ShortLen = 8

// Sum returns the xxHash64 of data as a 16-char hex string.
func Sum(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// SumReader computes the xxHash64 of everything in r, streaming.
func SumReader(r io.Reader) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// Short truncates a full hash to the filename-embedded prefix.
func Short(hash string) string {
	if len(hash) > ShortLen {
		return hash[:ShortLen]
	}
	return hash
}
