// Package fingerprint computes short content fingerprints used to record
// the provenance of deployed kit files.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"os"
)

// Length is the number of hex characters kept from the SHA-256 digest.
const Length = 16

// Empty is the fingerprint of an absent, unreadable, or zero-length file.
const Empty = ""

// New returns the hash that fingerprints are computed with.
func New() hash.Hash {
	return sha256.New()
}

// FromHash returns the fingerprint of n bytes written to h. Zero bytes
// yield Empty.
func FromHash(h hash.Hash, n int64) string {
	if n == 0 {
		return Empty
	}
	return hex.EncodeToString(h.Sum(nil))[:Length]
}

// File returns the fingerprint of the file at path.
func File(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return Empty
	}
	defer f.Close()

	h := New()
	n, err := io.Copy(h, f)
	if err != nil {
		return Empty
	}
	return FromHash(h, n)
}

// Bytes returns the fingerprint of data.
func Bytes(data []byte) string {
	h := New()
	h.Write(data)
	return FromHash(h, int64(len(data)))
}
