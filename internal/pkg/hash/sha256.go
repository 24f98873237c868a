package hash

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// SHA256 hashes with plain, unsalted SHA-256 (hex-encoded).
//
// Identical passwords produce identical digests, so it is open to
// precomputed tables.
type SHA256 struct{}

// NewSHA256 returns an unsalted SHA-256 hasher.
func NewSHA256() *SHA256 {
	return &SHA256{}
}

// Hash returns the hex-encoded SHA-256 digest of str.
func (*SHA256) Hash(str string) ([]byte, error) {
	sum := sha256.Sum256([]byte(str))
	result := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(result, sum[:])
	return result, nil
}

// Verify checks whether str hashes to hashed.
func (s *SHA256) Verify(hashed, str string) bool {
	expected, _ := s.Hash(str)
	return subtle.ConstantTimeCompare([]byte(hashed), expected) == 1
}
