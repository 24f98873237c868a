package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HMACSHA256 implements the Hash interface using HMAC-SHA-256 keyed with a
// server-side secret shared by every record.
type HMACSHA256 struct {
	secret []byte
}

// NewHMACSHA256 creates a new hasher with a secret.
func NewHMACSHA256(secret string) *HMACSHA256 {
	return &HMACSHA256{secret: []byte(secret)}
}

// Hash returns the HMAC SHA-256 hash of the input string (hex-encoded).
func (s *HMACSHA256) Hash(str string) ([]byte, error) {
	return gen(s.secret, []byte(str)), nil
}

// Verify checks whether the plaintext string matches the given hash.
func (s *HMACSHA256) Verify(hashed, str string) bool {
	expected := gen(s.secret, []byte(str))
	return subtle.ConstantTimeCompare([]byte(hashed), expected) == 1
}

// HMACSHA256Hex returns the lowercase hex HMAC-SHA-256 of message under key.
// The output is always 64 characters long.
func HMACSHA256Hex(key, message string) string {
	return string(gen([]byte(key), []byte(message)))
}

func gen(key, msg []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(msg)
	sum := h.Sum(nil)
	result := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(result, sum)
	return result
}
