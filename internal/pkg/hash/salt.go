package hash

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrInvalidSaltLength is returned when a non-positive byte length is requested.
var ErrInvalidSaltLength = errors.New("hash: salt length must be positive")

// SaltSource produces random salts.
type SaltSource interface {
	// RandomHex returns byteLength random bytes, hex-encoded (2*byteLength chars).
	RandomHex(byteLength int) (string, error)
}

// CryptoSalt reads salts from crypto/rand.
type CryptoSalt struct{}

// NewCryptoSalt returns a SaltSource backed by the operating system CSPRNG.
func NewCryptoSalt() *CryptoSalt {
	return &CryptoSalt{}
}

// RandomHex returns byteLength random bytes encoded as lowercase hex.
func (*CryptoSalt) RandomHex(byteLength int) (string, error) {
	if byteLength <= 0 {
		return "", ErrInvalidSaltLength
	}

	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
