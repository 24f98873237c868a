package hash

import "crypto/subtle"

// Plain stores the secret as-is. It only exists as the baseline strategy of
// the lab and must never back a real account store.
type Plain struct{}

// NewPlain returns the identity hasher.
func NewPlain() *Plain {
	return &Plain{}
}

// Hash returns str unchanged.
func (*Plain) Hash(str string) ([]byte, error) {
	return []byte(str), nil
}

// Verify compares both strings in constant time.
func (*Plain) Verify(hashed, str string) bool {
	return subtle.ConstantTimeCompare([]byte(hashed), []byte(str)) == 1
}
