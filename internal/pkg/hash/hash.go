package hash

// Hash turns a plaintext into a self-contained stored form and checks
// plaintexts against it.
type Hash interface {
	// Hash returns the stored form of str.
	Hash(str string) ([]byte, error)
	// Verify reports whether str matches the stored form hashed.
	Verify(hashed, str string) bool
}
