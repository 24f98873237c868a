package entity

import "time"

// UserCredential is the persisted verifier of one user.
type UserCredential struct {
	Username   string
	Digest     string // stored form produced by Scheme
	Salt       string // empty for schemes that embed their salt in Digest
	Scheme     string
	EnrolledAt time.Time
}

// StoredForm returns the part of the record a scheme needs to verify a password.
func (c UserCredential) StoredForm() StoredForm {
	return StoredForm{Digest: c.Digest, Salt: c.Salt}
}

// StoredForm is what a scheme derives from a password and later verifies against.
type StoredForm struct {
	Digest string
	Salt   string
}

// Account is the sanitized result of a successful authentication.
type Account struct {
	Username string
}
