package scheme

import (
	"errors"

	"github.com/shandysiswandi/passlab/internal/account/entity"
	"github.com/shandysiswandi/passlab/internal/pkg/hash"
)

// hashed adapts a salt-free hash.Hash to Scheme. Bcrypt and argon2id embed
// their own salt in the digest, so the stored salt stays empty.
type hashed struct {
	name   string
	hasher hash.Hash
}

// NewPlaintext stores the password itself.
func NewPlaintext() Scheme {
	return &hashed{name: NamePlaintext, hasher: hash.NewPlain()}
}

// NewSHA256 stores the unsalted SHA-256 of the password.
func NewSHA256() Scheme {
	return &hashed{name: NameSHA256, hasher: hash.NewSHA256()}
}

// NewHMACSecret stores HMAC-SHA-256 of the password keyed with one server secret.
func NewHMACSecret(secret string) Scheme {
	return &hashed{name: NameHMACSecret, hasher: hash.NewHMACSHA256(secret)}
}

// NewBcrypt stores a bcrypt hash of the password plus pepper.
func NewBcrypt(cost int, pepper string) Scheme {
	return &hashed{name: NameBcrypt, hasher: hash.NewBcrypt(cost, pepper)}
}

// NewArgon2id stores a PHC encoded argon2id hash of the password plus pepper.
func NewArgon2id(pepper string) Scheme {
	return &hashed{name: NameArgon2id, hasher: hash.NewArgon2id(pepper)}
}

func (h *hashed) Name() string {
	return h.name
}

func (h *hashed) Derive(password string) (entity.StoredForm, error) {
	out, err := h.hasher.Hash(password)
	if errors.Is(err, hash.ErrTooLong) {
		return entity.StoredForm{}, ErrPasswordTooLong
	}
	if err != nil {
		return entity.StoredForm{}, err
	}

	return entity.StoredForm{Digest: string(out)}, nil
}

func (h *hashed) Verify(password string, stored entity.StoredForm) bool {
	if stored.Digest == "" {
		return false
	}
	return h.hasher.Verify(stored.Digest, password)
}
