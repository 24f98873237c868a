package scheme

import (
	"crypto/subtle"

	"github.com/shandysiswandi/passlab/internal/account/entity"
	"github.com/shandysiswandi/passlab/internal/pkg/hash"
)

// SaltBytes is the number of random bytes in a salted-hmac salt.
const SaltBytes = 32

// SaltedHMAC keys HMAC-SHA-256 with a fresh random salt per enrollment.
// Digest and salt are both 64 lowercase hex characters.
type SaltedHMAC struct {
	salt hash.SaltSource
}

func NewSaltedHMAC(salt hash.SaltSource) *SaltedHMAC {
	return &SaltedHMAC{salt: salt}
}

func (*SaltedHMAC) Name() string {
	return NameSaltedHMAC
}

func (s *SaltedHMAC) Derive(password string) (entity.StoredForm, error) {
	salt, err := s.salt.RandomHex(SaltBytes)
	if err != nil {
		return entity.StoredForm{}, err
	}

	return entity.StoredForm{
		Digest: hash.HMACSHA256Hex(salt, password),
		Salt:   salt,
	}, nil
}

func (*SaltedHMAC) Verify(password string, stored entity.StoredForm) bool {
	if stored.Salt == "" || stored.Digest == "" {
		return false
	}

	candidate := hash.HMACSHA256Hex(stored.Salt, password)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(stored.Digest)) == 1
}
