// Package scheme holds the password storage strategies an account can be
// enrolled with. Each scheme turns a password into a stored form and later
// checks a candidate password against it.
package scheme

import (
	"errors"
	"slices"

	"github.com/samber/lo"
	"github.com/shandysiswandi/passlab/internal/account/entity"
)

// Names of the built-in schemes.
const (
	NamePlaintext  = "plaintext"
	NameSHA256     = "sha256"
	NameHMACSecret = "hmac-secret"
	NameSaltedHMAC = "salted-hmac"
	NameBcrypt     = "bcrypt"
	NameArgon2id   = "argon2id"
)

var (
	// ErrUnknownScheme is returned when a scheme name is not registered.
	ErrUnknownScheme = errors.New("unknown credential scheme")

	// ErrPasswordTooLong is returned by Derive when the scheme cannot consume
	// the whole password.
	ErrPasswordTooLong = errors.New("password too long for credential scheme")
)

type Scheme interface {
	Name() string
	Derive(password string) (entity.StoredForm, error)
	Verify(password string, stored entity.StoredForm) bool
}

// Registry resolves schemes by name.
type Registry struct {
	schemes     map[string]Scheme
	defaultName string
}

// NewRegistry builds a registry from schemes. defaultName must name one of them.
func NewRegistry(defaultName string, schemes ...Scheme) (*Registry, error) {
	r := &Registry{schemes: make(map[string]Scheme, len(schemes))}
	for _, s := range schemes {
		r.schemes[s.Name()] = s
	}

	if _, ok := r.schemes[defaultName]; !ok {
		return nil, ErrUnknownScheme
	}
	r.defaultName = defaultName

	return r, nil
}

// Get returns the scheme registered as name. An empty name yields the default.
func (r *Registry) Get(name string) (Scheme, error) {
	if name == "" {
		name = r.defaultName
	}

	s, ok := r.schemes[name]
	if !ok {
		return nil, ErrUnknownScheme
	}

	return s, nil
}

// Default returns the name of the default scheme.
func (r *Registry) Default() string {
	return r.defaultName
}

// Names returns every registered scheme name in lexical order.
func (r *Registry) Names() []string {
	names := lo.Keys(r.schemes)
	slices.Sort(names)
	return names
}
