package entity

import "errors"

// ErrFilterWithoutUsername is returned by stores when a filter does not name
// the username; every store is addressed by it.
var ErrFilterWithoutUsername = errors.New("filter requires a username")

// Field names a UserCredential attribute usable in a Filter.
type Field string

const (
	FieldUsername Field = "username"
	FieldDigest   Field = "digest"
	FieldSalt     Field = "salt"
	FieldScheme   Field = "scheme"
)

// Filter is an exact-match lookup on one or more fields.
type Filter map[Field]string

// ByUsername returns the filter matching a single user.
func ByUsername(username string) Filter {
	return Filter{FieldUsername: username}
}

// Username returns the username constraint and whether it is set.
func (f Filter) Username() (string, bool) {
	u, ok := f[FieldUsername]
	return u, ok && u != ""
}

// Match reports whether c satisfies every constraint in f. Unknown fields never match.
func (f Filter) Match(c UserCredential) bool {
	for field, want := range f {
		var got string
		switch field {
		case FieldUsername:
			got = c.Username
		case FieldDigest:
			got = c.Digest
		case FieldSalt:
			got = c.Salt
		case FieldScheme:
			got = c.Scheme
		default:
			return false
		}
		if got != want {
			return false
		}
	}
	return true
}
