// Package hash provides helpers for hashing and verifying secrets.
//
// Implementations range from deliberately weak (Plain, SHA256) to adaptive
// (Bcrypt, Argon2id), all behind the Hash interface so callers can swap the
// storage strategy without touching their signup/login flow. The keyed
// primitive HMACSHA256Hex and the SaltSource are exposed separately for
// schemes that keep the salt next to the digest.
package hash
