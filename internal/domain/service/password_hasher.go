// Package service defines interfaces for stateless domain logic shared across
// the account usecases.
package service

// PasswordHasher hashes and verifies account passwords. The bcrypt-backed
// implementation lives in infra; the domain only sees this interface.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check reports whether the plaintext password matches the stored hash.
	Check(password, hash string) bool
}
