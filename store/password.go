package store

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

var DefaultPasswordParams = &argon2id.Params{
	Memory:      64 * 1024,
	Iterations:  1,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

func hashPassword(password string, params *argon2id.Params) (string, error) {
	return argon2id.CreateHash(password, params)
}

// comparePassword reports whether password matches the stored value, and whether
// the stored value is in a legacy format (bcrypt or plaintext) that should be
// replaced with an argon2id hash.
func comparePassword(password, stored string) (match bool, legacy bool, err error) {
	switch {
	case strings.HasPrefix(stored, "$argon2id$"):
		match, err = argon2id.ComparePasswordAndHash(password, stored)
		return match, false, err
	case isBcrypt(stored):
		err = bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))

		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, true, nil
		}

		return err == nil, true, err
	default:
		return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1, true, nil
	}
}

func isBcrypt(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}
