package authservice

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// IsHashedSecret reports whether the configured secret looks like a bcrypt
// hash.
func IsHashedSecret(secret string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(secret, prefix) {
			return true
		}
	}
	return false
}

// verifySecret compares the supplied password against the configured
// secret. Hashed secrets are verified with bcrypt; anything else falls back
// to a constant-time comparison of the raw strings. The fallback is
// insecure and kept only for deployments configured before hashing was
// introduced.
func verifySecret(configured, supplied string) (bool, error) {
	if IsHashedSecret(configured) {
		err := bcrypt.CompareHashAndPassword([]byte(configured), []byte(supplied))
		if err != nil {
			switch {
			case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
				return false, nil
			default:
				return false, err
			}
		}
		return true, nil
	}

	return subtle.ConstantTimeCompare([]byte(configured), []byte(supplied)) == 1, nil
}
