package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	HashCost = bcrypt.DefaultCost

	// MaxPasswordBytes is the longest input bcrypt will hash.
	MaxPasswordBytes = 72
)

var ErrPasswordTooLong = fmt.Errorf("password must be at most %d bytes", MaxPasswordBytes)

func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	return string(b), err
}

// IsHash reports whether stored is a bcrypt hash rather than a legacy
// plaintext password.
func IsHash(stored string) bool {
	_, err := bcrypt.Cost([]byte(stored))
	return err == nil
}

// VerifyPassword compares a supplied password with the stored value.
// needsRehash is true when the stored value is plaintext and matched.
func VerifyPassword(stored, supplied string) (ok bool, needsRehash bool) {
	if IsHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil, false
	}
	if stored == "" {
		return false, false
	}
	match := subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
	return match, match
}
