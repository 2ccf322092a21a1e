package auth

import (
	"context"
	"crypto/subtle"
)

// SecretChecker accepts the one process-wide admin secret. The username is
// ignored and no user identity is attached.
type SecretChecker struct {
	secret []byte
}

func NewSecretChecker(secret string) *SecretChecker {
	return &SecretChecker{secret: []byte(secret)}
}

func (s *SecretChecker) Check(_ context.Context, creds Credentials) (*Principal, error) {
	if len(s.secret) == 0 {
		return nil, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare(s.secret, []byte(creds.Password)) != 1 {
		return nil, ErrInvalidCredentials
	}
	return &Principal{}, nil
}
