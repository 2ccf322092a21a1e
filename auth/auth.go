// Package auth verifies credentials. Both the shared admin secret and stored
// user passwords are checked through the same Checker interface.
package auth

import (
	"context"
	"errors"

	"simpleshop/models"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Credentials struct {
	Username string
	Password string
}

// Principal is the identity proven by a successful check. User is nil for
// checks that do not identify a user.
type Principal struct {
	User *models.User
}

type Checker interface {
	Check(ctx context.Context, creds Credentials) (*Principal, error)
}
