package auth

import (
	"context"
	"errors"
	"fmt"

	"simpleshop/logger"
	"simpleshop/models"
	"simpleshop/repository"

	"go.uber.org/zap"
)

type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	SetPassword(ctx context.Context, id string, password string) error
}

// UserChecker verifies a username/password pair against stored users.
// A plaintext password that matches is replaced by its bcrypt hash.
type UserChecker struct {
	users UserStore
}

func NewUserChecker(users UserStore) *UserChecker {
	return &UserChecker{users: users}
}

func (c *UserChecker) Check(ctx context.Context, creds Credentials) (*Principal, error) {
	log := logger.FromCtx(ctx)

	u, err := c.users.FindByUsername(ctx, creds.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, needsRehash := VerifyPassword(u.Password, creds.Password)
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if needsRehash {
		if err := c.rehash(ctx, u, creds.Password); err != nil {
			log.Warn("password rehash failed", zap.String("user_id", u.ID.Hex()), zap.Error(err))
		} else {
			log.Info("migrated plaintext password", zap.String("user_id", u.ID.Hex()))
		}
	}

	return &Principal{User: u}, nil
}

func (c *UserChecker) rehash(ctx context.Context, u *models.User, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if err := c.users.SetPassword(ctx, u.ID.Hex(), hash); err != nil {
		return err
	}
	u.Password = hash
	return nil
}
