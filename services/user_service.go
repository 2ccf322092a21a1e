package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"simpleshop/auth"
	"simpleshop/logger"
	"simpleshop/models"
	"simpleshop/repository"

	"go.uber.org/zap"
)

const (
	MinPasswordLength = 6
	AdminUsername     = "admin"
	AdminDisplayName  = "Адміністратор"
)

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrWeakPassword  = fmt.Errorf("new password must be at least %d characters", MinPasswordLength)
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
)

type RegisterInput struct {
	Username string
	Password string
	Name     string
	Role     string
}

type ChangePasswordInput struct {
	Username        string
	CurrentPassword string
	NewPassword     string
}

type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	ChangePassword(ctx context.Context, input ChangePasswordInput) error
	EnsureAdmin(ctx context.Context, password string) (bool, error)
	RehashPasswords(ctx context.Context) (int, error)
}

type userService struct {
	repo    repository.UserRepository
	checker auth.Checker
}

func NewUserService(repo repository.UserRepository, checker auth.Checker) UserService {
	return &userService{repo: repo, checker: checker}
}

// Register stores a new user with a hashed password. The existence check
// gives a fast answer; the unique index settles concurrent registrations.
func (s *userService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "service"), zap.String("method", "Register"))

	if input.Username == "" || input.Password == "" || input.Name == "" {
		return nil, ErrMissingFields
	}
	if len(input.Password) > auth.MaxPasswordBytes {
		return nil, auth.ErrPasswordTooLong
	}

	_, err := s.repo.FindByUsername(ctx, input.Username)
	switch {
	case err == nil:
		return nil, ErrUsernameTaken
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u := &models.User{
		Username: input.Username,
		Password: hash,
		Name:     input.Name,
		Role:     input.Role,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		log.Error("failed to create user", zap.String("username", input.Username), zap.Error(err))
		return nil, err
	}

	log.Info("user registered", zap.String("user_id", u.ID.Hex()), zap.String("username", u.Username))
	return u, nil
}

func (s *userService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}

	p, err := s.checker.Check(ctx, auth.Credentials{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	if p.User == nil {
		return nil, auth.ErrInvalidCredentials
	}
	return p.User, nil
}

// ChangePassword rejects a short new password before looking at anything else.
func (s *userService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	if input.Username == "" || input.CurrentPassword == "" || input.NewPassword == "" {
		return ErrMissingFields
	}
	if utf8.RuneCountInString(input.NewPassword) < MinPasswordLength {
		return ErrWeakPassword
	}
	if len(input.NewPassword) > auth.MaxPasswordBytes {
		return auth.ErrPasswordTooLong
	}

	u, err := s.repo.FindByUsername(ctx, input.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	if ok, _ := auth.VerifyPassword(u.Password, input.CurrentPassword); !ok {
		return auth.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	if err := s.repo.SetPassword(ctx, u.ID.Hex(), hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	logger.FromCtx(ctx).Info("password changed", zap.String("user_id", u.ID.Hex()))
	return nil
}

// EnsureAdmin creates the admin user when it does not exist yet and reports
// whether it did.
func (s *userService) EnsureAdmin(ctx context.Context, password string) (bool, error) {
	_, err := s.repo.FindByUsername(ctx, AdminUsername)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	_, err = s.Register(ctx, RegisterInput{
		Username: AdminUsername,
		Password: password,
		Name:     AdminDisplayName,
		Role:     models.RoleAdmin,
	})
	if errors.Is(err, ErrUsernameTaken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// RehashPasswords replaces every stored plaintext password with its hash and
// returns how many users were updated. Passwords bcrypt cannot hash are
// logged and left as they are.
func (s *userService) RehashPasswords(ctx context.Context) (int, error) {
	log := logger.FromCtx(ctx)

	users, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, u := range users {
		if u.Password == "" || auth.IsHash(u.Password) {
			continue
		}

		hash, err := auth.HashPassword(u.Password)
		if err != nil {
			log.Warn("cannot hash stored password, skipping", zap.String("username", u.Username), zap.Error(err))
			continue
		}
		if err := s.repo.SetPassword(ctx, u.ID.Hex(), hash); err != nil {
			return updated, fmt.Errorf("rehash %s: %w", u.Username, err)
		}
		log.Info("rehashed password", zap.String("username", u.Username))
		updated++
	}
	return updated, nil
}
