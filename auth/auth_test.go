package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"simpleshop/models"
	"simpleshop/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) SetPassword(ctx context.Context, id string, password string) error {
	args := m.Called(ctx, id, password)
	return args.Error(0)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.True(t, IsHash(hash))
	assert.False(t, IsHash("hunter22"))

	tests := []struct {
		name        string
		stored      string
		supplied    string
		ok          bool
		needsRehash bool
	}{
		{"hash match", hash, "hunter22", true, false},
		{"hash mismatch", hash, "hunter23", false, false},
		{"plaintext match", "admin", "admin", true, true},
		{"plaintext mismatch", "admin", "Admin", false, false},
		{"empty stored never matches", "", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, rehash := VerifyPassword(tt.stored, tt.supplied)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.needsRehash, rehash)
		})
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", 80))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	hash, err := HashPassword(strings.Repeat("a", MaxPasswordBytes))
	require.NoError(t, err)
	assert.True(t, IsHash(hash))
}

func TestSecretChecker(t *testing.T) {
	ctx := context.Background()

	t.Run("Match", func(t *testing.T) {
		p, err := NewSecretChecker("letmein").Check(ctx, Credentials{Password: "letmein"})
		require.NoError(t, err)
		assert.Nil(t, p.User)
	})

	t.Run("Mismatch", func(t *testing.T) {
		_, err := NewSecretChecker("letmein").Check(ctx, Credentials{Password: "letmeout"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Empty secret rejects everything", func(t *testing.T) {
		_, err := NewSecretChecker("").Check(ctx, Credentials{Password: ""})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserChecker(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()

	t.Run("Unknown user", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("FindByUsername", ctx, "ghost").Return(nil, repository.ErrNotFound)

		_, err := NewUserChecker(store).Check(ctx, Credentials{Username: "ghost", Password: "x"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Store failure is not an auth failure", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("FindByUsername", ctx, "admin").Return(nil, errors.New("connection reset"))

		_, err := NewUserChecker(store).Check(ctx, Credentials{Username: "admin", Password: "x"})
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Hashed password", func(t *testing.T) {
		hash, _ := HashPassword("secret1")
		store := new(MockUserStore)
		store.On("FindByUsername", ctx, "Admin").Return(&models.User{ID: id, Username: "admin", Password: hash}, nil)

		p, err := NewUserChecker(store).Check(ctx, Credentials{Username: "Admin", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "admin", p.User.Username)
		store.AssertNotCalled(t, "SetPassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Wrong password", func(t *testing.T) {
		hash, _ := HashPassword("secret1")
		store := new(MockUserStore)
		store.On("FindByUsername", ctx, "admin").Return(&models.User{ID: id, Password: hash}, nil)

		_, err := NewUserChecker(store).Check(ctx, Credentials{Username: "admin", Password: "secret2"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Plaintext password is migrated", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("FindByUsername", ctx, "admin").Return(&models.User{ID: id, Password: "admin"}, nil)
		store.On("SetPassword", ctx, id.Hex(), mock.MatchedBy(IsHash)).Return(nil)

		p, err := NewUserChecker(store).Check(ctx, Credentials{Username: "admin", Password: "admin"})
		require.NoError(t, err)
		assert.True(t, IsHash(p.User.Password))
		store.AssertExpectations(t)
	})

	t.Run("Failed migration still logs in", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("FindByUsername", ctx, "admin").Return(&models.User{ID: id, Password: "admin"}, nil)
		store.On("SetPassword", ctx, id.Hex(), mock.Anything).Return(errors.New("write failed"))

		p, err := NewUserChecker(store).Check(ctx, Credentials{Username: "admin", Password: "admin"})
		require.NoError(t, err)
		assert.Equal(t, "admin", p.User.Password)
	})
}
