package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliteshop/eliteshop/internal/domain"
)

func registerParams() RegisterParams {
	return RegisterParams{
		Email:     "jo@example.com",
		Password:  "correct-horse",
		FirstName: "Jo",
		LastName:  "Reyes",
	}
}

func TestUserService_Register(t *testing.T) {
	t.Run("creates the account with a hashed password", func(t *testing.T) {
		store := newFakeStore()
		svc := NewUserService(store)

		user, err := svc.Register(context.Background(), registerParams())
		require.NoError(t, err)

		assert.NotZero(t, user.ID)
		assert.Equal(t, "jo@example.com", user.Email)

		stored, err := store.GetUserByEmail(context.Background(), "jo@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, "correct-horse", stored.Password)
		assert.NotEmpty(t, stored.Password)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		store := newFakeStore()
		svc := NewUserService(store)

		_, err := svc.Register(context.Background(), registerParams())
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), registerParams())
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		svc := NewUserService(newFakeStore())

		params := registerParams()
		params.Email = ""
		_, err := svc.Register(context.Background(), params)
		assert.True(t, domain.IsCode(err, domain.EINVALID))
	})

	t.Run("rejects a short password", func(t *testing.T) {
		svc := NewUserService(newFakeStore())

		params := registerParams()
		params.Password = "short"
		_, err := svc.Register(context.Background(), params)
		assert.True(t, domain.IsCode(err, domain.EINVALID))
	})
}

func TestUserService_Authenticate(t *testing.T) {
	store := newFakeStore()
	svc := NewUserService(store)

	registered, err := svc.Register(context.Background(), registerParams())
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Authenticate(context.Background(), "jo@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "jo@example.com", "battery-staple")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email maps to the same error as a wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserService_GetUser(t *testing.T) {
	store := newFakeStore()
	svc := NewUserService(store)

	registered, err := svc.Register(context.Background(), registerParams())
	require.NoError(t, err)

	user, err := svc.GetUser(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", user.Email)

	_, err = svc.GetUser(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
