package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	db, cfg := newTestDB(t)
	auth := NewAuthService(db, cfg)

	user, err := auth.Register("alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Login)
	assert.Nil(t, user.LastLogin)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	t.Run("duplicate login is rejected", func(t *testing.T) {
		_, err := auth.Register("alice", "other")
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("correct password authenticates and stamps last login", func(t *testing.T) {
		got, err := auth.Authenticate("alice", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		require.NotNil(t, got.LastLogin)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, err := auth.Authenticate("alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown login is rejected", func(t *testing.T) {
		_, err := auth.Authenticate("nobody", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestGetUsersHidesPasswordHash(t *testing.T) {
	db, cfg := newTestDB(t)
	auth := NewAuthService(db, cfg)
	users := NewUserService(db)

	_, err := auth.Register("alice", "s3cret")
	require.NoError(t, err)
	_, err = auth.Register("bob", "hunter2")
	require.NoError(t, err)

	got, err := users.GetUsers()
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, u := range got {
		assert.Empty(t, u.PasswordHash)
	}
}
