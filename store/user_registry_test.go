package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salestrack/models"
	"salestrack/store"
)

func TestRegistrySeedsAdmin(t *testing.T) {
	r, err := store.NewUserRegistry("s3cret")
	require.NoError(t, err)

	admin, found := r.Get(store.AdminUsername)
	require.True(t, found)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NotEqual(t, "s3cret", admin.PasswordHash)

	_, ok := r.Authenticate(store.AdminUsername, "s3cret")
	assert.True(t, ok)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	r, err := store.NewUserRegistry("s3cret")
	require.NoError(t, err)

	require.NoError(t, r.Register("alice", "alice123"))

	t.Run("Success", func(t *testing.T) {
		user, ok := r.Authenticate("alice", "alice123")
		require.True(t, ok)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, models.RoleStandard, user.Role)
	})

	t.Run("Fail on wrong password", func(t *testing.T) {
		_, ok := r.Authenticate("alice", "wrong")
		assert.False(t, ok)
	})

	t.Run("Fail on unknown user", func(t *testing.T) {
		_, ok := r.Authenticate("mallory", "alice123")
		assert.False(t, ok)
	})

	t.Run("Fail on taken username", func(t *testing.T) {
		assert.ErrorIs(t, r.Register("alice", "other"), store.ErrUsernameTaken)
	})
}

func TestUsernamesAreCaseSensitive(t *testing.T) {
	r, err := store.NewUserRegistry("s3cret")
	require.NoError(t, err)

	require.NoError(t, r.Register("alice", "alice123"))
	require.NoError(t, r.Register("Alice", "other456"))

	_, ok := r.Authenticate("Alice", "other456")
	assert.True(t, ok)
}

func TestDeleteUser(t *testing.T) {
	r, err := store.NewUserRegistry("s3cret")
	require.NoError(t, err)
	require.NoError(t, r.Register("alice", "alice123"))

	t.Run("Success", func(t *testing.T) {
		require.NoError(t, r.Delete("alice"))
		_, found := r.Get("alice")
		assert.False(t, found)
	})

	t.Run("Fail on missing user", func(t *testing.T) {
		assert.ErrorIs(t, r.Delete("alice"), store.ErrUserNotFound)
	})

	t.Run("Admin is protected", func(t *testing.T) {
		assert.ErrorIs(t, r.Delete(store.AdminUsername), store.ErrAdminProtected)
		_, found := r.Get(store.AdminUsername)
		assert.True(t, found)
	})
}

func TestImportStateReseedsAdmin(t *testing.T) {
	r, err := store.NewUserRegistry("s3cret")
	require.NoError(t, err)

	r.ImportState([]models.User{
		{Username: "alice", PasswordHash: "$2a$10$fake", Role: models.RoleStandard},
	})

	admin, found := r.Get(store.AdminUsername)
	require.True(t, found)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	_, found = r.Get("alice")
	assert.True(t, found)
}
