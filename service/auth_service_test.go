package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salestrack/models"
	"salestrack/service"
	"salestrack/store"
)

func newAuthService(t *testing.T) (*service.AuthService, *service.SalesService) {
	t.Helper()
	users, err := store.NewUserRegistry("admin")
	require.NoError(t, err)
	sales := store.NewSaleStore()
	auth := service.NewAuthService(users, sales, service.NewSessionManager())
	return auth, service.NewSalesService(sales)
}

func TestRegisterLoginFlow(t *testing.T) {
	auth, _ := newAuthService(t)

	require.NoError(t, auth.Register("alice", "alice123"))

	t.Run("Login issues a session", func(t *testing.T) {
		resp, err := auth.Login("alice", "alice123")
		require.NoError(t, err)
		require.NotEmpty(t, resp.Token)
		assert.Equal(t, "alice", resp.Username)
		assert.Equal(t, models.RoleStandard, resp.Role)

		session := auth.Session(resp.Token)
		assert.Equal(t, "alice", session.Username)
		assert.False(t, session.IsAdmin())
	})

	t.Run("Tokens are unique per login", func(t *testing.T) {
		first, err := auth.Login("alice", "alice123")
		require.NoError(t, err)
		second, err := auth.Login("alice", "alice123")
		require.NoError(t, err)
		assert.NotEqual(t, first.Token, second.Token)
	})

	t.Run("Admin login carries the admin role", func(t *testing.T) {
		resp, err := auth.Login("admin", "admin")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, resp.Role)
		assert.True(t, auth.Session(resp.Token).IsAdmin())
	})

	t.Run("Wrong password is rejected", func(t *testing.T) {
		_, err := auth.Login("alice", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("Unknown user is rejected", func(t *testing.T) {
		_, err := auth.Login("mallory", "alice123")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestRegisterValidation(t *testing.T) {
	auth, _ := newAuthService(t)

	assert.ErrorIs(t, auth.Register("  ", "password"), service.ErrInvalid)
	assert.ErrorIs(t, auth.Register("alice", ""), service.ErrInvalid)

	require.NoError(t, auth.Register("alice", "alice123"))
	assert.ErrorIs(t, auth.Register("alice", "other"), service.ErrUsernameTaken)
}

func TestLogoutRevokesSession(t *testing.T) {
	auth, _ := newAuthService(t)
	require.NoError(t, auth.Register("alice", "alice123"))

	resp, err := auth.Login("alice", "alice123")
	require.NoError(t, err)

	auth.Logout(resp.Token)
	assert.True(t, auth.Session(resp.Token).Guest())

	// Logging out an unknown token is harmless.
	auth.Logout("nope")
}

func TestDeleteUserCascades(t *testing.T) {
	auth, sales := newAuthService(t)
	require.NoError(t, auth.Register("alice", "alice123"))
	require.NoError(t, auth.Register("bob", "bob456"))

	login, err := auth.Login("alice", "alice123")
	require.NoError(t, err)

	_, err = sales.Create(aliceSession, saleRequest("John Smith"))
	require.NoError(t, err)
	_, err = sales.Create(bobSession, saleRequest("Emma Johnson"))
	require.NoError(t, err)

	t.Run("Non-admin is denied", func(t *testing.T) {
		assert.ErrorIs(t, auth.DeleteUser(aliceSession, "bob"), service.ErrUnauthorized)
	})

	t.Run("Admin account is protected", func(t *testing.T) {
		assert.ErrorIs(t, auth.DeleteUser(adminSession, "admin"), service.ErrUnauthorized)
	})

	t.Run("Missing user reports not found", func(t *testing.T) {
		assert.ErrorIs(t, auth.DeleteUser(adminSession, "mallory"), service.ErrNotFound)
	})

	t.Run("Deletion removes owned sales and revokes sessions", func(t *testing.T) {
		require.NoError(t, auth.DeleteUser(adminSession, "alice"))

		assert.Len(t, sales.List(adminSession), 1)
		assert.True(t, auth.Session(login.Token).Guest())

		// Cascade deletions are not undoable.
		_, err := sales.Undo(adminSession)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestListUsers(t *testing.T) {
	auth, sales := newAuthService(t)
	require.NoError(t, auth.Register("alice", "alice123"))
	require.NoError(t, auth.Register("bob", "bob456"))
	require.NoError(t, auth.Register("charlie", "charlie789"))

	// alice: 2 orders, 1 pending, 5 items. bob: 1 order, 1 pending, 3 items.
	_, err := sales.Create(aliceSession, saleRequest("John Smith"))
	require.NoError(t, err)
	pending := saleRequest("Emma Johnson")
	pending.Status = models.StatusPending
	pending.Quantity = 3
	_, err = sales.Create(aliceSession, pending)
	require.NoError(t, err)
	pendingBob := saleRequest("Robert Brown")
	pendingBob.Status = models.StatusPending
	pendingBob.Quantity = 3
	_, err = sales.Create(bobSession, pendingBob)
	require.NoError(t, err)

	t.Run("Non-admin is denied", func(t *testing.T) {
		_, err := auth.ListUsers(aliceSession, "")
		assert.ErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("Excludes admin and recomputes stats", func(t *testing.T) {
		items, err := auth.ListUsers(adminSession, "")
		require.NoError(t, err)
		require.Len(t, items, 3)

		byName := map[string]models.UserListItem{}
		for _, item := range items {
			byName[item.Username] = item
		}
		assert.Equal(t, models.UserStats{TotalOrders: 2, PendingOrders: 1, ItemsSold: 5}, byName["alice"].UserStats)
		assert.Equal(t, models.UserStats{TotalOrders: 1, PendingOrders: 1, ItemsSold: 3}, byName["bob"].UserStats)
		assert.Equal(t, models.UserStats{}, byName["charlie"].UserStats)
	})

	t.Run("Sorts descending by key", func(t *testing.T) {
		items, err := auth.ListUsers(adminSession, service.UserSortTotalOrders)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "alice", items[0].Username)
		assert.Equal(t, "charlie", items[2].Username)

		items, err = auth.ListUsers(adminSession, service.UserSortItemsSold)
		require.NoError(t, err)
		assert.Equal(t, "alice", items[0].Username)
	})

	t.Run("Unknown sort key is rejected", func(t *testing.T) {
		_, err := auth.ListUsers(adminSession, "height")
		assert.ErrorIs(t, err, service.ErrInvalid)
	})
}

func TestFindUser(t *testing.T) {
	auth, sales := newAuthService(t)
	require.NoError(t, auth.Register("diana", "diana012"))
	require.NoError(t, auth.Register("alice", "alice123"))
	require.NoError(t, auth.Register("bob", "bob456"))

	_, err := sales.Create(aliceSession, saleRequest("John Smith"))
	require.NoError(t, err)

	t.Run("Non-admin is denied", func(t *testing.T) {
		_, err := auth.FindUser(aliceSession, "bob")
		assert.ErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("Finds regardless of registration order", func(t *testing.T) {
		for _, username := range []string{"alice", "bob", "diana", "admin"} {
			item, err := auth.FindUser(adminSession, username)
			require.NoError(t, err, username)
			assert.Equal(t, username, item.Username)
		}
	})

	t.Run("Case-insensitive match", func(t *testing.T) {
		item, err := auth.FindUser(adminSession, "ALICE")
		require.NoError(t, err)
		assert.Equal(t, "alice", item.Username)
		assert.Equal(t, 1, item.TotalOrders)
	})

	t.Run("Missing user reports not found", func(t *testing.T) {
		_, err := auth.FindUser(adminSession, "mallory")
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}
