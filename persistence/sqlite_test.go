package persistence_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salestrack/models"
	"salestrack/persistence"
)

func testSnapshot() persistence.Snapshot {
	return persistence.Snapshot{
		Sales: []models.Sale{{
			ID:            "SALE001",
			CustomerName:  "John Smith",
			Item:          "Laptop",
			UnitPrice:     850.00,
			Quantity:      2,
			Status:        models.StatusCompleted,
			PaymentStatus: models.PaymentPaid,
			SaleDate:      time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC),
			Owner:         "alice",
		}},
		Users: persistence.SnapshotUsers([]models.User{
			{Username: "admin", PasswordHash: "$2a$10$adminhash", Role: models.RoleAdmin},
			{Username: "alice", PasswordHash: "$2a$10$alicehash", Role: models.RoleStandard},
		}),
		Counter: 2,
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	p, err := persistence.NewSQLite(path)
	require.NoError(t, err)
	defer p.Close()

	ctx := context.Background()

	t.Run("Empty database reports not found", func(t *testing.T) {
		_, found, err := p.Load(ctx)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Save then load restores the snapshot", func(t *testing.T) {
		want := testSnapshot()
		require.NoError(t, p.Save(ctx, want))

		got, found, err := p.Load(ctx)
		require.NoError(t, err)
		require.True(t, found)

		assert.Equal(t, want.Counter, got.Counter)
		require.Len(t, got.Sales, 1)
		assert.Equal(t, "SALE001", got.Sales[0].ID)
		assert.Equal(t, "alice", got.Sales[0].Owner)
		assert.True(t, want.Sales[0].SaleDate.Equal(got.Sales[0].SaleDate))

		users := persistence.RestoreUsers(got.Users)
		require.Len(t, users, 2)
		assert.Equal(t, "$2a$10$alicehash", users[1].PasswordHash)
		assert.Equal(t, models.RoleAdmin, users[0].Role)
	})

	t.Run("Save overwrites the previous snapshot", func(t *testing.T) {
		next := testSnapshot()
		next.Sales = append(next.Sales, models.Sale{ID: "SALE002", CustomerName: "Emma Johnson", Owner: "bob"})
		next.Counter = 3
		require.NoError(t, p.Save(ctx, next))

		got, found, err := p.Load(ctx)
		require.NoError(t, err)
		require.True(t, found)
		assert.Len(t, got.Sales, 2)
		assert.Equal(t, int64(3), got.Counter)
	})
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	p, err := persistence.NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, p.Save(ctx, testSnapshot()))
	require.NoError(t, p.Close())

	reopened, err := persistence.NewSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, found, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, got.Sales, 1)
}
