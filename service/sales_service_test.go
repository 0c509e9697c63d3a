package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salestrack/models"
	"salestrack/service"
	"salestrack/store"
)

var (
	adminSession = models.Session{Username: "admin", Role: models.RoleAdmin}
	aliceSession = models.Session{Username: "alice", Role: models.RoleStandard}
	bobSession   = models.Session{Username: "bob", Role: models.RoleStandard}
	guestSession = models.Session{}
)

func newService(t *testing.T) *service.SalesService {
	t.Helper()
	return service.NewSalesService(store.NewSaleStore())
}

func saleRequest(customer string) models.SaleRequest {
	return models.SaleRequest{
		CustomerName:  customer,
		Item:          "Laptop",
		UnitPrice:     850.00,
		Quantity:      2,
		Status:        models.StatusCompleted,
		PaymentStatus: models.PaymentPaid,
		ContactNumber: "9876543210",
	}
}

func TestCreateAssignsOwner(t *testing.T) {
	svc := newService(t)

	t.Run("Standard user owns the sale", func(t *testing.T) {
		sale, err := svc.Create(aliceSession, saleRequest("John Smith"))
		require.NoError(t, err)
		assert.Equal(t, "alice", sale.Owner)
		assert.Equal(t, "SALE001", sale.ID)
		assert.False(t, sale.SaleDate.IsZero())
	})

	t.Run("Admin sales carry the system owner", func(t *testing.T) {
		sale, err := svc.Create(adminSession, saleRequest("Emma Johnson"))
		require.NoError(t, err)
		assert.Equal(t, models.SystemOwner, sale.Owner)
	})

	t.Run("Guest is denied", func(t *testing.T) {
		_, err := svc.Create(guestSession, saleRequest("Robert Brown"))
		assert.ErrorIs(t, err, service.ErrUnauthorized)
	})
}

func TestCreateValidation(t *testing.T) {
	svc := newService(t)

	cases := []struct {
		name   string
		mutate func(*models.SaleRequest)
	}{
		{"missing customer name", func(r *models.SaleRequest) { r.CustomerName = "  " }},
		{"missing item", func(r *models.SaleRequest) { r.Item = "" }},
		{"negative price", func(r *models.SaleRequest) { r.UnitPrice = -1 }},
		{"zero quantity", func(r *models.SaleRequest) { r.Quantity = 0 }},
		{"unknown status", func(r *models.SaleRequest) { r.Status = "Shipped" }},
		{"unknown payment status", func(r *models.SaleRequest) { r.PaymentStatus = "Cash" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := saleRequest("John Smith")
			tc.mutate(&req)
			_, err := svc.Create(aliceSession, req)
			assert.ErrorIs(t, err, service.ErrInvalid)
		})
	}
}

func TestGetHidesForeignRecords(t *testing.T) {
	svc := newService(t)
	sale, err := svc.Create(aliceSession, saleRequest("John Smith"))
	require.NoError(t, err)

	t.Run("Owner reads own sale", func(t *testing.T) {
		got, err := svc.Get(aliceSession, sale.ID)
		require.NoError(t, err)
		assert.Equal(t, sale.ID, got.ID)
	})

	t.Run("Admin reads any sale", func(t *testing.T) {
		_, err := svc.Get(adminSession, sale.ID)
		assert.NoError(t, err)
	})

	t.Run("Foreign user sees not found", func(t *testing.T) {
		_, err := svc.Get(bobSession, sale.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("Guest sees not found", func(t *testing.T) {
		_, err := svc.Get(guestSession, sale.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("Missing sale is indistinguishable", func(t *testing.T) {
		_, err := svc.Get(aliceSession, "SALE404")
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestListScopesByRole(t *testing.T) {
	svc := newService(t)
	svc.Create(aliceSession, saleRequest("John Smith"))
	svc.Create(bobSession, saleRequest("Emma Johnson"))
	svc.Create(adminSession, saleRequest("Robert Brown"))

	assert.Len(t, svc.List(adminSession), 3)
	assert.Len(t, svc.List(aliceSession), 1)
	assert.Empty(t, svc.List(guestSession))
}

func TestSystemOwnedSalesAreAdminOnly(t *testing.T) {
	svc := newService(t)
	sale, err := svc.Create(adminSession, saleRequest("Robert Brown"))
	require.NoError(t, err)

	_, err = svc.Get(aliceSession, sale.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Empty(t, svc.List(aliceSession))
}

func TestUpdatePreservesOwner(t *testing.T) {
	svc := newService(t)
	sale, err := svc.Create(aliceSession, saleRequest("John Smith"))
	require.NoError(t, err)

	req := saleRequest("Jane Smith")
	req.Owner = "mallory"
	updated, err := svc.Update(adminSession, sale.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Owner)
	assert.Equal(t, "Jane Smith", updated.CustomerName)
}

func TestUpdateAuthorization(t *testing.T) {
	svc := newService(t)
	sale, err := svc.Create(aliceSession, saleRequest("John Smith"))
	require.NoError(t, err)

	t.Run("Foreign user is denied", func(t *testing.T) {
		_, err := svc.Update(bobSession, sale.ID, saleRequest("Jane Smith"))
		assert.ErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("Missing sale reports not found", func(t *testing.T) {
		_, err := svc.Update(aliceSession, "SALE404", saleRequest("Jane Smith"))
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("Invalid payload rejected before authorization", func(t *testing.T) {
		req := saleRequest("Jane Smith")
		req.Quantity = -1
		_, err := svc.Update(bobSession, sale.ID, req)
		assert.ErrorIs(t, err, service.ErrInvalid)
	})
}

func TestDeleteAndUndoAuthorization(t *testing.T) {
	svc := newService(t)
	sale, err := svc.Create(aliceSession, saleRequest("John Smith"))
	require.NoError(t, err)

	t.Run("Foreign delete is denied", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(bobSession, sale.ID), service.ErrUnauthorized)
	})

	t.Run("Owner deletes", func(t *testing.T) {
		require.NoError(t, svc.Delete(aliceSession, sale.ID))
	})

	t.Run("Foreign undo is denied and non-destructive", func(t *testing.T) {
		_, err := svc.Undo(bobSession)
		assert.ErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("Owner undo restores", func(t *testing.T) {
		restored, err := svc.Undo(aliceSession)
		require.NoError(t, err)
		assert.Equal(t, sale.ID, restored.ID)
	})

	t.Run("Empty undo stack reports not found", func(t *testing.T) {
		_, err := svc.Undo(aliceSession)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestRecentIsRoleFiltered(t *testing.T) {
	svc := newService(t)
	svc.Create(aliceSession, saleRequest("John Smith"))
	svc.Create(bobSession, saleRequest("Emma Johnson"))
	svc.Create(aliceSession, saleRequest("Robert Brown"))

	assert.Len(t, svc.Recent(adminSession), 3)
	assert.Len(t, svc.Recent(aliceSession), 2)
	assert.Empty(t, svc.Recent(guestSession))
}

func TestTotalRevenue(t *testing.T) {
	svc := newService(t)
	assert.Zero(t, svc.TotalRevenue(adminSession))

	svc.Create(aliceSession, saleRequest("John Smith")) // 850.00 x 2
	req := saleRequest("Emma Johnson")
	req.UnitPrice = 25.50
	req.Quantity = 3
	svc.Create(bobSession, req) // 25.50 x 3

	assert.InDelta(t, 1776.50, svc.TotalRevenue(adminSession), 0.001)
	assert.InDelta(t, 1700.00, svc.TotalRevenue(aliceSession), 0.001)
	assert.Zero(t, svc.TotalRevenue(guestSession))
}

func TestDashboardStats(t *testing.T) {
	svc := newService(t)

	t.Run("Empty store", func(t *testing.T) {
		assert.Equal(t, models.UserStats{}, svc.DashboardStats(adminSession))
	})

	t.Run("Aggregates over visible sales", func(t *testing.T) {
		first := saleRequest("John Smith")
		first.Quantity = 1
		svc.Create(aliceSession, first)
		pending := saleRequest("Emma Johnson")
		pending.Status = models.StatusPending
		pending.Quantity = 2
		svc.Create(aliceSession, pending)
		third := saleRequest("Robert Brown")
		third.Quantity = 3
		svc.Create(aliceSession, third)
		svc.Create(bobSession, saleRequest("Sarah Williams")) // quantity 2

		assert.Equal(t, models.UserStats{TotalOrders: 3, PendingOrders: 1, ItemsSold: 6}, svc.DashboardStats(aliceSession))
		assert.Equal(t, models.UserStats{TotalOrders: 4, PendingOrders: 1, ItemsSold: 8}, svc.DashboardStats(adminSession))
		assert.Equal(t, models.UserStats{}, svc.DashboardStats(guestSession))
	})
}

func TestCreateKeepsProvidedSaleDate(t *testing.T) {
	svc := newService(t)
	when := time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)
	req := saleRequest("John Smith")
	req.SaleDate = &when

	sale, err := svc.Create(aliceSession, req)
	require.NoError(t, err)
	assert.True(t, sale.SaleDate.Equal(when))
}
