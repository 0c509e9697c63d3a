package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"salestrack/metrics"
	"salestrack/models"
	"salestrack/store"
)

// SalesService is the access-control layer over the sale store. Every
// operation takes the caller's session explicitly and filters or denies
// against it: admins see everything, standard users see only records they
// own, guests see nothing. Denied reads report ErrNotFound so record
// existence never leaks; denied writes report ErrUnauthorized and are
// logged.
type SalesService struct {
	sales *store.SaleStore
}

// NewSalesService creates the access-control layer over a sale store
func NewSalesService(sales *store.SaleStore) *SalesService {
	return &SalesService{sales: sales}
}

// canView reports whether the session may read the given sale
func (s *SalesService) canView(session models.Session, sale models.Sale) bool {
	if session.IsAdmin() {
		return true
	}
	if session.Guest() || sale.Owner == "" {
		return false
	}
	return sale.Owner == session.Username
}

// canModify reports whether the session may mutate the given sale. The
// rule matches canView: admin, or exact owner match; an unowned record is
// never self-owned by a standard user.
func (s *SalesService) canModify(session models.Session, sale models.Sale) bool {
	return s.canView(session, sale)
}

// scoped returns the record set visible to the session: the whole store
// for admins, the owner-filtered subset for standard users, nothing for
// guests.
func (s *SalesService) scoped(session models.Session) []models.Sale {
	if session.IsAdmin() {
		return s.sales.Snapshot()
	}
	if session.Guest() {
		return nil
	}
	return s.sales.SnapshotByOwner(session.Username)
}

// validate applies the input rules for create and update payloads
func validate(req models.SaleRequest) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalid)
	}
	if strings.TrimSpace(req.Item) == "" {
		return fmt.Errorf("%w: item is required", ErrInvalid)
	}
	if req.UnitPrice < 0 {
		return fmt.Errorf("%w: unitPrice must not be negative", ErrInvalid)
	}
	if req.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalid)
	}
	if !models.ValidStatus(req.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, req.Status)
	}
	if !models.ValidPaymentStatus(req.PaymentStatus) {
		return fmt.Errorf("%w: unknown paymentStatus %q", ErrInvalid, req.PaymentStatus)
	}
	return nil
}

func saleFromRequest(req models.SaleRequest) models.Sale {
	sale := models.Sale{
		CustomerName:  req.CustomerName,
		Item:          req.Item,
		UnitPrice:     req.UnitPrice,
		Quantity:      req.Quantity,
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		ContactNumber: req.ContactNumber,
	}
	if req.SaleDate != nil {
		sale.SaleDate = *req.SaleDate
	}
	return sale
}

// Create adds a new sale owned by the session. Admin-created sales carry
// the SYSTEM sentinel owner. Guests are denied.
func (s *SalesService) Create(session models.Session, req models.SaleRequest) (models.Sale, error) {
	if session.Guest() {
		log.Printf("❌ CreateSale: guest session denied")
		metrics.AuthorizationFailures.Inc()
		return models.Sale{}, ErrUnauthorized
	}
	if err := validate(req); err != nil {
		return models.Sale{}, err
	}

	sale := saleFromRequest(req)
	if session.IsAdmin() {
		sale.Owner = models.SystemOwner
	} else {
		sale.Owner = session.Username
	}
	if sale.SaleDate.IsZero() {
		sale.SaleDate = time.Now()
	}

	added, err := s.sales.Add(sale)
	if err != nil {
		return models.Sale{}, fmt.Errorf("add sale: %w", err)
	}
	metrics.SalesCreated.Inc()
	log.Printf("✅ CreateSale: added %s for owner=%s", added.ID, added.Owner)
	return added, nil
}

// Get returns the sale with the given ID if the session may see it.
// Missing and forbidden records are indistinguishable.
func (s *SalesService) Get(session models.Session, id string) (models.Sale, error) {
	sale, found := s.sales.GetByID(id)
	if !found {
		return models.Sale{}, ErrNotFound
	}
	if !s.canView(session, sale) {
		log.Printf("❌ GetSale: unauthorized access attempt to %s by user=%q", id, session.Username)
		metrics.AuthorizationFailures.Inc()
		return models.Sale{}, ErrNotFound
	}
	return sale, nil
}

// List returns the sales visible to the session in insertion order
func (s *SalesService) List(session models.Session) []models.Sale {
	return s.scoped(session)
}

// Update replaces the sale with the given ID. The original owner is
// preserved even when the replacement payload declares a different one.
func (s *SalesService) Update(session models.Session, id string, req models.SaleRequest) (models.Sale, error) {
	if err := validate(req); err != nil {
		return models.Sale{}, err
	}

	existing, found := s.sales.GetByID(id)
	if !found {
		return models.Sale{}, ErrNotFound
	}
	if !s.canModify(session, existing) {
		log.Printf("❌ UpdateSale: unauthorized update attempt on %s by user=%q", id, session.Username)
		metrics.AuthorizationFailures.Inc()
		return models.Sale{}, ErrUnauthorized
	}

	updated := saleFromRequest(req)
	updated.Owner = req.Owner // the store keeps the original owner regardless
	if !s.sales.Update(id, updated) {
		return models.Sale{}, ErrNotFound
	}
	sale, _ := s.sales.GetByID(id)
	log.Printf("✅ UpdateSale: updated %s", id)
	return sale, nil
}

// Delete removes the sale with the given ID, making it restorable via a
// single Undo call.
func (s *SalesService) Delete(session models.Session, id string) error {
	sale, found := s.sales.GetByID(id)
	if !found {
		return ErrNotFound
	}
	if !s.canModify(session, sale) {
		log.Printf("❌ DeleteSale: unauthorized delete attempt on %s by user=%q", id, session.Username)
		metrics.AuthorizationFailures.Inc()
		return ErrUnauthorized
	}
	if !s.sales.Delete(id) {
		return ErrNotFound
	}
	metrics.SalesDeleted.Inc()
	log.Printf("✅ DeleteSale: deleted %s", id)
	return nil
}

// Undo restores the most recently deleted sale, re-authorizing the
// restoration against the calling session before committing it. With an
// empty undo stack it reports ErrNotFound and leaves the collection
// untouched.
func (s *SalesService) Undo(session models.Session) (models.Sale, error) {
	restored, ok, denied := s.sales.Undo(func(candidate models.Sale) bool {
		return s.canModify(session, candidate)
	})
	if denied {
		log.Printf("❌ UndoDelete: unauthorized undo attempt by user=%q", session.Username)
		metrics.AuthorizationFailures.Inc()
		return models.Sale{}, ErrUnauthorized
	}
	if !ok {
		return models.Sale{}, ErrNotFound
	}
	metrics.SalesRestored.Inc()
	log.Printf("✅ UndoDelete: restored %s", restored.ID)
	return restored, nil
}

// Recent returns the bounded recent-sales view for the session. Admins
// see the whole queue; standard users see up to the five most recent of
// their own records in insertion order.
func (s *SalesService) Recent(session models.Session) []models.Sale {
	if session.Guest() {
		return nil
	}
	all := s.sales.Recent()
	if session.IsAdmin() {
		return all
	}
	mine := make([]models.Sale, 0, len(all))
	for _, sale := range all {
		if sale.Owner != "" && sale.Owner == session.Username {
			mine = append(mine, sale)
		}
	}
	return mine
}

// TotalRevenue sums the totals of every sale visible to the session,
// recomputed on each call.
func (s *SalesService) TotalRevenue(session models.Session) float64 {
	total := 0.0
	for _, sale := range s.scoped(session) {
		total += sale.Total()
	}
	return total
}

// DashboardStats returns (totalOrders, pendingOrders, itemsSold) over the
// sales visible to the session, recomputed on each call.
func (s *SalesService) DashboardStats(session models.Session) models.UserStats {
	return statsOver(s.scoped(session))
}

// statsOver aggregates dashboard figures over an arbitrary record set
func statsOver(sales []models.Sale) models.UserStats {
	stats := models.UserStats{TotalOrders: len(sales)}
	for _, sale := range sales {
		if strings.EqualFold(sale.Status, models.StatusPending) {
			stats.PendingOrders++
		}
		stats.ItemsSold += sale.Quantity
	}
	return stats
}
