package store

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"salestrack/models"
)

const (
	saleIDPrefix        = "SALE"
	recentSalesCapacity = 5
)

// SaleStore owns the canonical ordered collection of sales, the monotonic
// ID generator, the bounded recent-sales queue and the LIFO undo stack of
// deleted sales. All accessors return snapshot copies, never live slices,
// so callers cannot mutate internal state.
//
// The store is safe for concurrent use. OnChange, when set, is invoked
// outside the lock after every successful mutation.
type SaleStore struct {
	mu       sync.RWMutex
	sales    []models.Sale
	counter  int64
	recent   *RecentQueue
	deleted  *UndoStack
	OnChange func()
}

// NewSaleStore creates an empty sale store
func NewSaleStore() *SaleStore {
	return &SaleStore{
		counter: 1,
		recent:  NewRecentQueue(recentSalesCapacity),
		deleted: NewUndoStack(),
	}
}

// nextID formats the monotonic counter as a zero-padded ID such as
// "SALE001". The format widens naturally past 999; the counter is never
// reset or reused, even across deletions.
func (s *SaleStore) nextID() string {
	id := fmt.Sprintf("%s%03d", saleIDPrefix, s.counter)
	s.counter++
	return id
}

// Add inserts a new sale, assigning its ID. Insertion never fails under
// normal conditions; the error return exists for unexpected internal
// faults only.
func (s *SaleStore) Add(sale models.Sale) (models.Sale, error) {
	s.mu.Lock()
	sale.ID = s.nextID()
	for _, existing := range s.sales {
		if existing.ID == sale.ID {
			s.mu.Unlock()
			log.Printf("❌ Add: duplicate sale id generated: %s", sale.ID)
			return models.Sale{}, fmt.Errorf("duplicate sale id %s", sale.ID)
		}
	}
	s.sales = append(s.sales, sale)
	s.recent.Offer(sale)
	s.mu.Unlock()

	s.notify()
	return sale, nil
}

// GetByID returns the first sale with an exactly matching ID
func (s *SaleStore) GetByID(id string) (models.Sale, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sale := range s.sales {
		if sale.ID == id {
			return sale, true
		}
	}
	return models.Sale{}, false
}

// Update replaces the sale with the given ID in place. The original owner
// is preserved regardless of what the replacement declares, and the ID is
// immutable. Returns false when no sale matches.
func (s *SaleStore) Update(id string, updated models.Sale) bool {
	s.mu.Lock()
	for i, existing := range s.sales {
		if existing.ID == id {
			updated.ID = existing.ID
			updated.Owner = existing.Owner
			if updated.SaleDate.IsZero() {
				updated.SaleDate = existing.SaleDate
			}
			s.sales[i] = updated
			s.mu.Unlock()
			s.notify()
			return true
		}
	}
	s.mu.Unlock()
	return false
}

// Delete removes the sale with the given ID, pushing it onto the undo
// stack first. Returns false when no sale matches.
func (s *SaleStore) Delete(id string) bool {
	s.mu.Lock()
	for i, sale := range s.sales {
		if sale.ID == id {
			s.deleted.Push(sale)
			s.sales = append(s.sales[:i], s.sales[i+1:]...)
			s.mu.Unlock()
			s.notify()
			return true
		}
	}
	s.mu.Unlock()
	return false
}

// Undo restores the most recently deleted sale if allow approves it.
// The callback sees the candidate before the pop is committed, so an
// unauthorized caller leaves the stack untouched. The second return is
// true only when a restoration happened; denied is true when allow
// rejected the candidate.
func (s *SaleStore) Undo(allow func(models.Sale) bool) (restored models.Sale, ok bool, denied bool) {
	s.mu.Lock()
	candidate, found := s.deleted.Peek()
	if !found {
		s.mu.Unlock()
		return models.Sale{}, false, false
	}
	if allow != nil && !allow(candidate) {
		s.mu.Unlock()
		return models.Sale{}, false, true
	}
	sale, _ := s.deleted.Pop()
	s.sales = append(s.sales, sale)
	s.mu.Unlock()

	s.notify()
	return sale, true, false
}

// Snapshot returns a copy of all sales in insertion order
func (s *SaleStore) Snapshot() []models.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Sale, len(s.sales))
	copy(out, s.sales)
	return out
}

// SnapshotByOwner returns a copy of the sales owned by the given username
func (s *SaleStore) SnapshotByOwner(owner string) []models.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Sale, 0)
	for _, sale := range s.sales {
		if sale.Owner != "" && sale.Owner == owner {
			out = append(out, sale)
		}
	}
	return out
}

// Recent returns a snapshot of the bounded recent-sales queue in
// insertion order
func (s *SaleStore) Recent() []models.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recent.Items()
}

// RemoveByOwner deletes every sale owned by the given username and
// returns how many were removed. Removed sales bypass the undo stack:
// cascade deletion is not undoable.
func (s *SaleStore) RemoveByOwner(owner string) int {
	s.mu.Lock()
	kept := s.sales[:0]
	removed := 0
	for _, sale := range s.sales {
		if sale.Owner != "" && sale.Owner == owner {
			removed++
			continue
		}
		kept = append(kept, sale)
	}
	s.sales = kept
	s.mu.Unlock()

	if removed > 0 {
		s.notify()
	}
	return removed
}

// Count returns the number of live sales
func (s *SaleStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sales)
}

// ExportState returns the persistable state: the sale snapshot and the
// next counter value. The undo stack and recent queue are runtime-only.
func (s *SaleStore) ExportState() ([]models.Sale, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Sale, len(s.sales))
	copy(out, s.sales)
	return out, s.counter
}

// ImportState replaces the store contents with a previously exported
// snapshot. The counter is clamped so newly generated IDs stay unique
// even against a stale snapshot.
func (s *SaleStore) ImportState(sales []models.Sale, counter int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = make([]models.Sale, len(sales))
	copy(s.sales, sales)
	if counter > s.counter {
		s.counter = counter
	}
	for _, sale := range s.sales {
		if n, ok := parseCounter(sale.ID); ok && n >= s.counter {
			s.counter = n + 1
		}
	}
}

func parseCounter(id string) (int64, bool) {
	if !strings.HasPrefix(id, saleIDPrefix) {
		return 0, false
	}
	var n int64
	if _, err := fmt.Sscanf(id[len(saleIDPrefix):], "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}

func (s *SaleStore) notify() {
	if s.OnChange != nil {
		s.OnChange()
	}
}
