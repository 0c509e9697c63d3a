package store

import "salestrack/models"

// RecentQueue is a bounded FIFO of the most recently added sales. Once the
// capacity is exceeded the oldest entry is evicted. Not safe for concurrent
// use on its own; the owning SaleStore guards it.
type RecentQueue struct {
	items    []models.Sale
	capacity int
}

// NewRecentQueue creates a queue bounded to the given capacity
func NewRecentQueue(capacity int) *RecentQueue {
	return &RecentQueue{capacity: capacity}
}

// Offer enqueues a sale, evicting the oldest entry past capacity
func (q *RecentQueue) Offer(sale models.Sale) {
	q.items = append(q.items, sale)
	if len(q.items) > q.capacity {
		q.items = q.items[1:]
	}
}

// Size returns the number of queued sales
func (q *RecentQueue) Size() int {
	return len(q.items)
}

// Items returns a snapshot copy of the queued sales in insertion order
func (q *RecentQueue) Items() []models.Sale {
	out := make([]models.Sale, len(q.items))
	copy(out, q.items)
	return out
}
