package service

import (
	"strings"

	"salestrack/models"
)

// Search and sort operations of the access-control layer. Every entry
// point scopes the record set by the caller's role before filtering, so
// there is no unrestricted variant a standard user could reach. Sorts
// operate on snapshot copies; the canonical insertion order of the store
// is never mutated.

// SearchByCustomerName returns the visible sales whose customer name
// contains the query, case-insensitively.
func (s *SalesService) SearchByCustomerName(session models.Session, name string) []models.Sale {
	needle := strings.ToLower(name)
	results := make([]models.Sale, 0)
	for _, sale := range s.scoped(session) {
		if strings.Contains(strings.ToLower(sale.CustomerName), needle) {
			results = append(results, sale)
		}
	}
	return results
}

// SearchByStatus returns the visible sales with a case-insensitively
// matching order status.
func (s *SalesService) SearchByStatus(session models.Session, status string) []models.Sale {
	results := make([]models.Sale, 0)
	for _, sale := range s.scoped(session) {
		if strings.EqualFold(sale.Status, status) {
			results = append(results, sale)
		}
	}
	return results
}

// SearchByPaymentStatus returns the visible sales with a
// case-insensitively matching payment status.
func (s *SalesService) SearchByPaymentStatus(session models.Session, paymentStatus string) []models.Sale {
	results := make([]models.Sale, 0)
	for _, sale := range s.scoped(session) {
		if strings.EqualFold(sale.PaymentStatus, paymentStatus) {
			results = append(results, sale)
		}
	}
	return results
}

// BinarySearchByID locates a sale by ID within the visible record set.
// The set is copied and sorted by ID first; ordering and matching use
// case-insensitive lexicographic comparison, and the bisection stops at
// the first match. Agrees with a linear scan for every present or absent
// ID. Missing and forbidden IDs are indistinguishable.
func (s *SalesService) BinarySearchByID(session models.Session, id string) (models.Sale, error) {
	sorted := s.scoped(session)
	bubbleSortByID(sorted)

	low := 0
	high := len(sorted) - 1
	for low <= high {
		mid := low + (high-low)/2
		comparison := compareFold(sorted[mid].ID, id)
		if comparison == 0 {
			return sorted[mid], nil
		}
		if comparison < 0 {
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	return models.Sale{}, ErrNotFound
}

// SortedByDate returns the visible sales sorted newest first
func (s *SalesService) SortedByDate(session models.Session) []models.Sale {
	sales := s.scoped(session)
	bubbleSort(sales, func(a, b models.Sale) bool {
		return a.SaleDate.Before(b.SaleDate)
	})
	return sales
}

// SortedByPrice returns the visible sales sorted by unit price ascending
func (s *SalesService) SortedByPrice(session models.Session) []models.Sale {
	sales := s.scoped(session)
	bubbleSort(sales, func(a, b models.Sale) bool {
		return a.UnitPrice > b.UnitPrice
	})
	return sales
}

// SortedByQuantity returns the visible sales sorted by quantity ascending
func (s *SalesService) SortedByQuantity(session models.Session) []models.Sale {
	sales := s.scoped(session)
	bubbleSort(sales, func(a, b models.Sale) bool {
		return a.Quantity > b.Quantity
	})
	return sales
}

// bubbleSort sorts in place, swapping adjacent elements whenever
// outOfOrder reports true, with the early-exit pass optimization.
func bubbleSort(sales []models.Sale, outOfOrder func(a, b models.Sale) bool) {
	n := len(sales)
	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-i-1; j++ {
			if outOfOrder(sales[j], sales[j+1]) {
				sales[j], sales[j+1] = sales[j+1], sales[j]
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
}

// bubbleSortByID orders sales by ID using case-insensitive comparison
func bubbleSortByID(sales []models.Sale) {
	bubbleSort(sales, func(a, b models.Sale) bool {
		return compareFold(a.ID, b.ID) > 0
	})
}

// compareFold compares two strings case-insensitively, returning the
// usual negative/zero/positive ordering result.
func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
