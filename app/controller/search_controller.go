package controller

import (
	"log"
	"net/http"

	"salestrack/models"
	"salestrack/service"
)

// SearchController handles HTTP requests for search, sorted listings and
// the recent-sales view. Every operation is scoped to the session's role
// by the service layer.
type SearchController struct {
	sales *service.SalesService
	auth  *service.AuthService
}

// NewSearchController creates a new SearchController
func NewSearchController(sales *service.SalesService, auth *service.AuthService) *SearchController {
	return &SearchController{sales: sales, auth: auth}
}

// Search handles GET /sales/search?by=customer|status|payment&q=...
// Example response:
// {"sales": [{"id": "SALE001", "customerName": "John Smith", ...}]}
func (c *SearchController) Search(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SearchSales: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	by := r.URL.Query().Get("by")
	q := r.URL.Query().Get("q")
	session := c.auth.Session(r.Header.Get(SessionHeader))

	var results []models.Sale
	switch by {
	case "customer":
		results = c.sales.SearchByCustomerName(session, q)
	case "status":
		if !models.ValidStatus(q) {
			http.Error(w, "unknown status value", http.StatusBadRequest)
			return
		}
		results = c.sales.SearchByStatus(session, q)
	case "payment":
		if !models.ValidPaymentStatus(q) {
			http.Error(w, "unknown paymentStatus value", http.StatusBadRequest)
			return
		}
		results = c.sales.SearchByPaymentStatus(session, q)
	default:
		http.Error(w, "by parameter must be customer, status or payment", http.StatusBadRequest)
		return
	}

	log.Printf("✅ SearchSales: by=%s matched %d sales", by, len(results))
	writeJSON(w, http.StatusOK, models.NewSaleListResponse(results))
}

// SearchByID handles GET /sales/search/id?q=SALE001, the binary-search
// lookup over the session's visible record set.
func (c *SearchController) SearchByID(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SearchByID: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "q parameter is required", http.StatusBadRequest)
		return
	}

	session := c.auth.Session(r.Header.Get(SessionHeader))
	sale, err := c.sales.BinarySearchByID(session, q)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSaleResponse(sale))
}

// Sorted handles GET /sales/sorted?by=date|price|quantity, returning the
// session's visible sales in the requested order.
func (c *SearchController) Sorted(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SortedSales: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := c.auth.Session(r.Header.Get(SessionHeader))

	var results []models.Sale
	switch r.URL.Query().Get("by") {
	case "date":
		results = c.sales.SortedByDate(session)
	case "price":
		results = c.sales.SortedByPrice(session)
	case "quantity":
		results = c.sales.SortedByQuantity(session)
	default:
		http.Error(w, "by parameter must be date, price or quantity", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, models.NewSaleListResponse(results))
}

// Recent handles GET /sales/recent, the bounded recently-added view
func (c *SearchController) Recent(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 RecentSales: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := c.auth.Session(r.Header.Get(SessionHeader))
	writeJSON(w, http.StatusOK, models.NewSaleListResponse(c.sales.Recent(session)))
}
