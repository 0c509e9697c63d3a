package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"salestrack/models"
	"salestrack/service"
)

// SaleController handles HTTP requests for sale CRUD and undo
type SaleController struct {
	sales *service.SalesService
	auth  *service.AuthService
}

// NewSaleController creates a new SaleController
func NewSaleController(sales *service.SalesService, auth *service.AuthService) *SaleController {
	return &SaleController{sales: sales, auth: auth}
}

// Collection handles /sales: GET lists the sales visible to the session,
// POST creates a new sale owned by it.
// Example create request:
// {
//   "customerName": "John Smith",
//   "item": "Laptop",
//   "unitPrice": 850.00,
//   "quantity": 2,
//   "status": "Completed",
//   "paymentStatus": "Paid",
//   "contactNumber": "9876543210"
// }
func (c *SaleController) Collection(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Sales: Received %s request to %s", r.Method, r.URL.Path)
	session := c.auth.Session(r.Header.Get(SessionHeader))

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, models.NewSaleListResponse(c.sales.List(session)))
	case http.MethodPost:
		var req models.SaleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("❌ CreateSale: Failed to decode request body: %v", err)
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		sale, err := c.sales.Create(session, req)
		if err != nil {
			http.Error(w, err.Error(), statusForError(err))
			return
		}
		writeJSON(w, http.StatusCreated, models.NewSaleResponse(sale))
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ByID handles /sales/{id}: GET fetches, PUT updates, DELETE removes.
// Example response:
// {
//   "id": "SALE001",
//   "customerName": "John Smith",
//   "item": "Laptop",
//   "unitPrice": 850.00,
//   "quantity": 2,
//   "status": "Completed",
//   "paymentStatus": "Paid",
//   "saleDate": "2026-08-25T10:30:00Z",
//   "owner": "alice",
//   "total": 1700.00
// }
func (c *SaleController) ByID(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SaleByID: Received %s request to %s", r.Method, r.URL.Path)

	id := strings.TrimPrefix(r.URL.Path, "/sales/")
	if id == "" {
		http.Error(w, "sale id parameter is required", http.StatusBadRequest)
		return
	}
	if strings.Contains(id, "/") {
		http.Error(w, "invalid path format", http.StatusBadRequest)
		return
	}

	session := c.auth.Session(r.Header.Get(SessionHeader))

	switch r.Method {
	case http.MethodGet:
		sale, err := c.sales.Get(session, id)
		if err != nil {
			http.Error(w, err.Error(), statusForError(err))
			return
		}
		writeJSON(w, http.StatusOK, models.NewSaleResponse(sale))
	case http.MethodPut:
		var req models.SaleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("❌ UpdateSale: Failed to decode request body: %v", err)
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		sale, err := c.sales.Update(session, id, req)
		if err != nil {
			http.Error(w, err.Error(), statusForError(err))
			return
		}
		writeJSON(w, http.StatusOK, models.NewSaleResponse(sale))
	case http.MethodDelete:
		if err := c.sales.Delete(session, id); err != nil {
			http.Error(w, err.Error(), statusForError(err))
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Undo handles POST /sales/undo, restoring the most recently deleted sale
// when the session is authorized to own that restoration.
func (c *SaleController) Undo(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UndoDelete: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := c.auth.Session(r.Header.Get(SessionHeader))
	restored, err := c.sales.Undo(session)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			// Empty undo stack is not a client fault.
			writeJSON(w, http.StatusOK, models.UndoResponse{})
			return
		}
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	resp := models.NewSaleResponse(restored)
	writeJSON(w, http.StatusOK, models.UndoResponse{Restored: &resp})
}
