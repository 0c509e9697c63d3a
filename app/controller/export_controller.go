package controller

import (
	"log"
	"net/http"

	"salestrack/export"
	"salestrack/service"
)

// ExportController handles the admin CSV export endpoint
type ExportController struct {
	sales    *service.SalesService
	auth     *service.AuthService
	exporter *export.Exporter
}

// NewExportController creates a new ExportController
func NewExportController(sales *service.SalesService, auth *service.AuthService, exporter *export.Exporter) *ExportController {
	return &ExportController{sales: sales, auth: auth, exporter: exporter}
}

// Export handles POST /admin/export, writing every sale to a timestamped
// CSV blob. Admin-only.
// Example response:
// {"key": "exports/sales-20260829T103000.csv", "size": 412, "contentType": "text/csv"}
func (c *ExportController) Export(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ExportSales: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := c.auth.Session(r.Header.Get(SessionHeader))
	if !session.IsAdmin() {
		log.Printf("❌ ExportSales: unauthorized attempt by user=%q", session.Username)
		http.Error(w, service.ErrUnauthorized.Error(), http.StatusForbidden)
		return
	}

	info, err := c.exporter.Export(r.Context(), c.sales.List(session))
	if err != nil {
		log.Printf("❌ ExportSales: %v", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"key":         info.Key,
		"size":        info.Size,
		"contentType": info.ContentType,
	})
}
