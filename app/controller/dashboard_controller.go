package controller

import (
	"log"
	"net/http"
	"strconv"

	"salestrack/models"
	"salestrack/service"
	"salestrack/utils"
)

// DashboardController handles HTTP requests for the dashboard figures.
// Figures are recomputed on every request over the sales visible to the
// session.
type DashboardController struct {
	sales *service.SalesService
	auth  *service.AuthService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(sales *service.SalesService, auth *service.AuthService) *DashboardController {
	return &DashboardController{sales: sales, auth: auth}
}

// Stats handles GET /dashboard/stats
// Example response:
// {"totalOrders": "3", "pendingOrders": "1", "itemsSold": "6"}
func (c *DashboardController) Stats(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DashboardStats: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := c.auth.Session(r.Header.Get(SessionHeader))
	stats := c.sales.DashboardStats(session)
	writeJSON(w, http.StatusOK, models.DashboardStatsResponse{
		TotalOrders:   strconv.Itoa(stats.TotalOrders),
		PendingOrders: strconv.Itoa(stats.PendingOrders),
		ItemsSold:     strconv.Itoa(stats.ItemsSold),
	})
}

// Revenue handles GET /dashboard/revenue
// Example response:
// {"revenue": 1700.00, "display": "$1,700.00"}
func (c *DashboardController) Revenue(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DashboardRevenue: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := c.auth.Session(r.Header.Get(SessionHeader))
	revenue := c.sales.TotalRevenue(session)
	log.Printf("💰 DashboardRevenue: user=%q revenue=%s", session.Username, utils.FormatUSD(revenue))
	writeJSON(w, http.StatusOK, models.RevenueResponse{
		Revenue: revenue,
		Display: utils.FormatUSD(revenue),
	})
}
