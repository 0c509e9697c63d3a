package router

import (
	"net/http"

	"salestrack/app/controller"
	"salestrack/metrics"
)

type Controllers struct {
	Auth      *controller.AuthController
	Sale      *controller.SaleController
	Search    *controller.SearchController
	Dashboard *controller.DashboardController
	User      *controller.UserController
	Export    *controller.ExportController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Prometheus metrics
	http.Handle("/metrics", metrics.Handler())

	// Auth routes
	http.HandleFunc("/auth/register", controllers.Auth.Register)
	http.HandleFunc("/auth/login", controllers.Auth.Login)
	http.HandleFunc("/auth/logout", controllers.Auth.Logout)

	// Sales routes
	// List and create
	http.HandleFunc("/sales", controllers.Sale.Collection)

	// Undo last delete
	http.HandleFunc("/sales/undo", controllers.Sale.Undo)

	// Recently added sales
	http.HandleFunc("/sales/recent", controllers.Search.Recent)

	// Sorted listings
	http.HandleFunc("/sales/sorted", controllers.Search.Sorted)

	// Searches (exact paths win over the /sales/ prefix below)
	http.HandleFunc("/sales/search", controllers.Search.Search)
	http.HandleFunc("/sales/search/id", controllers.Search.SearchByID)

	// Sale by ID - handles GET (get), PUT (update) and DELETE
	http.HandleFunc("/sales/", controllers.Sale.ByID)

	// Dashboard routes
	http.HandleFunc("/dashboard/stats", controllers.Dashboard.Stats)
	http.HandleFunc("/dashboard/revenue", controllers.Dashboard.Revenue)

	// Admin user management
	http.HandleFunc("/admin/users", controllers.User.List)
	http.HandleFunc("/admin/users/", controllers.User.ByUsername)

	// Admin CSV export
	http.HandleFunc("/admin/export", controllers.Export.Export)
}
