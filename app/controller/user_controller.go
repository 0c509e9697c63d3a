package controller

import (
	"log"
	"net/http"
	"strings"

	"salestrack/models"
	"salestrack/service"
)

// UserController handles admin HTTP requests for user management
type UserController struct {
	auth *service.AuthService
}

// NewUserController creates a new UserController
func NewUserController(auth *service.AuthService) *UserController {
	return &UserController{auth: auth}
}

// List handles GET /admin/users?sort=totalOrders|pendingOrders|itemsSold
// Example response:
// {"users": [{"username": "alice", "role": "standard", "totalOrders": 3, "pendingOrders": 1, "itemsSold": 6}]}
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListUsers: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := c.auth.Session(r.Header.Get(SessionHeader))
	items, err := c.auth.ListUsers(session, r.URL.Query().Get("sort"))
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, models.UserListResponse{Users: items})
}

// ByUsername handles /admin/users/{username}: GET looks up a single user
// via binary search over the registry, DELETE removes the account plus
// every sale it owns.
func (c *UserController) ByUsername(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UserByUsername: Received %s request to %s", r.Method, r.URL.Path)

	username := strings.TrimPrefix(r.URL.Path, "/admin/users/")
	if username == "" {
		http.Error(w, "username parameter is required", http.StatusBadRequest)
		return
	}
	if strings.Contains(username, "/") {
		http.Error(w, "invalid path format", http.StatusBadRequest)
		return
	}

	session := c.auth.Session(r.Header.Get(SessionHeader))

	switch r.Method {
	case http.MethodGet:
		item, err := c.auth.FindUser(session, username)
		if err != nil {
			http.Error(w, err.Error(), statusForError(err))
			return
		}
		writeJSON(w, http.StatusOK, item)
	case http.MethodDelete:
		if err := c.auth.DeleteUser(session, username); err != nil {
			http.Error(w, err.Error(), statusForError(err))
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"deleted": username})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
