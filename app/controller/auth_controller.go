package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"salestrack/models"
	"salestrack/service"
)

// AuthController handles HTTP requests for registration and sessions
type AuthController struct {
	auth *service.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(auth *service.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register handles POST /auth/register
// Example request:
// {"username": "alice", "password": "alice123"}
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Register: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Register: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := c.auth.Register(req.Username, req.Password); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"username": req.Username})
}

// Login handles POST /auth/login
// Example request:
// {"username": "alice", "password": "alice123"}
// Example response:
// {"token": "8f14e45f-ceea-4672-8cd5-1b3f1c9b7d10", "username": "alice", "role": "standard"}
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Login: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Login: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	resp, err := c.auth.Login(req.Username, req.Password)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Logout handles POST /auth/logout. The session token is revoked
// unconditionally; logging out an unknown token succeeds.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Logout: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	c.auth.Logout(r.Header.Get(SessionHeader))
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
