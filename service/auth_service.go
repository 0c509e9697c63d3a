package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"salestrack/metrics"
	"salestrack/models"
	"salestrack/store"
)

// User listing sort keys
const (
	UserSortTotalOrders   = "totalOrders"
	UserSortPendingOrders = "pendingOrders"
	UserSortItemsSold     = "itemsSold"
)

// AuthService manages accounts and sessions: registration, login/logout,
// admin user management. Deleting a user cascades to every sale the user
// owns.
type AuthService struct {
	users    *store.UserRegistry
	sales    *store.SaleStore
	sessions *SessionManager
}

// NewAuthService creates the account and session service
func NewAuthService(users *store.UserRegistry, sales *store.SaleStore, sessions *SessionManager) *AuthService {
	return &AuthService{users: users, sales: sales, sessions: sessions}
}

// Register creates a new standard account
func (s *AuthService) Register(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is required", ErrInvalid)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalid)
	}
	if err := s.users.Register(username, password); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			log.Printf("❌ Register: username taken: %s", username)
			return ErrUsernameTaken
		}
		return fmt.Errorf("register user: %w", err)
	}
	log.Printf("✅ Register: created user %s", username)
	return nil
}

// Login verifies credentials and issues a session token
func (s *AuthService) Login(username, password string) (models.LoginResponse, error) {
	user, ok := s.users.Authenticate(username, password)
	if !ok {
		log.Printf("❌ Login: invalid credentials for %q", username)
		metrics.LoginFailures.Inc()
		return models.LoginResponse{}, ErrInvalidCredentials
	}
	token := s.sessions.Issue(models.Session{Username: user.Username, Role: user.Role})
	log.Printf("✅ Login: user %s logged in", user.Username)
	return models.LoginResponse{Token: token, Username: user.Username, Role: user.Role}, nil
}

// Logout revokes the given token unconditionally
func (s *AuthService) Logout(token string) {
	s.sessions.Revoke(token)
}

// Session resolves a token to a session; unknown tokens resolve to guest
func (s *AuthService) Session(token string) models.Session {
	return s.sessions.Lookup(token)
}

// DeleteUser removes a user account plus every sale the user owns and
// revokes the user's active sessions. Admin-only; the admin account
// itself is always refused.
func (s *AuthService) DeleteUser(session models.Session, username string) error {
	if !session.IsAdmin() {
		log.Printf("❌ DeleteUser: unauthorized attempt by user=%q", session.Username)
		metrics.AuthorizationFailures.Inc()
		return ErrUnauthorized
	}
	if err := s.users.Delete(username); err != nil {
		if errors.Is(err, store.ErrAdminProtected) {
			return ErrUnauthorized
		}
		return ErrNotFound
	}

	removed := s.sales.RemoveByOwner(username)
	s.sessions.RevokeUser(username)
	log.Printf("✅ DeleteUser: removed user %s and %d owned sales", username, removed)
	return nil
}

// ListUsers returns every registered account except admin, with stats
// recomputed from the sale collection. sortKey optionally orders the list
// descending by totalOrders, pendingOrders or itemsSold. Admin-only.
func (s *AuthService) ListUsers(session models.Session, sortKey string) ([]models.UserListItem, error) {
	if !session.IsAdmin() {
		log.Printf("❌ ListUsers: unauthorized attempt by user=%q", session.Username)
		metrics.AuthorizationFailures.Inc()
		return nil, ErrUnauthorized
	}

	sales := s.sales.Snapshot()
	items := make([]models.UserListItem, 0)
	for _, user := range s.users.Snapshot() {
		if user.Username == store.AdminUsername {
			continue
		}
		items = append(items, models.UserListItem{
			Username:  user.Username,
			Role:      user.Role,
			UserStats: userStats(user.Username, sales),
		})
	}

	switch sortKey {
	case UserSortTotalOrders:
		bubbleSortUsers(items, func(a, b models.UserListItem) bool { return a.TotalOrders < b.TotalOrders })
	case UserSortPendingOrders:
		bubbleSortUsers(items, func(a, b models.UserListItem) bool { return a.PendingOrders < b.PendingOrders })
	case UserSortItemsSold:
		bubbleSortUsers(items, func(a, b models.UserListItem) bool { return a.ItemsSold < b.ItemsSold })
	case "":
	default:
		return nil, fmt.Errorf("%w: unknown sort key %q", ErrInvalid, sortKey)
	}
	return items, nil
}

// FindUser locates a user by username with a binary search over a sorted
// copy of the registry, matching case-insensitively. Admin-only.
func (s *AuthService) FindUser(session models.Session, username string) (models.UserListItem, error) {
	if !session.IsAdmin() {
		log.Printf("❌ FindUser: unauthorized attempt by user=%q", session.Username)
		metrics.AuthorizationFailures.Inc()
		return models.UserListItem{}, ErrUnauthorized
	}

	sorted := s.users.Snapshot()
	n := len(sorted)
	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-i-1; j++ {
			if compareFold(sorted[j].Username, sorted[j+1].Username) > 0 {
				sorted[j], sorted[j+1] = sorted[j+1], sorted[j]
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}

	low := 0
	high := len(sorted) - 1
	for low <= high {
		mid := low + (high-low)/2
		comparison := compareFold(sorted[mid].Username, username)
		if comparison == 0 {
			return models.UserListItem{
				Username:  sorted[mid].Username,
				Role:      sorted[mid].Role,
				UserStats: userStats(sorted[mid].Username, s.sales.Snapshot()),
			}, nil
		}
		if comparison < 0 {
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	return models.UserListItem{}, ErrNotFound
}

// userStats recomputes a user's order statistics over a sale snapshot
func userStats(username string, sales []models.Sale) models.UserStats {
	stats := models.UserStats{}
	for _, sale := range sales {
		if sale.Owner == "" || sale.Owner != username {
			continue
		}
		stats.TotalOrders++
		if strings.EqualFold(sale.Status, models.StatusPending) {
			stats.PendingOrders++
		}
		stats.ItemsSold += sale.Quantity
	}
	return stats
}

// bubbleSortUsers orders user items descending by the given key
func bubbleSortUsers(items []models.UserListItem, less func(a, b models.UserListItem) bool) {
	n := len(items)
	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-i-1; j++ {
			if less(items[j], items[j+1]) {
				items[j], items[j+1] = items[j+1], items[j]
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
}
