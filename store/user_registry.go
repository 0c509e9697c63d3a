package store

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"salestrack/models"
)

// AdminUsername is the reserved account seeded at startup. It carries the
// admin role and can never be deleted.
const AdminUsername = "admin"

// Registry errors
var (
	ErrUsernameTaken  = errors.New("username already registered")
	ErrUserNotFound   = errors.New("user not found")
	ErrAdminProtected = errors.New("admin account cannot be deleted")
)

// UserRegistry owns the registered user accounts. Passwords are stored as
// bcrypt hashes only. Safe for concurrent use. OnChange, when set, is
// invoked after every successful mutation.
type UserRegistry struct {
	mu       sync.RWMutex
	users    []models.User
	OnChange func()
}

// NewUserRegistry creates a registry seeded with the admin account
func NewUserRegistry(adminPassword string) (*UserRegistry, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &UserRegistry{
		users: []models.User{{
			Username:     AdminUsername,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		}},
	}, nil
}

// Register creates a new standard user. Usernames are case-sensitive
// identity keys; a collision fails with ErrUsernameTaken.
func (r *UserRegistry) Register(username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	r.mu.Lock()
	for _, user := range r.users {
		if user.Username == username {
			r.mu.Unlock()
			return ErrUsernameTaken
		}
	}
	r.users = append(r.users, models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleStandard,
	})
	r.mu.Unlock()

	r.notify()
	return nil
}

// Authenticate verifies credentials and returns the matching user
func (r *UserRegistry) Authenticate(username, password string) (models.User, bool) {
	r.mu.RLock()
	var found models.User
	var ok bool
	for _, user := range r.users {
		if user.Username == username {
			found = user
			ok = true
			break
		}
	}
	r.mu.RUnlock()

	if !ok {
		return models.User{}, false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)); err != nil {
		return models.User{}, false
	}
	return found, true
}

// Get returns the user with the given username
func (r *UserRegistry) Get(username string) (models.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Username == username {
			return user, true
		}
	}
	return models.User{}, false
}

// Delete removes a user account. The admin account is refused with
// ErrAdminProtected; a missing username fails with ErrUserNotFound.
func (r *UserRegistry) Delete(username string) error {
	if username == AdminUsername {
		return ErrAdminProtected
	}

	r.mu.Lock()
	for i, user := range r.users {
		if user.Username == username {
			r.users = append(r.users[:i], r.users[i+1:]...)
			r.mu.Unlock()
			r.notify()
			return nil
		}
	}
	r.mu.Unlock()
	return ErrUserNotFound
}

// Snapshot returns a copy of all registered users
func (r *UserRegistry) Snapshot() []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.User, len(r.users))
	copy(out, r.users)
	return out
}

// ImportState replaces the registry contents with a previously exported
// snapshot. The admin account is re-seeded if the snapshot lacks one.
func (r *UserRegistry) ImportState(users []models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(users) == 0 {
		return
	}
	imported := make([]models.User, len(users))
	copy(imported, users)
	hasAdmin := false
	for _, user := range imported {
		if user.Username == AdminUsername {
			hasAdmin = true
			break
		}
	}
	if !hasAdmin {
		for _, user := range r.users {
			if user.Username == AdminUsername {
				imported = append([]models.User{user}, imported...)
				break
			}
		}
	}
	r.users = imported
}

func (r *UserRegistry) notify() {
	if r.OnChange != nil {
		r.OnChange()
	}
}
