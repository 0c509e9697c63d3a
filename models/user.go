package models

// Role identifies the capability level of a user
type Role string

// User roles. Admin sessions have unrestricted access to all records and users.
const (
	RoleAdmin    Role = "admin"
	RoleStandard Role = "standard"
)

// User represents a registered account. PasswordHash is a bcrypt hash and
// is never serialized.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}

// UserStats holds per-user statistics recomputed on demand from the sale
// collection, never stored authoritatively.
type UserStats struct {
	TotalOrders   int `json:"totalOrders"`
	PendingOrders int `json:"pendingOrders"`
	ItemsSold     int `json:"itemsSold"`
}

// RegisterRequest represents the request body for registering a user
// Example: {"username": "alice", "password": "alice123"}
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login
// Example response:
// {
//   "token": "8f14e45f-ceea-4672-8cd5-1b3f1c9b7d10",
//   "username": "alice",
//   "role": "standard"
// }
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// UserListItem represents a user in an admin listing, with recomputed stats
type UserListItem struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	UserStats
}

// UserListResponse represents the response for listing users
type UserListResponse struct {
	Users []UserListItem `json:"users"`
}
