package models

// Session carries the authenticated caller identity. A zero Session is a
// guest: not logged in and denied all record access. Sessions are passed
// explicitly to every operation so concurrent callers never share identity.
type Session struct {
	Username string
	Role     Role
}

// Guest returns true when no user is bound to the session
func (s Session) Guest() bool {
	return s.Username == ""
}

// IsAdmin returns true when the session has admin capabilities
func (s Session) IsAdmin() bool {
	return !s.Guest() && s.Role == RoleAdmin
}

// DashboardStatsResponse carries display-ready dashboard figures
// Example response:
// {"totalOrders": "3", "pendingOrders": "1", "itemsSold": "6"}
type DashboardStatsResponse struct {
	TotalOrders   string `json:"totalOrders"`
	PendingOrders string `json:"pendingOrders"`
	ItemsSold     string `json:"itemsSold"`
}

// RevenueResponse carries the computed revenue plus a display-ready form
// Example response:
// {"revenue": 1700.00, "display": "$1,700.00"}
type RevenueResponse struct {
	Revenue float64 `json:"revenue"`
	Display string  `json:"display"`
}
