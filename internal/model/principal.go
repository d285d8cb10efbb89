package model

type Role string

const (
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
	RoleUser    Role = "user"
	RoleGuest   Role = "guest"
)

func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

// Principal is the authenticated caller as supplied by the auth boundary.
// This service never authenticates; it only authorizes store scope.
type Principal struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	StoreID string `json:"store_id"`
}
