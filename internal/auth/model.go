package auth

import "time"

const (
	RoleTraveler = "TRAVELER"
	RoleAgent    = "AGENT"
)

// User is an account holder: a traveler who books or an agent who authors
// tours.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func validRole(role string) bool {
	return role == RoleTraveler || role == RoleAgent
}
