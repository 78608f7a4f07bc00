package domain

import "time"

// User represents an authenticated identity in the platform.
type User struct {
	ID             string    `json:"id"`
	Login          string    `json:"login"`
	HashedPassword string    `json:"-"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

// DefaultRole is assigned when registration omits a role.
const DefaultRole = "user"
