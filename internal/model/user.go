package model

import "time"

// Role is the access-control role assigned to a user at registration.
// It is immutable afterwards; there is no role-change operation.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleSupervisor Role = "supervisor"
	RoleUser       Role = "user"
	RoleSuperuser  Role = "superuser"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSupervisor, RoleUser, RoleSuperuser:
		return true
	}
	return false
}

// User represents an account in the identity store.
// PasswordHash is a bcrypt digest; plaintext credentials are never persisted.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Position     *string   `json:"position,omitempty"`
	Organization *string   `json:"organization,omitempty"`
	Address      *string   `json:"address,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
