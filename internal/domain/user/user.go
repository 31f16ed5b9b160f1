// Package user defines the registered user entity and its repository
// interface. Registration is independent of sessions: creating a user does
// not establish a session for the device.
package user

import "time"

// Role is the access level assigned to a registered user.
type Role string

const (
	RoleMember Role = "member"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
)

// User represents a registered member of the cooperative.
type User struct {
	ID           string     `json:"id"`
	FullName     string     `json:"fullName"`
	DateOfBirth  string     `json:"dateOfBirth"`
	PasswordHash string     `json:"-"` // Never serialize password hash
	Role         Role       `json:"role"`
	RegisteredAt time.Time  `json:"registeredAt"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}

// Repository defines the operations for persisting User entities.
type Repository interface {
	All() ([]User, error)
	FindByID(id string) (*User, error)
	// FindByName matches full names case-insensitively.
	FindByName(fullName string) (*User, error)
	// ExistsByName reports a case-insensitive full name match.
	ExistsByName(fullName string) (bool, error)
	Store(u User) error
	// UpdateLastLogin stamps the user's last login time. Returns false when
	// no user matches the id.
	UpdateLastLogin(id string, at time.Time) (bool, error)
}
