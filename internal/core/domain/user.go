package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailInUse         = errors.New("email is already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSelfModification   = errors.New("modifying own account is not allowed")
)

// ValidRole reports whether role is one of the known access tiers.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleCustomer
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 10

// MaxPasswordBytes is the longest password bcrypt can hash.
const MaxPasswordBytes = 72
