package domain

import (
	"time"

	"github.com/google/uuid"
)

// User-related domain errors.
var (
	ErrUserNotFound       = &Error{Code: ENOTFOUND, Message: "User not found"}
	ErrEmailTaken         = &Error{Code: ECONFLICT, Message: "An account with this email already exists"}
	ErrInvalidCredentials = &Error{Code: EUNAUTHORIZED, Message: "Invalid email or password"}
	ErrAccountDisabled    = &Error{Code: EFORBIDDEN, Message: "Account is disabled"}
)

// Role names seeded by migrations. Role IDs are stable and referenced by
// users.role_id.
const (
	RoleCustomer = "customer"
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// Role is a named capability set assigned to users.
type Role struct {
	ID   int32
	Name string
}

// Permission is a single capability code, e.g. "returns.decide".
type Permission struct {
	ID          int32
	Code        string
	Description string
}

// User is an account holder. Inactive users cannot authenticate.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	RoleID       int32
	RoleName     string
	Active       bool
	CreatedAt    time.Time
}

// IsStaff reports whether the user holds a back-office role.
func (u *User) IsStaff() bool {
	return u.RoleName == RoleEmployee || u.RoleName == RoleAdmin
}

// CreateUserParams contains the fields required to register a user.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	RoleID       int32
}
