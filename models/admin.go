package models

import "time"

// AdminRole is the privilege tier of an administrator account. Roles are a
// fixed two-level hierarchy: super-admins manage the admin roster itself,
// regular admins manage end-user accounts.
type AdminRole int

const (
	// RoleSuperAdmin may create new administrators and list the roster in
	// addition to everything [RoleAdmin] can do.
	RoleSuperAdmin AdminRole = 0

	// RoleAdmin may inspect and manage end-user accounts.
	RoleAdmin AdminRole = 1
)

// String implements [fmt.Stringer] for log output.
func (r AdminRole) String() string {
	switch r {
	case RoleSuperAdmin:
		return "super_admin"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Admin represents an administrator account. Admins are provisioned by other
// admins (or by startup bootstrap) and have no signup, verification, or
// soft-delete lifecycle.
type Admin struct {
	// AdminID is the opaque unique identifier of the administrator.
	AdminID string `json:"id"`

	// Name is the display name of the administrator.
	Name string `json:"name"`

	// Username is the unique (case-insensitive) login handle.
	Username string `json:"username"`

	// PasswordHash stores the bcrypt digest of the admin's password.
	// Never serialised to JSON.
	PasswordHash string `json:"-"`

	// Role is the privilege tier. Authorisation decisions re-read this from
	// storage rather than trusting token claims.
	Role AdminRole `json:"role"`

	// CreatedAt and UpdatedAt are maintained by the persistence layer.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Admin model.
func (a Admin) TableName() string {
	return "admins"
}
