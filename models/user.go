package models

import (
	"strings"
	"time"
)

// User represents an end-user account progressing through the two-phase
// signup flow. It contains identity attributes, credential data, and the
// soft-delete lifecycle state.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the opaque unique identifier of the user, assigned at
	// creation and immutable afterwards.
	UserID string `json:"id"`

	// Username is the unique (case-insensitive) user handle. Normalised to
	// lower case and trimmed before it is written to storage.
	Username string `json:"username"`

	// Email is the unique (case-insensitive) address of the user. Normalised
	// the same way as Username.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt digest of the user's password.
	// This value MUST be a derived value, never plaintext, and is never
	// serialised to JSON.
	PasswordHash string `json:"-"`

	// FullName is the display name collected during the second signup phase.
	FullName string `json:"full_name,omitempty"`

	// College is an optional profile attribute collected during the second
	// signup phase. Searchable in admin listings.
	College string `json:"college,omitempty"`

	// StepOneComplete marks that credentials were accepted and the account
	// record exists.
	StepOneComplete bool `json:"step_one_complete"`

	// StepTwoComplete marks that profile details were supplied. Signup is
	// complete only when both phase flags are set.
	StepTwoComplete bool `json:"step_two_complete"`

	// IsVerified reports whether ownership of Email has been proven via a
	// one-time code.
	IsVerified bool `json:"is_verified"`

	// EmailVerifiedAt is the time the email was verified, nil until then.
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`

	// IsActive is the soft-delete lifecycle flag. A non-nil DeletedAt implies
	// IsActive == false, but an account may be deactivated without being
	// deleted.
	IsActive bool `json:"is_active"`

	// DeletedAt is the soft-delete timestamp. Accounts with a non-nil
	// DeletedAt never appear in default lookups; admin-scoped lookups
	// include them.
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	// PasswordResetCount is incremented by exactly one on every successful
	// password reset.
	PasswordResetCount int `json:"password_reset_count"`

	// LastPasswordReset is the time of the most recent successful password
	// reset, nil if the password was never reset.
	LastPasswordReset *time.Time `json:"last_password_reset,omitempty"`

	// CreatedAt and UpdatedAt are maintained by the persistence layer.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsSignupComplete reports whether both signup phases have been completed.
func (u User) IsSignupComplete() bool {
	return u.StepOneComplete && u.StepTwoComplete
}

// CanSignIn reports whether the account satisfies every signin gate:
// signup complete, email verified, active, and not soft-deleted.
func (u User) CanSignIn() bool {
	return u.IsSignupComplete() && u.IsVerified && u.IsActive && u.DeletedAt == nil
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// NormalizeIdentifier lower-cases and trims an identifier (username or email)
// so that lookups and uniqueness checks are case-insensitive.
func NormalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
