// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and other common operations.
package utils

import (
	"context"

	"github.com/MKhiriev/go-identity/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// SubjectIDCtxKey is the key used to store the authenticated account
// identifier in the context. Used together with GetSubjectIDFromContext for
// type-safe retrieval of the account ID from context.Context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.SubjectIDCtxKey, "0190a8c0-...")
var SubjectIDCtxKey = contextKey("subjectID")

// AccountKindCtxKey is the key used to store the audience of the
// authenticated account ("user" or "admin") in the context.
var AccountKindCtxKey = contextKey("accountKind")

// GetSubjectIDFromContext retrieves the authenticated account identifier
// from the context.
//
// Returns the account ID and an ok flag:
//   - ok == true  — value is found and has the correct string type
//   - ok == false — value is missing or has an unexpected type
//
// Example usage:
//
//	subjectID, ok := utils.GetSubjectIDFromContext(ctx)
//	if !ok {
//	    // handle missing subject in context
//	}
func GetSubjectIDFromContext(ctx context.Context) (string, bool) {
	subjectID, ok := ctx.Value(SubjectIDCtxKey).(string)
	return subjectID, ok
}

// GetAccountKindFromContext retrieves the audience of the authenticated
// account from the context.
func GetAccountKindFromContext(ctx context.Context) (models.AccountKind, bool) {
	kind, ok := ctx.Value(AccountKindCtxKey).(models.AccountKind)
	return kind, ok
}
