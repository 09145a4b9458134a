package store

import (
	"context"

	"github.com/MKhiriev/go-identity/models"
)

// UserRepository is the data-access contract for end-user accounts.
//
// Lookup methods take an includeDeleted flag: the default (false) excludes
// soft-deleted rows so that signin and public profile fetches can never see
// them; admin-scoped paths pass true so that disabled accounts can be found
// and reactivated. Identifier lookups are case-insensitive.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, userID string, includeDeleted bool) (models.User, error)
	FindUserByUsername(ctx context.Context, username string, includeDeleted bool) (models.User, error)
	FindUserByEmail(ctx context.Context, email string, includeDeleted bool) (models.User, error)
	// FindUserByIdentifier resolves identifier as username-or-email.
	FindUserByIdentifier(ctx context.Context, identifier string, includeDeleted bool) (models.User, error)
	// UpdateUser applies a partial update. Keys of fields are column names;
	// updated_at is always refreshed. Returns the canonical updated row.
	UpdateUser(ctx context.Context, userID string, fields map[string]any) (models.User, error)
	CountUsers(ctx context.Context) (int64, error)
	ListUsers(ctx context.Context, query models.UserListQuery) (models.UserList, error)
}

// AdminRepository is the data-access contract for administrator accounts.
// Admins have no soft-delete lifecycle, so there is no include-deleted
// variant.
type AdminRepository interface {
	CreateAdmin(ctx context.Context, admin models.Admin) (models.Admin, error)
	FindAdminByID(ctx context.Context, adminID string) (models.Admin, error)
	FindAdminByUsername(ctx context.Context, username string) (models.Admin, error)
	CountAdmins(ctx context.Context) (int64, error)
	ListAdmins(ctx context.Context) ([]models.Admin, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
