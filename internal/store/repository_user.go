// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles user account creation, lookup, partial updates, and the
// administrative listing against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// scanUser reads one row of [userColumns] into a [models.User]. Shared by
// every user query so the column order lives in exactly one place besides the
// SQL itself.
func scanUser(row interface{ Scan(dest ...any) error }, user *models.User) error {
	return row.Scan(
		&user.UserID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FullName, &user.College,
		&user.StepOneComplete, &user.StepTwoComplete,
		&user.IsVerified, &user.EmailVerifiedAt,
		&user.IsActive, &user.DeletedAt,
		&user.PasswordResetCount, &user.LastPasswordReset,
		&user.CreatedAt, &user.UpdatedAt,
	)
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned defaults (lifecycle flags, CreatedAt).
//
// The INSERT uses the [createUser] prepared query which returns all columns
// via a RETURNING clause, so the caller receives the canonical database
// representation of the newly created account. Username and Email are
// expected to be normalised already; the lower-cased unique indexes are the
// authoritative guard against concurrent duplicates.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrAlreadyExists].
//   - Transient driver failures → [ErrStorageUnavailable]; anything else is
//     wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.UserID, user.Username, user.Email, user.PasswordHash)

	var created models.User
	if err := scanUser(row, &created); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: creating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrAlreadyExists
		default:
			return models.User{}, r.db.wrapDBError(err)
		}
	}

	return created, nil
}

// FindUserByID retrieves a user record by its opaque identifier. Soft-deleted
// rows are excluded unless includeDeleted is set.
//
// Error handling:
//   - No matching row → [ErrUserNotFound].
//   - Transient driver failures → [ErrStorageUnavailable]; anything else is
//     wrapped as "unexpected DB error".
func (r *userRepository) FindUserByID(ctx context.Context, userID string, includeDeleted bool) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByID", findUserByID, userID, includeDeleted)
}

// FindUserByUsername retrieves a user record by its case-insensitive handle.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string, includeDeleted bool) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByUsername", findUserByUsername, models.NormalizeIdentifier(username), includeDeleted)
}

// FindUserByEmail retrieves a user record by its case-insensitive address.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string, includeDeleted bool) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByEmail", findUserByEmail, models.NormalizeIdentifier(email), includeDeleted)
}

// FindUserByIdentifier retrieves a user record whose username or email
// matches the identifier, case-insensitively. Used by signin, where the
// client submits a single identifier field.
func (r *userRepository) FindUserByIdentifier(ctx context.Context, identifier string, includeDeleted bool) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByIdentifier", findUserByIdentifier, models.NormalizeIdentifier(identifier), includeDeleted)
}

func (r *userRepository) findUser(ctx context.Context, caller string, query string, arg string, includeDeleted bool) (models.User, error) {
	log := logger.FromContext(ctx)

	if !includeDeleted {
		query += notDeleted
	}

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, query+";", arg)

	if err := scanUser(row, &foundUser); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", caller).Msg("error: finding user")
		return models.User{}, r.db.wrapDBError(err)
	}

	return foundUser, nil
}

// UpdateUser applies a partial update to a user record and returns the
// canonical updated row. Map keys are column names; updated_at is always
// refreshed server-side.
//
// Error handling:
//   - Empty field set → [ErrNoFieldsToUpdate].
//   - PostgreSQL unique_violation (23505) → [ErrAlreadyExists].
//   - No matching row → [ErrUserNotFound].
func (r *userRepository) UpdateUser(ctx context.Context, userID string, fields map[string]any) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(userID, fields)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error: building update query")
		return models.User{}, err
	}

	var updated models.User
	row := r.db.QueryRowContext(ctx, query, args...)

	if err := scanUser(row, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error: updating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrAlreadyExists
		default:
			return models.User{}, r.db.wrapDBError(err)
		}
	}

	return updated, nil
}

// CountUsers returns the total number of user records, soft-deleted ones
// included.
func (r *userRepository) CountUsers(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	var total int64
	if err := r.db.QueryRowContext(ctx, countUsers).Scan(&total); err != nil {
		log.Err(err).Str("func", "*userRepository.CountUsers").Msg("error: counting users")
		return 0, r.db.wrapDBError(err)
	}

	return total, nil
}

// ListUsers returns one page of the administrative user listing together
// with the total number of matching rows. The page query and the COUNT query
// share one filter set, so Total is always consistent with the page content.
func (r *userRepository) ListUsers(ctx context.Context, query models.UserListQuery) (models.UserList, error) {
	log := logger.FromContext(ctx)

	query = query.Normalize()

	countQuery, countArgs, err := buildCountUsersQuery(query)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: building count query")
		return models.UserList{}, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: counting matching users")
		return models.UserList{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	pageQuery, pageArgs, err := buildListUsersQuery(query)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: building list query")
		return models.UserList{}, err
	}

	rows, err := r.db.QueryContext(ctx, pageQuery, pageArgs...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: executing list query")
		return models.UserList{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]models.User, 0, query.Limit)
	for rows.Next() {
		var user models.User
		if err := scanUser(rows, &user); err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: scanning user row")
			return models.UserList{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: iterating user rows")
		return models.UserList{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return models.UserList{
		Users: users,
		Total: total,
		Page:  query.Page,
		Limit: query.Limit,
	}, nil
}
