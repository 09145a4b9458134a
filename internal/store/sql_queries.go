package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-identity/models"
)

// userColumns is the canonical column list for the "users" table. Every query
// that returns user rows selects exactly these columns in exactly this order,
// so a single scan helper serves all of them.
const userColumns = `user_id, username, email, password_hash, full_name, college,
		step_one_complete, step_two_complete, is_verified, email_verified_at,
		is_active, deleted_at, password_reset_count, last_password_reset, created_at, updated_at`

const adminColumns = `admin_id, name, username, password_hash, role, created_at, updated_at`

const (
	createUser = `INSERT INTO users (user_id, username, email, password_hash, step_one_complete)
    VALUES ($1, $2, $3, $4, TRUE)
    RETURNING ` + userColumns + `;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1`

	findUserByUsername = `SELECT ` + userColumns + `
    FROM users
    WHERE LOWER(username) = $1`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE LOWER(email) = $1`

	findUserByIdentifier = `SELECT ` + userColumns + `
    FROM users
    WHERE (LOWER(username) = $1 OR LOWER(email) = $1)`

	// notDeleted is appended to the lookup queries above when soft-deleted
	// rows must stay invisible.
	notDeleted = ` AND deleted_at IS NULL`

	countUsers = `SELECT COUNT(*) FROM users;`

	createAdmin = `INSERT INTO admins (admin_id, name, username, password_hash, role)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING ` + adminColumns + `;`

	findAdminByID = `SELECT ` + adminColumns + `
    FROM admins
    WHERE admin_id = $1;`

	findAdminByUsername = `SELECT ` + adminColumns + `
    FROM admins
    WHERE LOWER(username) = $1;`

	countAdmins = `SELECT COUNT(*) FROM admins;`

	listAdmins = `SELECT ` + adminColumns + `
    FROM admins
    ORDER BY created_at;`
)

// buildUpdateUserQuery dynamically builds a partial UPDATE for the "users"
// table. Map keys are column names; updated_at is always refreshed. The query
// returns the full updated row via RETURNING.
func buildUpdateUserQuery(userID string, fields map[string]any) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, ErrNoFieldsToUpdate
	}

	query, args, err := sq.Update("users").
		PlaceholderFormat(sq.Dollar).
		SetMap(fields).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_id": userID}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// listFilters translates the filter portion of a [models.UserListQuery] into
// squirrel predicates shared by the page query and the COUNT query, so the
// two can never disagree on which rows match.
func listFilters(query models.UserListQuery) []sq.Sqlizer {
	var filters []sq.Sqlizer

	if !query.IncludeDeleted {
		filters = append(filters, sq.Expr("deleted_at IS NULL"))
	}
	if query.Verified != nil {
		filters = append(filters, sq.Eq{"is_verified": *query.Verified})
	}
	if query.Active != nil {
		filters = append(filters, sq.Eq{"is_active": *query.Active})
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		switch query.SearchIn {
		case models.SearchFieldUsername:
			filters = append(filters, sq.ILike{"username": pattern})
		case models.SearchFieldEmail:
			filters = append(filters, sq.ILike{"email": pattern})
		case models.SearchFieldFullName:
			filters = append(filters, sq.ILike{"full_name": pattern})
		case models.SearchFieldCollege:
			filters = append(filters, sq.ILike{"college": pattern})
		default:
			filters = append(filters, sq.Or{
				sq.ILike{"username": pattern},
				sq.ILike{"email": pattern},
				sq.ILike{"full_name": pattern},
				sq.ILike{"college": pattern},
			})
		}
	}

	return filters
}

// sortColumns maps exposed sort field names onto real column names. Unknown
// values never reach this map: [models.UserListQuery.Normalize] resolves them
// to createdAt first.
var sortColumns = map[models.SortField]string{
	models.SortFieldCreatedAt: "created_at",
	models.SortFieldUpdatedAt: "updated_at",
	models.SortFieldUsername:  "username",
	models.SortFieldEmail:     "email",
	models.SortFieldFullName:  "full_name",
}

// buildListUsersQuery builds the page SELECT for the administrative user
// listing. The query argument must already be normalised.
func buildListUsersQuery(query models.UserListQuery) (string, []any, error) {
	builder := sq.Select(
		"user_id", "username", "email", "password_hash", "full_name", "college",
		"step_one_complete", "step_two_complete", "is_verified", "email_verified_at",
		"is_active", "deleted_at", "password_reset_count", "last_password_reset", "created_at", "updated_at",
	).
		From("users").
		PlaceholderFormat(sq.Dollar)

	for _, filter := range listFilters(query) {
		builder = builder.Where(filter)
	}

	direction := "ASC"
	if query.SortDesc {
		direction = "DESC"
	}
	column := sortColumns[query.SortBy]
	if column == "" {
		column = "created_at"
	}
	// user_id is a tiebreaker: it keeps pagination stable when the sort
	// column has duplicate values.
	builder = builder.
		OrderBy(fmt.Sprintf("%s %s", column, direction), "user_id ASC").
		Limit(uint64(query.Limit)).
		Offset(uint64((query.Page - 1) * query.Limit))

	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sqlQuery, args, nil
}

// buildCountUsersQuery builds the COUNT companion of [buildListUsersQuery]
// with the same filter set and no pagination.
func buildCountUsersQuery(query models.UserListQuery) (string, []any, error) {
	builder := sq.Select("COUNT(*)").
		From("users").
		PlaceholderFormat(sq.Dollar)

	for _, filter := range listFilters(query) {
		builder = builder.Where(filter)
	}

	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sqlQuery, args, nil
}
