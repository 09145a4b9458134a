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

// adminRepository is the PostgreSQL-backed implementation of
// [AdminRepository] over the "admins" table.
type adminRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAdminRepository constructs an [AdminRepository] backed by the provided
// database connection and logger.
func NewAdminRepository(db *DB, logger *logger.Logger) AdminRepository {
	logger.Debug().Msg("creating admin repository")
	return &adminRepository{
		db:     db,
		logger: logger,
	}
}

func scanAdmin(row interface{ Scan(dest ...any) error }, admin *models.Admin) error {
	return row.Scan(
		&admin.AdminID, &admin.Name, &admin.Username, &admin.PasswordHash,
		&admin.Role, &admin.CreatedAt, &admin.UpdatedAt,
	)
}

// CreateAdmin persists a new administrator record and returns the canonical
// database representation.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrAlreadyExists].
//   - Transient driver failures → [ErrStorageUnavailable]; anything else is
//     wrapped as "unexpected DB error".
func (r *adminRepository) CreateAdmin(ctx context.Context, admin models.Admin) (models.Admin, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createAdmin, admin.AdminID, admin.Name, admin.Username, admin.PasswordHash, admin.Role)

	var created models.Admin
	if err := scanAdmin(row, &created); err != nil {
		log.Err(err).Str("func", "*adminRepository.CreateAdmin").Msg("error: creating admin")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Admin{}, ErrAlreadyExists
		default:
			return models.Admin{}, r.db.wrapDBError(err)
		}
	}

	return created, nil
}

// FindAdminByID retrieves an administrator record by its identifier.
//
// Error handling:
//   - No matching row → [ErrAdminNotFound].
func (r *adminRepository) FindAdminByID(ctx context.Context, adminID string) (models.Admin, error) {
	return r.findAdmin(ctx, "*adminRepository.FindAdminByID", findAdminByID, adminID)
}

// FindAdminByUsername retrieves an administrator record by its
// case-insensitive username.
func (r *adminRepository) FindAdminByUsername(ctx context.Context, username string) (models.Admin, error) {
	return r.findAdmin(ctx, "*adminRepository.FindAdminByUsername", findAdminByUsername, models.NormalizeIdentifier(username))
}

func (r *adminRepository) findAdmin(ctx context.Context, caller string, query string, arg string) (models.Admin, error) {
	log := logger.FromContext(ctx)

	var foundAdmin models.Admin
	row := r.db.QueryRowContext(ctx, query, arg)

	if err := scanAdmin(row, &foundAdmin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Admin{}, ErrAdminNotFound
		}

		log.Err(err).Str("func", caller).Msg("error: finding admin")
		return models.Admin{}, r.db.wrapDBError(err)
	}

	return foundAdmin, nil
}

// CountAdmins returns the total number of administrator records. Used at
// startup to decide whether the bootstrap super-admin must be created.
func (r *adminRepository) CountAdmins(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	var total int64
	if err := r.db.QueryRowContext(ctx, countAdmins).Scan(&total); err != nil {
		log.Err(err).Str("func", "*adminRepository.CountAdmins").Msg("error: counting admins")
		return 0, r.db.wrapDBError(err)
	}

	return total, nil
}

// ListAdmins returns all administrator records ordered by creation time.
func (r *adminRepository) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listAdmins)
	if err != nil {
		log.Err(err).Str("func", "*adminRepository.ListAdmins").Msg("error: executing list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer func() { _ = rows.Close() }()

	var admins []models.Admin
	for rows.Next() {
		var admin models.Admin
		if err := scanAdmin(rows, &admin); err != nil {
			log.Err(err).Str("func", "*adminRepository.ListAdmins").Msg("error: scanning admin row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		admins = append(admins, admin)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*adminRepository.ListAdmins").Msg("error: iterating admin rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return admins, nil
}
