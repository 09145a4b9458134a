package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/models"
	"github.com/jackc/pgerrcode"
)

func newTestAdminRepo(t *testing.T) (*adminRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &adminRepository{
		db:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock, db
}

var adminRowColumns = []string{"admin_id", "name", "username", "password_hash", "role", "created_at", "updated_at"}

func adminRow(admin models.Admin) *sqlmock.Rows {
	return sqlmock.NewRows(adminRowColumns).AddRow(
		admin.AdminID, admin.Name, admin.Username, admin.PasswordHash,
		admin.Role, admin.CreatedAt, admin.UpdatedAt,
	)
}

func TestCreateAdmin_Success(t *testing.T) {
	repo, mock, db := newTestAdminRepo(t)
	defer db.Close()

	ctx := context.Background()
	admin := models.Admin{
		AdminID:      "a-1",
		Name:         "Root",
		Username:     "root",
		PasswordHash: "$2a$10$hash",
		Role:         models.RoleSuperAdmin,
	}

	now := time.Now()
	stored := admin
	stored.CreatedAt = now
	stored.UpdatedAt = now

	mock.ExpectQuery("INSERT INTO admins").
		WithArgs(admin.AdminID, admin.Name, admin.Username, admin.PasswordHash, admin.Role).
		WillReturnRows(adminRow(stored))

	created, err := repo.CreateAdmin(ctx, admin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.AdminID != "a-1" {
		t.Errorf("expected AdminID a-1, got %s", created.AdminID)
	}
	if created.Role != models.RoleSuperAdmin {
		t.Errorf("expected super-admin role, got %d", created.Role)
	}
}

func TestCreateAdmin_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestAdminRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO admins").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateAdmin(context.Background(), models.Admin{Username: "root"})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestFindAdminByUsername_NormalizesCase(t *testing.T) {
	repo, mock, db := newTestAdminRepo(t)
	defer db.Close()

	stored := models.Admin{AdminID: "a-1", Username: "root", Role: models.RoleAdmin}

	mock.ExpectQuery("SELECT admin_id").
		WithArgs("root").
		WillReturnRows(adminRow(stored))

	found, err := repo.FindAdminByUsername(context.Background(), " Root ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.AdminID != "a-1" {
		t.Errorf("expected admin a-1, got %s", found.AdminID)
	}
}

func TestFindAdminByID_NotFound(t *testing.T) {
	repo, mock, db := newTestAdminRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT admin_id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindAdminByID(context.Background(), "missing")
	if !errors.Is(err, ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
}

func TestCountAdmins(t *testing.T) {
	repo, mock, db := newTestAdminRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM admins").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	total, err := repo.CountAdmins(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 {
		t.Errorf("expected 3 admins, got %d", total)
	}
}

func TestListAdmins(t *testing.T) {
	repo, mock, db := newTestAdminRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows(adminRowColumns).
		AddRow("a-1", "Root", "root", "hash", models.RoleSuperAdmin, time.Now(), time.Now()).
		AddRow("a-2", "Ops", "ops", "hash", models.RoleAdmin, time.Now(), time.Now())

	mock.ExpectQuery("SELECT admin_id.*ORDER BY created_at").
		WillReturnRows(rows)

	admins, err := repo.ListAdmins(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(admins) != 2 {
		t.Fatalf("expected 2 admins, got %d", len(admins))
	}
	if admins[0].Role != models.RoleSuperAdmin || admins[1].Role != models.RoleAdmin {
		t.Error("expected roles to survive the round trip")
	}
}
