package store

import (
	"github.com/MKhiriev/go-identity/internal/logger"
)

type Repositories struct {
	UserRepository  UserRepository
	AdminRepository AdminRepository
}

func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:  NewUserRepository(db, logger),
		AdminRepository: NewAdminRepository(db, logger),
	}
}
