package service

import (
	"github.com/MKhiriev/go-identity/internal/config"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/notify"
	"github.com/MKhiriev/go-identity/internal/otp"
	"github.com/MKhiriev/go-identity/internal/store"
)

type Services struct {
	AuthService  AuthService
	AdminService AdminService
}

func NewServices(repositories *store.Repositories, registry otp.Registry, mailer notify.Mailer, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	hasher := NewPasswordHasher(cfg.App.BcryptCost)

	return &Services{
		AuthService:  NewAuthService(repositories.UserRepository, registry, mailer, hasher, cfg.App, logger),
		AdminService: NewAdminService(repositories.AdminRepository, repositories.UserRepository, hasher, cfg.App, cfg.Bootstrap, logger),
	}
}
