package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-identity/internal/config"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/store"
	"github.com/MKhiriev/go-identity/internal/utils"
	"github.com/MKhiriev/go-identity/models"
)

// adminService is the concrete implementation of AdminService.
//
// Every privileged operation re-resolves the acting administrator from
// storage and checks its current role there. Token claims carry the role for
// display only; a role revoked after token issue takes effect immediately.
type adminService struct {
	adminRepository store.AdminRepository
	userRepository  store.UserRepository

	hasher *PasswordHasher
	uuid   *utils.UUIDGenerator

	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration

	bootstrap config.Bootstrap

	logger *logger.Logger
}

// NewAdminService constructs a new AdminService wired to the given
// repositories and populated with security parameters from cfg.
func NewAdminService(adminRepository store.AdminRepository, userRepository store.UserRepository, hasher *PasswordHasher, cfg config.App, bootstrap config.Bootstrap, logger *logger.Logger) AdminService {
	return &adminService{
		adminRepository: adminRepository,
		userRepository:  userRepository,
		hasher:          hasher,
		uuid:            utils.NewUUIDGenerator(),
		tokenSignKey:    cfg.TokenSignKey,
		tokenIssuer:     cfg.TokenIssuer,
		tokenDuration:   cfg.TokenDuration,
		bootstrap:       bootstrap,
		logger:          logger,
	}
}

// AdminSignIn authenticates an administrator by username and password.
//
// Returns the admin and a bearer token, or:
//   - ErrInvalidDataProvided if a field is missing.
//   - ErrInvalidCredentials if the username is unknown or the password wrong.
func (s *adminService) AdminSignIn(ctx context.Context, request models.AdminSignInRequest) (models.Admin, models.Token, error) {
	log := logger.FromContext(ctx)

	if request.Username == "" || request.Password == "" {
		log.Error().Str("func", "*adminService.AdminSignIn").Msg("invalid signin data provided")
		return models.Admin{}, models.Token{}, fmt.Errorf("%w: username and password are required", ErrInvalidDataProvided)
	}

	admin, err := s.adminRepository.FindAdminByUsername(ctx, request.Username)
	if err != nil {
		if errors.Is(err, store.ErrAdminNotFound) {
			return models.Admin{}, models.Token{}, ErrInvalidCredentials
		}
		log.Err(err).Str("func", "*adminService.AdminSignIn").Msg("admin search by username failed")
		return models.Admin{}, models.Token{}, fmt.Errorf("admin search by username failed: %w", err)
	}

	if err := s.hasher.Compare(admin.PasswordHash, request.Password); err != nil {
		log.Warn().Str("func", "*adminService.AdminSignIn").Str("admin_id", admin.AdminID).Msg("wrong password")
		return models.Admin{}, models.Token{}, ErrInvalidCredentials
	}

	token, err := s.issueAdminToken(admin)
	if err != nil {
		log.Err(err).Str("func", "*adminService.AdminSignIn").Str("admin_id", admin.AdminID).Msg("token issue ended with error")
		return models.Admin{}, models.Token{}, err
	}

	log.Info().Str("func", "*adminService.AdminSignIn").Str("admin_id", admin.AdminID).Str("role", admin.Role.String()).Msg("admin signed in")

	return admin, token, nil
}

// VerifyAdminToken validates an admin bearer token and re-checks that the
// account behind it still exists.
//
// Returns the parsed token or ErrInvalidToken.
func (s *adminService) VerifyAdminToken(ctx context.Context, tokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		log.Warn().Str("func", "*adminService.VerifyAdminToken").Err(err).Msg("token validation failed")
		return models.Token{}, ErrInvalidToken
	}
	if token.Claims.Kind != models.KindAdmin {
		return models.Token{}, ErrInvalidToken
	}

	if _, err := s.adminRepository.FindAdminByID(ctx, token.SubjectID()); err != nil {
		if errors.Is(err, store.ErrAdminNotFound) {
			return models.Token{}, ErrInvalidToken
		}
		return models.Token{}, fmt.Errorf("admin search failed: %w", err)
	}

	return token, nil
}

// CreateAdmin provisions a new administrator account.
//
// Returns the created admin or:
//   - ErrForbidden if the acting admin is not a super-admin.
//   - ErrInvalidDataProvided if a field is missing or the role is not a
//     known tier.
//   - ErrAlreadyExists if the username is taken.
func (s *adminService) CreateAdmin(ctx context.Context, actingAdminID string, request models.CreateAdminRequest) (models.Admin, error) {
	log := logger.FromContext(ctx)

	if err := s.requireSuperAdmin(ctx, actingAdminID); err != nil {
		return models.Admin{}, err
	}

	username := models.NormalizeIdentifier(request.Username)
	if request.Name == "" || username == "" {
		return models.Admin{}, fmt.Errorf("%w: name and username are required", ErrInvalidDataProvided)
	}
	if err := validatePassword(request.Password); err != nil {
		return models.Admin{}, err
	}
	if request.Role != models.RoleSuperAdmin && request.Role != models.RoleAdmin {
		return models.Admin{}, fmt.Errorf("%w: unknown role", ErrInvalidDataProvided)
	}

	passwordHash, err := s.hasher.Hash(request.Password)
	if err != nil {
		log.Err(err).Str("func", "*adminService.CreateAdmin").Msg("error hashing password")
		return models.Admin{}, err
	}

	createdAdmin, err := s.adminRepository.CreateAdmin(ctx, models.Admin{
		AdminID:      s.uuid.Generate(),
		Name:         request.Name,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         request.Role,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return models.Admin{}, ErrAlreadyExists
		}
		log.Err(err).Str("func", "*adminService.CreateAdmin").Str("username", username).Msg("admin creation ended with error")
		return models.Admin{}, fmt.Errorf("admin creation ended with error: %w", err)
	}

	log.Info().
		Str("func", "*adminService.CreateAdmin").
		Str("admin_id", createdAdmin.AdminID).
		Str("role", createdAdmin.Role.String()).
		Str("acting_admin_id", actingAdminID).
		Msg("admin account created")

	return createdAdmin, nil
}

// ListAdmins returns the full admin roster. Super-admin only.
func (s *adminService) ListAdmins(ctx context.Context, actingAdminID string) ([]models.Admin, error) {
	if err := s.requireSuperAdmin(ctx, actingAdminID); err != nil {
		return nil, err
	}

	admins, err := s.adminRepository.ListAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin listing ended with error: %w", err)
	}

	return admins, nil
}

// GetUser returns a user account by ID, soft-deleted ones included.
func (s *adminService) GetUser(ctx context.Context, userID string) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID, true)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("user search failed: %w", err)
	}

	return user, nil
}

// ListUsers returns one page of the user listing. The administrative listing
// always includes soft-deleted accounts; the Active filter narrows them out
// when the caller asks.
func (s *adminService) ListUsers(ctx context.Context, query models.UserListQuery) (models.UserList, error) {
	query.IncludeDeleted = true

	list, err := s.userRepository.ListUsers(ctx, query)
	if err != nil {
		return models.UserList{}, fmt.Errorf("user listing ended with error: %w", err)
	}

	return list, nil
}

// DeactivateUser soft-deletes a user account: signin, token verification,
// and default lookups reject it from this point on. The reason lands in the
// audit log only.
//
// Returns the updated user or:
//   - ErrForbidden if the acting account is not an admin.
//   - ErrNotFound if the user does not exist.
//   - ErrPreconditionFailed if the account is already deactivated.
func (s *adminService) DeactivateUser(ctx context.Context, actingAdminID string, userID string, reason string) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.requireAdmin(ctx, actingAdminID); err != nil {
		return models.User{}, err
	}

	user, err := s.userRepository.FindUserByID(ctx, userID, true)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("user search failed: %w", err)
	}
	if user.DeletedAt != nil || !user.IsActive {
		return models.User{}, fmt.Errorf("%w: account is already deactivated", ErrPreconditionFailed)
	}

	updatedUser, err := s.userRepository.UpdateUser(ctx, userID, map[string]any{
		"is_active":  false,
		"deleted_at": time.Now(),
	})
	if err != nil {
		log.Err(err).Str("func", "*adminService.DeactivateUser").Str("user_id", userID).Msg("deactivation ended with error")
		return models.User{}, fmt.Errorf("deactivation ended with error: %w", err)
	}

	log.Info().
		Str("func", "*adminService.DeactivateUser").
		Str("user_id", userID).
		Str("acting_admin_id", actingAdminID).
		Str("reason", reason).
		Msg("user account deactivated")

	return updatedUser, nil
}

// ReactivateUser restores a deactivated or soft-deleted user account. The
// account returns in its pre-deactivation state: verification status,
// profile, and password are untouched.
//
// Returns the updated user or:
//   - ErrForbidden if the acting account is not an admin.
//   - ErrNotFound if the user does not exist.
//   - ErrPreconditionFailed if the account is not deactivated.
func (s *adminService) ReactivateUser(ctx context.Context, actingAdminID string, userID string, reason string) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.requireAdmin(ctx, actingAdminID); err != nil {
		return models.User{}, err
	}

	user, err := s.userRepository.FindUserByID(ctx, userID, true)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("user search failed: %w", err)
	}
	if user.DeletedAt == nil && user.IsActive {
		return models.User{}, fmt.Errorf("%w: account is not deactivated", ErrPreconditionFailed)
	}

	updatedUser, err := s.userRepository.UpdateUser(ctx, userID, map[string]any{
		"is_active":  true,
		"deleted_at": nil,
	})
	if err != nil {
		log.Err(err).Str("func", "*adminService.ReactivateUser").Str("user_id", userID).Msg("reactivation ended with error")
		return models.User{}, fmt.Errorf("reactivation ended with error: %w", err)
	}

	log.Info().
		Str("func", "*adminService.ReactivateUser").
		Str("user_id", userID).
		Str("acting_admin_id", actingAdminID).
		Str("reason", reason).
		Msg("user account reactivated")

	return updatedUser, nil
}

// EnsureBootstrapAdmin provisions the configured super-admin when the admins
// table is empty, so a fresh deployment is administrable without manual SQL.
// On any later start the table is non-empty and this is a no-op.
func (s *adminService) EnsureBootstrapAdmin(ctx context.Context) error {
	log := logger.FromContext(ctx)

	total, err := s.adminRepository.CountAdmins(ctx)
	if err != nil {
		return fmt.Errorf("admin count ended with error: %w", err)
	}
	if total > 0 {
		return nil
	}

	passwordHash, err := s.hasher.Hash(s.bootstrap.AdminPassword)
	if err != nil {
		return fmt.Errorf("error hashing bootstrap password: %w", err)
	}

	createdAdmin, err := s.adminRepository.CreateAdmin(ctx, models.Admin{
		AdminID:      s.uuid.Generate(),
		Name:         s.bootstrap.AdminName,
		Username:     models.NormalizeIdentifier(s.bootstrap.AdminUsername),
		PasswordHash: passwordHash,
		Role:         models.RoleSuperAdmin,
	})
	if err != nil {
		// a concurrent replica may have won the race; that is fine
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil
		}
		return fmt.Errorf("bootstrap admin creation ended with error: %w", err)
	}

	log.Info().Str("func", "*adminService.EnsureBootstrapAdmin").Str("admin_id", createdAdmin.AdminID).Msg("bootstrap super-admin created")

	return nil
}

// requireAdmin re-resolves the acting account and confirms it is an
// administrator of any tier.
func (s *adminService) requireAdmin(ctx context.Context, actingAdminID string) error {
	_, err := s.resolveAdmin(ctx, actingAdminID)
	return err
}

// requireSuperAdmin re-resolves the acting account and confirms it holds the
// super-admin tier right now, regardless of what its token claims say.
func (s *adminService) requireSuperAdmin(ctx context.Context, actingAdminID string) error {
	admin, err := s.resolveAdmin(ctx, actingAdminID)
	if err != nil {
		return err
	}
	if admin.Role != models.RoleSuperAdmin {
		return ErrForbidden
	}
	return nil
}

func (s *adminService) resolveAdmin(ctx context.Context, actingAdminID string) (models.Admin, error) {
	if actingAdminID == "" {
		return models.Admin{}, ErrForbidden
	}

	admin, err := s.adminRepository.FindAdminByID(ctx, actingAdminID)
	if err != nil {
		if errors.Is(err, store.ErrAdminNotFound) {
			return models.Admin{}, ErrForbidden
		}
		return models.Admin{}, fmt.Errorf("admin search failed: %w", err)
	}

	return admin, nil
}

// issueAdminToken mints a bearer token for an administrator account.
func (s *adminService) issueAdminToken(admin models.Admin) (models.Token, error) {
	role := admin.Role
	claims := models.Claims{
		Kind:     models.KindAdmin,
		Username: admin.Username,
		Role:     &role,
	}
	claims.Subject = admin.AdminID

	return utils.GenerateJWTToken(s.tokenIssuer, claims, s.tokenDuration, s.tokenSignKey)
}
