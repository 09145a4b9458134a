package service

import (
	"context"

	"github.com/MKhiriev/go-identity/models"
)

// AuthService covers the end-user identity lifecycle: two-phase signup,
// email verification, signin, token verification, and password reset.
type AuthService interface {
	// SignupStepOne creates the account record from credentials. The account
	// cannot sign in yet: step two and email verification still gate it.
	SignupStepOne(ctx context.Context, request models.SignupStepOneRequest) (models.User, error)

	// SignupStepTwo stores the profile details, issues a bearer token, and
	// starts email verification by sending a one-time code.
	SignupStepTwo(ctx context.Context, userID string, request models.SignupStepTwoRequest) (models.User, models.Token, models.OTPRecord, error)

	// SignIn authenticates by username-or-email plus password and issues a
	// bearer token. Signup must be complete and the email verified.
	SignIn(ctx context.Context, request models.SignInRequest) (models.User, models.Token, error)

	// VerifyToken validates a user bearer token and re-checks that the
	// account behind it still exists and is active.
	VerifyToken(ctx context.Context, tokenString string) (models.Token, error)

	// Profile returns the account behind the given identifier.
	Profile(ctx context.Context, userID string) (models.User, error)

	// VerifyEmail validates a one-time code and marks the email verified.
	VerifyEmail(ctx context.Context, request models.VerifyEmailRequest) (models.User, error)

	// RequestEmailVerification issues a fresh verification code for an
	// account whose email is not yet verified.
	RequestEmailVerification(ctx context.Context, userID string) (models.OTPRecord, error)

	// ResendCode reissues the code of an outstanding record, throttled.
	ResendCode(ctx context.Context, request models.ResendCodeRequest) (models.OTPRecord, error)

	// ForgotPassword starts the password-reset flow. The response shape is
	// identical whether or not the email exists.
	ForgotPassword(ctx context.Context, request models.ForgotPasswordRequest) (models.OTPRecord, error)

	// ResetPassword validates a reset code and replaces the password.
	ResetPassword(ctx context.Context, request models.ResetPasswordRequest) error
}

// AdminService covers administrator authentication, admin provisioning, and
// end-user account management.
//
// Privileged operations take the identifier of the acting administrator and
// re-resolve its current role from storage; the role claim inside the bearer
// token is never trusted for authorisation.
type AdminService interface {
	// AdminSignIn authenticates an administrator and issues a bearer token.
	AdminSignIn(ctx context.Context, request models.AdminSignInRequest) (models.Admin, models.Token, error)

	// VerifyAdminToken validates an admin bearer token and re-checks that
	// the account behind it still exists.
	VerifyAdminToken(ctx context.Context, tokenString string) (models.Token, error)

	// CreateAdmin provisions a new administrator. Super-admin only.
	CreateAdmin(ctx context.Context, actingAdminID string, request models.CreateAdminRequest) (models.Admin, error)

	// ListAdmins returns the full admin roster. Super-admin only.
	ListAdmins(ctx context.Context, actingAdminID string) ([]models.Admin, error)

	// GetUser returns a user account, soft-deleted ones included.
	GetUser(ctx context.Context, userID string) (models.User, error)

	// ListUsers returns one page of the user listing, soft-deleted accounts
	// included.
	ListUsers(ctx context.Context, query models.UserListQuery) (models.UserList, error)

	// DeactivateUser soft-deletes a user account. The reason is recorded in
	// the audit log only.
	DeactivateUser(ctx context.Context, actingAdminID string, userID string, reason string) (models.User, error)

	// ReactivateUser restores a soft-deleted or deactivated user account.
	ReactivateUser(ctx context.Context, actingAdminID string, userID string, reason string) (models.User, error)

	// EnsureBootstrapAdmin provisions the configured super-admin when the
	// admins table is empty. Called once at startup.
	EnsureBootstrapAdmin(ctx context.Context) error
}
