package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-identity/internal/config"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/notify"
	"github.com/MKhiriev/go-identity/internal/otp"
	"github.com/MKhiriev/go-identity/internal/store"
	"github.com/MKhiriev/go-identity/internal/utils"
	"github.com/MKhiriev/go-identity/models"
)

// authService is the concrete implementation of AuthService.
// It drives the two-phase signup, email verification, signin, and password
// reset flows using a UserRepository for persistence, the in-memory one-time
// code registry, the notification client for email delivery, and bcrypt for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// registry issues and validates one-time codes.
	registry otp.Registry

	// mailer delivers templated emails through the notification service.
	mailer notify.Mailer

	// hasher derives and checks bcrypt password digests.
	hasher *PasswordHasher

	// uuid mints identifiers for new accounts.
	uuid *utils.UUIDGenerator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given dependencies
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, registry otp.Registry, mailer notify.Mailer, hasher *PasswordHasher, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		registry:       registry,
		mailer:         mailer,
		hasher:         hasher,
		uuid:           utils.NewUUIDGenerator(),
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// SignupStepOne creates the account record from credentials.
//
// Username and email are normalised to lower case; the password is hashed
// with bcrypt before anything touches storage. The created account has
// StepOneComplete set and nothing else: it cannot sign in until step two and
// email verification are done.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if a field is missing.
//   - ErrAlreadyExists if the username or email is taken.
func (a *authService) SignupStepOne(ctx context.Context, request models.SignupStepOneRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	username := models.NormalizeIdentifier(request.Username)
	email := models.NormalizeIdentifier(request.Email)

	if username == "" || email == "" {
		log.Error().Str("func", "*authService.SignupStepOne").Msg("invalid signup data provided")
		return models.User{}, fmt.Errorf("%w: username and email are required", ErrInvalidDataProvided)
	}
	if err := validatePassword(request.Password); err != nil {
		return models.User{}, err
	}

	passwordHash, err := a.hasher.Hash(request.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.SignupStepOne").Msg("error hashing password")
		return models.User{}, err
	}

	createdUser, err := a.userRepository.CreateUser(ctx, models.User{
		UserID:       a.uuid.Generate(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return models.User{}, ErrAlreadyExists
		}
		log.Err(err).Str("func", "*authService.SignupStepOne").Str("username", username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("func", "*authService.SignupStepOne").Str("user_id", createdUser.UserID).Msg("signup step one completed")

	return createdUser, nil
}

// SignupStepTwo stores the profile details, marks the second phase complete,
// issues a bearer token, and starts email verification by sending a one-time
// code to the account's address.
//
// The token is issued before the email is verified: verification gates
// signin, not the token handed out at signup. If the notification service
// cannot accept the code email, the operation rolls back: the code record is
// revoked, the step-two flag reverted, and ErrNotificationUnavailable
// returned so the client can retry the whole step.
//
// Returns the updated user, the bearer token, and the issued code record, or:
//   - ErrInvalidDataProvided if the full name is missing.
//   - ErrNotFound if the account does not exist.
//   - ErrPreconditionFailed if step two was already completed.
//   - ErrNotificationUnavailable if the code email cannot be sent.
func (a *authService) SignupStepTwo(ctx context.Context, userID string, request models.SignupStepTwoRequest) (models.User, models.Token, models.OTPRecord, error) {
	log := logger.FromContext(ctx)

	if request.FullName == "" {
		log.Error().Str("func", "*authService.SignupStepTwo").Msg("invalid profile data provided")
		return models.User{}, models.Token{}, models.OTPRecord{}, fmt.Errorf("%w: full name is required", ErrInvalidDataProvided)
	}

	user, err := a.userRepository.FindUserByID(ctx, userID, false)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, models.Token{}, models.OTPRecord{}, ErrNotFound
		}
		return models.User{}, models.Token{}, models.OTPRecord{}, fmt.Errorf("user search failed: %w", err)
	}

	if user.StepTwoComplete {
		return models.User{}, models.Token{}, models.OTPRecord{}, fmt.Errorf("%w: signup is already complete", ErrPreconditionFailed)
	}

	updatedUser, err := a.userRepository.UpdateUser(ctx, userID, map[string]any{
		"full_name":         request.FullName,
		"college":           request.College,
		"step_two_complete": true,
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.SignupStepTwo").Str("user_id", userID).Msg("profile update ended with error")
		return models.User{}, models.Token{}, models.OTPRecord{}, fmt.Errorf("profile update ended with error: %w", err)
	}

	token, err := a.issueUserToken(updatedUser)
	if err != nil {
		log.Err(err).Str("func", "*authService.SignupStepTwo").Str("user_id", userID).Msg("token issue ended with error")
		return models.User{}, models.Token{}, models.OTPRecord{}, err
	}

	record, err := a.issueVerificationCode(ctx, updatedUser)
	if err != nil {
		// the code never reached the user: revert the step-two flag so the
		// request stays retryable instead of stranding the account
		if _, revertErr := a.userRepository.UpdateUser(ctx, userID, map[string]any{"step_two_complete": false}); revertErr != nil {
			log.Err(revertErr).Str("func", "*authService.SignupStepTwo").Str("user_id", userID).Msg("step two revert ended with error")
		}
		return models.User{}, models.Token{}, models.OTPRecord{}, err
	}

	log.Info().Str("func", "*authService.SignupStepTwo").Str("user_id", userID).Msg("signup step two completed, verification code sent")

	return updatedUser, token, record, nil
}

// SignIn authenticates by username-or-email plus password.
//
// The password is checked before any account-state gate so that probing with
// wrong credentials reveals nothing about the account's lifecycle state.
//
// Returns the account and a bearer token, or:
//   - ErrInvalidDataProvided if a field is missing.
//   - ErrInvalidCredentials if the identifier is unknown, the password is
//     wrong, signup is incomplete, or the email is unverified. The reason is
//     deliberately not disclosed.
//   - ErrAccountDeactivated if the account is deactivated or soft-deleted.
func (a *authService) SignIn(ctx context.Context, request models.SignInRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if request.Identifier == "" || request.Password == "" {
		log.Error().Str("func", "*authService.SignIn").Msg("invalid signin data provided")
		return models.User{}, models.Token{}, fmt.Errorf("%w: identifier and password are required", ErrInvalidDataProvided)
	}

	// deleted accounts are resolved too: a correct password against one must
	// answer "deactivated", not "invalid credentials"
	user, err := a.userRepository.FindUserByIdentifier(ctx, request.Identifier, true)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, models.Token{}, ErrInvalidCredentials
		}
		log.Err(err).Str("func", "*authService.SignIn").Msg("user search by identifier failed")
		return models.User{}, models.Token{}, fmt.Errorf("user search by identifier failed: %w", err)
	}

	if err := a.hasher.Compare(user.PasswordHash, request.Password); err != nil {
		log.Warn().Str("func", "*authService.SignIn").Str("user_id", user.UserID).Msg("wrong password")
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	if user.DeletedAt != nil || !user.IsActive {
		return models.User{}, models.Token{}, ErrAccountDeactivated
	}
	// incomplete signup and an unverified email answer the same generic
	// error as a wrong password: only the deactivated state is disclosed
	if !user.IsSignupComplete() || !user.IsVerified {
		log.Warn().Str("func", "*authService.SignIn").Str("user_id", user.UserID).Msg("signin gate failed")
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	token, err := a.issueUserToken(user)
	if err != nil {
		log.Err(err).Str("func", "*authService.SignIn").Str("user_id", user.UserID).Msg("token issue ended with error")
		return models.User{}, models.Token{}, err
	}

	log.Info().Str("func", "*authService.SignIn").Str("user_id", user.UserID).Msg("user signed in")

	return user, token, nil
}

// VerifyToken validates a user bearer token.
//
// Beyond signature, issuer, and expiry checks, the account behind the token
// is re-read so a token outlives neither its account nor its active state.
// There is no revocation list: password reset does not invalidate
// outstanding tokens, deactivation does.
//
// Returns the parsed token or:
//   - ErrInvalidToken if validation fails, the audience is not "user", or
//     the account no longer exists.
//   - ErrAccountDeactivated if the account was deactivated or soft-deleted.
func (a *authService) VerifyToken(ctx context.Context, tokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		log.Warn().Str("func", "*authService.VerifyToken").Err(err).Msg("token validation failed")
		return models.Token{}, ErrInvalidToken
	}
	if token.Claims.Kind != models.KindUser {
		return models.Token{}, ErrInvalidToken
	}

	user, err := a.userRepository.FindUserByID(ctx, token.SubjectID(), true)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.Token{}, ErrInvalidToken
		}
		return models.Token{}, fmt.Errorf("user search failed: %w", err)
	}
	if user.DeletedAt != nil || !user.IsActive {
		return models.Token{}, ErrAccountDeactivated
	}

	return token, nil
}

// Profile returns the account behind the given identifier. Soft-deleted
// accounts answer ErrNotFound.
func (a *authService) Profile(ctx context.Context, userID string) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID, false)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("user search failed: %w", err)
	}

	return user, nil
}

// VerifyEmail validates a one-time verification code and marks the account's
// email verified.
//
// Returns the updated user or:
//   - ErrInvalidDataProvided if the record ID or code is missing.
//   - ErrWrongCode if the record is live but the code does not match.
//   - ErrCodeInvalidOrExpired for every other code failure.
//   - ErrAlreadyVerified if the email was verified in the meantime.
func (a *authService) VerifyEmail(ctx context.Context, request models.VerifyEmailRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if request.OTPID == "" || request.Code == "" {
		return models.User{}, fmt.Errorf("%w: code and its identifier are required", ErrInvalidDataProvided)
	}

	record, err := a.registry.Verify(ctx, request.OTPID, request.Code, models.OTPKindEmailVerification)
	if err != nil {
		return models.User{}, mapCodeError(err)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, record.Email, false)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}
	if user.IsVerified {
		return models.User{}, ErrAlreadyVerified
	}

	updatedUser, err := a.userRepository.UpdateUser(ctx, user.UserID, map[string]any{
		"is_verified":       true,
		"email_verified_at": time.Now(),
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.VerifyEmail").Str("user_id", user.UserID).Msg("verification update ended with error")
		return models.User{}, fmt.Errorf("verification update ended with error: %w", err)
	}

	log.Info().Str("func", "*authService.VerifyEmail").Str("user_id", user.UserID).Msg("email verified")

	return updatedUser, nil
}

// RequestEmailVerification issues a fresh verification code for an account
// whose email is not yet verified. Any outstanding verification code for the
// same address is superseded.
//
// Returns the issued record or:
//   - ErrNotFound if the account does not exist.
//   - ErrAlreadyVerified if the email is already verified.
//   - ErrNotificationUnavailable if the code email cannot be sent.
func (a *authService) RequestEmailVerification(ctx context.Context, userID string) (models.OTPRecord, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID, false)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.OTPRecord{}, ErrNotFound
		}
		return models.OTPRecord{}, fmt.Errorf("user search failed: %w", err)
	}
	if user.IsVerified {
		return models.OTPRecord{}, ErrAlreadyVerified
	}

	return a.issueVerificationCode(ctx, user)
}

// ResendCode reissues the code of an outstanding record and emails it again.
// The record keeps its ID; its attempt budget and expiry are reset.
//
// Returns the reissued record or:
//   - ErrInvalidDataProvided if the record ID is missing.
//   - ErrRateLimited if the throttle interval has not elapsed.
//   - ErrCodeInvalidOrExpired if the record is unknown or already consumed.
//   - ErrNotificationUnavailable if the code email cannot be sent.
func (a *authService) ResendCode(ctx context.Context, request models.ResendCodeRequest) (models.OTPRecord, error) {
	log := logger.FromContext(ctx)

	if request.OTPID == "" {
		return models.OTPRecord{}, fmt.Errorf("%w: code identifier is required", ErrInvalidDataProvided)
	}

	record, err := a.registry.Resend(ctx, request.OTPID)
	if err != nil {
		return models.OTPRecord{}, mapCodeError(err)
	}

	if err := a.mailer.SendTemplateEmail(ctx, codeEmail(record)); err != nil {
		log.Err(err).Str("func", "*authService.ResendCode").Str("otp_id", record.ID).Msg("code email delivery failed")
		return models.OTPRecord{}, ErrNotificationUnavailable
	}

	return record, nil
}

// ForgotPassword starts the password-reset flow.
//
// When the email belongs to a live account, a reset code is issued and
// mailed. When it does not, a decoy record ID is returned instead: the
// response is structurally identical in both cases, so the endpoint cannot
// be used to enumerate accounts. The decoy ID matches nothing in the
// registry, and a later verify against it answers ErrCodeInvalidOrExpired
// exactly like an expired real record.
func (a *authService) ForgotPassword(ctx context.Context, request models.ForgotPasswordRequest) (models.OTPRecord, error) {
	log := logger.FromContext(ctx)

	email := models.NormalizeIdentifier(request.Email)
	if email == "" {
		return models.OTPRecord{}, fmt.Errorf("%w: email is required", ErrInvalidDataProvided)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email, false)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Info().Str("func", "*authService.ForgotPassword").Msg("password reset requested for unknown email")
			return models.OTPRecord{ID: a.uuid.Generate()}, nil
		}
		return models.OTPRecord{}, fmt.Errorf("user search by email failed: %w", err)
	}
	if !user.IsActive {
		log.Info().Str("func", "*authService.ForgotPassword").Str("user_id", user.UserID).Msg("password reset requested for deactivated account")
		return models.OTPRecord{ID: a.uuid.Generate()}, nil
	}

	record, err := a.registry.Generate(ctx, user.Email, models.OTPKindPasswordReset)
	if err != nil {
		log.Err(err).Str("func", "*authService.ForgotPassword").Str("user_id", user.UserID).Msg("reset code issue ended with error")
		return models.OTPRecord{}, err
	}

	if err := a.mailer.SendTemplateEmail(ctx, codeEmail(record)); err != nil {
		a.registry.Revoke(ctx, record.ID)
		log.Err(err).Str("func", "*authService.ForgotPassword").Str("otp_id", record.ID).Msg("reset email delivery failed, code revoked")
		return models.OTPRecord{}, ErrNotificationUnavailable
	}

	log.Info().Str("func", "*authService.ForgotPassword").Str("user_id", user.UserID).Msg("password reset code sent")

	return record, nil
}

// ResetPassword validates a reset code and replaces the account's password.
//
// The reset counter is incremented and the reset time recorded. Outstanding
// bearer tokens stay valid: token verification re-checks account state, not
// credentials.
//
// Returns nil on success or:
//   - ErrInvalidDataProvided if a field is missing. The code is not charged
//     an attempt in this case.
//   - ErrWrongCode / ErrCodeInvalidOrExpired per the code check.
//   - ErrNotFound if the account disappeared after the code was issued.
func (a *authService) ResetPassword(ctx context.Context, request models.ResetPasswordRequest) error {
	log := logger.FromContext(ctx)

	if request.OTPID == "" || request.Code == "" {
		return fmt.Errorf("%w: code and its identifier are required", ErrInvalidDataProvided)
	}
	if err := validatePassword(request.NewPassword); err != nil {
		return err
	}

	record, err := a.registry.Verify(ctx, request.OTPID, request.Code, models.OTPKindPasswordReset)
	if err != nil {
		return mapCodeError(err)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, record.Email, false)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("user search by email failed: %w", err)
	}

	passwordHash, err := a.hasher.Hash(request.NewPassword)
	if err != nil {
		log.Err(err).Str("func", "*authService.ResetPassword").Msg("error hashing password")
		return err
	}

	if _, err := a.userRepository.UpdateUser(ctx, user.UserID, map[string]any{
		"password_hash":        passwordHash,
		"password_reset_count": user.PasswordResetCount + 1,
		"last_password_reset":  time.Now(),
	}); err != nil {
		log.Err(err).Str("func", "*authService.ResetPassword").Str("user_id", user.UserID).Msg("password update ended with error")
		return fmt.Errorf("password update ended with error: %w", err)
	}

	log.Info().Str("func", "*authService.ResetPassword").Str("user_id", user.UserID).Msg("password reset completed")

	return nil
}

// issueUserToken mints a bearer token for an end-user account.
func (a *authService) issueUserToken(user models.User) (models.Token, error) {
	claims := models.Claims{
		Kind:  models.KindUser,
		Email: user.Email,
	}
	claims.Subject = user.UserID

	return utils.GenerateJWTToken(a.tokenIssuer, claims, a.tokenDuration, a.tokenSignKey)
}

// issueVerificationCode generates an email-verification code and mails it.
func (a *authService) issueVerificationCode(ctx context.Context, user models.User) (models.OTPRecord, error) {
	log := logger.FromContext(ctx)

	record, err := a.registry.Generate(ctx, user.Email, models.OTPKindEmailVerification)
	if err != nil {
		log.Err(err).Str("func", "*authService.issueVerificationCode").Str("user_id", user.UserID).Msg("verification code issue ended with error")
		return models.OTPRecord{}, err
	}

	if err := a.mailer.SendTemplateEmail(ctx, codeEmail(record)); err != nil {
		a.registry.Revoke(ctx, record.ID)
		log.Err(err).Str("func", "*authService.issueVerificationCode").Str("otp_id", record.ID).Msg("verification email delivery failed, code revoked")
		return models.OTPRecord{}, ErrNotificationUnavailable
	}

	return record, nil
}

// codeEmail builds the templated email carrying a one-time code.
func codeEmail(record models.OTPRecord) models.TemplateEmail {
	templateName := models.MailTemplateEmailVerification
	if record.Kind == models.OTPKindPasswordReset {
		templateName = models.MailTemplatePasswordReset
	}

	return models.TemplateEmail{
		RecipientEmail: record.Email,
		TemplateName:   templateName,
		TemplateData: map[string]any{
			"code":       record.Code,
			"expires_at": record.ExpiresAt.UTC().Format(time.RFC3339),
		},
		Priority: models.MailPriorityHigh,
	}
}

// mapCodeError collapses registry errors into the service taxonomy. Only a
// wrong code and a throttled resend keep their identity; everything else is
// indistinguishable from an expired record on purpose.
func mapCodeError(err error) error {
	switch {
	case errors.Is(err, otp.ErrWrongCode):
		return ErrWrongCode
	case errors.Is(err, otp.ErrResendTooSoon):
		return ErrRateLimited
	case errors.Is(err, otp.ErrNotFound),
		errors.Is(err, otp.ErrExpired),
		errors.Is(err, otp.ErrAlreadyUsed),
		errors.Is(err, otp.ErrWrongKind),
		errors.Is(err, otp.ErrTooManyAttempts):
		return ErrCodeInvalidOrExpired
	default:
		return err
	}
}
