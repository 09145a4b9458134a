package models

// SignupStepOneRequest carries the credentials for the first signup phase.
type SignupStepOneRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupStepTwoRequest carries the profile fields for the second signup
// phase. The user is identified by the path, not the body.
type SignupStepTwoRequest struct {
	FullName string `json:"full_name"`
	College  string `json:"college,omitempty"`
}

// SignInRequest carries the credentials for signin. Identifier is resolved as
// username-or-email, case-insensitively.
type SignInRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// VerifyEmailRequest carries a one-time code check for email verification.
type VerifyEmailRequest struct {
	OTPID string `json:"otp_id"`
	Code  string `json:"code"`
}

// ResendCodeRequest asks for a fresh code on an existing OTP record.
type ResendCodeRequest struct {
	OTPID string `json:"otp_id"`
}

// ForgotPasswordRequest starts the password-reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest finishes the password-reset flow.
type ResetPasswordRequest struct {
	OTPID       string `json:"otp_id"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// CreateAdminRequest creates a new administrator account. Only super-admins
// may perform this operation.
type CreateAdminRequest struct {
	Name     string    `json:"name"`
	Username string    `json:"username"`
	Password string    `json:"password"`
	Role     AdminRole `json:"role"`
}

// AdminSignInRequest carries administrator credentials.
type AdminSignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LifecycleRequest carries the optional audit reason for an administrative
// deactivate/reactivate action. The target user is identified by the path.
type LifecycleRequest struct {
	Reason string `json:"reason,omitempty"`
}
