package models

// SignupStepOneResponse returns the identifier of the newly created account.
// The client uses it to address the second signup phase.
type SignupStepOneResponse struct {
	UserID string `json:"user_id"`
}

// SignupStepTwoResponse completes signup: the caller receives a bearer token
// immediately (verification gates signin, not the token issued at signup),
// the stored profile, and the OTP correlation id for email verification.
type SignupStepTwoResponse struct {
	Token   string `json:"token"`
	Profile User   `json:"profile"`
	OTPID   string `json:"otp_id"`
}

// SignInResponse returns the bearer token and the account profile.
type SignInResponse struct {
	Token   string `json:"token"`
	Profile User   `json:"profile"`
}

// OTPIssuedResponse is returned whenever a one-time code is (re)issued.
// The code itself travels out-of-band by email and is never present here.
type OTPIssuedResponse struct {
	OTPID string `json:"otp_id"`
}

// ForgotPasswordResponse is structurally identical whether or not the email
// exists, so the endpoint cannot be used to enumerate accounts.
type ForgotPasswordResponse struct {
	OTPID string `json:"otp_id"`
}
