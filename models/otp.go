package models

import "time"

// OTPKind tags a one-time code with the flow it was issued for. Records of
// one kind must never validate against a request for the other.
type OTPKind string

const (
	// OTPKindEmailVerification marks codes proving email ownership at signup.
	OTPKindEmailVerification OTPKind = "email_verification"

	// OTPKindPasswordReset marks codes authorising a password reset.
	OTPKindPasswordReset OTPKind = "password_reset"
)

// OTPRecord is a short-lived one-time code held in process memory by the OTP
// registry. It is never persisted durably and is lost on restart.
type OTPRecord struct {
	// ID is the opaque, unguessable lookup key of the record. It is returned
	// to the client to correlate a verification attempt and must be treated
	// as a capability token, never derived from the code itself.
	ID string

	// Email is the target address the code was issued for.
	Email string

	// Code is the 6-digit uniformly random numeric string delivered
	// out-of-band. Collisions across active records are harmless since
	// lookup is by ID.
	Code string

	// Kind is the flow this record belongs to.
	Kind OTPKind

	// ExpiresAt is the absolute wall-clock expiry of the record.
	ExpiresAt time.Time

	// Attempts counts verification calls charged against this record.
	Attempts int

	// Used is the one-shot consumption flag; a used record never validates
	// again.
	Used bool

	// CreatedAt throttles resend requests.
	CreatedAt time.Time
}
