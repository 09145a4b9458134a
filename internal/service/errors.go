package service

import "errors"

// Sentinel errors returned by the service layer. The HTTP layer maps these
// onto status codes; callers match them with [errors.Is].
var (
	// ErrInvalidDataProvided is returned when a request is missing required
	// fields or carries values that fail validation.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrAlreadyExists is returned when a username or email is already taken.
	ErrAlreadyExists = errors.New("username or email is already taken")

	// ErrNotFound is returned when the addressed account does not exist.
	ErrNotFound = errors.New("account was not found")

	// ErrInvalidCredentials is returned on signin when the identifier is
	// unknown, the password does not match, signup is incomplete, or the
	// email is unverified. The cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDeactivated is returned when an otherwise valid signin or
	// token hits a deactivated or soft-deleted account.
	ErrAccountDeactivated = errors.New("account is deactivated")

	// ErrInvalidToken is returned when a bearer token fails validation,
	// carries the wrong audience, or references an account that no longer
	// exists.
	ErrInvalidToken = errors.New("invalid token")

	// ErrPreconditionFailed is returned when an operation is attempted out
	// of order: completing signup twice or reactivating an account that is
	// not deactivated.
	ErrPreconditionFailed = errors.New("operation precondition failed")

	// ErrAlreadyVerified is returned when email verification is requested
	// for an address that is already verified.
	ErrAlreadyVerified = errors.New("email is already verified")

	// ErrCodeInvalidOrExpired is returned when a one-time code record is
	// unknown, expired, consumed, of the wrong flow, or locked by too many
	// attempts. The cases are collapsed so a caller probing the endpoint
	// learns nothing about record state.
	ErrCodeInvalidOrExpired = errors.New("one-time code is invalid or expired")

	// ErrWrongCode is returned when the record is live but the submitted
	// code does not match. Distinct from [ErrCodeInvalidOrExpired] so the
	// client can prompt for a retype instead of a full restart.
	ErrWrongCode = errors.New("one-time code does not match")

	// ErrRateLimited is returned when a resend is requested before the
	// throttle interval has elapsed.
	ErrRateLimited = errors.New("too many requests, retry later")

	// ErrNotificationUnavailable is returned when the notification service
	// cannot accept an email that the operation depends on.
	ErrNotificationUnavailable = errors.New("notification service is unavailable")

	// ErrForbidden is returned when the acting account lacks the privilege
	// tier an administrative operation requires.
	ErrForbidden = errors.New("operation is not allowed for this account")
)
