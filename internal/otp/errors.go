package otp

import "errors"

// Sentinel errors returned by the registry. Callers should use [errors.Is]
// to match against these values.
var (
	// ErrNotFound is returned when no record exists under the given ID,
	// whether because it never existed, expired and was evicted, or the
	// process restarted. Lookups by unknown ID are not charged as attempts.
	ErrNotFound = errors.New("one-time code was not found")

	// ErrWrongKind is returned when a record exists but was issued for a
	// different flow than the one verifying it.
	ErrWrongKind = errors.New("one-time code was issued for a different flow")

	// ErrAlreadyUsed is returned when the record has already validated once.
	ErrAlreadyUsed = errors.New("one-time code was already used")

	// ErrExpired is returned when the record is past its expiry.
	ErrExpired = errors.New("one-time code has expired")

	// ErrTooManyAttempts is returned once the attempt budget is exhausted.
	// The record is dead at that point even if a later guess is correct.
	ErrTooManyAttempts = errors.New("too many verification attempts")

	// ErrWrongCode is returned when the submitted code does not match.
	ErrWrongCode = errors.New("one-time code does not match")

	// ErrResendTooSoon is returned when a resend is requested before the
	// throttle interval since the last issue has elapsed.
	ErrResendTooSoon = errors.New("one-time code was requested too recently")
)
