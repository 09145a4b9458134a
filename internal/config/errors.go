package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty database DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a missing token sign key or an unusable bcrypt cost).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidNotifierConfigs indicates invalid notification-service
	// settings (for example, a missing base URL).
	ErrInvalidNotifierConfigs = errors.New("invalid notifier configuration")
	// ErrInvalidOTPConfigs indicates invalid one-time-code settings
	// (for example, a non-positive lifetime or attempt cap).
	ErrInvalidOTPConfigs = errors.New("invalid otp configuration")
	// ErrInvalidBootstrapConfigs indicates missing bootstrap super-admin
	// credentials.
	ErrInvalidBootstrapConfigs = errors.New("invalid bootstrap configuration")
)
