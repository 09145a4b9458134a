// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration <= 0 || cfg.App.BcryptCost < 4 {
		return ErrInvalidAppConfigs
	}

	if cfg.Notifier.BaseURL == "" {
		return ErrInvalidNotifierConfigs
	}

	if cfg.OTP.VerificationTTL <= 0 || cfg.OTP.ResetTTL <= 0 ||
		cfg.OTP.ResendInterval <= 0 || cfg.OTP.MaxAttempts < 1 {
		return ErrInvalidOTPConfigs
	}

	if cfg.Bootstrap.AdminUsername == "" || cfg.Bootstrap.AdminPassword == "" {
		return ErrInvalidBootstrapConfigs
	}

	return nil
}
