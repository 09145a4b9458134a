// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// defaults returns the built-in configuration applied with the lowest
// priority: a field keeps its default only when no other source set it.
//
// Security material (token sign key, DSN, bootstrap credentials) has no
// default on purpose; validation rejects a config that is missing it.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-identity",
			TokenDuration: time.Hour,
			BcryptCost:    10,
		},
		Server: Server{
			HTTPAddress:    "0.0.0.0:8080",
			RequestTimeout: 30 * time.Second,
		},
		Notifier: Notifier{
			RequestTimeout: 15 * time.Second,
		},
		OTP: OTP{
			VerificationTTL: 15 * time.Minute,
			ResetTTL:        10 * time.Minute,
			ResendInterval:  time.Minute,
			MaxAttempts:     3,
			SweepInterval:   5 * time.Minute,
		},
		Bootstrap: Bootstrap{
			AdminName:     "Super Admin",
			AdminUsername: "superadmin",
		},
	}
}
