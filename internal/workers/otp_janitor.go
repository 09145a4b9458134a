// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/otp"
)

// defaultSweepInterval is used when the configured interval is zero or
// negative, so a misconfigured janitor never spins in a tight loop.
const defaultSweepInterval = time.Minute

// otpJanitor periodically evicts expired one-time-code records from the
// registry. Eviction is an optimisation: expired records fail verification
// regardless of sweep timing.
type otpJanitor struct {
	registry otp.Registry
	interval time.Duration
	logger   *logger.Logger
}

func newOTPJanitor(registry otp.Registry, interval time.Duration, logger *logger.Logger) *otpJanitor {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &otpJanitor{
		registry: registry,
		interval: interval,
		logger:   logger,
	}
}

// Run starts the sweep loop in a background goroutine and returns
// immediately. The loop runs for the lifetime of the process.
func (j *otpJanitor) Run() {
	j.logger.Info().Dur("interval", j.interval).Msg("one-time-code janitor started")

	go func() {
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for range ticker.C {
			evicted := j.registry.Sweep(context.Background())
			if evicted > 0 {
				j.logger.Debug().Str("func", "*otpJanitor.Run").Int("evicted", evicted).Msg("expired one-time codes evicted")
			}
		}
	}()
}
