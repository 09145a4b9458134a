// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/MKhiriev/go-identity/internal/config"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/models"
	"github.com/google/uuid"
)

// Registry issues and validates short-lived one-time codes.
//
// All methods are safe for concurrent use.
type Registry interface {
	// Generate issues a fresh code for the given address and flow. Any
	// earlier outstanding record for the same address and flow is
	// superseded: at most one record per (email, kind) is active at a time.
	Generate(ctx context.Context, email string, kind models.OTPKind) (models.OTPRecord, error)

	// Verify charges one attempt against the record and validates the
	// submitted code. Unknown IDs are not charged. On success the record is
	// marked used and retained, so replaying the same code fails with
	// [ErrAlreadyUsed].
	Verify(ctx context.Context, id string, code string, kind models.OTPKind) (models.OTPRecord, error)

	// Resend regenerates the code of an existing record in place: same ID,
	// fresh code, reset attempt budget, fresh expiry. Throttled by the
	// configured resend interval.
	Resend(ctx context.Context, id string) (models.OTPRecord, error)

	// Revoke discards a record outright. Used to roll back a code whose
	// email could not be delivered: an undeliverable code must not stay
	// verifiable. Unknown IDs are ignored.
	Revoke(ctx context.Context, id string)

	// Sweep evicts expired records and returns the number removed.
	Sweep(ctx context.Context) int
}

type targetKey struct {
	email string
	kind  models.OTPKind
}

// registry is the in-memory [Registry] implementation. One mutex guards both
// maps; operations are map lookups and never block on I/O, so finer locking
// buys nothing.
type registry struct {
	mu       sync.Mutex
	records  map[string]*models.OTPRecord
	byTarget map[targetKey]string

	cfg    config.OTP
	logger *logger.Logger

	// injected for tests
	now        func() time.Time
	generateID func() string
}

// NewRegistry constructs an in-memory [Registry] with the given limits.
func NewRegistry(cfg config.OTP, logger *logger.Logger) Registry {
	logger.Debug().Msg("creating one-time code registry")
	return &registry{
		records:    make(map[string]*models.OTPRecord),
		byTarget:   make(map[targetKey]string),
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
		generateID: newRecordID,
	}
}

func newRecordID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// newCode draws a uniformly random 6-digit numeric code from crypto/rand.
func newCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("error generating one-time code: %w", err)
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (r *registry) ttl(kind models.OTPKind) time.Duration {
	if kind == models.OTPKindPasswordReset {
		return r.cfg.ResetTTL
	}

	return r.cfg.VerificationTTL
}

func (r *registry) Generate(ctx context.Context, email string, kind models.OTPKind) (models.OTPRecord, error) {
	log := logger.FromContext(ctx)

	code, err := newCode()
	if err != nil {
		log.Err(err).Str("func", "*registry.Generate").Msg("error: generating code")
		return models.OTPRecord{}, err
	}

	now := r.now()
	record := &models.OTPRecord{
		ID:        r.generateID(),
		Email:     models.NormalizeIdentifier(email),
		Code:      code,
		Kind:      kind,
		ExpiresAt: now.Add(r.ttl(kind)),
		CreatedAt: now,
	}

	target := targetKey{email: record.Email, kind: kind}

	r.mu.Lock()
	defer r.mu.Unlock()

	// supersede any outstanding record for the same address and flow
	if previousID, ok := r.byTarget[target]; ok {
		delete(r.records, previousID)
	}
	r.records[record.ID] = record
	r.byTarget[target] = record.ID

	log.Debug().Str("func", "*registry.Generate").Str("kind", string(kind)).Str("otp_id", record.ID).Msg("one-time code issued")

	return *record, nil
}

func (r *registry) Verify(ctx context.Context, id string, code string, kind models.OTPKind) (models.OTPRecord, error) {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok {
		return models.OTPRecord{}, ErrNotFound
	}

	// every verification call against a live record is charged, including
	// ones that fail the kind, used, or expiry checks below
	record.Attempts++

	if record.Kind != kind {
		return models.OTPRecord{}, ErrWrongKind
	}
	if record.Used {
		return models.OTPRecord{}, ErrAlreadyUsed
	}
	if r.now().After(record.ExpiresAt) {
		return models.OTPRecord{}, ErrExpired
	}
	if record.Attempts > r.cfg.MaxAttempts {
		log.Warn().Str("func", "*registry.Verify").Str("otp_id", id).Int("attempts", record.Attempts).Msg("one-time code attempt budget exhausted")
		return models.OTPRecord{}, ErrTooManyAttempts
	}
	if subtle.ConstantTimeCompare([]byte(record.Code), []byte(code)) != 1 {
		return models.OTPRecord{}, ErrWrongCode
	}

	// consume the record but retain it so a replay surfaces as AlreadyUsed
	// instead of NotFound
	record.Used = true

	return *record, nil
}

func (r *registry) Resend(ctx context.Context, id string) (models.OTPRecord, error) {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok {
		return models.OTPRecord{}, ErrNotFound
	}
	if record.Used {
		return models.OTPRecord{}, ErrAlreadyUsed
	}

	now := r.now()
	if now.Before(record.CreatedAt.Add(r.cfg.ResendInterval)) {
		return models.OTPRecord{}, ErrResendTooSoon
	}

	code, err := newCode()
	if err != nil {
		log.Err(err).Str("func", "*registry.Resend").Msg("error: generating code")
		return models.OTPRecord{}, err
	}

	// regenerate in place: the ID the client holds stays valid
	record.Code = code
	record.Attempts = 0
	record.ExpiresAt = now.Add(r.ttl(record.Kind))
	record.CreatedAt = now

	log.Debug().Str("func", "*registry.Resend").Str("otp_id", id).Msg("one-time code reissued")

	return *record, nil
}

func (r *registry) Revoke(ctx context.Context, id string) {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok {
		return
	}

	delete(r.records, id)

	target := targetKey{email: record.Email, kind: record.Kind}
	if r.byTarget[target] == id {
		delete(r.byTarget, target)
	}

	log.Debug().Str("func", "*registry.Revoke").Str("otp_id", id).Msg("one-time code revoked")
}

func (r *registry) Sweep(ctx context.Context) int {
	log := logger.FromContext(ctx)

	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, record := range r.records {
		if now.After(record.ExpiresAt) {
			delete(r.records, id)

			target := targetKey{email: record.Email, kind: record.Kind}
			if r.byTarget[target] == id {
				delete(r.byTarget, target)
			}
			evicted++
		}
	}

	if evicted > 0 {
		log.Debug().Str("func", "*registry.Sweep").Int("evicted", evicted).Msg("expired one-time codes evicted")
	}

	return evicted
}
