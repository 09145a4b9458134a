package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-identity/internal/config"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/models"
)

func testConfig() config.OTP {
	return config.OTP{
		VerificationTTL: 15 * time.Minute,
		ResetTTL:        10 * time.Minute,
		ResendInterval:  time.Minute,
		MaxAttempts:     3,
		SweepInterval:   5 * time.Minute,
	}
}

// newTestRegistry returns a registry with a controllable clock. Advance the
// clock through the returned pointer.
func newTestRegistry(t *testing.T) (*registry, *time.Time) {
	t.Helper()

	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(testConfig(), logger.NewLogger("test")).(*registry)
	r.now = func() time.Time { return now }
	return r, &now
}

func TestGenerate_IssuesSixDigitCode(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	record, err := r.Generate(ctx, "John@Example.com", models.OTPKindEmailVerification)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(record.Code) != 6 {
		t.Errorf("expected 6-digit code, got %q", record.Code)
	}
	for _, c := range record.Code {
		if c < '0' || c > '9' {
			t.Errorf("expected numeric code, got %q", record.Code)
		}
	}
	if record.ID == "" {
		t.Error("expected non-empty record ID")
	}
	if record.Email != "john@example.com" {
		t.Errorf("expected normalised email, got %q", record.Email)
	}
	if record.Used || record.Attempts != 0 {
		t.Error("expected a fresh unused record")
	}
}

func TestGenerate_SupersedesOutstandingRecord(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	first, _ := r.Generate(ctx, "john@example.com", models.OTPKindEmailVerification)
	second, _ := r.Generate(ctx, "john@example.com", models.OTPKindEmailVerification)

	if _, err := r.Verify(ctx, first.ID, first.Code, models.OTPKindEmailVerification); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected superseded record to be gone, got %v", err)
	}
	if _, err := r.Verify(ctx, second.ID, second.Code, models.OTPKindEmailVerification); err != nil {
		t.Fatalf("expected fresh record to verify, got %v", err)
	}
}

func TestRevoke_RemovesRecord(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	record, _ := r.Generate(ctx, "john@example.com", models.OTPKindEmailVerification)
	r.Revoke(ctx, record.ID)

	if _, err := r.Verify(ctx, record.ID, record.Code, models.OTPKindEmailVerification); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected revoked record to be gone even with the correct code, got %v", err)
	}

	// the target slot is free again: a fresh code can be issued and verified
	fresh, err := r.Generate(ctx, "john@example.com", models.OTPKindEmailVerification)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Verify(ctx, fresh.ID, fresh.Code, models.OTPKindEmailVerification); err != nil {
		t.Fatalf("expected fresh record to verify after revoke, got %v", err)
	}
}

func TestRevoke_UnknownIDIsNoop(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	record, _ := r.Generate(ctx, "john@example.com", models.OTPKindEmailVerification)
	r.Revoke(ctx, "no-such-id")

	if _, err := r.Verify(ctx, record.ID, record.Code, models.OTPKindEmailVerification); err != nil {
		t.Fatalf("expected unrelated record to survive, got %v", err)
	}
}

func TestGenerate_DifferentKindsCoexist(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	verification, _ := r.Generate(ctx, "john@example.com", models.OTPKindEmailVerification)
	reset, _ := r.Generate(ctx, "john@example.com", models.OTPKindPasswordReset)

	if _, err := r.Verify(ctx, verification.ID, verification.Code, models.OTPKindEmailVerification); err != nil {
		t.Fatalf("unexpected error for verification record: %v", err)
	}
	if _, err := r.Verify(ctx, reset.ID, reset.Code, models.OTPKindPasswordReset); err != nil {
		t.Fatalf("unexpected error for reset record: %v", err)
	}
}

func TestVerify_Success_ConsumesRecord(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	record, _ := r.Generate(ctx, "john@example.com", models.OTPKindEmailVerification)

	verified, err := r.Verify(ctx, record.ID, record.Code, models.OTPKindEmailVerification)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !verified.Used {
		t.Error("expected record to be marked used")
	}

	// replaying the same code must fail, not succeed a second time
	if _, err := r.Verify(ctx, record.ID, record.Code, models.OTPKindEmailVerification); !errors.Is(err, ErrAlreadyUsed) {
		t.Fatalf("expected ErrAlreadyUsed on replay, got %v", err)
	}
}

func TestVerify_UnknownID_NotCharged(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	if _, err := r.Verify(ctx, "no-such-id", "123456", models.OTPKindEmailVerification); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVerify_WrongKind(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	record, _ := r.Generate(ctx, "john@example.com", models.OTPKindEmailVerification)

	if _, err := r.Verify(ctx, record.ID, record.Code, models.OTPKindPasswordReset); !errors.Is(err, ErrWrongKind) {
		t.Fatalf("expected ErrWrongKind, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	r, clock := newTestRegistry(t)
	ctx := context.Background()

	record, _ := r.Generate(ctx, "john@example.com", models.OTPKindEmailVerification)

	*clock = clock.Add(16 * time.Minute)

	if _, err := r.Verify(ctx, record.ID, record.Code, models.OTPKindEmailVerification); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestVerify_WrongCode(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	record, _ := r.Generate(ctx, "john@example.com", models.OTPKindEmailVerification)

	wrong := "000000"
	if wrong == record.Code {
		wrong = "000001"
	}

	if _, err := r.Verify(ctx, record.ID, wrong, models.OTPKindEmailVerification); !errors.Is(err, ErrWrongCode) {
		t.Fatalf("expected ErrWrongCode, got %v", err)
	}
}

func TestVerify_AttemptBudget_LocksEvenForCorrectCode(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	record, _ := r.Generate(ctx, "john@example.com", models.OTPKindEmailVerification)

	wrong := "000000"
	if wrong == record.Code {
		wrong = "000001"
	}

	// burn the whole attempt budget on wrong guesses
	for i := 0; i < testConfig().MaxAttempts; i++ {
		if _, err := r.Verify(ctx, record.ID, wrong, models.OTPKindEmailVerification); !errors.Is(err, ErrWrongCode) {
			t.Fatalf("attempt %d: expected ErrWrongCode, got %v", i+1, err)
		}
	}

	// the correct code no longer helps
	if _, err := r.Verify(ctx, record.ID, record.Code, models.OTPKindEmailVerification); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestResend_Throttled(t *testing.T) {
	r, clock := newTestRegistry(t)
	ctx := context.Background()

	record, _ := r.Generate(ctx, "john@example.com", models.OTPKindEmailVerification)

	*clock = clock.Add(30 * time.Second)
	if _, err := r.Resend(ctx, record.ID); !errors.Is(err, ErrResendTooSoon) {
		t.Fatalf("expected ErrResendTooSoon, got %v", err)
	}

	*clock = clock.Add(31 * time.Second)
	reissued, err := r.Resend(ctx, record.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reissued.ID != record.ID {
		t.Error("expected the record ID to stay stable across resend")
	}
	if reissued.Attempts != 0 {
		t.Error("expected resend to reset the attempt budget")
	}
	if !reissued.ExpiresAt.After(record.ExpiresAt) {
		t.Error("expected resend to extend the expiry")
	}
}

func TestResend_ResetsAttemptBudget(t *testing.T) {
	r, clock := newTestRegistry(t)
	ctx := context.Background()

	record, _ := r.Generate(ctx, "john@example.com", models.OTPKindEmailVerification)

	wrong := "000000"
	if wrong == record.Code {
		wrong = "000001"
	}
	for i := 0; i < testConfig().MaxAttempts; i++ {
		_, _ = r.Verify(ctx, record.ID, wrong, models.OTPKindEmailVerification)
	}

	*clock = clock.Add(2 * time.Minute)
	reissued, err := r.Resend(ctx, record.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := r.Verify(ctx, record.ID, reissued.Code, models.OTPKindEmailVerification); err != nil {
		t.Fatalf("expected reissued code to verify, got %v", err)
	}
}

func TestResend_UsedRecord(t *testing.T) {
	r, clock := newTestRegistry(t)
	ctx := context.Background()

	record, _ := r.Generate(ctx, "john@example.com", models.OTPKindEmailVerification)
	if _, err := r.Verify(ctx, record.ID, record.Code, models.OTPKindEmailVerification); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	*clock = clock.Add(2 * time.Minute)
	if _, err := r.Resend(ctx, record.ID); !errors.Is(err, ErrAlreadyUsed) {
		t.Fatalf("expected ErrAlreadyUsed, got %v", err)
	}
}

func TestSweep_EvictsExpiredOnly(t *testing.T) {
	r, clock := newTestRegistry(t)
	ctx := context.Background()

	expiring, _ := r.Generate(ctx, "old@example.com", models.OTPKindPasswordReset)

	*clock = clock.Add(11 * time.Minute) // past the reset TTL
	fresh, _ := r.Generate(ctx, "new@example.com", models.OTPKindEmailVerification)

	if evicted := r.Sweep(ctx); evicted != 1 {
		t.Fatalf("expected 1 eviction, got %d", evicted)
	}

	if _, err := r.Verify(ctx, expiring.ID, expiring.Code, models.OTPKindPasswordReset); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected evicted record to be gone, got %v", err)
	}
	if _, err := r.Verify(ctx, fresh.ID, fresh.Code, models.OTPKindEmailVerification); err != nil {
		t.Fatalf("expected live record to survive the sweep, got %v", err)
	}
}
