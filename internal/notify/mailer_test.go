package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-identity/internal/config"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/models"
)

func newTestMailer(t *testing.T, handler http.HandlerFunc) (Mailer, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	mailer, err := NewHTTPMailer(config.Notifier{
		BaseURL:        srv.URL,
		RequestTimeout: 2 * time.Second,
	}, logger.NewLogger("test"))
	if err != nil {
		t.Fatalf("failed to create mailer: %v", err)
	}

	return mailer, srv
}

func TestSendTemplateEmail_Success(t *testing.T) {
	var received models.TemplateEmail

	mailer, _ := newTestMailer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/emails/template" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	})

	email := models.TemplateEmail{
		RecipientEmail: "john@example.com",
		TemplateName:   models.MailTemplateEmailVerification,
		TemplateData:   map[string]any{"code": "123456"},
	}

	if err := mailer.SendTemplateEmail(context.Background(), email); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received.RecipientEmail != "john@example.com" {
		t.Errorf("expected recipient to reach the service, got %q", received.RecipientEmail)
	}
	if received.TemplateName != models.MailTemplateEmailVerification {
		t.Errorf("expected verification template, got %q", received.TemplateName)
	}
}

func TestSendTemplateEmail_Rejected(t *testing.T) {
	mailer, _ := newTestMailer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown template", http.StatusUnprocessableEntity)
	})

	err := mailer.SendTemplateEmail(context.Background(), models.TemplateEmail{})
	if !errors.Is(err, ErrSendRejected) {
		t.Fatalf("expected ErrSendRejected, got %v", err)
	}
}

func TestSendTemplateEmail_Unreachable(t *testing.T) {
	mailer, srv := newTestMailer(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	err := mailer.SendTemplateEmail(context.Background(), models.TemplateEmail{})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestHealth(t *testing.T) {
	mailer, _ := newTestMailer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := mailer.Health(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHealth_Unavailable(t *testing.T) {
	mailer, _ := newTestMailer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	if err := mailer.Health(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestNewHTTPMailer_InvalidAddress(t *testing.T) {
	if _, err := NewHTTPMailer(config.Notifier{BaseURL: "  "}, logger.NewLogger("test")); err == nil {
		t.Fatal("expected error for empty address")
	}
}
