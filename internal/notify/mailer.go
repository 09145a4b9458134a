// Package notify holds the client for the outbound notification service.
// The service renders templated emails and delivers them; this process never
// speaks SMTP itself.
package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-identity/internal/config"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/utils"
	"github.com/MKhiriev/go-identity/models"
)

// Sentinel errors returned by the mailer client.
var (
	// ErrUnavailable is returned when the notification service cannot be
	// reached or fails its health probe.
	ErrUnavailable = errors.New("notification service is unavailable")

	// ErrSendRejected is returned when the notification service answers a
	// delivery request with a non-2xx status.
	ErrSendRejected = errors.New("notification service rejected the message")
)

// Mailer delivers templated emails through the notification service.
type Mailer interface {
	// SendTemplateEmail asks the notification service to render and deliver
	// the given message. A nil error means the service accepted the message,
	// not that it reached the recipient's inbox.
	SendTemplateEmail(ctx context.Context, email models.TemplateEmail) error

	// Health probes the notification service. Used at startup so a
	// misconfigured notifier address fails fast instead of surfacing on the
	// first signup.
	Health(ctx context.Context) error
}

// httpMailer is the HTTP/REST implementation of [Mailer].
type httpMailer struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPMailer constructs an HTTP/REST implementation of [Mailer].
// It normalises and validates the base URL from cfg.BaseURL and configures
// the underlying HTTP client with the resolved base URL and request timeout.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid URL.
func NewHTTPMailer(cfg config.Notifier, logger *logger.Logger) (Mailer, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid notifier address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	logger.Debug().Str("base_url", baseURL).Msg("creating notification client")

	return &httpMailer{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SendTemplateEmail implements [Mailer]. It POSTs the message to
// POST /api/v1/emails/template and maps transport failures to
// [ErrUnavailable] and non-2xx responses to [ErrSendRejected].
func (m *httpMailer) SendTemplateEmail(ctx context.Context, email models.TemplateEmail) error {
	log := logger.FromContext(ctx)

	resp, err := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(email).
		Post("/api/v1/emails/template")
	if err != nil {
		log.Err(err).Str("func", "*httpMailer.SendTemplateEmail").Str("template", email.TemplateName).Msg("error: notification request failed")
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		body := strings.TrimSpace(string(resp.Body()))
		log.Error().Str("func", "*httpMailer.SendTemplateEmail").Str("template", email.TemplateName).Int("status", resp.StatusCode()).Msg("error: notification request rejected")
		return fmt.Errorf("%w: http %d: %s", ErrSendRejected, resp.StatusCode(), body)
	}

	return nil
}

// Health implements [Mailer]. It GETs /health and treats anything but a 2xx
// answer as [ErrUnavailable].
func (m *httpMailer) Health(ctx context.Context) error {
	resp, err := m.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: http %d", ErrUnavailable, resp.StatusCode())
	}

	return nil
}
