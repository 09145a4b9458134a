package models

// MailPriority hints the notification service about delivery urgency.
type MailPriority string

const (
	MailPriorityHigh   MailPriority = "high"
	MailPriorityNormal MailPriority = "normal"
)

// Mail template names understood by the notification service.
const (
	MailTemplateEmailVerification = "email-verification"
	MailTemplatePasswordReset     = "password-reset"
)

// TemplateEmail is an outbound templated email handed to the notification
// service. The service owns template rendering; this side only supplies the
// template name and its data.
type TemplateEmail struct {
	// RecipientEmail is the destination address.
	RecipientEmail string `json:"recipient_email"`

	// TemplateName selects the template rendered by the notification service.
	TemplateName string `json:"template_name"`

	// TemplateData carries the values substituted into the template
	// (e.g. the one-time code and its validity window).
	TemplateData map[string]any `json:"template_data"`

	// Priority is the delivery urgency hint.
	Priority MailPriority `json:"priority"`
}
