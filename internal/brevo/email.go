package brevo

import (
	"context"
	"net/http"
	"strings"

	"charter/internal/utils"
)

type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// TemplateEmail is one transactional send of a stored Brevo template.
type TemplateEmail struct {
	To         []Recipient    `json:"to"`
	TemplateID int64          `json:"templateId"`
	Params     map[string]any `json:"params,omitempty"`
}

type SendResult struct {
	MessageID string `json:"messageId"`
}

// Mailer sends templated transactional email.
type Mailer interface {
	SendTemplate(ctx context.Context, email TemplateEmail) error
}

func (c *Client) SendTemplate(ctx context.Context, email TemplateEmail) error {
	var res SendResult
	if err := c.do(ctx, http.MethodPost, "/smtp/email", email, &res); err != nil {
		return err
	}
	utils.Logger.WithField("message_id", res.MessageID).Debug("brevo template email accepted")
	return nil
}

// DisabledMailer logs instead of sending; used when SEND_EMAIL is off.
type DisabledMailer struct{}

func (DisabledMailer) SendTemplate(_ context.Context, email TemplateEmail) error {
	to := make([]string, 0, len(email.To))
	for _, r := range email.To {
		to = append(to, r.Email)
	}
	utils.Logger.WithField("template_id", email.TemplateID).
		WithField("to", strings.Join(to, ",")).
		Info("email sending disabled, skipping")
	return nil
}
