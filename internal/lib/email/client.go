// Package email sends notification emails through Resend.
package email

import (
	"bytes"
	"context"
	"fmt"

	"github.com/deppfellow/flatchores/internal/config"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

const sender = "Flatchores <onboarding@resend.dev>"

type Client struct {
	client *resend.Client
	logger *zerolog.Logger

	// enabled is false without an API key; sends are then logged and dropped.
	enabled bool
}

func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		client:  resend.NewClient(cfg.Integration.ResendAPIKey),
		logger:  logger,
		enabled: cfg.Integration.ResendAPIKey != "",
	}
}

func (c *Client) Enabled() bool {
	return c.enabled
}

// Render executes the named embedded template.
func Render(templateName Template, data map[string]string) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, string(templateName)+".html", data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}
	return body.String(), nil
}

func (c *Client) SendEmail(ctx context.Context, to, subject string, templateName Template, data map[string]string) error {
	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	if !c.enabled {
		c.logger.Warn().
			Str("template", string(templateName)).
			Str("to", to).
			Msg("email integration not configured, skipping send")
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    sender,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := c.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
