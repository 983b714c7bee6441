// Package email provides an email sending client.
//
// It uses Resend (resend-go) as the email provider and renders
// HTML bodies from templates embedded in the binary.
package email

import (
	"context"
	"fmt"

	"github.com/deppfellow/url-summarizer/internal/config"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

const (
	senderName         = "URL Summarizer"
	defaultFromAddress = "onboarding@resend.dev"
)

// Sender is the part of the Resend emails API the client uses.
type Sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Client renders templates and sends them through a Sender.
type Client struct {
	sender Sender
	from   string
	logger *zerolog.Logger
}

// NewClient creates a Resend backed client from the integration config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return NewClientWithSender(
		resend.NewClient(cfg.Integration.ResendAPIKey).Emails,
		cfg.Integration.FromAddress,
		logger,
	)
}

// NewClientWithSender creates a client on top of an arbitrary Sender.
// An empty from falls back to the Resend onboarding address.
func NewClientWithSender(sender Sender, from string, logger *zerolog.Logger) *Client {
	if from == "" {
		from = defaultFromAddress
	}
	return &Client{
		sender: sender,
		from:   fmt.Sprintf("%s <%s>", senderName, from),
		logger: logger,
	}
}

// SendEmail renders templateName with data and sends it to every
// address in to as one message.
func (c *Client) SendEmail(ctx context.Context, to []string, subject string, templateName Template, data map[string]string) error {
	body, err := RenderTemplate(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      to,
		Subject: subject,
		Html:    body,
	}

	resp, err := c.sender.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	event := c.logger.Debug().
		Str("template", string(templateName)).
		Int("recipients", len(to))
	if resp != nil {
		event = event.Str("email_id", resp.Id)
	}
	event.Msg("email sent")

	return nil
}
