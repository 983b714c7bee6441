package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/url-summarizer/internal/config"
	"github.com/deppfellow/url-summarizer/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// EmailSender sends the summary notification email.
type EmailSender interface {
	SendSummaryCreatedEmail(ctx context.Context, to []string, id int64, url string, createdAt time.Time) error
}

// InitHandlers sets up the dependencies of the task handlers. The email
// client is only created when notifications are configured.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Integration.NotificationsEnabled() {
		logger.Info().Msg("summary email notifications disabled")
		return
	}
	j.SetEmailSender(email.NewClient(cfg, logger), cfg.Integration.NotifyRecipients)
}

// SetEmailSender installs the sender used by the notification handler.
func (j *JobService) SetEmailSender(sender EmailSender, recipients []string) {
	j.emailClient = sender
	j.recipients = recipients
}

func (j *JobService) handleSummaryCreatedTask(ctx context.Context, t *asynq.Task) error {
	var p SummaryCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// Retrying cannot fix a malformed payload.
		return fmt.Errorf("failed to unmarshal summary payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskSummaryCreated).
		Int64("summary_id", p.ID).
		Logger()

	if j.emailClient == nil || len(j.recipients) == 0 {
		logger.Debug().Msg("no notification recipients, skipping summary task")
		return nil
	}

	logger.Info().Msg("Processing summary created task")

	if err := j.emailClient.SendSummaryCreatedEmail(ctx, j.recipients, p.ID, p.URL, p.CreatedAt); err != nil {
		logger.Error().Err(err).Msg("Failed to send summary email")
		return err
	}

	logger.Info().Msg("Successfully sent summary email")
	return nil
}
