package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/url-summarizer/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// TaskSummaryCreated is the job type name stored in Redis.
const TaskSummaryCreated = "summary:created"

// SummaryCreatedPayload is the JSON payload of a TaskSummaryCreated task.
type SummaryCreatedPayload struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSummaryCreatedTask builds the notification task for s. It goes to
// the low queue: notifications are not urgent.
func NewSummaryCreatedTask(s *model.Summary) (*asynq.Task, error) {
	payload, err := json.Marshal(SummaryCreatedPayload{
		ID:        s.ID,
		URL:       s.URL,
		CreatedAt: s.CreatedAt,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskSummaryCreated,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NotifySummaryCreated enqueues a TaskSummaryCreated task for s.
func (j *JobService) NotifySummaryCreated(ctx context.Context, s *model.Summary) error {
	task, err := NewSummaryCreatedTask(s)
	if err != nil {
		return fmt.Errorf("failed to build summary task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue summary task: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Int64("summary_id", s.ID).
		Msg("summary task enqueued")

	return nil
}
