package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/deppfellow/url-summarizer/internal/config"
	"github.com/deppfellow/url-summarizer/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentEmail struct {
	to  []string
	id  int64
	url string
}

type fakeEmailSender struct {
	sent []sentEmail
	err  error
}

func (f *fakeEmailSender) SendSummaryCreatedEmail(_ context.Context, to []string, id int64, url string, _ time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{to: to, id: id, url: url})
	return nil
}

func newTestJobService(t *testing.T) (*JobService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	logger := zerolog.Nop()
	cfg := &config.Config{Redis: config.RedisConfig{Address: mr.Addr()}}

	j := NewJobService(&logger, cfg)
	t.Cleanup(func() { _ = j.Client.Close() })

	return j, mr
}

func TestNewSummaryCreatedTask(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	task, err := NewSummaryCreatedTask(&model.Summary{ID: 3, URL: "https://foo.bar", CreatedAt: createdAt})
	require.NoError(t, err)
	assert.Equal(t, TaskSummaryCreated, task.Type())

	var p SummaryCreatedPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, "https://foo.bar", p.URL)
	assert.True(t, createdAt.Equal(p.CreatedAt))
}

func TestNotifySummaryCreatedEnqueues(t *testing.T) {
	j, mr := newTestJobService(t)

	err := j.NotifySummaryCreated(context.Background(), &model.Summary{ID: 1, URL: "https://foo.bar"})
	require.NoError(t, err)

	pending, err := mr.List("asynq:{low}:pending")
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestHandleSummaryCreatedTask(t *testing.T) {
	task, err := NewSummaryCreatedTask(&model.Summary{ID: 9, URL: "https://foo.bar", CreatedAt: time.Now()})
	require.NoError(t, err)

	t.Run("sends to recipients", func(t *testing.T) {
		j, _ := newTestJobService(t)
		sender := &fakeEmailSender{}
		j.SetEmailSender(sender, []string{"ops@example.com"})

		require.NoError(t, j.handleSummaryCreatedTask(context.Background(), task))
		require.Len(t, sender.sent, 1)
		assert.Equal(t, sentEmail{to: []string{"ops@example.com"}, id: 9, url: "https://foo.bar"}, sender.sent[0])
	})

	t.Run("no sender is a no-op", func(t *testing.T) {
		j, _ := newTestJobService(t)
		require.NoError(t, j.handleSummaryCreatedTask(context.Background(), task))
	})

	t.Run("send failure is retried", func(t *testing.T) {
		j, _ := newTestJobService(t)
		sendErr := errors.New("provider down")
		j.SetEmailSender(&fakeEmailSender{err: sendErr}, []string{"ops@example.com"})

		err := j.handleSummaryCreatedTask(context.Background(), task)
		require.ErrorIs(t, err, sendErr)
		assert.False(t, errors.Is(err, asynq.SkipRetry))
	})

	t.Run("bad payload skips retry", func(t *testing.T) {
		j, _ := newTestJobService(t)
		j.SetEmailSender(&fakeEmailSender{}, []string{"ops@example.com"})

		err := j.handleSummaryCreatedTask(context.Background(), asynq.NewTask(TaskSummaryCreated, []byte("{")))
		require.ErrorIs(t, err, asynq.SkipRetry)
	})
}
