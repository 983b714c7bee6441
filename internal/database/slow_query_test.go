package database

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSlowQueryTracer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		elapsed time.Duration
		wantLog bool
	}{
		{name: "fast query is silent", elapsed: 10 * time.Millisecond, wantLog: false},
		{name: "slow query is logged", elapsed: 250 * time.Millisecond, wantLog: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			base := time.Unix(1700000000, 0)
			current := base
			tracer := newSlowQueryTracer(&logger, 100*time.Millisecond)
			tracer.now = func() time.Time { return current }

			ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
			current = base.Add(tt.elapsed)
			tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("SELECT 1")})

			if tt.wantLog {
				assert.Contains(t, buf.String(), `"message":"slow query"`)
				assert.Contains(t, buf.String(), `"sql":"SELECT 1"`)
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}
