package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/url-summarizer/internal/config"
	"github.com/deppfellow/url-summarizer/internal/middleware"
	"github.com/deppfellow/url-summarizer/internal/server"
	"github.com/labstack/echo/v4"
)

const (
	healthStatusHealthy   = "healthy"
	healthStatusUnhealthy = "unhealthy"
)

// dependencyCheck probes one dependency. Required checks make the whole
// service unhealthy when they fail; optional ones are only reported.
type dependencyCheck struct {
	name     string
	required bool
	ping     func(ctx context.Context) error
}

// CheckResult is the outcome of one dependency check.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// HealthResponse is the body of GET /status.
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Interval    string                 `json:"interval,omitempty"`
	Checks      map[string]CheckResult `json:"checks"`
}

// HealthHandler reports the service and dependency health.
type HealthHandler struct {
	Handler
	checks []dependencyCheck
}

// NewHealthHandler builds the checks named in
// observability.health_checks.checks that have a backing client.
// The database is required, redis is optional.
func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{Handler: NewHandler(s)}

	if s.Config.Observability == nil || !s.Config.Observability.HealthChecks.Enabled {
		return h
	}
	hc := s.Config.Observability.HealthChecks

	for _, name := range hc.Checks {
		switch name {
		case "database":
			if s.DB != nil {
				h.checks = append(h.checks, dependencyCheck{
					name:     name,
					required: true,
					ping:     s.DB.Pool.Ping,
				})
			}
		case "redis":
			if s.Redis != nil {
				h.checks = append(h.checks, dependencyCheck{
					name: name,
					ping: func(ctx context.Context) error { return s.Redis.Ping(ctx).Err() },
				})
			}
		}
	}

	return h
}

// CheckHealth returns 200 when every required check passes and 503
// otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	var cfg config.HealthChecksConfig
	if h.server.Config.Observability != nil {
		cfg = h.server.Config.Observability.HealthChecks
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := HealthResponse{
		Status:      healthStatusHealthy,
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]CheckResult, len(h.checks)),
	}
	if cfg.Interval > 0 {
		response.Interval = cfg.Interval.String()
	}

	for _, check := range h.checks {
		result := h.runCheck(c.Request().Context(), check, cfg.Timeout)
		response.Checks[check.name] = result

		if result.Status == healthStatusHealthy {
			logger.Debug().Str("check", check.name).Str("response_time", result.ResponseTime).Msg("health check passed")
			continue
		}

		logger.Error().
			Str("check", check.name).
			Str("error", result.Error).
			Str("response_time", result.ResponseTime).
			Msg("health check failed")

		h.recordHealthCheckError(check.name, result)

		if check.required {
			response.Status = healthStatusUnhealthy
		}
	}

	if response.Status != healthStatusHealthy {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("service unhealthy")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) runCheck(ctx context.Context, check dependencyCheck, timeout time.Duration) CheckResult {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	err := check.ping(ctx)
	result := CheckResult{
		Status:       healthStatusHealthy,
		ResponseTime: time.Since(start).String(),
	}
	if err != nil {
		result.Status = healthStatusUnhealthy
		result.Error = err.Error()
	}
	return result
}

func (h *HealthHandler) recordHealthCheckError(name string, result CheckResult) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}
	app.RecordCustomEvent("HealthCheckError", map[string]any{
		"check_type":    name,
		"operation":     "health_check",
		"error_type":    name + "_unhealthy",
		"response_time": result.ResponseTime,
		"error_message": result.Error,
	})
}
