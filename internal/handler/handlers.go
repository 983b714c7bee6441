package handler

import (
	"github.com/deppfellow/url-summarizer/internal/server"
	"github.com/deppfellow/url-summarizer/internal/service"
)

// Handlers groups all HTTP handlers for the router.
type Handlers struct {
	Summary *SummaryHandler
	Ping    *PingHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Metrics *MetricsHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Summary: NewSummaryHandler(s, services.Summary),
		Ping:    NewPingHandler(s),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Metrics: NewMetricsHandler(s),
	}
}
