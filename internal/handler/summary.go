package handler

import (
	"github.com/deppfellow/url-summarizer/internal/model"
	"github.com/deppfellow/url-summarizer/internal/server"
	"github.com/deppfellow/url-summarizer/internal/service"
	"github.com/labstack/echo/v4"
)

// SummaryHandler serves the /summary resource.
type SummaryHandler struct {
	Handler
	summaryService *service.SummaryService
}

func NewSummaryHandler(s *server.Server, summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		Handler:        NewHandler(s),
		summaryService: summaryService,
	}
}

func (h *SummaryHandler) CreateSummary(c echo.Context, req *model.CreateSummaryRequest) (*model.SummaryRef, error) {
	return h.summaryService.Create(c.Request().Context(), req)
}

func (h *SummaryHandler) GetSummary(c echo.Context, req *model.SummaryIDRequest) (*model.Summary, error) {
	return h.summaryService.Get(c.Request().Context(), req.ID)
}

func (h *SummaryHandler) ListSummaries(c echo.Context, _ *model.ListSummariesRequest) ([]model.Summary, error) {
	return h.summaryService.List(c.Request().Context())
}

func (h *SummaryHandler) UpdateSummary(c echo.Context, req *model.UpdateSummaryRequest) (*model.Summary, error) {
	return h.summaryService.Update(c.Request().Context(), req)
}

func (h *SummaryHandler) DeleteSummary(c echo.Context, req *model.SummaryIDRequest) (*model.SummaryRef, error) {
	return h.summaryService.Delete(c.Request().Context(), req.ID)
}
