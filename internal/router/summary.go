package router

import (
	"net/http"

	"github.com/deppfellow/url-summarizer/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerSummaryRoutes(r *echo.Echo, h *handler.SummaryHandler) {
	summaries := r.Group("/summary")

	summaries.POST("", handler.Handle(h.Handler, h.CreateSummary, http.StatusCreated))
	summaries.GET("", handler.Handle(h.Handler, h.ListSummaries, http.StatusOK))
	summaries.GET("/:id", handler.Handle(h.Handler, h.GetSummary, http.StatusOK))
	summaries.PUT("/:id", handler.Handle(h.Handler, h.UpdateSummary, http.StatusOK))
	summaries.DELETE("/:id", handler.Handle(h.Handler, h.DeleteSummary, http.StatusOK))
}
