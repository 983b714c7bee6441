package handler

import (
	"net/http"

	"github.com/deppfellow/url-summarizer/internal/server"
	"github.com/labstack/echo/v4"
)

// PingResponse is the body of GET /ping.
type PingResponse struct {
	Ping        string `json:"ping"`
	Environment string `json:"environment"`
	Testing     bool   `json:"testing"`
}

// PingHandler answers liveness probes without touching dependencies.
type PingHandler struct {
	Handler
}

func NewPingHandler(s *server.Server) *PingHandler {
	return &PingHandler{Handler: NewHandler(s)}
}

func (h *PingHandler) Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, PingResponse{
		Ping:        "pong!",
		Environment: h.server.Config.Primary.Env,
		Testing:     h.server.Config.Primary.IsTesting(),
	})
}
