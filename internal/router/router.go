// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/url-summarizer/internal/handler"
	"github.com/deppfellow/url-summarizer/internal/middleware"
	"github.com/deppfellow/url-summarizer/internal/server"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// maxBodySize bounds request bodies. The longest accepted url is 65536
// characters, so this leaves room for JSON escaping.
const maxBodySize = "1M"

// NewRouter builds the Echo instance with the global middleware chain,
// the error handler and every route.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// /summary/ and /summary/1/ route like /summary and /summary/1.
	router.Pre(echoMiddleware.RemoveTrailingSlash())

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Record(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.RateLimit.Limit(),
		echoMiddleware.BodyLimit(maxBodySize),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerSummaryRoutes(router, h.Summary)

	return router
}
