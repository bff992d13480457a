package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/deppfellow/lightbnb/internal/handler"
	"github.com/deppfellow/lightbnb/internal/server"
)

// registerSystemRoutes wires endpoints outside the business API: health,
// metrics, docs and, outside production, email previews.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	r.Static("/static", "static")
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)

	if !s.Config.Observability.IsProduction() {
		r.GET("/dev/emails/:template", h.OpenAPI.PreviewEmail)
	}
}
