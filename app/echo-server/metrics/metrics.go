package metrics

import (
	pkgmetrics "roktoSheba/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Setup registers the collectors and exposes them on GET /metrics.
func Setup(e *echo.Echo) {
	pkgmetrics.Init()
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
