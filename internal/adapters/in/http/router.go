package http

import (
	"log/slog"
	"net/http"

	"dispatch/api"
	_ "dispatch/docs"
	"dispatch/internal/generated/servers"
	"dispatch/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance serving the API together with
// /health, /metrics and /swagger/*.
func NewRouter(server *Server, logger *slog.Logger) (*echo.Echo, error) {
	validator, err := OpenAPIValidator(api.OpenAPI)
	if err != nil {
		return nil, err
	}

	metrics.RegisterDefault()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(RequestLogger(logger))
	e.Use(RequestMetrics())
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)

	return e, nil
}
