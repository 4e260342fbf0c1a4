package metrics

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mergington.GO/api"
)

func init() {
	api.RegisterRoute(func(e *echo.Echo, _ *api.Services) {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	})
}
