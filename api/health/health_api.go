package health

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mergington.GO/api"
)

func init() {
	api.RegisterRoute(func(e *echo.Echo, s *api.Services) {
		e.GET("/health", func(c echo.Context) error {
			return c.JSON(http.StatusOK, echo.Map{
				"status":     "ok",
				"activities": len(s.Activities.Repository().Names()),
			})
		})
	})
}
