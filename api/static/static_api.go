package static

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mergington.GO/api"
)

// IndexPath is where GET / sends browsers.
const IndexPath = "/static/index.html"

func init() {
	api.RegisterRoute(RegisterStaticRoutes)
}

// RegisterStaticRoutes serves the browser client from s.StaticDir under /static.
func RegisterStaticRoutes(e *echo.Echo, s *api.Services) {
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusTemporaryRedirect, IndexPath)
	})
	if s.StaticDir != "" {
		e.Static("/static", s.StaticDir)
	}
}
