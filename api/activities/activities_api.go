package activities

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"mergington.GO/api"
	apperrors "mergington.GO/core/errors"
)

func init() {
	api.RegisterRoute(RegisterActivityRoutes)
}

// MessageResponse acknowledges a roster change.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterActivityRoutes sets up listing, signup and removal.
func RegisterActivityRoutes(e *echo.Echo, s *api.Services) {
	svc := s.Activities
	g := e.Group("/activities")

	// GET /activities – every activity keyed by name, in seed order
	g.GET("", func(c echo.Context) error {
		body, err := svc.ListJSON(c.Request().Context())
		if err != nil {
			return err
		}
		return c.JSONBlob(http.StatusOK, body)
	})

	// POST /activities/:name/signup?email=
	g.POST("/:name/signup", func(c echo.Context) error {
		if !c.QueryParams().Has("email") {
			return apperrors.NewValidationError("email is required")
		}
		msg, err := svc.Signup(c.Request().Context(), pathParam(c, "name"), c.QueryParam("email"))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, MessageResponse{Message: msg})
	})

	// DELETE /activities/:name/participants/:email
	g.DELETE("/:name/participants/:email", func(c echo.Context) error {
		msg, err := svc.Remove(c.Request().Context(), pathParam(c, "name"), pathParam(c, "email"))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, MessageResponse{Message: msg})
	})
}

// pathParam returns the decoded value of a path parameter. Echo routes on URL.RawPath
// when it is set, leaving params escaped; otherwise they are already decoded.
func pathParam(c echo.Context, name string) string {
	raw := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return raw
	}
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
