package api

import (
	"sync"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"mergington.GO/core/registry"
	activityService "mergington.GO/service/activity"
)

var mu sync.Mutex

// Services are the dependencies route modules are built with.
type Services struct {
	Activities *activityService.Service
	Logger     *zap.Logger
	StaticDir  string
}

// RouteFunc registers routes on the root Echo instance.
type RouteFunc func(e *echo.Echo, s *Services)

func getRoutes() []RouteFunc {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryRoutes); ok && v != nil {
		return v.([]RouteFunc)
	}
	return nil
}

// RegisterRoute registers a route module. Call from init() in API packages.
func RegisterRoute(fn RouteFunc) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryRoutes) {
		panic("api/registry: routes locked (register only during init)")
	}
	list := getRoutes()
	list = append(list, fn)
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryRoutes, list)
}

// RegisterGET is shorthand for registering a simple GET route on root.
func RegisterGET(path string, handler echo.HandlerFunc) {
	RegisterRoute(func(e *echo.Echo, _ *Services) {
		e.GET(path, handler)
	})
}

// ApplyRoutes calls all registered route modules. Locks the registry.
func ApplyRoutes(e *echo.Echo, s *Services) {
	for _, fn := range getRoutes() {
		fn(e, s)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryRoutes)
}
