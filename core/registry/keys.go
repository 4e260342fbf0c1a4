package registry

// Core keys for GlobalRegistry and per-request values.
const (
	// Per-request keys (stored on echo.Context)
	KeyRequestStart = "request_start"

	// Extension registries (cmd, cron, api routes) — stored in GlobalRegistry
	KeyRegistryCmd    = "registry:cmd"
	KeyRegistryCron   = "registry:cron"
	KeyRegistryRoutes = "registry:routes"
)
