// Package modkit provides building blocks for the API modules
package modkit

import (
	"domamarket/internal/modkit/swaggerkit"
	phttp "domamarket/internal/platform/net/http"
)

// Module is the common surface for API modules that mount routes and describe them
// keep this tiny so modules stay decoupled
type Module interface {
	// MountRoutes mounts HTTP routes under the provided router seam
	MountRoutes(r phttp.Router)

	// Name returns the module name
	Name() string

	// Docs returns the module routes for the OpenAPI document, paths relative to /api
	Docs() []swaggerkit.Op
}

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module
