package http

import (
	"github.com/mrlokans/songbook/internal/catalog"
	"github.com/mrlokans/songbook/internal/demo"
	"github.com/mrlokans/songbook/internal/services"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Songbook *services.Songbook

	// Database connection for health checks; nil when the store is disabled
	Database Pinger

	// Filters applied when a search request omits them
	SearchDefaults catalog.SearchFilters

	// Demo mode
	DemoMiddleware *demo.Middleware

	// Application info
	Version string
}
