// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/delta/internal/adapters/cache"
	_ "go.trai.ch/delta/internal/adapters/config"
	_ "go.trai.ch/delta/internal/adapters/fs"
	_ "go.trai.ch/delta/internal/adapters/logger"
	_ "go.trai.ch/delta/internal/adapters/shell"
	_ "go.trai.ch/delta/internal/adapters/state"
	// Register app nodes.
	_ "go.trai.ch/delta/internal/app"
)
