// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/crossbow/internal/adapters/adaptors"
	_ "go.trai.ch/crossbow/internal/adapters/config"
	_ "go.trai.ch/crossbow/internal/adapters/fs"
	_ "go.trai.ch/crossbow/internal/adapters/history"
	_ "go.trai.ch/crossbow/internal/adapters/logger"
	_ "go.trai.ch/crossbow/internal/adapters/reporter"
	_ "go.trai.ch/crossbow/internal/adapters/shell"
	_ "go.trai.ch/crossbow/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/crossbow/internal/app"
	_ "go.trai.ch/crossbow/internal/engine/changes"
	_ "go.trai.ch/crossbow/internal/engine/runner"
	_ "go.trai.ch/crossbow/internal/engine/sequence"
)
