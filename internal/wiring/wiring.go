// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/depsub/internal/adapters/actions"
	_ "go.trai.ch/depsub/internal/adapters/archive"
	_ "go.trai.ch/depsub/internal/adapters/config"
	_ "go.trai.ch/depsub/internal/adapters/github"
	_ "go.trai.ch/depsub/internal/adapters/logger"
	_ "go.trai.ch/depsub/internal/adapters/metrics"
	_ "go.trai.ch/depsub/internal/adapters/parsers"
	_ "go.trai.ch/depsub/internal/adapters/source"
	_ "go.trai.ch/depsub/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/depsub/internal/app"
)
