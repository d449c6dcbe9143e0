// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/depsub/internal/core/domain"

// ConfigLoader defines the interface for loading the detector configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration. An explicit path wins; otherwise the
	// loader walks up from cwd looking for depsub.yaml.
	Load(cwd, path string) (*domain.Config, error)
}
