package ports

import "go.trai.ch/depsub/internal/core/domain"

// EnvironmentProvider reads the CI invocation context and credentials.
//
//go:generate go run go.uber.org/mock/mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type EnvironmentProvider interface {
	// Environment resolves the run environment. A .env file in root, if
	// present, supplies values the process environment does not set.
	Environment(root string) (domain.RunEnvironment, error)
}
