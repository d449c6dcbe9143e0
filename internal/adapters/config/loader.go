// Package config provides the configuration loader for depsub.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/depsub/internal/core/domain"
	"go.trai.ch/depsub/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only configuration schema version.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration. An explicit path is resolved against cwd;
// otherwise cwd and its parents are searched for depsub.yaml.
func (l *Loader) Load(cwd, path string) (*domain.Config, error) {
	configPath, err := l.findConfiguration(cwd, path)
	if err != nil {
		return nil, err
	}

	var depfile Depfile
	if err := readAndUnmarshalYAML(configPath, &depfile); err != nil {
		return nil, err
	}

	if depfile.Version != "" && depfile.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("unknown config version %q in %s, reading it as version %s",
			depfile.Version, configPath, SupportedVersion))
	}

	cfg, err := buildConfig(resolveRoot(configPath, depfile.Root), &depfile)
	if err != nil {
		return nil, zerr.With(err, "config", configPath)
	}
	return cfg, nil
}

func (l *Loader) findConfiguration(cwd, path string) (string, error) {
	if path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		return filepath.Clean(path), nil
	}

	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func buildConfig(root string, depfile *Depfile) (*domain.Config, error) {
	metadata, err := domain.NewMetadata(depfile.Metadata)
	if err != nil {
		return nil, err
	}

	cfg := &domain.Config{
		Root: root,
		Detector: domain.Detector{
			Name:    depfile.Detector.Name,
			URL:     depfile.Detector.URL,
			Version: depfile.Detector.Version,
		},
		Metadata:  metadata,
		Manifests: make([]domain.ManifestSpec, 0, len(depfile.Manifests)),
	}

	for i := range depfile.Manifests {
		spec, err := buildManifestSpec(&depfile.Manifests[i])
		if err != nil {
			return nil, zerr.With(err, "manifest", depfile.Manifests[i].Name)
		}
		cfg.Manifests = append(cfg.Manifests, spec)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildManifestSpec(dto *ManifestDTO) (domain.ManifestSpec, error) {
	scope, err := domain.ParseScope(dto.Scope)
	if err != nil {
		return domain.ManifestSpec{}, err
	}
	metadata, err := domain.NewMetadata(dto.Metadata)
	if err != nil {
		return domain.ManifestSpec{}, err
	}

	parser := dto.Parser
	if parser == "" {
		parser = domain.DefaultParser
	}
	sourceLocation := dto.SourceLocation
	if sourceLocation == "" {
		sourceLocation = filepath.ToSlash(dto.Path)
	}

	return domain.ManifestSpec{
		Name:           dto.Name,
		Path:           dto.Path,
		Command:        dto.Command,
		Parser:         parser,
		Ecosystem:      dto.Ecosystem,
		SourceLocation: sourceLocation,
		Scope:          scope,
		BuildTarget:    dto.BuildTarget,
		Metadata:       metadata,
	}, nil
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is chosen by the user
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", configPath)
	}
	return nil
}
