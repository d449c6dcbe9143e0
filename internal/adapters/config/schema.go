package config

import (
	"strings"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Depfile represents the structure of the depsub.yaml configuration file.
type Depfile struct {
	Version   string         `yaml:"version"`
	Root      string         `yaml:"root"`
	Detector  DetectorDTO    `yaml:"detector"`
	Metadata  map[string]any `yaml:"metadata"`
	Manifests []ManifestDTO  `yaml:"manifests"`
}

// DetectorDTO identifies the tool reporting the snapshot.
type DetectorDTO struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Version string `yaml:"version"`
}

// ManifestDTO represents a manifest definition in the configuration.
type ManifestDTO struct {
	Name           string         `yaml:"name"`
	Path           string         `yaml:"path"`
	Command        Command        `yaml:"command"`
	Parser         string         `yaml:"parser"`
	Ecosystem      string         `yaml:"ecosystem"`
	SourceLocation string         `yaml:"source_location"`
	Scope          string         `yaml:"scope"`
	BuildTarget    bool           `yaml:"build_target"`
	Metadata       map[string]any `yaml:"metadata"`
}

// Command is a listing command given either as a single string, split on
// whitespace, or as a list of arguments.
type Command []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Command) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*c = strings.Fields(node.Value)
		return nil
	case yaml.SequenceNode:
		var args []string
		if err := node.Decode(&args); err != nil {
			return err
		}
		*c = args
		return nil
	default:
		return zerr.With(zerr.New("command must be a string or a list of strings"), "line", node.Line)
	}
}
