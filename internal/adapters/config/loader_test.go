package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depsub/internal/adapters/config"
	"go.trai.ch/depsub/internal/core/domain"
	"go.trai.ch/depsub/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const validConfig = `
version: "1"
detector:
  name: depsub
  url: https://example.com/depsub
  version: 0.1.0
metadata:
  team: platform
  attempt: 2
manifests:
  - name: package-lock.json
    command: npm ls --all --json
    parser: npm
    source_location: package.json
    scope: runtime
  - name: go.mod
    command: ["go", "mod", "graph"]
    parser: gomod
    build_target: true
  - name: tools
    path: tools/deps.txt
    ecosystem: pypi
    scope: development
    metadata:
      pinned: true
`

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
	return path
}

func TestLoader_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, validConfig)

	cfg, err := loader.Load(root, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Clean(root), cfg.Root)
	assert.Equal(t, domain.Detector{Name: "depsub", URL: "https://example.com/depsub", Version: "0.1.0"}, cfg.Detector)
	assert.Equal(t, domain.MustMetadata(map[string]any{"team": "platform", "attempt": 2}), cfg.Metadata)

	require.Len(t, cfg.Manifests, 3)

	npm := cfg.Manifests[0]
	assert.Equal(t, "package-lock.json", npm.Name)
	assert.Equal(t, []string{"npm", "ls", "--all", "--json"}, npm.Command)
	assert.Equal(t, "npm", npm.Parser)
	assert.Equal(t, "package.json", npm.SourceLocation)
	assert.Equal(t, domain.ScopeRuntime, npm.Scope)
	assert.False(t, npm.BuildTarget)

	gomod := cfg.Manifests[1]
	assert.Equal(t, []string{"go", "mod", "graph"}, gomod.Command)
	assert.True(t, gomod.BuildTarget)
	assert.Equal(t, domain.ScopeUnspecified, gomod.Scope)
	assert.Empty(t, gomod.SourceLocation)

	tools := cfg.Manifests[2]
	assert.Equal(t, "tools/deps.txt", tools.Path)
	assert.Equal(t, "tools/deps.txt", tools.SourceLocation, "source location defaults to the path")
	assert.Equal(t, domain.DefaultParser, tools.Parser)
	assert.Equal(t, "pypi", tools.Ecosystem)
	assert.Equal(t, domain.ScopeDevelopment, tools.Scope)
	pinned, ok := tools.Metadata.Get("pinned")
	require.True(t, ok)
	assert.Equal(t, true, pinned)
}

func TestLoader_Load_WalksUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, validConfig)
	nested := filepath.Join(root, "services", "api")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	cfg, err := loader.Load(nested, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(root), cfg.Root)
}

func TestLoader_Load_ExplicitPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	root := t.TempDir()
	createFile(t, root, "ci/detector.yaml", validConfig+"root: ..\n")

	cfg, err := loader.Load(root, "ci/detector.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(root), cfg.Root, "root is relative to the config file")
}

func TestLoader_Load_UnknownVersionWarns(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Times(1)
	loader := config.NewLoader(log)

	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, strings.Replace(validConfig, `version: "1"`, `version: "2"`, 1))

	_, err := loader.Load(root, "")
	require.NoError(t, err)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expectedErr error
	}{
		{
			name:        "Invalid YAML",
			content:     "manifests: [",
			expectedErr: domain.ErrConfigParseFailed,
		},
		{
			name:        "Command of wrong kind",
			content:     "manifests:\n  - name: x\n    command: {a: b}\n",
			expectedErr: domain.ErrConfigParseFailed,
		},
		{
			name:        "Missing detector",
			content:     "manifests:\n  - name: x\n    path: x.txt\n",
			expectedErr: domain.ErrMissingDetector,
		},
		{
			name: "Invalid scope",
			content: `
detector: {name: d, url: u, version: v}
manifests:
  - name: x
    path: x.txt
    scope: test
`,
			expectedErr: domain.ErrInvalidScope,
		},
		{
			name: "Nested metadata",
			content: `
detector: {name: d, url: u, version: v}
metadata:
  nested: {a: 1}
`,
			expectedErr: domain.ErrInvalidMetadataValue,
		},
		{
			name: "Manifest without source",
			content: `
detector: {name: d, url: u, version: v}
manifests:
  - name: x
`,
			expectedErr: domain.ErrMissingManifestSource,
		},
		{
			name: "Duplicate manifest",
			content: `
detector: {name: d, url: u, version: v}
manifests:
  - {name: x, path: a.txt}
  - {name: x, path: b.txt}
`,
			expectedErr: domain.ErrDuplicateManifestName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			loader := config.NewLoader(mocks.NewMockLogger(ctrl))

			root := t.TempDir()
			createFile(t, root, domain.ConfigFileName, tt.content)

			_, err := loader.Load(root, "")
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.expectedErr.Error())
		})
	}
}

func TestLoader_Load_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	_, err := loader.Load(t.TempDir(), "")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigNotFound.Error())
}

func TestLoader_Load_ExplicitPathMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	_, err := loader.Load(t.TempDir(), "missing.yaml")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}
