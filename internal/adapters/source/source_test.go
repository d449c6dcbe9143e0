package source_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depsub/internal/adapters/source"
	"go.trai.ch/depsub/internal/core/domain"
	"go.trai.ch/depsub/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestSource_ReadFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "deps.txt"), []byte("foo@1.0\n"), domain.PrivateFilePerm))

	src := source.New(mocks.NewMockLogger(ctrl))
	data, err := src.Acquire(context.Background(), root, domain.ManifestSpec{Name: "deps", Path: "deps.txt"})
	require.NoError(t, err)
	assert.Equal(t, "foo@1.0\n", string(data))
}

func TestSource_ReadFileMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := source.New(mocks.NewMockLogger(ctrl))

	_, err := src.Acquire(context.Background(), t.TempDir(), domain.ManifestSpec{Name: "deps", Path: "missing.txt"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrListingReadFailed.Error())
}

func TestSource_PathWinsOverCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "deps.txt"), []byte("from-file"), domain.PrivateFilePerm))

	src := source.New(mocks.NewMockLogger(ctrl))
	data, err := src.Acquire(context.Background(), root, domain.ManifestSpec{
		Name:    "deps",
		Path:    "deps.txt",
		Command: []string{"sh", "-c", "echo from-command"},
	})
	require.NoError(t, err)
	assert.Equal(t, "from-file", string(data))
}

func TestSource_Command(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn("deps: npm WARN deprecated").Times(1)

	root := t.TempDir()
	src := source.New(log)
	data, err := src.Acquire(context.Background(), root, domain.ManifestSpec{
		Name:    "deps",
		Command: []string{"sh", "-c", "echo foo@1.0; echo bar@2.0; printf 'npm WARN deprecated' >&2"},
	})
	require.NoError(t, err)
	assert.Equal(t, "foo@1.0\nbar@2.0\n", string(data))
}

func TestSource_CommandRunsInRoot(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "marker"), []byte("here"), domain.PrivateFilePerm))

	src := source.New(mocks.NewMockLogger(ctrl))
	data, err := src.Acquire(context.Background(), root, domain.ManifestSpec{
		Name:    "deps",
		Command: []string{"cat", "marker"},
	})
	require.NoError(t, err)
	assert.Equal(t, "here", string(data))
}

func TestSource_CommandFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := source.New(mocks.NewMockLogger(ctrl))

	_, err := src.Acquire(context.Background(), t.TempDir(), domain.ManifestSpec{
		Name:    "deps",
		Command: []string{"sh", "-c", "exit 3"},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrListingCommandFailed.Error())
}

func TestSource_NoSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := source.New(mocks.NewMockLogger(ctrl))

	_, err := src.Acquire(context.Background(), t.TempDir(), domain.ManifestSpec{Name: "deps"})
	assert.ErrorContains(t, err, domain.ErrMissingManifestSource.Error())
}
