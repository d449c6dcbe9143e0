// Package source acquires dependency listings from files or commands.
package source

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/depsub/internal/core/domain"
	"go.trai.ch/depsub/internal/core/ports"
	"go.trai.ch/zerr"
)

// Source implements ports.ListingSource.
type Source struct {
	logger ports.Logger
}

// New creates a Source. Lines a listing command writes to stderr are logged
// as warnings.
func New(logger ports.Logger) *Source {
	return &Source{logger: logger}
}

// Acquire returns the listing of spec. A path takes precedence over a command.
func (s *Source) Acquire(ctx context.Context, root string, spec domain.ManifestSpec) ([]byte, error) {
	switch {
	case spec.Path != "":
		return readListing(root, spec)
	case len(spec.Command) > 0:
		return s.runListing(ctx, root, spec)
	default:
		return nil, zerr.With(domain.ErrMissingManifestSource, "manifest", spec.Name)
	}
}

func readListing(root string, spec domain.ManifestSpec) ([]byte, error) {
	path := spec.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the detector config
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrListingReadFailed.Error()), "path", path)
	}
	return data, nil
}

func (s *Source) runListing(ctx context.Context, root string, spec domain.ManifestSpec) ([]byte, error) {
	name := spec.Command[0]
	cmd := exec.CommandContext(ctx, name, spec.Command[1:]...) //nolint:gosec // command comes from the detector config
	cmd.Dir = root

	var stdout bytes.Buffer
	stderr := &logWriter{logger: s.logger, prefix: spec.Name + ": "}
	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	_ = stderr.Close()
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		err = zerr.Wrap(err, domain.ErrListingCommandFailed.Error())
		err = zerr.With(err, "command", strings.Join(spec.Command, " "))
		return nil, zerr.With(err, "exit_code", exitCode)
	}
	return stdout.Bytes(), nil
}

// logWriter forwards complete lines to the logger as warnings.
type logWriter struct {
	logger ports.Logger
	prefix string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if strings.TrimSpace(msg) == "" {
		return
	}
	w.logger.Warn(w.prefix + msg)
}
