package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depsub/cmd/depsub/commands"
	"go.trai.ch/depsub/internal/core/domain"
)

const testConfig = `version: "1"
detector:
  name: depsub
  url: https://example.com/depsub
  version: 0.1.0
manifests:
  - name: requirements.txt
    path: requirements.txt
    ecosystem: pypi
    scope: runtime
`

// setupRepo writes a config plus listing and isolates the run environment.
func setupRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(testConfig), domain.PrivateFilePerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "requirements.txt"),
		[]byte("# pinned\nrequests@2.31.0\nurllib3@2.0.7\n"), domain.PrivateFilePerm))

	for _, key := range []string{
		"GITHUB_EVENT_NAME", "GITHUB_EVENT_PATH", "GITHUB_SHA", "GITHUB_REF", "GITHUB_JOB",
		"GITHUB_RUN_ID", "GITHUB_REPOSITORY", "GITHUB_SERVER_URL", "GITHUB_API_URL",
		"DEPSUB_TOKEN", "GITHUB_TOKEN",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("NO_COLOR", "1")
	return dir
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"version"}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "depsub version dev")
}

func TestRun_Print(t *testing.T) {
	dir := setupRepo(t)
	t.Setenv("GITHUB_SHA", "abc123")
	t.Setenv("GITHUB_REF", "refs/heads/main")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"print", "--log-format", "json"}, &stdout, &stderr,
		commands.WithWorkingDir(dir))
	require.Equal(t, 0, code, stderr.String())

	var snap map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &snap))
	assert.Equal(t, "abc123", snap["sha"])
	manifests, ok := snap["manifests"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, manifests, "requirements.txt")

	resolved := manifests["requirements.txt"].(map[string]any)["resolved"].(map[string]any)
	assert.Contains(t, resolved, "pkg:pypi/requests@2.31.0")
	assert.Contains(t, resolved, "pkg:pypi/urllib3@2.0.7")
}

func TestRun_PrintSummary(t *testing.T) {
	dir := setupRepo(t)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"print", "-o", "summary"}, &stdout, &stderr,
		commands.WithWorkingDir(dir))
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "requirements.txt: 2 direct, 0 indirect")
	assert.Contains(t, stdout.String(), "pkg:pypi/requests@2.31.0 [runtime]")
}

func TestRun_Submit(t *testing.T) {
	dir := setupRepo(t)

	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octo/widgets/dependency-graph/snapshots", r.URL.Path)
		assert.Equal(t, "token secret", r.Header.Get("Authorization"))
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id": 1, "result": "SUCCESS", "created_at": "2024-01-02T03:04:05Z"}`)
	}))
	defer server.Close()

	t.Setenv("GITHUB_API_URL", server.URL)
	t.Setenv("GITHUB_REPOSITORY", "octo/widgets")
	t.Setenv("GITHUB_EVENT_NAME", "push")
	t.Setenv("GITHUB_SHA", "abc123")
	t.Setenv("DEPSUB_TOKEN", "secret")

	metricsFile := filepath.Join(dir, "depsub.prom")
	var stdout, stderr bytes.Buffer
	code := run(context.Background(),
		[]string{"submit", "--archive", "--metrics-file", metricsFile, "--log-format", "json"},
		&stdout, &stderr, commands.WithWorkingDir(dir))
	require.Equal(t, 0, code, stderr.String())

	require.NotEmpty(t, body)
	assert.Contains(t, string(body), `"pkg:pypi/requests@2.31.0"`)

	archived, err := filepath.Glob(filepath.Join(dir, domain.DefaultArchivePath(), "*.json"))
	require.NoError(t, err)
	require.Len(t, archived, 1)

	metrics, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `depsub_submissions_total{result="SUCCESS",status="201"} 1`)
}

func TestRun_SubmitRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"message": "Invalid request"}`)
	}))
	defer server.Close()

	for _, tt := range []struct {
		name string
		args []string
		code int
	}{
		{name: "logged", args: []string{"submit", "--log-format", "json"}, code: 0},
		{name: "fail on reject", args: []string{"submit", "--fail-on-reject", "--log-format", "json"}, code: 1},
	} {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupRepo(t)
			t.Setenv("GITHUB_API_URL", server.URL)
			t.Setenv("GITHUB_REPOSITORY", "octo/widgets")
			t.Setenv("GITHUB_SHA", "abc123")
			t.Setenv("DEPSUB_TOKEN", "secret")

			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.args, &stdout, &stderr, commands.WithWorkingDir(dir))
			assert.Equal(t, tt.code, code)
			assert.Contains(t, stderr.String(), domain.ErrSubmissionRejected.Error())
		})
	}
}

func TestRun_SubmitWithoutToken(t *testing.T) {
	dir := setupRepo(t)
	t.Setenv("GITHUB_REPOSITORY", "octo/widgets")
	t.Setenv("GITHUB_SHA", "abc123")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"submit", "--log-format", "json"}, &stdout, &stderr,
		commands.WithWorkingDir(dir))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), domain.ErrMissingToken.Error())
}

func TestRun_MissingConfig(t *testing.T) {
	setupRepo(t)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"print", "--log-format", "json"}, &stdout, &stderr,
		commands.WithWorkingDir(t.TempDir()))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), domain.ErrConfigNotFound.Error())
}

func TestRun_UnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"frobnicate"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
}
