package actions_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depsub/internal/adapters/actions"
	"go.trai.ch/depsub/internal/core/domain"
)

func lookupFrom(env map[string]string) actions.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
	return path
}

func TestProvider_Environment(t *testing.T) {
	dir := t.TempDir()
	eventPath := writeFile(t, dir, "event.json",
		`{"pull_request": {"number": 12, "head": {"sha": "headsha", "ref": "feature"}}}`)

	p := actions.NewWithLookup(lookupFrom(map[string]string{
		actions.EnvEventName:  "pull_request",
		actions.EnvEventPath:  eventPath,
		actions.EnvSHA:        "mergesha",
		actions.EnvRef:        "refs/pull/12/merge",
		actions.EnvJob:        "build",
		actions.EnvRunID:      "42",
		actions.EnvRepository: "octo/widgets",
		actions.EnvServerURL:  "https://github.com",
		actions.EnvGitHub:     "ghs_token",
	}))

	env, err := p.Environment("")
	require.NoError(t, err)

	assert.Equal(t, "octo", env.Context.Owner)
	assert.Equal(t, "widgets", env.Context.Repo)
	assert.Equal(t, "build", env.Context.Job)
	assert.Equal(t, "42", env.Context.RunID)
	assert.Equal(t, "refs/pull/12/merge", env.Context.Ref)
	assert.Equal(t, actions.DefaultAPIURL, env.APIURL)
	assert.Equal(t, "ghs_token", env.Token)
	require.NotNil(t, env.Context.Payload.PullRequest)
	assert.Equal(t, "headsha", domain.ResolveCommitSha(env.Context))
}

func TestProvider_TokenPrecedence(t *testing.T) {
	p := actions.NewWithLookup(lookupFrom(map[string]string{
		actions.EnvToken:  "explicit",
		actions.EnvGitHub: "ambient",
		actions.EnvAPIURL: "https://ghe.example.com/api/v3",
	}))

	env, err := p.Environment("")
	require.NoError(t, err)
	assert.Equal(t, "explicit", env.Token)
	assert.Equal(t, "https://ghe.example.com/api/v3", env.APIURL)
}

func TestProvider_Dotenv(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, actions.EnvFileName, "DEPSUB_TOKEN=from-file\nGITHUB_REPOSITORY=octo/from-file\n")

	p := actions.NewWithLookup(lookupFrom(map[string]string{
		actions.EnvRepository: "octo/widgets",
	}))

	env, err := p.Environment(root)
	require.NoError(t, err)
	assert.Equal(t, "from-file", env.Token)
	assert.Equal(t, "widgets", env.Context.Repo, "process environment wins over .env")
}

func TestProvider_NoDotenv(t *testing.T) {
	p := actions.NewWithLookup(lookupFrom(nil))

	env, err := p.Environment(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, env.Token)
	assert.Empty(t, env.Context.Owner)
}

func TestProvider_PayloadErrors(t *testing.T) {
	dir := t.TempDir()

	p := actions.NewWithLookup(lookupFrom(map[string]string{
		actions.EnvEventPath: filepath.Join(dir, "missing.json"),
	}))
	_, err := p.Environment("")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrEventPayloadReadFailed.Error())

	bad := writeFile(t, dir, "bad.json", "{")
	p = actions.NewWithLookup(lookupFrom(map[string]string{actions.EnvEventPath: bad}))
	_, err = p.Environment("")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrEventPayloadParseFailed.Error())
}

func TestReadPayload_PushEvent(t *testing.T) {
	path := writeFile(t, t.TempDir(), "event.json", `{"ref": "refs/heads/main", "after": "abc"}`)

	payload, err := actions.ReadPayload(path)
	require.NoError(t, err)
	assert.Nil(t, payload.PullRequest)
}
