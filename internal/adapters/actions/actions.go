// Package actions reads the GitHub Actions run environment.
package actions

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.trai.ch/depsub/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultAPIURL is used when GITHUB_API_URL is not set.
const DefaultAPIURL = "https://api.github.com"

// EnvFileName is the optional dotenv file read from the configuration root.
const EnvFileName = ".env"

// Environment variables read by the provider.
const (
	EnvEventName  = "GITHUB_EVENT_NAME"
	EnvEventPath  = "GITHUB_EVENT_PATH"
	EnvSHA        = "GITHUB_SHA"
	EnvRef        = "GITHUB_REF"
	EnvJob        = "GITHUB_JOB"
	EnvRunID      = "GITHUB_RUN_ID"
	EnvRepository = "GITHUB_REPOSITORY"
	EnvServerURL  = "GITHUB_SERVER_URL"
	EnvAPIURL     = "GITHUB_API_URL"
	EnvToken      = "DEPSUB_TOKEN"
	EnvGitHub     = "GITHUB_TOKEN"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Provider implements ports.EnvironmentProvider.
type Provider struct {
	lookup LookupFunc
}

// New creates a provider backed by the process environment.
func New() *Provider {
	return NewWithLookup(os.LookupEnv)
}

// NewWithLookup creates a provider backed by lookup.
func NewWithLookup(lookup LookupFunc) *Provider {
	return &Provider{lookup: lookup}
}

// Environment resolves the run environment. Values from root/.env fill in
// variables the process environment leaves unset.
func (p *Provider) Environment(root string) (domain.RunEnvironment, error) {
	dotenv, err := readDotenv(root)
	if err != nil {
		return domain.RunEnvironment{}, err
	}
	get := func(key string) string {
		if v, ok := p.lookup(key); ok {
			return v
		}
		return dotenv[key]
	}

	ic := domain.InvocationContext{
		EventName: get(EnvEventName),
		SHA:       get(EnvSHA),
		Ref:       get(EnvRef),
		Job:       get(EnvJob),
		RunID:     get(EnvRunID),
		ServerURL: get(EnvServerURL),
	}
	ic.Owner, ic.Repo, _ = strings.Cut(get(EnvRepository), "/")

	if path := get(EnvEventPath); path != "" {
		payload, err := ReadPayload(path)
		if err != nil {
			return domain.RunEnvironment{}, err
		}
		ic.Payload = payload
	}

	apiURL := get(EnvAPIURL)
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	token := get(EnvToken)
	if token == "" {
		token = get(EnvGitHub)
	}

	return domain.RunEnvironment{Context: ic, APIURL: apiURL, Token: token}, nil
}

// ReadPayload decodes the webhook payload stored at path.
func ReadPayload(path string) (domain.EventPayload, error) {
	// #nosec G304 -- path is provided by the runner
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.EventPayload{}, zerr.With(zerr.Wrap(err, domain.ErrEventPayloadReadFailed.Error()), "path", path)
	}
	var payload domain.EventPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.EventPayload{}, zerr.With(zerr.Wrap(err, domain.ErrEventPayloadParseFailed.Error()), "path", path)
	}
	return payload, nil
}

func readDotenv(root string) (map[string]string, error) {
	if root == "" {
		return nil, nil
	}
	path := filepath.Join(root, EnvFileName)
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read env file"), "path", path)
	}
	return values, nil
}
