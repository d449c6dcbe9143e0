// Package github submits dependency snapshots to the GitHub dependency graph.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.trai.ch/depsub/internal/build"
	"go.trai.ch/depsub/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/oauth2"
)

const (
	// AcceptHeader selects the dependency graph preview media type.
	AcceptHeader = "application/vnd.github.foo-bar-preview+json"

	// tokenType makes the authorization header read "token <value>".
	tokenType = "token"

	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 1 << 20
)

// Submitter implements ports.Submitter over HTTP.
type Submitter struct {
	base http.RoundTripper
}

// New creates a submitter using the default transport.
func New() *Submitter {
	return NewWithTransport(http.DefaultTransport)
}

// NewWithTransport creates a submitter that sends requests through base.
func NewWithTransport(base http.RoundTripper) *Submitter {
	return &Submitter{base: base}
}

type snapshotResponse struct {
	ID        int64  `json:"id"`
	Result    string `json:"result"`
	CreatedAt string `json:"created_at"`
	Message   string `json:"message"`
}

// SnapshotsURL returns the endpoint snapshots are posted to.
func SnapshotsURL(target domain.SubmissionTarget) string {
	return strings.TrimSuffix(target.APIURL, "/") +
		"/repos/" + url.PathEscape(target.Owner) +
		"/" + url.PathEscape(target.Repo) +
		"/dependency-graph/snapshots"
}

// Submit posts the snapshot. A response with any status is returned as a
// result; only failures to build, send or read the request are errors.
func (s *Submitter) Submit(
	ctx context.Context,
	target domain.SubmissionTarget,
	snapshot *domain.Snapshot,
) (domain.SubmissionResult, error) {
	body, err := snapshot.PrettyJSON()
	if err != nil {
		return domain.SubmissionResult{}, zerr.Wrap(err, domain.ErrSnapshotMarshalFailed.Error())
	}

	endpoint := SnapshotsURL(target)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.SubmissionResult{}, zerr.With(zerr.Wrap(err, domain.ErrSubmissionFailed.Error()), "url", endpoint)
	}
	req.Header.Set("Accept", AcceptHeader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "depsub/"+build.Version)

	resp, err := s.client(target.Token).Do(req)
	if err != nil {
		return domain.SubmissionResult{}, zerr.With(zerr.Wrap(err, domain.ErrSubmissionFailed.Error()), "url", endpoint)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrSubmissionFailed.Error()), "url", endpoint)
		return domain.SubmissionResult{}, zerr.With(err, "status", resp.StatusCode)
	}

	result := domain.SubmissionResult{StatusCode: resp.StatusCode}
	var decoded snapshotResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		result.Message = strings.TrimSpace(string(raw))
		return result, nil
	}
	result.ID = decoded.ID
	result.Result = decoded.Result
	result.CreatedAt = decoded.CreatedAt
	result.Message = decoded.Message
	return result, nil
}

func (s *Submitter) client(token string) *http.Client {
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{
				AccessToken: token,
				TokenType:   tokenType,
			}),
			Base: s.base,
		},
	}
}
