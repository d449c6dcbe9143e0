package domain

import (
	"slices"
	"strings"
)

// InvocationContext describes the CI run that triggered detection.
// It is passed explicitly; nothing in this package reads the environment.
type InvocationContext struct {
	EventName string
	Payload   EventPayload
	SHA       string
	Ref       string
	Job       string
	RunID     string
	Owner     string
	Repo      string
	ServerURL string
}

// EventPayload is the subset of the webhook payload needed for commit resolution.
type EventPayload struct {
	PullRequest *PullRequest `json:"pull_request,omitempty"`
}

// PullRequest is the pull request attached to a pull request event.
type PullRequest struct {
	Number int            `json:"number"`
	Head   PullRequestRef `json:"head"`
}

// PullRequestRef identifies the head or base commit of a pull request.
type PullRequestRef struct {
	SHA string `json:"sha"`
	Ref string `json:"ref"`
}

// pullRequestEvents trigger on a synthetic merge commit; the snapshot must be
// associated with the pull request head instead.
var pullRequestEvents = []string{
	"pull_request",
	"pull_request_comment",
	"pull_request_review",
	"pull_request_review_comment",
}

// IsPullRequestEvent reports whether eventName is one of the pull request
// trigger classes.
func IsPullRequestEvent(eventName string) bool {
	return slices.Contains(pullRequestEvents, eventName)
}

// ResolveCommitSha returns the commit a snapshot describes: the pull request
// head sha for pull request events, the ambient sha otherwise. For a pull
// request event without a head sha in the payload it returns "".
func ResolveCommitSha(ic InvocationContext) string {
	if IsPullRequestEvent(ic.EventName) {
		if ic.Payload.PullRequest == nil {
			return ""
		}
		return ic.Payload.PullRequest.Head.SHA
	}
	return ic.SHA
}

// ResolveJob derives the snapshot job from the invocation context.
// HTMLURL is only set when server, repository and run id are all known.
func ResolveJob(ic InvocationContext) Job {
	job := Job{
		Correlator: ic.Job,
		ID:         ic.RunID,
	}
	if ic.ServerURL != "" && ic.Owner != "" && ic.Repo != "" && ic.RunID != "" {
		job.HTMLURL = strings.TrimSuffix(ic.ServerURL, "/") +
			"/" + ic.Owner + "/" + ic.Repo + "/actions/runs/" + ic.RunID
	}
	return job
}
