package domain

// SubmissionTarget addresses the snapshot endpoint of one repository.
type SubmissionTarget struct {
	APIURL string
	Owner  string
	Repo   string
	Token  string
}

// SubmissionResult is the endpoint's answer to a submitted snapshot.
type SubmissionResult struct {
	StatusCode int
	// ID is the snapshot id assigned by the endpoint, 0 if none was returned.
	ID        int64
	Result    string
	CreatedAt string
	Message   string
}

// Accepted reports whether the endpoint took the snapshot.
func (r SubmissionResult) Accepted() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300 &&
		(r.Result == SubmissionSuccess || r.Result == SubmissionAccepted)
}

// Result values reported by the snapshot endpoint.
const (
	SubmissionSuccess  = "SUCCESS"
	SubmissionAccepted = "ACCEPTED"
)

// RunEnvironment is everything the process environment contributes to a run.
type RunEnvironment struct {
	Context InvocationContext
	APIURL  string
	Token   string
}

// Target derives the submission target from the environment.
func (e RunEnvironment) Target() (SubmissionTarget, error) {
	if e.Context.Owner == "" || e.Context.Repo == "" {
		return SubmissionTarget{}, ErrMissingRepository
	}
	if e.Token == "" {
		return SubmissionTarget{}, ErrMissingToken
	}
	return SubmissionTarget{
		APIURL: e.APIURL,
		Owner:  e.Context.Owner,
		Repo:   e.Context.Repo,
		Token:  e.Token,
	}, nil
}
