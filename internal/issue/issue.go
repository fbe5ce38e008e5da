// Package issue models GitHub issue references and the details fetched for
// them. Parsing is pure; all network access lives behind the git bridge.
package issue

import (
	"fmt"
	"regexp"
	"strconv"

	"issuetree/internal/errors"
)

// Reference identifies a single GitHub issue
type Reference struct {
	Owner     string
	Repo      string
	Number    int
	SourceURL string
}

// String returns the short owner/repo#number form
func (r *Reference) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

// Slug returns owner/repo for issue-tracker queries
func (r *Reference) Slug() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Repo)
}

// Details holds the issue data used for branch naming. Absence of details
// never aborts the pipeline.
type Details struct {
	Title  string
	Body   string
	Labels []string
}

// issueURLRegex accepts only canonical GitHub issue URLs. No partial
// parsing, no guessing.
var issueURLRegex = regexp.MustCompile(`^https?://github\.com/([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)/issues/([0-9]+)$`)

// ParseURL validates and decomposes a GitHub issue URL
func ParseURL(raw string) (*Reference, error) {
	if raw == "" {
		return nil, errors.ErrEmptyInput
	}

	m := issueURLRegex.FindStringSubmatch(raw)
	if m == nil {
		return nil, errors.InvalidIssueURL(raw)
	}

	number, err := strconv.Atoi(m[3])
	if err != nil || number <= 0 {
		return nil, errors.InvalidIssueURL(raw)
	}

	return &Reference{
		Owner:     m[1],
		Repo:      m[2],
		Number:    number,
		SourceURL: raw,
	}, nil
}
