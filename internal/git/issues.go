package git

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os/exec"
	"strconv"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"issuetree/internal/errors"
	"issuetree/internal/issue"
	"issuetree/internal/logger"
)

// ghIssue mirrors the JSON emitted by gh issue view --json
type ghIssue struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Labels []struct {
		Name string `json:"name"`
	} `json:"labels"`
}

// FetchIssue fetches issue details for branch naming. It prefers the gh CLI
// (which carries its own auth) and falls back to the GitHub REST API when a
// token is present. All failures are recoverable for the caller.
func (m *Manager) FetchIssue(ctx context.Context, ref *issue.Reference) (*issue.Details, error) {
	if ghPath, err := exec.LookPath("gh"); err == nil {
		return m.fetchIssueWithGH(ctx, ghPath, ref)
	}

	if token := lookupEnv(m.execCtx.Env, "GITHUB_TOKEN"); token != "" {
		return fetchIssueWithAPI(ctx, token, ref)
	}

	return nil, errors.NewWithDetails(errors.ErrIssueFetchFailed,
		"no issue tracker access", "gh CLI not installed and GITHUB_TOKEN not set")
}

// fetchIssueWithGH shells out to the gh CLI and parses its JSON output
func (m *Manager) fetchIssueWithGH(ctx context.Context, ghPath string, ref *issue.Reference) (*issue.Details, error) {
	cmd := exec.CommandContext(ctx, ghPath,
		"issue", "view", strconv.Itoa(ref.Number),
		"--repo", ref.Slug(),
		"--json", "title,body,labels")
	cmd.Env = m.execCtx.Env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.WithFields(logger.Fields{"issue": ref.String()}).Debug("Fetching issue via gh")
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		lower := strings.ToLower(msg)
		if strings.Contains(lower, "could not resolve") || strings.Contains(lower, "not found") {
			return nil, errors.IssueNotFound(ref.String())
		}
		if msg == "" {
			return nil, errors.IssueFetchFailed(ref.String(), err)
		}
		return nil, errors.WrapWithDetails(errors.ErrIssueFetchFailed, "Failed to fetch issue", msg, err)
	}

	var gi ghIssue
	if err := json.Unmarshal(stdout.Bytes(), &gi); err != nil {
		return nil, errors.Wrap(errors.ErrIssueFetchFailed, "unparsable gh output", err)
	}

	details := &issue.Details{
		Title: gi.Title,
		Body:  gi.Body,
	}
	for _, l := range gi.Labels {
		details.Labels = append(details.Labels, l.Name)
	}
	return details, nil
}

// fetchIssueWithAPI queries the GitHub REST API directly with a token
func fetchIssueWithAPI(ctx context.Context, token string, ref *issue.Reference) (*issue.Details, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := github.NewClient(oauth2.NewClient(ctx, ts))

	logger.WithFields(logger.Fields{"issue": ref.String()}).Debug("Fetching issue via API")
	iss, resp, err := client.Issues.Get(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, errors.IssueNotFound(ref.String())
		}
		return nil, errors.IssueFetchFailed(ref.String(), err)
	}

	details := &issue.Details{
		Title: iss.GetTitle(),
		Body:  iss.GetBody(),
	}
	for _, l := range iss.Labels {
		details.Labels = append(details.Labels, l.GetName())
	}
	return details, nil
}

// lookupEnv reads a variable from the explicit environment slice so the
// bridge never consults ambient process state directly.
func lookupEnv(env []string, key string) string {
	prefix := key + "="
	for i := len(env) - 1; i >= 0; i-- {
		if strings.HasPrefix(env[i], prefix) {
			return strings.TrimPrefix(env[i], prefix)
		}
	}
	return ""
}
