package naming_test

import (
	"context"
	"testing"

	"issuetree/internal/errors"
	"issuetree/internal/issue"
	"issuetree/internal/naming"
	"issuetree/internal/testutil"

	"github.com/stretchr/testify/assert"
)

var ref = &issue.Reference{Owner: "acme", Repo: "widgets", Number: 42}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"fix-login", "fix-login"},
		{"Fix Login Bug", "fix-login-bug"},
		{"feature/AUTH--token!!", "feature-auth-token"},
		{"--weird--", "weird"},
		{"héllo wörld", "h-llo-w-rld"},
		{"___", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, naming.Sanitize(tt.in))
		})
	}
}

func TestDeriveName_ExplicitOverride(t *testing.T) {
	n := naming.New(nil)

	got := n.DeriveName(context.Background(), "Fix API/Rate Limits", nil, ref)
	assert.Equal(t, "fix-api-rate-limits", got)
	assert.Regexp(t, `^[a-z0-9-]+$`, got)
}

func TestDeriveName_OverrideBeatsDetails(t *testing.T) {
	n := naming.New(&testutil.MockAssistant{Suggestion: "assistant-name"})
	details := &issue.Details{Title: "Completely different"}

	got := n.DeriveName(context.Background(), "my-branch", details, ref)
	assert.Equal(t, "my-branch", got)
}

func TestDeriveName_FallbackWithoutDetails(t *testing.T) {
	n := naming.New(nil)

	got := n.DeriveName(context.Background(), "", nil, ref)
	assert.Equal(t, "issue-42", got)
}

func TestDeriveName_FallbackWithTitleSlug(t *testing.T) {
	n := naming.New(nil)
	details := &issue.Details{Title: "Rate limiter drops valid requests on retry"}

	got := n.DeriveName(context.Background(), "", details, ref)
	assert.Equal(t, "issue-42-rate-limiter-drops-valid", got)
}

func TestDeriveName_AssistantSuggestion(t *testing.T) {
	n := naming.New(&testutil.MockAssistant{Suggestion: "fix-rate-limiter"})
	details := &issue.Details{Title: "Rate limiter drops valid requests"}

	got := n.DeriveName(context.Background(), "", details, ref)
	assert.Equal(t, "fix-rate-limiter", got)
}

func TestDeriveName_AssistantOutputSanitized(t *testing.T) {
	n := naming.New(&testutil.MockAssistant{Suggestion: "Fix Rate_Limiter!"})
	details := &issue.Details{Title: "Rate limiter drops valid requests"}

	got := n.DeriveName(context.Background(), "", details, ref)
	assert.Equal(t, "fix-rate-limiter", got)
}

func TestDeriveName_AssistantFailureFallsThrough(t *testing.T) {
	n := naming.New(&testutil.MockAssistant{Err: errors.ErrAssistantNotInstalled})
	details := &issue.Details{Title: "Rate limiter drops valid requests"}

	got := n.DeriveName(context.Background(), "", details, ref)
	assert.Equal(t, "issue-42-rate-limiter-drops-valid", got)
}

func TestDeriveName_AssistantGarbageFallsThrough(t *testing.T) {
	// Sanitized-to-empty output must not produce an empty branch
	n := naming.New(&testutil.MockAssistant{Suggestion: "!!!"})
	details := &issue.Details{Title: "Crash"}

	got := n.DeriveName(context.Background(), "", details, ref)
	assert.Equal(t, "issue-42-crash", got)
}

func TestDeriveName_AssistantSkippedWithoutTitle(t *testing.T) {
	// Assistant must not be consulted when there is no title
	n := naming.New(&testutil.MockAssistant{Suggestion: "should-not-be-used"})

	got := n.DeriveName(context.Background(), "", &issue.Details{}, ref)
	assert.Equal(t, "issue-42", got)
}
