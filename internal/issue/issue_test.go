package issue_test

import (
	"fmt"
	"testing"

	"issuetree/internal/errors"
	"issuetree/internal/issue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantOwner string
		wantRepo  string
		wantNum   int
		wantErr   bool
	}{
		{
			name:      "https issue URL",
			url:       "https://github.com/acme/widgets/issues/42",
			wantOwner: "acme",
			wantRepo:  "widgets",
			wantNum:   42,
		},
		{
			name:      "http issue URL",
			url:       "http://github.com/acme/widgets/issues/1",
			wantOwner: "acme",
			wantRepo:  "widgets",
			wantNum:   1,
		},
		{
			name:      "owner and repo with dots and dashes",
			url:       "https://github.com/some-org/repo.name/issues/7",
			wantOwner: "some-org",
			wantRepo:  "repo.name",
			wantNum:   7,
		},
		{
			name:    "wrong host",
			url:     "https://gitlab.com/acme/widgets/issues/42",
			wantErr: true,
		},
		{
			name:    "pull request URL",
			url:     "https://github.com/acme/widgets/pull/42",
			wantErr: true,
		},
		{
			name:    "missing number",
			url:     "https://github.com/acme/widgets/issues/",
			wantErr: true,
		},
		{
			name:    "zero issue number",
			url:     "https://github.com/acme/widgets/issues/0",
			wantErr: true,
		},
		{
			name:    "trailing path segment",
			url:     "https://github.com/acme/widgets/issues/42/comments",
			wantErr: true,
		},
		{
			name:    "empty input",
			url:     "",
			wantErr: true,
		},
		{
			name:    "not a URL",
			url:     "acme/widgets#42",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := issue.ParseURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, ref)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOwner, ref.Owner)
			assert.Equal(t, tt.wantRepo, ref.Repo)
			assert.Equal(t, tt.wantNum, ref.Number)
			assert.Equal(t, tt.url, ref.SourceURL)
		})
	}
}

func TestParseURL_Reconstructs(t *testing.T) {
	// owner/repo/number must reconstruct the original path
	url := "https://github.com/acme/widgets/issues/42"
	ref, err := issue.ParseURL(url)
	require.NoError(t, err)

	rebuilt := fmt.Sprintf("https://github.com/%s/%s/issues/%d", ref.Owner, ref.Repo, ref.Number)
	assert.Equal(t, url, rebuilt)
}

func TestParseURL_ErrorCode(t *testing.T) {
	_, err := issue.ParseURL("https://gitlab.com/acme/widgets/issues/42")
	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidIssueURL, errors.GetCode(err))
	assert.True(t, errors.IsValidation(err))
}

func TestReferenceString(t *testing.T) {
	ref := &issue.Reference{Owner: "acme", Repo: "widgets", Number: 42}
	assert.Equal(t, "acme/widgets#42", ref.String())
	assert.Equal(t, "acme/widgets", ref.Slug())
}
