package git

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGHIssueUnmarshal(t *testing.T) {
	raw := `{
		"title": "Rate limiter drops valid requests",
		"body": "Steps to reproduce...",
		"labels": [{"name": "bug"}, {"name": "p1"}]
	}`

	var gi ghIssue
	require.NoError(t, json.Unmarshal([]byte(raw), &gi))

	assert.Equal(t, "Rate limiter drops valid requests", gi.Title)
	assert.Equal(t, "Steps to reproduce...", gi.Body)
	require.Len(t, gi.Labels, 2)
	assert.Equal(t, "bug", gi.Labels[0].Name)
}

func TestLookupEnv(t *testing.T) {
	env := []string{
		"PATH=/usr/bin",
		"GITHUB_TOKEN=first",
		"GITHUB_TOKEN=last",
	}

	assert.Equal(t, "last", lookupEnv(env, "GITHUB_TOKEN"), "last assignment wins")
	assert.Equal(t, "/usr/bin", lookupEnv(env, "PATH"))
	assert.Equal(t, "", lookupEnv(env, "MISSING"))
	assert.Equal(t, "", lookupEnv(nil, "GITHUB_TOKEN"))
}
