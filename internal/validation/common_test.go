package validation_test

import (
	"strings"
	"testing"

	"issuetree/internal/errors"
	"issuetree/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "issue-42", false},
		{"single word", "hotfix", false},
		{"digits", "issue-42-v2", false},
		{"empty", "", true},
		{"uppercase", "Issue-42", true},
		{"leading hyphen", "-issue-42", true},
		{"trailing hyphen", "issue-42-", true},
		{"double hyphen", "issue--42", true},
		{"slash", "feature/issue-42", true},
		{"too long", strings.Repeat("a", 201), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.BranchName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProfileName(t *testing.T) {
	assert.NoError(t, validation.ProfileName("work"))
	assert.NoError(t, validation.ProfileName("client-a.v2"))
	assert.Error(t, validation.ProfileName(""))
	assert.Error(t, validation.ProfileName("../escape"))
	assert.Error(t, validation.ProfileName("has space"))
	assert.Error(t, validation.ProfileName(".hidden"))
}

func TestPath(t *testing.T) {
	cleaned, err := validation.Path("/home/dev/worktrees")
	require.NoError(t, err)
	assert.Equal(t, "/home/dev/worktrees", cleaned)

	cleaned, err = validation.Path("worktrees//nested/")
	require.NoError(t, err)
	assert.Equal(t, "worktrees/nested", cleaned)

	_, err = validation.Path("")
	assert.Error(t, err)

	_, err = validation.Path("../outside")
	assert.Error(t, err)

	_, err = validation.Path("/home/dev/../../etc")
	assert.Error(t, err)
}
