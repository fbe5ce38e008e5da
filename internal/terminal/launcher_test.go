package terminal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppleScriptFor_ITerm(t *testing.T) {
	script := appleScriptFor("iTerm2", "/home/dev/worktrees/widgets-issue-42")

	assert.Contains(t, script, `tell application "iTerm"`)
	assert.Contains(t, script, "create window with default profile")
	assert.Contains(t, script, `cd \"/home/dev/worktrees/widgets-issue-42\"`)
}

func TestAppleScriptFor_NamedApp(t *testing.T) {
	script := appleScriptFor("Ghostty", "/tmp/wt")

	assert.Contains(t, script, `tell application "Ghostty"`)
	assert.Contains(t, script, "do script")
}

func TestAppleScriptFor_DefaultsToTerminal(t *testing.T) {
	script := appleScriptFor("", "/tmp/wt")
	assert.Contains(t, script, `tell application "Terminal"`)
}

func TestAppleScriptFor_EscapesQuotes(t *testing.T) {
	script := appleScriptFor("Terminal", `/tmp/odd"dir`)
	assert.False(t, strings.Contains(script, `odd"dir`), "raw quote must not survive into the script")
}
