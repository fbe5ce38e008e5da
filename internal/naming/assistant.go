package naming

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"issuetree/internal/errors"
	"issuetree/internal/logger"
)

// assistantTimeout bounds a single suggestion request. The pipeline never
// blocks on the assistant beyond this.
const assistantTimeout = 20 * time.Second

// ClaudeAssistant wraps the claude CLI for branch-name suggestions
type ClaudeAssistant struct {
	binaryPath string
	timeout    time.Duration
}

// NewClaudeAssistant locates the claude binary. Returns
// errors.ErrAssistantNotInstalled when it is not on PATH; callers treat
// that as "no assistant configured".
func NewClaudeAssistant() (*ClaudeAssistant, error) {
	path, err := exec.LookPath("claude")
	if err != nil {
		return nil, errors.ErrAssistantNotInstalled
	}
	return &ClaudeAssistant{
		binaryPath: path,
		timeout:    assistantTimeout,
	}, nil
}

// SuggestBranchName asks the assistant for a short kebab-case name. Output
// is sanitized by the caller; anything unusable is an error so the caller
// falls through to the deterministic name.
func (a *ClaudeAssistant) SuggestBranchName(ctx context.Context, title string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	prompt := "Suggest a short git branch name in kebab-case (3-5 words, lowercase, hyphens only, no prefix) for this issue title. Reply with the branch name only.\n\nTitle: " + title

	cmd := exec.CommandContext(ctx, a.binaryPath, "-p", prompt, "--output-format", "text")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", errors.New(errors.ErrTimeout, "naming assistant timed out")
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", errors.Wrap(errors.ErrAssistantUnavailable, "naming assistant failed", err)
		}
		return "", errors.WrapWithDetails(errors.ErrAssistantUnavailable, "naming assistant failed", msg, err)
	}

	// Take the first non-empty line; assistants occasionally add chatter.
	var name string
	for _, line := range strings.Split(stdout.String(), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			name = trimmed
			break
		}
	}

	if name == "" || len(name) > 100 || len(strings.Fields(name)) > 6 {
		return "", errors.New(errors.ErrAssistantBadOutput, "assistant returned unusable output")
	}

	logger.WithFields(logger.Fields{
		"suggestion": name,
		"elapsed":    time.Since(start).String(),
	}).Debug("Assistant suggested branch name")

	return name, nil
}
