// Package naming derives branch names for issue worktrees. Naming is
// best-effort: the assistant may be absent or wrong, and the deterministic
// fallback always wins over failing the pipeline.
package naming

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"issuetree/internal/issue"
	"issuetree/internal/logger"
)

// titleSlugWords caps how many title words feed the fallback slug
const titleSlugWords = 4

// Assistant suggests a short kebab-case branch name from an issue title.
// Implementations may be unavailable; any error falls through to the
// deterministic fallback.
type Assistant interface {
	SuggestBranchName(ctx context.Context, title string) (string, error)
}

// Namer derives branch names
type Namer struct {
	assistant Assistant
}

// New creates a Namer. assistant may be nil.
func New(assistant Assistant) *Namer {
	return &Namer{assistant: assistant}
}

// DeriveName resolves a branch name. Resolution order, first satisfied wins:
// explicit override (sanitized), assistant suggestion, deterministic
// issue-<number> fallback with an optional title slug.
func (n *Namer) DeriveName(ctx context.Context, override string, details *issue.Details, ref *issue.Reference) string {
	if override != "" {
		return Sanitize(override)
	}

	if n.assistant != nil && details != nil && details.Title != "" {
		name, err := n.assistant.SuggestBranchName(ctx, details.Title)
		if err == nil {
			if s := Sanitize(name); s != "" {
				return s
			}
		} else {
			logger.WithError(err).Debug("Naming assistant unavailable, falling back")
		}
	}

	return fallbackName(details, ref)
}

// fallbackName builds the deterministic issue-<number> name
func fallbackName(details *issue.Details, ref *issue.Reference) string {
	base := fmt.Sprintf("issue-%d", ref.Number)
	if details != nil {
		if slug := titleSlug(details.Title, titleSlugWords); slug != "" {
			return base + "-" + slug
		}
	}
	return base
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9]+`)

// Sanitize maps arbitrary input onto the safe branch-name alphabet:
// lowercase alphanumerics and hyphens, no leading/trailing or doubled
// hyphens.
func Sanitize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = unsafeChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 60 {
		s = strings.Trim(s[:60], "-")
	}
	return s
}

// titleSlug returns a slug built from the first few words of a title
func titleSlug(title string, maxWords int) string {
	words := strings.Fields(title)
	if len(words) > maxWords {
		words = words[:maxWords]
	}
	return Sanitize(strings.Join(words, " "))
}
