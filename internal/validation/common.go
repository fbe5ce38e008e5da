// Package validation provides input validation helpers shared by the CLI
// and the worktree pipeline.
package validation

import (
	"path/filepath"
	"regexp"
	"strings"

	"issuetree/internal/errors"
)

var (
	// branchNameRegex matches branch names already in safe kebab-case form
	branchNameRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	// profileNameRegex validates configuration profile names
	profileNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)
)

// BranchName validates a derived branch name
func BranchName(name string) error {
	if name == "" {
		return errors.ValidationFailed("branch", name, "cannot be empty")
	}

	if len(name) > 200 {
		return errors.ValidationFailed("branch", name, "too long (max 200 characters)")
	}

	if !branchNameRegex.MatchString(name) {
		return errors.ValidationFailed("branch", name, "must be lowercase alphanumerics and hyphens")
	}

	return nil
}

// ProfileName validates a configuration profile name to keep it a plain
// file-name component
func ProfileName(name string) error {
	if name == "" {
		return errors.ValidationFailed("profile", name, "cannot be empty")
	}

	if !profileNameRegex.MatchString(name) {
		return errors.ValidationFailed("profile", name, "contains invalid characters")
	}

	return nil
}

// Path validates and cleans a file path to prevent traversal attacks
func Path(path string) (string, error) {
	if path == "" {
		return "", errors.InvalidPath(path, "cannot be empty")
	}

	// Clean the path to prevent traversal
	cleaned := filepath.Clean(path)

	if strings.HasPrefix(cleaned, "../") || cleaned == ".." || strings.Contains(cleaned, "/../") {
		return "", errors.InvalidPath(path, "path traversal detected")
	}

	if strings.Contains(path, "../") {
		return "", errors.InvalidPath(path, "path traversal detected")
	}

	return cleaned, nil
}
