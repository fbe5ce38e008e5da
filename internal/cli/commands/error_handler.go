package commands

import (
	"fmt"

	"issuetree/internal/errors"
	"issuetree/internal/logger"
)

// HandleError processes errors and provides user-friendly output. Every
// error path resolves to a single clear message and exit code 1.
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	logger.WithError(err).Debug("Command failed")

	switch errors.GetCode(err) {
	case errors.ErrInvalidIssueURL:
		return fmt.Errorf("%v\n\nTip: Pass a full issue URL like https://github.com/owner/repo/issues/42.", err)

	case errors.ErrProfileNotFound:
		return fmt.Errorf("%v\n\nTip: Profiles live in the profiles/ directory next to config.json.", err)

	case errors.ErrConfigMalformed, errors.ErrConfigUnreadable:
		return fmt.Errorf("%v\n\nTip: The config files are plain JSON documents.", err)

	case errors.ErrWorktreeExists:
		return fmt.Errorf("%v\n\nTip: Use 'issuetree list' to see existing worktrees, or pass --branch for a different name.", err)

	case errors.ErrBranchInUse:
		return fmt.Errorf("%v\n\nTip: The branch is checked out in another worktree; pass --branch for a different name.", err)

	case errors.ErrGitCommandFailed:
		return fmt.Errorf("%v\n\nTip: Ensure git is installed and you are inside a git repository.", err)

	default:
		return err
	}
}
