package errors

import "fmt"

// Configuration Errors

func ConfigUnreadable(path string, cause error) *IssuetreeError {
	return WrapWithDetails(ErrConfigUnreadable, "Configuration file could not be read",
		fmt.Sprintf("Path: %s", path), cause)
}

func ConfigMalformed(path string, cause error) *IssuetreeError {
	return WrapWithDetails(ErrConfigMalformed, "Configuration file is malformed",
		fmt.Sprintf("Path: %s", path), cause)
}

func ProfileNotFound(name string) *IssuetreeError {
	return NewWithDetails(ErrProfileNotFound, "Configuration profile not found",
		fmt.Sprintf("Profile: %s", name))
}

// Validation Errors

func ValidationFailed(field, value, reason string) *IssuetreeError {
	return NewWithDetails(ErrValidationFailed, "Validation failed",
		fmt.Sprintf("Field: %s, Value: %s, Reason: %s", field, value, reason))
}

func InvalidIssueURL(url string) *IssuetreeError {
	return NewWithDetails(ErrInvalidIssueURL, "Not a GitHub issue URL",
		fmt.Sprintf("Expected https://github.com/<owner>/<repo>/issues/<number>, got: %s", url))
}

func InvalidPath(path, reason string) *IssuetreeError {
	return NewWithDetails(ErrInvalidPath, "Invalid path",
		fmt.Sprintf("Path: %s, Reason: %s", path, reason))
}

// Issue tracker Errors

func IssueFetchFailed(ref string, cause error) *IssuetreeError {
	return WrapWithDetails(ErrIssueFetchFailed, "Failed to fetch issue",
		fmt.Sprintf("Issue: %s", ref), cause)
}

func IssueNotFound(ref string) *IssuetreeError {
	return NewWithDetails(ErrIssueNotFound, "Issue not found",
		fmt.Sprintf("Issue: %s", ref))
}

// Git Errors

func GitCommandFailed(args []string, stderr string, cause error) *IssuetreeError {
	return WrapWithDetails(ErrGitCommandFailed, "git command failed",
		fmt.Sprintf("Command: git %v, Output: %s", args, stderr), cause)
}

func WorktreeExists(path string) *IssuetreeError {
	return NewWithDetails(ErrWorktreeExists, "Worktree path already exists",
		fmt.Sprintf("Path: %s", path))
}

func BranchInUse(branch string) *IssuetreeError {
	return NewWithDetails(ErrBranchInUse, "Branch is already checked out in another worktree",
		fmt.Sprintf("Branch: %s", branch))
}

func BaseRefNotFound(ref string) *IssuetreeError {
	return NewWithDetails(ErrBaseRefNotFound, "Base ref not found",
		fmt.Sprintf("Ref: %s", ref))
}

// Install Errors

func InstallFailed(manager string, cause error) *IssuetreeError {
	return WrapWithDetails(ErrInstallFailed, "Dependency install failed",
		fmt.Sprintf("Package manager: %s", manager), cause)
}

// Terminal Errors

func TerminalLaunchFailed(app string, cause error) *IssuetreeError {
	return WrapWithDetails(ErrTerminalLaunchFailed, "Failed to open terminal",
		fmt.Sprintf("App: %s", app), cause)
}
