package operations

import (
	"context"

	"issuetree/internal/git"
	"issuetree/internal/issue"
)

// GitBridge is the capability surface the orchestrator needs from the git
// layer. It exists so tests can exercise the pipeline against in-memory
// fakes with no process spawned.
type GitBridge interface {
	FetchIssue(ctx context.Context, ref *issue.Reference) (*issue.Details, error)
	AddWorktree(ctx context.Context, branch, path, baseRef string) error
	ListWorktrees(ctx context.Context) ([]git.WorktreeRecord, error)
	RemoveWorktree(ctx context.Context, path string, force bool) error
	PruneWorktrees(ctx context.Context) error
	DefaultBranch(ctx context.Context) (string, error)
	HasUncommittedChanges(ctx context.Context, path string) (bool, error)
}

// BranchNamer derives a branch name from an override, issue details, and
// the issue reference. Never fails; falls back deterministically.
type BranchNamer interface {
	DeriveName(ctx context.Context, override string, details *issue.Details, ref *issue.Reference) string
}

// DependencyInstaller bootstraps dependencies inside a worktree
type DependencyInstaller interface {
	Install(ctx context.Context, dir string, skip bool) error
}

// TerminalLauncher opens a terminal app at a worktree path
type TerminalLauncher interface {
	Open(ctx context.Context, app, dir string) error
}
