// Package git is the command-execution boundary around git and gh. It is the
// only package permitted to spawn external processes for repository state;
// everything else consumes it through the operations interfaces so tests can
// substitute fakes.
package git

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"issuetree/internal/errors"
	"issuetree/internal/logger"
)

// ExecContext carries the ambient process state the bridge is allowed to
// touch. Passing it explicitly keeps the orchestrator testable.
type ExecContext struct {
	RepoDir string
	Env     []string
	Stderr  io.Writer
}

// Manager wraps git/gh invocation for a single repository
type Manager struct {
	execCtx ExecContext
}

// WorktreeRecord is one entry of the git worktree registry. Derived,
// read-only view of git's own on-disk state.
type WorktreeRecord struct {
	Path        string
	Branch      string
	HeadCommit  string
	IsMain      bool
	IsBare      bool
	IsLocked    bool
	IsPrunable  bool
	LockReason  string
	PruneReason string
}

// New creates a new git manager for the repository at execCtx.RepoDir
func New(execCtx ExecContext) *Manager {
	if execCtx.RepoDir == "" {
		if cwd, err := os.Getwd(); err == nil {
			execCtx.RepoDir = cwd
		}
	}
	if execCtx.Env == nil {
		execCtx.Env = os.Environ()
	}
	if execCtx.Stderr == nil {
		execCtx.Stderr = io.Discard
	}
	return &Manager{execCtx: execCtx}
}

// RepoDir returns the repository directory the bridge operates on
func (m *Manager) RepoDir() string {
	return m.execCtx.RepoDir
}

// run executes a git subcommand against the repository and returns its
// stdout. stderr is captured separately for error classification.
func (m *Manager) run(ctx context.Context, args ...string) (string, string, error) {
	full := append([]string{"-C", m.execCtx.RepoDir}, args...)
	cmd := exec.CommandContext(ctx, "git", full...)
	cmd.Env = m.execCtx.Env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.WithFields(logger.Fields{"args": args}).Debug("Running git")
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// AddWorktree creates a new worktree on a new branch off baseRef. The
// operation is a single git call; git guarantees no partial worktree is
// left behind on failure.
func (m *Manager) AddWorktree(ctx context.Context, branch, path, baseRef string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.InvalidPath(path, err.Error())
	}

	if _, err := os.Stat(absPath); err == nil {
		return errors.WorktreeExists(absPath)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return errors.Wrap(errors.ErrGitCommandFailed, "failed to create worktree parent directory", err)
	}

	args := []string{"worktree", "add", "-b", branch, absPath, baseRef}
	_, stderr, err := m.run(ctx, args...)
	if err != nil {
		return classifyAddError(stderr, branch, absPath, baseRef, err)
	}
	return nil
}

// ListWorktrees parses the machine-readable worktree listing. Git's own
// prunability determination is authoritative; nothing is re-derived here.
func (m *Manager) ListWorktrees(ctx context.Context) ([]WorktreeRecord, error) {
	stdout, stderr, err := m.run(ctx, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, errors.GitCommandFailed([]string{"worktree", "list"}, strings.TrimSpace(stderr), err)
	}
	return parseWorktreeList(stdout)
}

// RemoveWorktree removes a single worktree. Without force git refuses
// dirty or locked trees; force forwards --force.
func (m *Manager) RemoveWorktree(ctx context.Context, path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)

	_, stderr, err := m.run(ctx, args...)
	if err != nil {
		return classifyRemoveError(stderr, path, err)
	}
	return nil
}

// PruneWorktrees reconciles git's registry with worktree directories that
// no longer exist on disk.
func (m *Manager) PruneWorktrees(ctx context.Context) error {
	_, stderr, err := m.run(ctx, "worktree", "prune")
	if err != nil {
		return errors.GitCommandFailed([]string{"worktree", "prune"}, strings.TrimSpace(stderr), err)
	}
	return nil
}

// DefaultBranch returns the repository's default branch. Resolution order:
// origin/HEAD, then common default names, then the first local branch.
func (m *Manager) DefaultBranch(ctx context.Context) (string, error) {
	repo, err := gogit.PlainOpen(m.execCtx.RepoDir)
	if err != nil {
		return "", errors.Wrap(errors.ErrGitCommandFailed, "failed to open repository", err)
	}

	originHead := plumbing.NewRemoteReferenceName("origin", "HEAD")
	if ref, err := repo.Reference(originHead, true); err == nil {
		if ref.Target().IsBranch() {
			return ref.Target().Short(), nil
		}
		// Resolved reference: name gives the branch only on symbolic refs,
		// fall back to scanning branches below.
	}

	branches, err := repo.Branches()
	if err != nil {
		return "", errors.Wrap(errors.ErrGitCommandFailed, "failed to list branches", err)
	}
	var names []string
	_ = branches.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})

	for _, candidate := range []string{"main", "master", "develop"} {
		for _, name := range names {
			if name == candidate {
				return candidate, nil
			}
		}
	}
	if len(names) > 0 {
		return names[0], nil
	}
	return "main", nil
}

// HasUncommittedChanges reports whether the worktree at path is dirty
func (m *Manager) HasUncommittedChanges(ctx context.Context, path string) (bool, error) {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return false, errors.Wrap(errors.ErrGitCommandFailed, "failed to open worktree", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return false, errors.Wrap(errors.ErrGitCommandFailed, "failed to get worktree", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return false, errors.Wrap(errors.ErrGitCommandFailed, "failed to get worktree status", err)
	}

	return !status.IsClean(), nil
}

// IsRepository checks if the path is a valid git repository
func (m *Manager) IsRepository(path string) bool {
	_, err := gogit.PlainOpen(path)
	return err == nil
}

// classifyAddError maps git worktree add failures onto the error taxonomy
func classifyAddError(stderr, branch, path, baseRef string, cause error) error {
	msg := strings.TrimSpace(stderr)
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "already checked out") || strings.Contains(lower, "already used by worktree"):
		return errors.BranchInUse(branch)
	case strings.Contains(lower, "already exists") && strings.Contains(msg, "'"+branch+"'"):
		return errors.BranchInUse(branch)
	case strings.Contains(lower, "already exists"):
		return errors.WorktreeExists(path)
	case strings.Contains(lower, "invalid reference") || strings.Contains(lower, "not a valid ref") || strings.Contains(lower, "not a valid object name"):
		return errors.BaseRefNotFound(baseRef)
	default:
		return errors.GitCommandFailed([]string{"worktree", "add"}, msg, cause)
	}
}

// classifyRemoveError maps git worktree remove failures onto the taxonomy
func classifyRemoveError(stderr, path string, cause error) error {
	msg := strings.TrimSpace(stderr)
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "contains modified or untracked files"):
		return errors.NewWithDetails(errors.ErrWorktreeNotClean, "worktree has uncommitted changes",
			fmt.Sprintf("Path: %s", path))
	case strings.Contains(lower, "locked"):
		return errors.NewWithDetails(errors.ErrWorktreeLocked, "worktree is locked",
			fmt.Sprintf("Path: %s", path))
	case strings.Contains(lower, "is not a working tree"):
		return errors.NewWithDetails(errors.ErrWorktreeNotFound, "not a worktree",
			fmt.Sprintf("Path: %s", path))
	default:
		return errors.GitCommandFailed([]string{"worktree", "remove"}, msg, cause)
	}
}

// parseWorktreeList parses the output of git worktree list --porcelain.
// Attribute lines (locked, prunable) may carry an optional reason.
func parseWorktreeList(output string) ([]WorktreeRecord, error) {
	var records []WorktreeRecord

	var current WorktreeRecord
	var open bool
	flush := func() {
		if open {
			records = append(records, current)
		}
		current = WorktreeRecord{}
		open = false
	}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			flush()
			continue
		}

		key := line
		value := ""
		if idx := strings.IndexByte(line, ' '); idx >= 0 {
			key = line[:idx]
			value = line[idx+1:]
		}

		switch key {
		case "worktree":
			flush()
			current.Path = value
			open = true
		case "HEAD":
			current.HeadCommit = value
		case "branch":
			current.Branch = strings.TrimPrefix(value, "refs/heads/")
		case "bare":
			current.IsBare = true
		case "detached":
			// Detached HEAD worktrees keep an empty branch.
		case "locked":
			current.IsLocked = true
			current.LockReason = value
		case "prunable":
			current.IsPrunable = true
			current.PruneReason = value
		}
	}
	flush()

	// The first listed worktree is the main one.
	for i := range records {
		if i == 0 && !records[i].IsBare {
			records[i].IsMain = true
		}
	}

	return records, nil
}
