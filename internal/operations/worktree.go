// Package operations contains the worktree orchestrator: the create
// pipeline and the list/cleanup pipelines over the git bridge.
package operations

import (
	"context"
	"fmt"
	"path/filepath"

	"issuetree/internal/config"
	"issuetree/internal/errors"
	"issuetree/internal/git"
	"issuetree/internal/issue"
	"issuetree/internal/logger"
	"issuetree/internal/validation"
)

// Step names one stage of the create pipeline
type Step string

const (
	StepValidating        Step = "Validating"
	StepResolvingIssue    Step = "ResolvingIssue"
	StepNaming            Step = "Naming"
	StepCreatingWorktree  Step = "CreatingWorktree"
	StepInstallingDeps    Step = "InstallingDeps"
	StepLaunchingTerminal Step = "LaunchingTerminal"
)

// WorktreePlan is computed before any mutating git operation
type WorktreePlan struct {
	BranchName string
	TargetPath string
	BaseRef    string
}

// Advisory is a captured best-effort failure that did not change the
// overall outcome.
type Advisory struct {
	Step Step
	Err  error
}

// WorktreeResult reports one create invocation, success or partial
// failure. StepsCompleted records every step reached, including a failed
// one, so a human can clean up by hand.
type WorktreeResult struct {
	Success        bool
	Path           string
	BranchName     string
	Issue          *issue.Reference
	StepsCompleted []Step
	Err            error
	Advisories     []Advisory
}

// AdvisoryFor returns the advisory recorded for a step, if any
func (r *WorktreeResult) AdvisoryFor(step Step) (Advisory, bool) {
	for _, a := range r.Advisories {
		if a.Step == step {
			return a, true
		}
	}
	return Advisory{}, false
}

// SkippedWorktree is one cleanup candidate that was not removed
type SkippedWorktree struct {
	Path   string
	Reason string
}

// CleanupResult reports one cleanup invocation
type CleanupResult struct {
	Removed []string
	Skipped []SkippedWorktree
	Success bool
}

// WorktreeOrchestrator sequences issue resolution, naming, worktree
// creation, dependency install, and terminal launch. One pipeline per
// invocation, no retries, no concurrency.
type WorktreeOrchestrator struct {
	cfg       *config.EffectiveConfig
	git       GitBridge
	namer     BranchNamer
	installer DependencyInstaller
	terminal  TerminalLauncher
}

// NewWorktreeOrchestrator creates a new orchestrator
func NewWorktreeOrchestrator(cfg *config.EffectiveConfig, gb GitBridge, namer BranchNamer, installer DependencyInstaller, terminal TerminalLauncher) *WorktreeOrchestrator {
	return &WorktreeOrchestrator{
		cfg:       cfg,
		git:       gb,
		namer:     namer,
		installer: installer,
		terminal:  terminal,
	}
}

// CreateWorktree runs the create pipeline for one issue URL. It always
// returns a well-formed result; best-effort failures are collected as
// advisories instead of aborting.
func (o *WorktreeOrchestrator) CreateWorktree(ctx context.Context, issueURL, branchOverride string) *WorktreeResult {
	result := &WorktreeResult{}
	step := func(s Step) {
		result.StepsCompleted = append(result.StepsCompleted, s)
	}
	advisory := func(s Step, err error) {
		result.Advisories = append(result.Advisories, Advisory{Step: s, Err: err})
	}

	// Validating: malformed URL fails before any git command runs.
	step(StepValidating)
	ref, err := issue.ParseURL(issueURL)
	if err != nil {
		result.Err = err
		return result
	}
	result.Issue = ref

	// ResolvingIssue: failure is non-fatal, naming falls back.
	step(StepResolvingIssue)
	details, err := o.git.FetchIssue(ctx, ref)
	if err != nil {
		logger.WithError(err).WithField("issue", ref.String()).Warn("Issue fetch failed, continuing without details")
		advisory(StepResolvingIssue, err)
		details = nil
	}

	step(StepNaming)
	branch := o.namer.DeriveName(ctx, branchOverride, details, ref)
	if branch == "" {
		branch = fmt.Sprintf("issue-%d", ref.Number)
	}
	result.BranchName = branch

	plan, err := o.buildPlan(ctx, ref, branch)
	if err != nil {
		result.Err = err
		return result
	}
	result.Path = plan.TargetPath

	logger.WithFields(logger.Fields{
		"issue":  ref.String(),
		"branch": plan.BranchName,
		"path":   plan.TargetPath,
		"base":   plan.BaseRef,
	}).Info("Creating worktree")

	// CreatingWorktree: the single fatal step after validation.
	step(StepCreatingWorktree)
	if err := o.git.AddWorktree(ctx, plan.BranchName, plan.TargetPath, plan.BaseRef); err != nil {
		result.Err = err
		return result
	}

	// InstallingDeps: advisory; the worktree is the valuable artifact.
	step(StepInstallingDeps)
	if err := o.installer.Install(ctx, plan.TargetPath, !o.cfg.InstallDeps); err != nil {
		logger.WithError(err).Warn("Dependency install failed")
		advisory(StepInstallingDeps, err)
	}

	// LaunchingTerminal: advisory.
	step(StepLaunchingTerminal)
	if o.cfg.OpenTerminal {
		if err := o.terminal.Open(ctx, o.cfg.Terminal, plan.TargetPath); err != nil {
			logger.WithError(err).Warn("Terminal launch failed")
			advisory(StepLaunchingTerminal, err)
		}
	}

	result.Success = true
	return result
}

// buildPlan computes branch, target path, and base ref. The target path
// must be distinct from every registered worktree path; a collision is an
// error, never a silent rename.
func (o *WorktreeOrchestrator) buildPlan(ctx context.Context, ref *issue.Reference, branch string) (*WorktreePlan, error) {
	if err := validation.BranchName(branch); err != nil {
		return nil, err
	}

	targetPath := filepath.Join(o.cfg.WorktreeDir, fmt.Sprintf("%s-%s", ref.Repo, branch))

	records, err := o.git.ListWorktrees(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.Path == targetPath {
			return nil, errors.WorktreeExists(targetPath)
		}
	}

	baseRef, err := o.git.DefaultBranch(ctx)
	if err != nil || baseRef == "" {
		logger.WithError(err).Debug("Default branch lookup failed, using main")
		baseRef = "main"
	}

	return &WorktreePlan{
		BranchName: branch,
		TargetPath: targetPath,
		BaseRef:    baseRef,
	}, nil
}

// ListWorktrees exposes the registry view for display. The registry is
// re-read on every call; nothing is cached between invocations.
func (o *WorktreeOrchestrator) ListWorktrees(ctx context.Context) ([]git.WorktreeRecord, error) {
	return o.git.ListWorktrees(ctx)
}

// WorktreeStatus pairs a registry record with its live dirtiness
type WorktreeStatus struct {
	git.WorktreeRecord
	Dirty bool
}

// WorktreeStatuses returns the registry view annotated with an uncommitted-
// changes check per live worktree. A failed check degrades to clean rather
// than failing the listing.
func (o *WorktreeOrchestrator) WorktreeStatuses(ctx context.Context) ([]WorktreeStatus, error) {
	records, err := o.git.ListWorktrees(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]WorktreeStatus, 0, len(records))
	for _, rec := range records {
		st := WorktreeStatus{WorktreeRecord: rec}
		if !rec.IsBare && !rec.IsPrunable {
			dirty, err := o.git.HasUncommittedChanges(ctx, rec.Path)
			if err != nil {
				logger.WithError(err).WithField("path", rec.Path).Debug("Dirty check failed")
			} else {
				st.Dirty = dirty
			}
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}

// CleanupWorktrees removes prunable worktrees, or with force all non-main
// worktrees except locked ones. Per-item failures are isolated into
// Skipped; one bad worktree never aborts cleanup of the rest.
func (o *WorktreeOrchestrator) CleanupWorktrees(ctx context.Context, force bool) (*CleanupResult, error) {
	records, err := o.git.ListWorktrees(ctx)
	if err != nil {
		return nil, err
	}

	result := &CleanupResult{}
	for _, rec := range records {
		if rec.IsMain || rec.IsBare {
			continue
		}

		if !force && !rec.IsPrunable {
			result.Skipped = append(result.Skipped, SkippedWorktree{Path: rec.Path, Reason: "not prunable"})
			continue
		}

		if rec.IsLocked {
			reason := "locked"
			if rec.LockReason != "" {
				reason = "locked: " + rec.LockReason
			}
			result.Skipped = append(result.Skipped, SkippedWorktree{Path: rec.Path, Reason: reason})
			continue
		}

		if err := o.git.RemoveWorktree(ctx, rec.Path, force); err != nil {
			// A prunable entry's directory is already gone; git refuses to
			// "remove" it but the final prune reconciles the registry.
			if rec.IsPrunable && errors.HasCode(err, errors.ErrWorktreeNotFound) {
				result.Removed = append(result.Removed, rec.Path)
				continue
			}
			logger.WithError(err).WithField("path", rec.Path).Warn("Failed to remove worktree")
			result.Skipped = append(result.Skipped, SkippedWorktree{Path: rec.Path, Reason: err.Error()})
			continue
		}
		result.Removed = append(result.Removed, rec.Path)
	}

	if err := o.git.PruneWorktrees(ctx); err != nil {
		logger.WithError(err).Warn("Worktree prune failed")
	}

	result.Success = len(result.Skipped) == 0
	return result, nil
}
