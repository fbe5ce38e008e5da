// Package commands wires the CLI commands to the worktree orchestrator.
package commands

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"issuetree/internal/config"
	"issuetree/internal/errors"
	"issuetree/internal/git"
	"issuetree/internal/installer"
	"issuetree/internal/logger"
	"issuetree/internal/naming"
	"issuetree/internal/operations"
	"issuetree/internal/terminal"
)

// CreateRun handles the root invocation: issuetree <issue-url>
func CreateRun(cmd *cobra.Command, issueURL string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return HandleError(err)
	}

	orch, err := newOrchestrator(cfg)
	if err != nil {
		return HandleError(err)
	}

	result := orch.CreateWorktree(cmd.Context(), issueURL, flagValue(cmd, "branch"))
	printCreateResult(cmd.OutOrStdout(), result)
	if !result.Success {
		return HandleError(result.Err)
	}
	return nil
}

// ListCommand creates the list command
func ListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List worktrees registered for this repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return HandleError(err)
			}

			orch, err := newOrchestrator(cfg)
			if err != nil {
				return HandleError(err)
			}

			statuses, err := orch.WorktreeStatuses(cmd.Context())
			if err != nil {
				return HandleError(err)
			}
			printWorktreeList(cmd.OutOrStdout(), statuses)
			return nil
		},
	}
}

// CleanCommand creates the clean command
func CleanCommand() *cobra.Command {
	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove prunable worktrees and reconcile the registry",
		Long: `Remove worktrees whose directories no longer exist. With --force, remove
all non-main worktrees regardless of prunability; locked worktrees are
always skipped and reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return HandleError(err)
			}
			force, _ := cmd.Flags().GetBool("force")

			orch, err := newOrchestrator(cfg)
			if err != nil {
				return HandleError(err)
			}

			result, err := orch.CleanupWorktrees(cmd.Context(), force)
			if err != nil {
				return HandleError(err)
			}
			printCleanupResult(cmd.OutOrStdout(), result)
			if !result.Success {
				return errors.NewWithDetails(errors.ErrGitCommandFailed, "cleanup incomplete",
					strconv.Itoa(len(result.Skipped))+" worktree(s) skipped")
			}
			return nil
		},
	}
	cleanCmd.Flags().BoolP("force", "f", false, "Remove all non-main worktrees, not just prunable ones")
	return cleanCmd
}

// resolveConfig merges defaults, config files, the selected profile, and
// CLI flags into the effective configuration for this run.
func resolveConfig(cmd *cobra.Command) (*config.EffectiveConfig, error) {
	overrides := config.Overrides{}

	if v := changedFlag(cmd, "output"); v != nil {
		overrides.WorktreeDir = v
	}
	if v := changedFlag(cmd, "terminal"); v != nil {
		overrides.Terminal = v
	}
	if v := changedFlag(cmd, "no-deps"); v != nil && *v == "true" {
		installDeps := false
		overrides.InstallDeps = &installDeps
	}
	if v := changedFlag(cmd, "no-terminal"); v != nil && *v == "true" {
		openTerminal := false
		overrides.OpenTerminal = &openTerminal
	}
	if v := changedFlag(cmd, "debug"); v != nil && *v == "true" {
		debug := true
		overrides.Debug = &debug
	}

	cfg, err := config.Resolve(flagValue(cmd, "profile"), overrides)
	if err != nil {
		return nil, err
	}

	logger.SetDebug(cfg.Debug)
	return cfg, nil
}

// newOrchestrator assembles the pipeline against the repository in the
// current directory.
func newOrchestrator(cfg *config.EffectiveConfig) (*operations.WorktreeOrchestrator, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(errors.ErrInternal, "cannot determine working directory", err)
	}

	gm := git.New(git.ExecContext{RepoDir: cwd})
	if !gm.IsRepository(cwd) {
		return nil, errors.NewWithDetails(errors.ErrGitCommandFailed, "not a git repository", "Path: "+cwd)
	}

	// Assistant absence is normal; naming falls back deterministically.
	var assistant naming.Assistant
	if a, err := naming.NewClaudeAssistant(); err == nil {
		assistant = a
	}

	return operations.NewWorktreeOrchestrator(
		cfg,
		gm,
		naming.New(assistant),
		installer.New(),
		terminal.New(),
	), nil
}

// changedFlag returns the string form of a flag value when the flag exists
// and was set on the command line. list/clean do not carry the create-only
// flags, so missing flags read as unset.
func changedFlag(cmd *cobra.Command, name string) *string {
	f := cmd.Flag(name) // checks local and inherited flags
	if f == nil || !f.Changed {
		return nil
	}
	v := f.Value.String()
	return &v
}

// flagValue returns a flag's string value, or empty when absent
func flagValue(cmd *cobra.Command, name string) string {
	if v := changedFlag(cmd, name); v != nil {
		return *v
	}
	return ""
}
