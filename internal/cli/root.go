package cli

import (
	"github.com/spf13/cobra"
)

// Version is the build version, overridden at link time
var Version = "dev"

// createRootCommand creates the root command with global flags
func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "issuetree <issue-url>",
		Short: "Turn a GitHub issue into a ready-to-use git worktree",
		Long: `issuetree provisions an isolated git worktree from a GitHub issue URL:
it fetches the issue, derives a branch name, creates the worktree off the
default branch, installs dependencies, and opens a terminal there.

It also lists existing worktrees and retires the ones whose directories
are gone.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
	}

	rootCmd.PersistentFlags().StringP("profile", "p", "", "Named configuration profile")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.Flags().StringP("branch", "b", "", "Branch name (overrides derived name)")
	rootCmd.Flags().StringP("output", "o", "", "Base directory for worktrees")
	rootCmd.Flags().StringP("terminal", "t", "", "Terminal app to open")
	rootCmd.Flags().Bool("no-deps", false, "Skip dependency install")
	rootCmd.Flags().Bool("no-terminal", false, "Do not open a terminal")
	rootCmd.Flags().BoolP("version", "v", false, "Print version")

	return rootCmd
}
