package cli

import (
	"context"

	"github.com/spf13/cobra"

	"issuetree/internal/cli/commands"
)

// Manager owns the assembled command tree
type Manager struct {
	rootCmd *cobra.Command
}

// NewManager builds the CLI: the root create command plus list and clean
func NewManager() *Manager {
	rootCmd := createRootCommand()
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return commands.CreateRun(cmd, args[0])
	}

	rootCmd.AddCommand(commands.ListCommand())
	rootCmd.AddCommand(commands.CleanCommand())

	return &Manager{rootCmd: rootCmd}
}

// Run executes the CLI against args
func (m *Manager) Run(ctx context.Context, args []string) error {
	m.rootCmd.SetArgs(args)
	return m.rootCmd.ExecuteContext(ctx)
}
