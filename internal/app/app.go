// Package app wires the CLI together for one invocation.
package app

import (
	"context"

	"issuetree/internal/cli"
)

// App represents the main application
type App struct {
	CLI *cli.Manager
}

// New creates a new application instance
func New() *App {
	return &App{
		CLI: cli.NewManager(),
	}
}

// Run starts the application
func (a *App) Run(args []string) error {
	return a.RunWithContext(context.Background(), args)
}

// RunWithContext starts the application with a context for cancellation
func (a *App) RunWithContext(ctx context.Context, args []string) error {
	return a.CLI.Run(ctx, args)
}
