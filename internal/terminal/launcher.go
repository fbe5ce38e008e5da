// Package terminal activates a terminal application at a worktree path.
// Launch failures are always advisory; they never change the exit code of
// the worktree operation that triggered them.
package terminal

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"issuetree/internal/errors"
	"issuetree/internal/logger"
)

// Launcher opens terminal windows
type Launcher struct {
	goos string
	env  []string
}

// New creates a Launcher for the current platform
func New() *Launcher {
	return &Launcher{goos: runtime.GOOS, env: os.Environ()}
}

// Open activates app with a shell at dir. On macOS this drives the app via
// osascript; elsewhere it falls back to $TERMINAL.
func (l *Launcher) Open(ctx context.Context, app, dir string) error {
	logger.WithFields(logger.Fields{"app": app, "dir": dir}).Debug("Opening terminal")

	if l.goos == "darwin" {
		return l.openDarwin(ctx, app, dir)
	}
	return l.openFallback(ctx, dir)
}

func (l *Launcher) openDarwin(ctx context.Context, app, dir string) error {
	script := appleScriptFor(app, dir)
	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	cmd.Env = l.env

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return errors.WrapWithDetails(errors.ErrTerminalLaunchFailed, "Failed to open terminal", msg, err)
		}
		return errors.TerminalLaunchFailed(app, err)
	}
	return nil
}

func (l *Launcher) openFallback(ctx context.Context, dir string) error {
	term := ""
	for _, kv := range l.env {
		if strings.HasPrefix(kv, "TERMINAL=") {
			term = strings.TrimPrefix(kv, "TERMINAL=")
		}
	}
	if term == "" {
		return errors.New(errors.ErrTerminalLaunchFailed, "no terminal configured ($TERMINAL unset)")
	}

	cmd := exec.CommandContext(ctx, term)
	cmd.Dir = dir
	cmd.Env = l.env
	if err := cmd.Start(); err != nil {
		return errors.TerminalLaunchFailed(term, err)
	}
	// Detach; the terminal outlives this process.
	go func() { _ = cmd.Wait() }()
	return nil
}

// appleScriptFor builds the activation script for the supported apps.
// Unknown apps get the generic Terminal treatment under their own name.
func appleScriptFor(app, dir string) string {
	quoted := strings.ReplaceAll(dir, `"`, `\"`)

	switch strings.ToLower(app) {
	case "iterm", "iterm2", "iterm.app":
		return fmt.Sprintf(`tell application "iTerm"
	create window with default profile
	tell current session of current window to write text "cd \"%s\""
	activate
end tell`, quoted)
	default:
		name := app
		if name == "" {
			name = "Terminal"
		}
		return fmt.Sprintf(`tell application "%s"
	do script "cd \"%s\""
	activate
end tell`, name, quoted)
	}
}
