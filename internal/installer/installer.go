// Package installer bootstraps dependencies inside a freshly created
// worktree. Install is best-effort convenience: the worktree is the
// valuable artifact and is never rolled back on install failure.
package installer

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"issuetree/internal/errors"
	"issuetree/internal/logger"
)

// installTimeout bounds a single package-manager run
const installTimeout = 10 * time.Minute

// PackageManager describes one detectable package manager
type PackageManager struct {
	Name     string
	Lockfile string
	Args     []string
}

// DefaultManagers is the fixed probe order. First lockfile hit wins.
var DefaultManagers = []PackageManager{
	{Name: "pnpm", Lockfile: "pnpm-lock.yaml", Args: []string{"install"}},
	{Name: "yarn", Lockfile: "yarn.lock", Args: []string{"install"}},
	{Name: "npm", Lockfile: "package-lock.json", Args: []string{"install"}},
	{Name: "bun", Lockfile: "bun.lockb", Args: []string{"install"}},
}

// Installer detects a package manager and runs its install command
type Installer struct {
	managers []PackageManager
	env      []string
}

// New creates an Installer with the default probe order
func New() *Installer {
	return NewWithManagers(DefaultManagers, os.Environ())
}

// NewWithManagers creates an Installer with an explicit probe order and
// environment, used by configurations that reorder managers and by tests.
func NewWithManagers(managers []PackageManager, env []string) *Installer {
	return &Installer{managers: managers, env: env}
}

// Detect probes the directory for a known lockfile. A bare package.json
// with no lockfile resolves to npm.
func (i *Installer) Detect(dir string) (PackageManager, bool) {
	for _, pm := range i.managers {
		if _, err := os.Stat(filepath.Join(dir, pm.Lockfile)); err == nil {
			return pm, true
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "package.json")); err == nil {
		for _, pm := range i.managers {
			if pm.Name == "npm" {
				return pm, true
			}
		}
	}

	return PackageManager{}, false
}

// Install runs the detected package manager inside the worktree. No
// detectable manager, or skip=true, is a no-op, not an error.
func (i *Installer) Install(ctx context.Context, dir string, skip bool) error {
	if skip {
		logger.WithField("dir", dir).Debug("Dependency install skipped")
		return nil
	}

	pm, ok := i.Detect(dir)
	if !ok {
		logger.WithField("dir", dir).Debug("No package manager detected")
		return nil
	}

	if _, err := exec.LookPath(pm.Name); err != nil {
		return errors.InstallFailed(pm.Name, err)
	}

	ctx, cancel := context.WithTimeout(ctx, installTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, pm.Name, pm.Args...)
	cmd.Dir = dir
	cmd.Env = i.env

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	logger.WithFields(logger.Fields{
		"manager": pm.Name,
		"dir":     dir,
	}).Info("Installing dependencies")

	if err := cmd.Run(); err != nil {
		tail := lastLines(output.String(), 5)
		return errors.WrapWithDetails(errors.ErrInstallFailed, "Dependency install failed", tail, err)
	}

	return nil
}

// lastLines keeps error detail readable when installs dump pages of output
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
