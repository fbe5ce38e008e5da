// Package config resolves the effective configuration for one invocation:
// built-in defaults, the optional base file, an optional named profile, and
// CLI overrides, merged in that order with later sources winning.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"issuetree/internal/errors"
	"issuetree/internal/validation"
	"issuetree/internal/xdg"
)

// EffectiveConfig is the resolved configuration. Immutable once built;
// built once per run.
type EffectiveConfig struct {
	WorktreeDir  string
	Terminal     string
	InstallDeps  bool
	OpenTerminal bool
	Debug        bool
	Profile      string
}

// FileConfig is one configuration document on disk. Pointer fields
// distinguish "absent" from zero values so partial profiles overlay
// cleanly.
type FileConfig struct {
	WorktreeDir  *string `json:"worktree_dir,omitempty"`
	Terminal     *string `json:"terminal,omitempty"`
	InstallDeps  *bool   `json:"install_deps,omitempty"`
	OpenTerminal *bool   `json:"open_terminal,omitempty"`
}

// Overrides carries CLI flag values. Only explicitly set flags are non-nil.
type Overrides struct {
	WorktreeDir  *string
	Terminal     *string
	InstallDeps  *bool
	OpenTerminal *bool
	Debug        *bool
}

// DefaultConfig returns the built-in defaults. Every field has one so the
// tool is usable with zero configuration.
func DefaultConfig() EffectiveConfig {
	return EffectiveConfig{
		WorktreeDir:  "~/issuetree/worktrees",
		Terminal:     "Terminal",
		InstallDeps:  true,
		OpenTerminal: true,
		Debug:        false,
	}
}

// Resolve builds the effective configuration from the standard config
// directory.
func Resolve(profile string, overrides Overrides) (*EffectiveConfig, error) {
	configDir, err := xdg.ConfigDir()
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfigUnreadable, "cannot determine config directory", err)
	}
	return ResolveFrom(configDir, profile, overrides)
}

// ResolveFrom builds the effective configuration from an explicit config
// directory. The merge itself is pure; all file reads happen first.
func ResolveFrom(configDir, profile string, overrides Overrides) (*EffectiveConfig, error) {
	base, err := loadFileConfig(filepath.Join(configDir, "config.json"))
	if err != nil {
		return nil, err
	}

	var prof *FileConfig
	if profile != "" {
		if err := validation.ProfileName(profile); err != nil {
			return nil, err
		}
		prof, err = loadFileConfig(filepath.Join(configDir, "profiles", profile+".json"))
		if err != nil {
			return nil, err
		}
		if prof == nil {
			return nil, errors.ProfileNotFound(profile)
		}
	}

	eff := DefaultConfig()
	eff.Profile = profile
	applyFile(&eff, base)
	applyFile(&eff, prof)
	applyOverrides(&eff, overrides)

	cleaned, err := validation.Path(expandHome(eff.WorktreeDir))
	if err != nil {
		return nil, err
	}
	eff.WorktreeDir = cleaned

	return &eff, nil
}

// loadFileConfig reads one JSON document. A missing file returns nil (the
// caller decides whether that is an error); an existing but unreadable or
// malformed file always is.
func loadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.ConfigUnreadable(path, err)
	}

	var fc FileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, errors.ConfigMalformed(path, err)
	}
	return &fc, nil
}

// applyFile overlays a file document onto the effective config
func applyFile(eff *EffectiveConfig, fc *FileConfig) {
	if fc == nil {
		return
	}
	if fc.WorktreeDir != nil {
		eff.WorktreeDir = *fc.WorktreeDir
	}
	if fc.Terminal != nil {
		eff.Terminal = *fc.Terminal
	}
	if fc.InstallDeps != nil {
		eff.InstallDeps = *fc.InstallDeps
	}
	if fc.OpenTerminal != nil {
		eff.OpenTerminal = *fc.OpenTerminal
	}
}

// applyOverrides overlays CLI flags; they always take final precedence
func applyOverrides(eff *EffectiveConfig, ov Overrides) {
	if ov.WorktreeDir != nil {
		eff.WorktreeDir = *ov.WorktreeDir
	}
	if ov.Terminal != nil {
		eff.Terminal = *ov.Terminal
	}
	if ov.InstallDeps != nil {
		eff.InstallDeps = *ov.InstallDeps
	}
	if ov.OpenTerminal != nil {
		eff.OpenTerminal = *ov.OpenTerminal
	}
	if ov.Debug != nil {
		eff.Debug = *ov.Debug
	}
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
		}
	}
	return path
}
