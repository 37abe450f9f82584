// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package xdg provides helpers to resolve XDG Base Directory paths for vulnscope.
// It falls back to the traditional locations under the user's home directory
// when the XDG environment variables are not set.
package xdg

import (
	"os"
	"path/filepath"
)

const appName = "vulnscope"

// ConfigDir returns the XDG config directory for vulnscope.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/vulnscope when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	return ensure("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for vulnscope.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.local/state/vulnscope when XDG_STATE_HOME is unset.
func StateDir() (string, error) {
	return ensure("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func ensure(env, homeRel string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, homeRel)
	}
	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
