// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for texelcons configuration.

package config

import (
	"os"
	"path/filepath"
)

const (
	configFileName = "config.json"
	logFileName    = "texelcons.log"
)

func configRoot() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "texelcons"), nil
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, configFileName), nil
}

// LogPath resolves where log output goes for cfg loaded from configPath.
func (c Config) LogPath(configPath string) string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(filepath.Dir(configPath), logFileName)
}
