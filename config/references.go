// Copyright 2024 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"

	"github.com/stratastor/adminevents/internal/constants"
)

const configDirName = ".adminevents"

// GetConfigDir returns the per-user configuration directory. It falls back to
// the working directory when no home directory is known.
func GetConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return configDirName
	}
	return filepath.Join(homeDir, configDirName)
}

// DefaultConfigPath is where the config file is looked up when neither a path
// nor the environment variable names one.
func DefaultConfigPath() string {
	return filepath.Join(GetConfigDir(), constants.ConfigFileName)
}

// resolveConfigPath applies the lookup precedence: explicit path, then the
// environment variable, then the default location.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if envPath := os.Getenv(constants.ConfigEnvVar); envPath != "" {
		return envPath
	}
	return DefaultConfigPath()
}
