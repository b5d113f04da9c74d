// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package common holds helpers shared by the CLI commands.
package common

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/stratastor/adminevents/config"
	"github.com/stratastor/adminevents/pkg/assertevents"
	"github.com/stratastor/logger"
)

// NewLogger returns a logger configured from the loaded configuration
func NewLogger(tag string) (logger.Logger, error) {
	return logger.NewTag(config.NewLoggerConfig(config.GetConfig()), tag)
}

// NewAdminEvents returns an asserter for the configured server
func NewAdminEvents() (*assertevents.AdminEvents, error) {
	return assertevents.FromConfig(config.GetConfig())
}

// PrintJSON writes v as indented JSON followed by a newline
func PrintJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
