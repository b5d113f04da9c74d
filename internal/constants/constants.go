// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package constants

// Build-time variables set via ldflags
var (
	Version   = "v0.0.1-dev" // Set via -X flag during build
	CommitSHA = "unknown"    // Set via -X flag during build
	BuildTime = "unknown"    // Set via -X flag during build
)

const (
	AdminEventsVersion = "v0.0.1"

	// config
	ConfigFileName = "adminevents.yml"
	ConfigEnvVar   = "ADMINEVENTS_CONFIG"
	EnvPrefix      = "ADMINEVENTS"

	// testing endpoints of the identity provider under test
	DefaultTestingPath   = "/realms/master/testing"
	ClearAdminEventQueue = "/clear-admin-event-queue"
	PollAdminEvent       = "/poll-admin-event"
	OnAdminEvent         = "/on-admin-event"

	DefaultHealthPath = "/health"

	// TokenEndpointFormat is relative to the server base URL; %s is the realm name
	TokenEndpointFormat = "/realms/%s/protocol/openid-connect/token"

	MasterRealm    = "master"
	AdminCLIClient = "admin-cli"
)
