/*
 * Copyright 2024-2025 Raamsri Kumar <raam@tinkershack.in>
 * Copyright 2024-2025 The StrataSTOR Authors and Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package errors

import "net/http"

const (
	DomainConfig         Domain = "CONFIG"
	DomainQueue          Domain = "QUEUE"
	DomainToken          Domain = "TOKEN"
	DomainRepresentation Domain = "REPRESENTATION"
	DomainServer         Domain = "SERVER"
	DomainMisc           Domain = "MISC"
)

// ErrorCode represents unique error identifiers
type ErrorCode int

// Domain represents the subsystem where the error originated
type Domain string

type AdminEventsError struct {
	Code       ErrorCode `json:"code"`
	Domain     Domain    `json:"domain"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	HTTPStatus int       `json:"-"`

	// Metadata carries request-specific context (status codes, paths, event ids)
	// that is useful in test failure output and logs.
	Metadata map[string]string `json:"metadata,omitempty"`

	cause error
}

// Error code ranges:
// 1000-1099: Configuration errors
// 1100-1199: Event queue errors
// 1200-1299: Credential/token errors
// 1300-1399: Representation errors
// 1400-1499: Fake server errors
// 1600-1699: Misc errors
const (
	// Configuration Errors (1000-1099)
	ConfigNotFound        = 1000 + iota // Config file not found
	ConfigInvalid                       // Invalid config format
	ConfigLoadFailed                    // Failed to load config
	ConfigWriteFailed                   // Failed to write config
	ConfigMarshalFailed                 // Config serialization failed
	ConfigUnmarshalFailed               // Config deserialization failed
)

const (
	// Event Queue Errors (1100-1199)
	QueueClearFailed       = 1100 + iota // Clearing the admin event queue failed
	QueuePollFailed                      // Polling the admin event queue failed
	QueueUnexpectedStatus                // Testing endpoint returned a non-2xx status
	QueueEventDecodeFailed               // Polled event could not be decoded
	QueuePushFailed                      // Enqueueing an event failed
)

const (
	// Credential Errors (1200-1299)
	TokenUnavailable  = 1200 + iota // No admin credential available
	TokenParseFailed                // Credential is not a well-formed compact token
	TokenClaimMissing               // A required claim is absent
	TokenRequestFailed              // Token endpoint request failed
	TokenSignFailed                 // Signing a token failed
)

const (
	// Representation Errors (1300-1399)
	RepresentationDecodeFailed   = 1300 + iota // Payload could not be decoded into the template shape
	RepresentationTemplateInvalid              // Template is not usable for comparison
)

const (
	// Fake Server Errors (1400-1499)
	ServerStart         = 1400 + iota // Failed to start server
	ServerShutdown                    // Error during shutdown
	ServerBadRequest                  // Bad request
	ServerInternalError               // Internal error
	ServerUnauthorized                // Credentials rejected
	ServerUnhealthy                   // Health endpoint reported a failure
)

const (
	// Misc Errors (1600-1699)
	OperationFailed = 1600 + iota // Generic operation failed
)

var errorDefinitions = map[ErrorCode]struct {
	message    string
	domain     Domain
	httpStatus int
}{
	ConfigNotFound:        {"Configuration file not found", DomainConfig, http.StatusNotFound},
	ConfigInvalid:         {"Invalid configuration", DomainConfig, http.StatusBadRequest},
	ConfigLoadFailed:      {"Failed to load configuration", DomainConfig, http.StatusInternalServerError},
	ConfigWriteFailed:     {"Failed to write configuration", DomainConfig, http.StatusInternalServerError},
	ConfigMarshalFailed:   {"Failed to serialize configuration", DomainConfig, http.StatusInternalServerError},
	ConfigUnmarshalFailed: {"Failed to parse configuration", DomainConfig, http.StatusInternalServerError},

	QueueClearFailed:       {"Failed to clear admin event queue", DomainQueue, http.StatusBadGateway},
	QueuePollFailed:        {"Failed to poll admin event queue", DomainQueue, http.StatusBadGateway},
	QueueUnexpectedStatus:  {"Unexpected status from testing endpoint", DomainQueue, http.StatusBadGateway},
	QueueEventDecodeFailed: {"Failed to decode admin event", DomainQueue, http.StatusBadGateway},
	QueuePushFailed:        {"Failed to enqueue admin event", DomainQueue, http.StatusInternalServerError},

	TokenUnavailable:   {"Admin credential unavailable", DomainToken, http.StatusUnauthorized},
	TokenParseFailed:   {"Failed to parse admin credential", DomainToken, http.StatusBadRequest},
	TokenClaimMissing:  {"Required claim missing from admin credential", DomainToken, http.StatusBadRequest},
	TokenRequestFailed: {"Token request failed", DomainToken, http.StatusBadGateway},
	TokenSignFailed:    {"Failed to sign token", DomainToken, http.StatusInternalServerError},

	RepresentationDecodeFailed:    {"Failed to decode event representation", DomainRepresentation, http.StatusUnprocessableEntity},
	RepresentationTemplateInvalid: {"Invalid representation template", DomainRepresentation, http.StatusBadRequest},

	ServerStart:         {"Failed to start the server", DomainServer, http.StatusInternalServerError},
	ServerShutdown:      {"Error during server shutdown", DomainServer, http.StatusInternalServerError},
	ServerBadRequest:    {"Bad request", DomainServer, http.StatusBadRequest},
	ServerInternalError: {"Internal server error", DomainServer, http.StatusInternalServerError},
	ServerUnauthorized:  {"Invalid user credentials", DomainServer, http.StatusUnauthorized},
	ServerUnhealthy:     {"Server is unhealthy", DomainServer, http.StatusServiceUnavailable},

	OperationFailed: {"Operation failed", DomainMisc, http.StatusInternalServerError},
}
