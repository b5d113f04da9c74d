// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package adminevent defines the admin event shapes emitted by the identity
// provider under test, as returned by its testing endpoints.
package adminevent

import (
	"fmt"
	"strings"
)

// OperationType is the kind of administrative action recorded by an event
type OperationType string

const (
	Create OperationType = "CREATE"
	Update OperationType = "UPDATE"
	Delete OperationType = "DELETE"
	Action OperationType = "ACTION"
)

// ErrorSuffix is appended to the operation type of events that record a failed action
const ErrorSuffix = "_ERROR"

func (o OperationType) String() string {
	return string(o)
}

// ResourceType names the kind of resource an admin event refers to
type ResourceType string

const (
	ResourceRealm           ResourceType = "REALM"
	ResourceRealmRole       ResourceType = "REALM_ROLE"
	ResourceRealmRoleMap    ResourceType = "REALM_ROLE_MAPPING"
	ResourceUser            ResourceType = "USER"
	ResourceGroup           ResourceType = "GROUP"
	ResourceGroupMembership ResourceType = "GROUP_MEMBERSHIP"
	ResourceClient          ResourceType = "CLIENT"
	ResourceClientRole      ResourceType = "CLIENT_ROLE"
	ResourceClientScope     ResourceType = "CLIENT_SCOPE"
	ResourceComponent       ResourceType = "COMPONENT"
)

// AuthDetails describes who performed an administrative action
type AuthDetails struct {
	RealmID   string `json:"realmId,omitempty"`
	ClientID  string `json:"clientId,omitempty"`
	UserID    string `json:"userId,omitempty"`
	IPAddress string `json:"ipAddress,omitempty"`
}

// AdminEvent is a single administrative action emitted by the system under test.
// Representation holds the JSON text of the resource the action carried, if any.
type AdminEvent struct {
	ID             string       `json:"id,omitempty"`
	Time           int64        `json:"time,omitempty"`
	RealmID        string       `json:"realmId"`
	AuthDetails    *AuthDetails `json:"authDetails,omitempty"`
	OperationType  string       `json:"operationType"`
	ResourceType   string       `json:"resourceType,omitempty"`
	ResourcePath   string       `json:"resourcePath"`
	Representation string       `json:"representation,omitempty"`
	Error          *string      `json:"error,omitempty"`
}

// HasError reports whether the event records a failed action
func (e *AdminEvent) HasError() bool {
	return e != nil && e.Error != nil
}

func (e *AdminEvent) String() string {
	if e == nil {
		return "<nil>"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "AdminEvent{realmId=%s, operationType=%s, resourcePath=%s",
		e.RealmID, e.OperationType, e.ResourcePath)
	if e.ResourceType != "" {
		fmt.Fprintf(&b, ", resourceType=%s", e.ResourceType)
	}
	if e.AuthDetails != nil {
		fmt.Fprintf(&b, ", authDetails={realmId=%s, clientId=%s, userId=%s}",
			e.AuthDetails.RealmID, e.AuthDetails.ClientID, e.AuthDetails.UserID)
	}
	if e.Error != nil {
		fmt.Fprintf(&b, ", error=%s", *e.Error)
	}
	if e.Representation != "" {
		fmt.Fprintf(&b, ", representation=%s", e.Representation)
	}
	b.WriteString("}")
	return b.String()
}
