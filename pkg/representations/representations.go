// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package representations holds the resource shapes carried by admin events,
// with a comparison schema per shape. Pointer, slice and map fields left nil
// are not compared.
package representations

import "github.com/stratastor/adminevents/pkg/repdiff"

// String returns a pointer to s
func String(s string) *string { return &s }

// Bool returns a pointer to b
func Bool(b bool) *bool { return &b }

// RealmRepresentation is the realm payload of REALM events
type RealmRepresentation struct {
	ID                  *string `json:"id,omitempty"`
	Realm               *string `json:"realm,omitempty"`
	DisplayName         *string `json:"displayName,omitempty"`
	Enabled             *bool   `json:"enabled,omitempty"`
	SSLRequired         *string `json:"sslRequired,omitempty"`
	RegistrationAllowed *bool   `json:"registrationAllowed,omitempty"`
	LoginTheme          *string `json:"loginTheme,omitempty"`
}

// UserRepresentation is the user payload of USER events
type UserRepresentation struct {
	ID            *string             `json:"id,omitempty"`
	Username      *string             `json:"username,omitempty"`
	FirstName     *string             `json:"firstName,omitempty"`
	LastName      *string             `json:"lastName,omitempty"`
	Email         *string             `json:"email,omitempty"`
	Enabled       *bool               `json:"enabled,omitempty"`
	EmailVerified *bool               `json:"emailVerified,omitempty"`
	Attributes    map[string][]string `json:"attributes,omitempty"`
	RealmRoles    []string            `json:"realmRoles,omitempty"`
	Groups        []string            `json:"groups,omitempty"`
}

// ClientRepresentation is the client payload of CLIENT events
type ClientRepresentation struct {
	ID           *string  `json:"id,omitempty"`
	ClientID     *string  `json:"clientId,omitempty"`
	Name         *string  `json:"name,omitempty"`
	Protocol     *string  `json:"protocol,omitempty"`
	Enabled      *bool    `json:"enabled,omitempty"`
	PublicClient *bool    `json:"publicClient,omitempty"`
	RedirectURIs []string `json:"redirectUris,omitempty"`
	WebOrigins   []string `json:"webOrigins,omitempty"`
}

// RoleRepresentation is a realm or client role
type RoleRepresentation struct {
	ID          *string `json:"id,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Composite   *bool   `json:"composite,omitempty"`
	ClientRole  *bool   `json:"clientRole,omitempty"`
	ContainerID *string `json:"containerId,omitempty"`
}

// GroupRepresentation is the group payload of GROUP events
type GroupRepresentation struct {
	ID         *string             `json:"id,omitempty"`
	Name       *string             `json:"name,omitempty"`
	Path       *string             `json:"path,omitempty"`
	Attributes map[string][]string `json:"attributes,omitempty"`
	RealmRoles []string            `json:"realmRoles,omitempty"`
}

// RealmSchema lists the compared realm properties in check order
var RealmSchema = repdiff.NewSchema("RealmRepresentation",
	repdiff.Ptr("id", func(r RealmRepresentation) *string { return r.ID }),
	repdiff.Ptr("realm", func(r RealmRepresentation) *string { return r.Realm }),
	repdiff.Ptr("displayName", func(r RealmRepresentation) *string { return r.DisplayName }),
	repdiff.Ptr("enabled", func(r RealmRepresentation) *bool { return r.Enabled }),
	repdiff.Ptr("sslRequired", func(r RealmRepresentation) *string { return r.SSLRequired }),
	repdiff.Ptr("registrationAllowed", func(r RealmRepresentation) *bool { return r.RegistrationAllowed }),
	repdiff.Ptr("loginTheme", func(r RealmRepresentation) *string { return r.LoginTheme }),
)

// UserSchema lists the compared user properties in check order
var UserSchema = repdiff.NewSchema("UserRepresentation",
	repdiff.Ptr("id", func(u UserRepresentation) *string { return u.ID }),
	repdiff.Ptr("username", func(u UserRepresentation) *string { return u.Username }),
	repdiff.Ptr("firstName", func(u UserRepresentation) *string { return u.FirstName }),
	repdiff.Ptr("lastName", func(u UserRepresentation) *string { return u.LastName }),
	repdiff.Ptr("email", func(u UserRepresentation) *string { return u.Email }),
	repdiff.Ptr("enabled", func(u UserRepresentation) *bool { return u.Enabled }),
	repdiff.Ptr("emailVerified", func(u UserRepresentation) *bool { return u.EmailVerified }),
	repdiff.MapOfSlices("attributes", func(u UserRepresentation) map[string][]string { return u.Attributes }),
	repdiff.Slice("realmRoles", func(u UserRepresentation) []string { return u.RealmRoles }),
	repdiff.Slice("groups", func(u UserRepresentation) []string { return u.Groups }),
)

// ClientSchema lists the compared client properties in check order
var ClientSchema = repdiff.NewSchema("ClientRepresentation",
	repdiff.Ptr("id", func(c ClientRepresentation) *string { return c.ID }),
	repdiff.Ptr("clientId", func(c ClientRepresentation) *string { return c.ClientID }),
	repdiff.Ptr("name", func(c ClientRepresentation) *string { return c.Name }),
	repdiff.Ptr("protocol", func(c ClientRepresentation) *string { return c.Protocol }),
	repdiff.Ptr("enabled", func(c ClientRepresentation) *bool { return c.Enabled }),
	repdiff.Ptr("publicClient", func(c ClientRepresentation) *bool { return c.PublicClient }),
	repdiff.Slice("redirectUris", func(c ClientRepresentation) []string { return c.RedirectURIs }),
	repdiff.Slice("webOrigins", func(c ClientRepresentation) []string { return c.WebOrigins }),
)

// RoleSchema lists the compared role properties in check order
var RoleSchema = repdiff.NewSchema("RoleRepresentation",
	repdiff.Ptr("id", func(r RoleRepresentation) *string { return r.ID }),
	repdiff.Ptr("name", func(r RoleRepresentation) *string { return r.Name }),
	repdiff.Ptr("description", func(r RoleRepresentation) *string { return r.Description }),
	repdiff.Ptr("composite", func(r RoleRepresentation) *bool { return r.Composite }),
	repdiff.Ptr("clientRole", func(r RoleRepresentation) *bool { return r.ClientRole }),
	repdiff.Ptr("containerId", func(r RoleRepresentation) *string { return r.ContainerID }),
)

// GroupSchema lists the compared group properties in check order
var GroupSchema = repdiff.NewSchema("GroupRepresentation",
	repdiff.Ptr("id", func(g GroupRepresentation) *string { return g.ID }),
	repdiff.Ptr("name", func(g GroupRepresentation) *string { return g.Name }),
	repdiff.Ptr("path", func(g GroupRepresentation) *string { return g.Path }),
	repdiff.MapOfSlices("attributes", func(g GroupRepresentation) map[string][]string { return g.Attributes }),
	repdiff.Slice("realmRoles", func(g GroupRepresentation) []string { return g.RealmRoles }),
)

// Realm expects a realm payload matching every property set on r
func Realm(r RealmRepresentation) repdiff.Template { return repdiff.Expect(RealmSchema, r) }

// User is Realm for user payloads
func User(u UserRepresentation) repdiff.Template { return repdiff.Expect(UserSchema, u) }

// Client is Realm for client payloads
func Client(c ClientRepresentation) repdiff.Template { return repdiff.Expect(ClientSchema, c) }

// Role is Realm for role payloads
func Role(r RoleRepresentation) repdiff.Template { return repdiff.Expect(RoleSchema, r) }

// Group is Realm for group payloads
func Group(g GroupRepresentation) repdiff.Template { return repdiff.Expect(GroupSchema, g) }
