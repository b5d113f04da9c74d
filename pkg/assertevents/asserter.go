// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package assertevents asserts on the admin events recorded by the identity
// provider under test.
//
// Each test starts from an empty queue:
//
//	events := assertevents.New(q, creds, l)
//
//	func TestCreateUser(t *testing.T) {
//		events.Setup(t)
//		// ... create a user through the admin API ...
//		events.Expect().
//			RealmID(realmID).
//			OperationType(adminevent.Create).
//			ResourcePath("users/" + id).
//			Representation(representations.User(representations.UserRepresentation{
//				Username: representations.String("alice"),
//			})).
//			AssertEvent(t)
//		events.AssertEmpty(t)
//	}
//
// Events are compared field by field and the first difference fails the test.
// The representation payload is compared partially: only properties set on the
// expected value are checked.
package assertevents

import (
	"context"
	"testing"

	"github.com/stratastor/adminevents/pkg/adminevent"
	"github.com/stratastor/adminevents/pkg/credentials"
	"github.com/stratastor/adminevents/pkg/errors"
	"github.com/stratastor/adminevents/pkg/queue"
	"github.com/stratastor/adminevents/pkg/repdiff"
	"github.com/stratastor/logger"
	"github.com/stretchr/testify/require"
)

// TestingT is the subset of *testing.T used by assertions
type TestingT interface {
	require.TestingT
	Helper()
	Cleanup(func())
}

// AdminEvents polls and asserts on one admin event queue
type AdminEvents struct {
	queue         queue.Queue
	credentials   credentials.Source
	logger        logger.Logger
	leftoverCheck bool
}

type Option func(*AdminEvents)

// WithLeftoverCheck makes Setup register a cleanup that fails the test when
// events are still queued after it finished. Off by default: events may still
// be in flight when a test returns.
func WithLeftoverCheck() Option {
	return func(a *AdminEvents) {
		a.leftoverCheck = true
	}
}

// New returns an asserter over q. creds supplies the admin credential the
// default auth details are derived from.
func New(q queue.Queue, creds credentials.Source, l logger.Logger, opts ...Option) *AdminEvents {
	a := &AdminEvents{
		queue:       q,
		credentials: creds,
		logger:      l,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Setup clears the queue before a test. A failed clear stops the test.
func (a *AdminEvents) Setup(t TestingT) {
	t.Helper()
	err := a.queue.Clear(contextFor(t))
	require.NoError(t, err, "clear-admin-event-queue")

	if a.leftoverCheck {
		t.Cleanup(func() {
			event, err := a.queue.Poll(context.Background())
			if err != nil {
				t.Errorf("Polling for leftover admin events: %v", err)
				return
			}
			if event != nil {
				t.Errorf("Leftover admin event after test: %s", event)
			}
		})
	}
}

// Wrap returns fn preceded by Setup, for use with t.Run
func (a *AdminEvents) Wrap(fn func(t *testing.T)) func(t *testing.T) {
	return func(t *testing.T) {
		a.Setup(t)
		fn(t)
	}
}

// Poll returns the next event and fails t if the queue is empty
func (a *AdminEvents) Poll(t TestingT) *adminevent.AdminEvent {
	t.Helper()
	event, err := a.queue.Poll(contextFor(t))
	require.NoError(t, err, "poll-admin-event")
	if event == nil {
		require.Fail(t, "Admin event expected")
		return nil
	}
	a.logger.Debug("Polled admin event", "event", event.String())
	return event
}

// AssertEmpty fails t if an event is queued
func (a *AdminEvents) AssertEmpty(t TestingT) {
	t.Helper()
	event, err := a.queue.Poll(contextFor(t))
	require.NoError(t, err, "poll-admin-event")
	if event != nil {
		require.Fail(t, "Empty admin event queue expected, but there is "+event.String())
	}
}

// Next polls the next event without asserting. It returns nil when the queue
// is empty.
func (a *AdminEvents) Next(ctx context.Context) (*adminevent.AdminEvent, error) {
	return a.queue.Poll(ctx)
}

// Clear empties the queue without a test context
func (a *AdminEvents) Clear(ctx context.Context) error {
	return a.queue.Clear(ctx)
}

// Expect starts an expectation bound to this queue
func (a *AdminEvents) Expect() Expectation {
	return Expectation{events: a}
}

// AssertEvent polls the next event and asserts its realm, operation type,
// resource path and, when rep is not nil, its representation.
func (a *AdminEvents) AssertEvent(t TestingT, realmID string, op adminevent.OperationType, resourcePath string, rep repdiff.Template) *adminevent.AdminEvent {
	t.Helper()
	return a.AssertEventMatching(t, realmID, op, EqualTo(resourcePath), rep)
}

// AssertEventMatching is AssertEvent with a resource path predicate
func (a *AdminEvents) AssertEventMatching(t TestingT, realmID string, op adminevent.OperationType, resourcePath StringMatcher, rep repdiff.Template) *adminevent.AdminEvent {
	t.Helper()
	return a.Expect().
		RealmID(realmID).
		OperationType(op).
		ResourcePathMatching(resourcePath).
		Representation(rep).
		AssertEvent(t)
}

// DefaultAuthDetails derives the expected actor from the current admin
// credential: the realm named by its issuer and the user named by its subject.
func (a *AdminEvents) DefaultAuthDetails(ctx context.Context) (adminevent.AuthDetails, error) {
	if a.credentials == nil {
		return adminevent.AuthDetails{}, errors.New(errors.TokenUnavailable, "no credential source configured")
	}
	token, err := a.credentials.Token(ctx)
	if err != nil {
		return adminevent.AuthDetails{}, err
	}
	return adminevent.AuthDetailsFromCredential(token)
}

// contextFor returns the test's context when t carries one
func contextFor(t require.TestingT) context.Context {
	if c, ok := t.(interface{ Context() context.Context }); ok {
		if ctx := c.Context(); ctx != nil {
			return ctx
		}
	}
	return context.Background()
}
