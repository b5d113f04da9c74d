// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package assertevents

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/stratastor/adminevents/pkg/adminevent"
	"github.com/stratastor/adminevents/pkg/errors"
	"github.com/stratastor/adminevents/pkg/repdiff"
	"github.com/stratastor/adminevents/pkg/representations"
	"github.com/stretchr/testify/require"
)

// Expectation is a partial description of the next admin event. It is a value:
// every setter returns a modified copy and leaves the receiver untouched.
type Expectation struct {
	events *AdminEvents

	realmID        string
	operationType  string
	resourcePath   StringMatcher
	err            *string
	authDetails    *adminevent.AuthDetails
	representation repdiff.Template
}

// NewExpectation returns an expectation that is not bound to a queue. It can
// only be checked against events given to it explicitly, and needs explicit
// auth details since there is no credential to derive them from.
func NewExpectation() Expectation {
	return Expectation{}
}

func (e Expectation) RealmID(realmID string) Expectation {
	e.realmID = realmID
	return e
}

// Realm expects the realm id of r
func (e Expectation) Realm(r representations.RealmRepresentation) Expectation {
	if r.ID == nil {
		return e.RealmID("")
	}
	return e.RealmID(*r.ID)
}

func (e Expectation) OperationType(op adminevent.OperationType) Expectation {
	e.operationType = op.String()
	return e
}

// ResourcePath expects exactly path
func (e Expectation) ResourcePath(path string) Expectation {
	return e.ResourcePathMatching(EqualTo(path))
}

func (e Expectation) ResourcePathMatching(m StringMatcher) Expectation {
	e.resourcePath = m
	return e
}

// Error expects a failed action carrying msg. The expected operation type
// gains the error suffix.
func (e Expectation) Error(msg string) Expectation {
	e.err = &msg
	return e
}

// AuthDetails sets who is expected to have acted. An empty clientID is not
// compared.
func (e Expectation) AuthDetails(realmID, clientID, userID string) Expectation {
	e.authDetails = &adminevent.AuthDetails{
		RealmID:  realmID,
		ClientID: clientID,
		UserID:   userID,
	}
	return e
}

// Representation expects the event payload to match t on every property t sets
func (e Expectation) Representation(t repdiff.Template) Expectation {
	e.representation = t
	return e
}

// EffectiveOperationType is the operation type an event must carry, with the
// error suffix applied once when an error is expected.
func (e Expectation) EffectiveOperationType() string {
	return effectiveOperationType(e.operationType, e.err)
}

func effectiveOperationType(op string, err *string) string {
	if err == nil || op == "" || strings.HasSuffix(op, adminevent.ErrorSuffix) {
		return op
	}
	return op + adminevent.ErrorSuffix
}

// AssertEvent polls the next event and fails t unless it matches
func (e Expectation) AssertEvent(t TestingT) *adminevent.AdminEvent {
	t.Helper()
	if e.events == nil {
		require.Fail(t, "Expectation is not bound to an admin event queue")
		return nil
	}
	return e.AssertEventIs(t, e.events.Poll(t))
}

// AssertEventIs fails t unless actual matches. Mismatches fail the assertion;
// credential and payload decode failures are reported as fatal errors.
func (e Expectation) AssertEventIs(t TestingT, actual *adminevent.AdminEvent) *adminevent.AdminEvent {
	t.Helper()
	err := e.Check(contextFor(t), actual)
	if err == nil {
		return actual
	}

	var m *MismatchError
	if stderrors.As(err, &m) {
		require.Fail(t, m.Error(), "actual event: %s", actual)
		return actual
	}
	require.NoError(t, err, "comparing admin event %s", actual)
	return actual
}

// Check compares actual against the expectation. It returns a *MismatchError
// for the first field that differs, in this order: realm id, operation type,
// resource path, error, auth details, representation. Other errors mean the
// comparison itself could not be carried out.
func (e Expectation) Check(ctx context.Context, actual *adminevent.AdminEvent) error {
	if actual == nil {
		return &MismatchError{Field: "event", Detail: "Admin event expected"}
	}

	if e.realmID != actual.RealmID {
		return mismatch("realmId", e.realmID, actual.RealmID)
	}

	if op := e.EffectiveOperationType(); op != actual.OperationType {
		return mismatch("operationType", op, actual.OperationType)
	}

	if e.resourcePath != nil && !e.resourcePath.Matches(actual.ResourcePath) {
		return mismatch("resourcePath", e.resourcePath, actual.ResourcePath)
	}

	if !equalOrBothNil(e.err, actual.Error) {
		return mismatch("error", showOptional(e.err), showOptional(actual.Error))
	}

	if err := e.checkAuthDetails(ctx, actual.AuthDetails); err != nil {
		return err
	}

	return e.checkRepresentation(actual)
}

func (e Expectation) checkAuthDetails(ctx context.Context, actual *adminevent.AuthDetails) error {
	expected := e.authDetails
	if expected == nil {
		if e.events == nil {
			return errors.New(errors.TokenUnavailable, "no credential source to derive default auth details")
		}
		derived, err := e.events.DefaultAuthDetails(ctx)
		if err != nil {
			return err
		}
		expected = &derived
	}

	if actual == nil {
		return &MismatchError{
			Field:    "authDetails",
			Expected: *expected,
			Detail:   "Expected auth details but no auth details were available on actual event",
		}
	}
	if expected.RealmID != actual.RealmID {
		return mismatch("authDetails.realmId", expected.RealmID, actual.RealmID)
	}
	if expected.UserID != actual.UserID {
		return mismatch("authDetails.userId", expected.UserID, actual.UserID)
	}
	if expected.ClientID != "" && expected.ClientID != actual.ClientID {
		return mismatch("authDetails.clientId", expected.ClientID, actual.ClientID)
	}
	return nil
}

func (e Expectation) checkRepresentation(actual *adminevent.AdminEvent) error {
	if e.representation == nil {
		return nil
	}
	if actual.Representation == "" {
		return &MismatchError{
			Field:    "representation",
			Expected: e.representation,
			Detail: fmt.Sprintf("Expected representation %s but no representation was available on actual event",
				e.representation),
		}
	}

	err := e.representation.Match([]byte(actual.Representation))
	if err == nil {
		return nil
	}
	var pm *repdiff.PropertyMismatch
	if stderrors.As(err, &pm) {
		return &MismatchError{
			Field:    "representation." + pm.Property,
			Expected: pm.Expected,
			Actual:   pm.Actual,
			Detail:   pm.Error(),
			cause:    pm,
		}
	}
	return err
}

func (e Expectation) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ExpectedAdminEvent{realmId=%s, operationType=%s", e.realmID, e.EffectiveOperationType())
	if e.resourcePath != nil {
		fmt.Fprintf(&b, ", resourcePath=%s", e.resourcePath)
	}
	if e.err != nil {
		fmt.Fprintf(&b, ", error=%s", *e.err)
	}
	if e.authDetails != nil {
		fmt.Fprintf(&b, ", authDetails={realmId=%s, clientId=%s, userId=%s}",
			e.authDetails.RealmID, e.authDetails.ClientID, e.authDetails.UserID)
	}
	if e.representation != nil {
		fmt.Fprintf(&b, ", representation=%s", e.representation)
	}
	b.WriteString("}")
	return b.String()
}

func equalOrBothNil(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func showOptional(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
