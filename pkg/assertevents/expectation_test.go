// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package assertevents

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stratastor/adminevents/pkg/adminevent"
	"github.com/stratastor/adminevents/pkg/credentials"
	"github.com/stratastor/adminevents/pkg/errors"
	"github.com/stratastor/adminevents/pkg/repdiff"
	rep "github.com/stratastor/adminevents/pkg/representations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkMismatch(t *testing.T, e Expectation, actual *adminevent.AdminEvent) *MismatchError {
	t.Helper()
	err := e.Check(context.Background(), actual)
	require.Error(t, err)
	var m *MismatchError
	require.ErrorAs(t, err, &m)
	return m
}

func TestEffectiveOperationType(t *testing.T) {
	base := NewExpectation()

	tests := []struct {
		name string
		e    Expectation
		want string
	}{
		{"NoError", base.OperationType(adminevent.Create), "CREATE"},
		{"OperationThenError", base.OperationType(adminevent.Create).Error("some-error"), "CREATE_ERROR"},
		{"ErrorThenOperation", base.Error("some-error").OperationType(adminevent.Create), "CREATE_ERROR"},
		{"ErrorTwice", base.OperationType(adminevent.Update).Error("a").Error("b"), "UPDATE_ERROR"},
		{"OperationTwice", base.Error("a").OperationType(adminevent.Delete).OperationType(adminevent.Delete), "DELETE_ERROR"},
		{"AlreadySuffixed", base.OperationType(adminevent.OperationType("ACTION_ERROR")).Error("x"), "ACTION_ERROR"},
		{"ErrorWithoutOperation", base.Error("x"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.e.EffectiveOperationType())
			assert.Equal(t, tt.e.EffectiveOperationType(), tt.e.EffectiveOperationType())
		})
	}
}

func TestExpectationIsImmutable(t *testing.T) {
	base := NewExpectation().RealmID("r1").OperationType(adminevent.Create)
	withError := base.Error("boom")

	assert.Equal(t, "CREATE", base.EffectiveOperationType())
	assert.Equal(t, "CREATE_ERROR", withError.EffectiveOperationType())

	other := base.RealmID("r2")
	assert.Contains(t, base.String(), "realmId=r1")
	assert.Contains(t, other.String(), "realmId=r2")
}

func TestCheckOrder(t *testing.T) {
	expected := NewExpectation().
		RealmID("test-realm").
		OperationType(adminevent.Create).
		ResourcePath("users/42").
		AuthDetails("master", "", adminUserID)

	require.NoError(t, expected.Check(context.Background(), userCreated()))

	t.Run("RealmFirst", func(t *testing.T) {
		actual := userCreated()
		actual.RealmID = "other"
		actual.OperationType = "DELETE"
		actual.ResourcePath = "groups/1"

		m := checkMismatch(t, expected, actual)
		assert.Equal(t, "realmId", m.Field)
		assert.Equal(t, "test-realm", m.Expected)
		assert.Equal(t, "other", m.Actual)
	})

	t.Run("OperationTypeBeforePath", func(t *testing.T) {
		actual := userCreated()
		actual.OperationType = "DELETE"
		actual.ResourcePath = "groups/1"

		m := checkMismatch(t, expected, actual)
		assert.Equal(t, "operationType", m.Field)
	})

	t.Run("PathBeforeError", func(t *testing.T) {
		actual := userCreated()
		actual.ResourcePath = "groups/1"
		msg := "unexpected"
		actual.Error = &msg

		m := checkMismatch(t, expected, actual)
		assert.Equal(t, "resourcePath", m.Field)
	})

	t.Run("ErrorBeforeAuth", func(t *testing.T) {
		actual := userCreated()
		msg := "unexpected"
		actual.Error = &msg
		actual.AuthDetails = nil

		m := checkMismatch(t, expected, actual)
		assert.Equal(t, "error", m.Field)
		assert.Equal(t, "<nil>", m.Expected)
		assert.Equal(t, "unexpected", m.Actual)
	})

	t.Run("AuthBeforeRepresentation", func(t *testing.T) {
		actual := userCreated()
		actual.AuthDetails.UserID = "someone-else"

		e := expected.Representation(rep.User(rep.UserRepresentation{Username: rep.String("bob")}))
		m := checkMismatch(t, e, actual)
		assert.Equal(t, "authDetails.userId", m.Field)
	})
}

func TestCheckNilEvent(t *testing.T) {
	m := checkMismatch(t, NewExpectation(), nil)
	assert.Equal(t, "Admin event expected", m.Error())
}

func TestCheckResourcePath(t *testing.T) {
	base := NewExpectation().
		RealmID("test-realm").
		OperationType(adminevent.Create).
		AuthDetails("master", "", adminUserID)

	assert.NoError(t, base.Check(context.Background(), userCreated()), "unset path matches any path")

	for _, m := range []StringMatcher{EqualTo("users/42"), HasPrefix("users/"), HasSuffix("/42"), Contains("ers"), MatchesPattern(`^users/\d+$`), Any()} {
		assert.NoError(t, base.ResourcePathMatching(m).Check(context.Background(), userCreated()), m.String())
	}

	m := checkMismatch(t, base.ResourcePathMatching(HasPrefix("groups/")), userCreated())
	assert.Equal(t, "resourcePath", m.Field)
	assert.Contains(t, m.Error(), `a string starting with "groups/"`)
}

func TestPattern(t *testing.T) {
	m, err := Pattern(`^users/\d+$`)
	require.NoError(t, err)
	assert.True(t, m.Matches("users/42"))
	assert.False(t, m.Matches("users/alice"))
	assert.Equal(t, MatchesPattern(`^users/\d+$`).String(), m.String())

	_, err = Pattern(`users/(`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.OperationFailed))
	assert.Panics(t, func() { MatchesPattern(`users/(`) })
}

func TestCheckError(t *testing.T) {
	actual := userCreated()
	actual.OperationType = "CREATE_ERROR"
	msg := "conflict"
	actual.Error = &msg

	base := NewExpectation().
		RealmID("test-realm").
		OperationType(adminevent.Create).
		AuthDetails("master", "", adminUserID)

	assert.NoError(t, base.Error("conflict").Check(context.Background(), actual))

	m := checkMismatch(t, base.Error("other"), actual)
	assert.Equal(t, "error", m.Field)

	m = checkMismatch(t, base, actual)
	assert.Equal(t, "operationType", m.Field)
}

func TestCheckAuthDetails(t *testing.T) {
	base := NewExpectation().RealmID("test-realm").OperationType(adminevent.Create)

	t.Run("ClientIDOnlyWhenSet", func(t *testing.T) {
		assert.NoError(t, base.AuthDetails("master", "", adminUserID).Check(context.Background(), userCreated()))
		assert.NoError(t, base.AuthDetails("master", "admin-cli", adminUserID).Check(context.Background(), userCreated()))

		m := checkMismatch(t, base.AuthDetails("master", "other-client", adminUserID), userCreated())
		assert.Equal(t, "authDetails.clientId", m.Field)
	})

	t.Run("RealmAlwaysCompared", func(t *testing.T) {
		m := checkMismatch(t, base.AuthDetails("", "", adminUserID), userCreated())
		assert.Equal(t, "authDetails.realmId", m.Field)
	})

	t.Run("MissingOnActual", func(t *testing.T) {
		actual := userCreated()
		actual.AuthDetails = nil
		m := checkMismatch(t, base.AuthDetails("master", "", adminUserID), actual)
		assert.Equal(t, "authDetails", m.Field)
	})

	t.Run("DefaultFromCredential", func(t *testing.T) {
		events, _ := newTestEvents(t)
		e := events.Expect().RealmID("test-realm").OperationType(adminevent.Create)
		assert.NoError(t, e.Check(context.Background(), userCreated()))

		other := New(nil, adminToken(t, "https://idp/realms/other", adminUserID), createTestLogger(t))
		m := checkMismatch(t, other.Expect().RealmID("test-realm").OperationType(adminevent.Create), userCreated())
		assert.Equal(t, "authDetails.realmId", m.Field)
		assert.Equal(t, "other", m.Expected)
	})

	t.Run("MalformedCredentialIsFatal", func(t *testing.T) {
		events := New(nil, credentials.Static("not-a-token"), createTestLogger(t))
		err := events.Expect().RealmID("test-realm").OperationType(adminevent.Create).
			Check(context.Background(), userCreated())
		require.Error(t, err)
		var m *MismatchError
		assert.False(t, stderrors.As(err, &m))
		assert.True(t, errors.Is(err, errors.TokenParseFailed))
	})

	t.Run("UnboundWithoutAuthDetails", func(t *testing.T) {
		err := base.Check(context.Background(), userCreated())
		assert.True(t, errors.Is(err, errors.TokenUnavailable))
	})
}

func TestCheckRepresentation(t *testing.T) {
	base := NewExpectation().
		RealmID("test-realm").
		OperationType(adminevent.Create).
		AuthDetails("master", "", adminUserID)

	t.Run("PartialMatch", func(t *testing.T) {
		for _, actualRep := range []string{
			`{"username":"alice","enabled":true}`,
			`{"username":"alice","enabled":true,"email":"a@example.com"}`,
			`{"username":"alice","enabled":true,"email":"other@example.com","firstName":"A"}`,
		} {
			actual := userCreated()
			actual.Representation = actualRep
			e := base.Representation(rep.User(rep.UserRepresentation{
				Username: rep.String("alice"),
				Enabled:  rep.Bool(true),
			}))
			assert.NoError(t, e.Check(context.Background(), actual), actualRep)
		}
	})

	t.Run("PropertyMismatch", func(t *testing.T) {
		e := base.Representation(rep.User(rep.UserRepresentation{Enabled: rep.Bool(false)}))
		m := checkMismatch(t, e, userCreated())
		assert.Equal(t, "representation.enabled", m.Field)
		assert.Equal(t, false, m.Expected)
		assert.Equal(t, true, m.Actual)
		assert.Equal(t, "Property enabled of UserRepresentation not equal. expected: false, actual: true", m.Error())

		var pm *repdiff.PropertyMismatch
		assert.ErrorAs(t, m, &pm)
	})

	t.Run("MissingPayload", func(t *testing.T) {
		actual := userCreated()
		actual.Representation = ""
		e := base.Representation(rep.User(rep.UserRepresentation{Username: rep.String("alice")}))

		m := checkMismatch(t, e, actual)
		assert.Equal(t, "representation", m.Field)
		assert.Contains(t, m.Error(), "but no representation was available on actual event")
	})

	t.Run("DecodeFailureIsFatal", func(t *testing.T) {
		actual := userCreated()
		actual.Representation = `{"username":`
		e := base.Representation(rep.User(rep.UserRepresentation{Username: rep.String("alice")}))

		err := e.Check(context.Background(), actual)
		require.Error(t, err)
		var m *MismatchError
		assert.False(t, stderrors.As(err, &m))
		assert.True(t, errors.Is(err, errors.RepresentationDecodeFailed))
	})

	t.Run("JSONTemplate", func(t *testing.T) {
		tmpl, err := repdiff.ExpectJSON(`{"username":"alice"}`)
		require.NoError(t, err)
		assert.NoError(t, base.Representation(tmpl).Check(context.Background(), userCreated()))
	})

	t.Run("Realm", func(t *testing.T) {
		e := base.Realm(rep.RealmRepresentation{ID: rep.String("test-realm")})
		assert.NoError(t, e.Check(context.Background(), userCreated()))
	})
}

func TestAssertEventIs(t *testing.T) {
	events, q := newTestEvents(t)

	t.Run("Match", func(t *testing.T) {
		actual := userCreated()
		rt := record(func(rt *recordingT) {
			got := events.Expect().RealmID("test-realm").OperationType(adminevent.Create).AssertEventIs(rt, actual)
			assert.Same(t, actual, got)
		})
		assert.False(t, rt.failed, rt.output())
	})

	t.Run("MismatchFails", func(t *testing.T) {
		rt := record(func(rt *recordingT) {
			events.Expect().RealmID("other").AssertEventIs(rt, userCreated())
		})
		assert.True(t, rt.stopped)
		assert.Contains(t, rt.output(), "realmId not equal. expected: other, actual: test-realm")
	})

	t.Run("PollsWhenNoEventGiven", func(t *testing.T) {
		require.NoError(t, q.Push(userCreated()))
		rt := record(func(rt *recordingT) {
			events.Expect().
				RealmID("test-realm").
				OperationType(adminevent.Create).
				ResourcePath("users/42").
				Representation(rep.User(rep.UserRepresentation{Username: rep.String("alice")})).
				AssertEvent(rt)
		})
		assert.False(t, rt.failed, rt.output())
		assert.Equal(t, 0, q.Len())
	})

	t.Run("UnboundCannotPoll", func(t *testing.T) {
		rt := record(func(rt *recordingT) { NewExpectation().AssertEvent(rt) })
		assert.True(t, rt.stopped)
	})
}
