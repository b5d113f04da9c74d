// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package adminevent

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stratastor/adminevents/pkg/errors"
)

// ParseCredential reads the registered claims of a compact signed token.
// The signature is not verified; the token is the test session's own credential.
func ParseCredential(token string) (*jwt.RegisteredClaims, error) {
	if token == "" {
		return nil, errors.New(errors.TokenUnavailable, "empty credential")
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, errors.Wrap(err, errors.TokenParseFailed)
	}
	return claims, nil
}

// RealmFromIssuer returns the realm id encoded in an issuer URL, i.e. the
// segment after the last '/'.
func RealmFromIssuer(issuer string) string {
	return issuer[strings.LastIndex(issuer, "/")+1:]
}

// AuthDetailsFromCredential derives who is acting from the admin credential:
// realm id from the issuer and user id from the subject. The client id is left
// empty so it is not compared. A token without an issuer is rejected; a missing
// subject yields an empty user id.
func AuthDetailsFromCredential(token string) (AuthDetails, error) {
	claims, err := ParseCredential(token)
	if err != nil {
		return AuthDetails{}, err
	}
	if claims.Issuer == "" {
		return AuthDetails{}, errors.New(errors.TokenClaimMissing, "iss").
			WithMetadata("claim", "iss")
	}

	return AuthDetails{
		RealmID: RealmFromIssuer(claims.Issuer),
		UserID:  claims.Subject,
	}, nil
}
