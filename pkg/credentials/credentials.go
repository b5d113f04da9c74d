// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package credentials provides the admin credential of the current test
// session.
package credentials

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stratastor/adminevents/internal/constants"
	"github.com/stratastor/adminevents/pkg/errors"
	"github.com/stratastor/adminevents/pkg/httpclient"
	"github.com/stratastor/logger"
)

// refreshSkew renews cached tokens this long before they expire
const refreshSkew = 10 * time.Second

// Source returns the current admin access token
type Source interface {
	Token(ctx context.Context) (string, error)
}

// Static is a fixed token
type Static string

func (s Static) Token(ctx context.Context) (string, error) {
	if s == "" {
		return "", errors.New(errors.TokenUnavailable, "no static token configured")
	}
	return string(s), nil
}

// PasswordGrantConfig holds the resource-owner password grant parameters
type PasswordGrantConfig struct {
	Realm    string
	ClientID string
	Username string
	Password string
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// PasswordGrant obtains tokens from the realm's token endpoint and caches them
// until shortly before they expire.
type PasswordGrant struct {
	client *httpclient.Client
	cfg    PasswordGrantConfig
	logger logger.Logger
	now    func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

func NewPasswordGrant(client *httpclient.Client, cfg PasswordGrantConfig, l logger.Logger) *PasswordGrant {
	if cfg.Realm == "" {
		cfg.Realm = constants.MasterRealm
	}
	if cfg.ClientID == "" {
		cfg.ClientID = constants.AdminCLIClient
	}
	return &PasswordGrant{client: client, cfg: cfg, logger: l, now: time.Now}
}

func (p *PasswordGrant) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && p.now().Add(refreshSkew).Before(p.expires) {
		return p.token, nil
	}

	token, expires, err := p.request(ctx)
	if err != nil {
		return "", err
	}
	p.token, p.expires = token, expires
	return token, nil
}

// Invalidate drops the cached token
func (p *PasswordGrant) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = ""
	p.expires = time.Time{}
}

func (p *PasswordGrant) request(ctx context.Context) (string, time.Time, error) {
	path := fmt.Sprintf(constants.TokenEndpointFormat, p.cfg.Realm)

	var result tokenResponse
	resp, err := p.client.NewRequest(httpclient.RequestConfig{
		Path: path,
		FormData: map[string]string{
			"grant_type": "password",
			"client_id":  p.cfg.ClientID,
			"username":   p.cfg.Username,
			"password":   p.cfg.Password,
		},
		Result:  &result,
		Context: ctx,
	}).Post()
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, errors.TokenRequestFailed).WithMetadata("path", path)
	}
	if !resp.IsSuccess() {
		return "", time.Time{}, errors.New(errors.TokenRequestFailed, resp.Status()).
			WithMetadata("status", strconv.Itoa(resp.StatusCode())).
			WithMetadata("realm", p.cfg.Realm)
	}
	if result.AccessToken == "" {
		return "", time.Time{}, errors.New(errors.TokenUnavailable, "token endpoint returned no access_token")
	}

	expires := p.expiry(result)
	p.logger.Debug("Obtained admin token",
		"realm", p.cfg.Realm,
		"clientId", p.cfg.ClientID,
		"expires", expires)
	return result.AccessToken, expires, nil
}

// expiry prefers the token's exp claim and falls back to expires_in
func (p *PasswordGrant) expiry(result tokenResponse) time.Time {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(result.AccessToken, claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return p.now().Add(time.Duration(result.ExpiresIn) * time.Second)
}
