// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package credentials

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stratastor/adminevents/pkg/errors"
	"github.com/stratastor/adminevents/pkg/httpclient"
	"github.com/stratastor/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestLogger(t *testing.T) logger.Logger {
	l, err := logger.New(logger.Config{LogLevel: "debug"})
	require.NoError(t, err)
	return l
}

func TestStatic(t *testing.T) {
	token, err := Static("abc").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = Static("").Token(context.Background())
	assert.True(t, errors.Is(err, errors.TokenUnavailable))
}

type tokenServer struct {
	requests int
	lifetime time.Duration
	form     map[string]string
}

func (s *tokenServer) start(t *testing.T) *httpclient.Client {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/realms/master/protocol/openid-connect/token", func(c *gin.Context) {
		s.requests++
		s.form = map[string]string{
			"grant_type": c.PostForm("grant_type"),
			"client_id":  c.PostForm("client_id"),
			"username":   c.PostForm("username"),
			"password":   c.PostForm("password"),
		}
		if s.form["password"] != "secret" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_grant"})
			return
		}
		token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Issuer:    "http://" + c.Request.Host + "/realms/master",
			Subject:   "admin-id",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.lifetime)),
		}).SignedString([]byte("test"))
		c.JSON(http.StatusOK, gin.H{
			"access_token": token,
			"expires_in":   int(s.lifetime.Seconds()),
			"token_type":   "Bearer",
		})
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	cfg := httpclient.NewClientConfig()
	cfg.BaseURL = srv.URL
	return httpclient.NewClient(cfg)
}

func TestPasswordGrant_Token(t *testing.T) {
	ts := &tokenServer{lifetime: time.Minute}
	client := ts.start(t)

	p := NewPasswordGrant(client, PasswordGrantConfig{Username: "admin", Password: "secret"}, createTestLogger(t))

	first, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, first)
	assert.Equal(t, map[string]string{
		"grant_type": "password",
		"client_id":  "admin-cli",
		"username":   "admin",
		"password":   "secret",
	}, ts.form)

	second, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, ts.requests, "token should be cached")

	p.Invalidate()
	_, err = p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, ts.requests)
}

func TestPasswordGrant_RefreshesNearExpiry(t *testing.T) {
	ts := &tokenServer{lifetime: 5 * time.Second}
	client := ts.start(t)

	p := NewPasswordGrant(client, PasswordGrantConfig{Username: "admin", Password: "secret"}, createTestLogger(t))

	_, err := p.Token(context.Background())
	require.NoError(t, err)
	_, err = p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, ts.requests)
}

func TestPasswordGrant_Rejected(t *testing.T) {
	ts := &tokenServer{lifetime: time.Minute}
	client := ts.start(t)

	p := NewPasswordGrant(client, PasswordGrantConfig{Username: "admin", Password: "wrong"}, createTestLogger(t))

	_, err := p.Token(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.TokenRequestFailed))
}
