// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package fakeidp

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stratastor/adminevents/pkg/adminevent"
	"github.com/stratastor/adminevents/pkg/errors"
)

func (s *Server) clearAdminEventQueue(c *gin.Context) {
	if err := s.queue.Clear(c.Request.Context()); err != nil {
		APIError(c, errors.Wrap(err, errors.ServerInternalError))
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) pollAdminEvent(c *gin.Context) {
	event, err := s.queue.Poll(c.Request.Context())
	if err != nil {
		APIError(c, errors.Wrap(err, errors.ServerInternalError))
		return
	}
	if event == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, event)
}

// onAdminEvent enqueues an event. Missing id, time and realm id are filled in.
func (s *Server) onAdminEvent(c *gin.Context) {
	var event adminevent.AdminEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		APIError(c, errors.Wrap(err, errors.ServerBadRequest))
		return
	}
	if event.OperationType == "" {
		APIError(c, errors.New(errors.ServerBadRequest, "operationType is required"))
		return
	}

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Time == 0 {
		event.Time = time.Now().UnixMilli()
	}
	if event.RealmID == "" {
		event.RealmID = c.Param("realm")
	}

	if err := s.queue.Push(&event); err != nil {
		APIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": event.ID})
}

type tokenForm struct {
	GrantType string `form:"grant_type"`
	ClientID  string `form:"client_id"`
	Username  string `form:"username"`
	Password  string `form:"password"`
}

// token implements the resource-owner password grant for the configured user
func (s *Server) token(c *gin.Context) {
	var form tokenForm
	if err := c.ShouldBind(&form); err != nil {
		APIError(c, errors.Wrap(err, errors.ServerBadRequest))
		return
	}
	if form.GrantType != "password" {
		APIError(c, errors.New(errors.ServerBadRequest, "unsupported_grant_type").
			WithMetadata("grant_type", form.GrantType))
		return
	}
	if form.Username != s.cfg.Username || form.Password != s.cfg.Password {
		APIError(c, errors.New(errors.ServerUnauthorized, "invalid_grant").
			WithMetadata("username", form.Username))
		return
	}

	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    issuer(c),
			Subject:   s.cfg.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
		AuthorizedParty:   form.ClientID,
		PreferredUsername: form.Username,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.SigningKey))
	if err != nil {
		APIError(c, errors.Wrap(err, errors.TokenSignFailed))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": signed,
		"expires_in":   int(s.cfg.TokenTTL.Seconds()),
		"token_type":   "Bearer",
	})
}

type accessClaims struct {
	jwt.RegisteredClaims
	AuthorizedParty   string `json:"azp,omitempty"`
	PreferredUsername string `json:"preferred_username,omitempty"`
}

// issuer builds the realm's issuer URL from the request's scheme and host
func issuer(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return fmt.Sprintf("%s://%s/realms/%s", scheme, c.Request.Host, c.Param("realm"))
}
