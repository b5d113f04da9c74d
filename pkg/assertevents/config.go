// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package assertevents

import (
	"github.com/stratastor/adminevents/config"
	"github.com/stratastor/adminevents/pkg/credentials"
	"github.com/stratastor/adminevents/pkg/httpclient"
	"github.com/stratastor/adminevents/pkg/queue"
	"github.com/stratastor/logger"
)

// FromConfig builds an asserter against the server named by cfg. The admin
// credential is cfg.Admin.Token when set, otherwise a password grant.
func FromConfig(cfg *config.Config, opts ...Option) (*AdminEvents, error) {
	l, err := logger.NewTag(config.NewLoggerConfig(cfg), "assertevents")
	if err != nil {
		return nil, err
	}

	client := NewHTTPClient(cfg, l)
	if cfg.Assertions.LeftoverCheck {
		opts = append([]Option{WithLeftoverCheck()}, opts...)
	}
	return New(
		queue.NewRESTQueue(client, queue.RESTQueueConfig{
			TestingPath: cfg.Server.TestingPath,
			ClearPath:   cfg.Server.ClearPath,
			PollPath:    cfg.Server.PollPath,
			PollMethod:  cfg.Server.PollMethod,
		}, l),
		CredentialsFromConfig(cfg, client, l),
		l,
		opts...,
	), nil
}

// NewHTTPClient returns a client for cfg's server without retries
func NewHTTPClient(cfg *config.Config, l logger.Logger) *httpclient.Client {
	clientCfg := httpclient.NewClientConfig()
	clientCfg.BaseURL = cfg.Server.BaseURL
	if d := cfg.ServerTimeout(); d > 0 {
		clientCfg.Timeout = d
	}
	clientCfg.AllowInsecure = cfg.Server.AllowInsecure
	clientCfg.Logger = l
	clientCfg.Debug = cfg.Logger.LogLevel == "debug"
	return httpclient.NewClient(clientCfg)
}

func CredentialsFromConfig(cfg *config.Config, client *httpclient.Client, l logger.Logger) credentials.Source {
	if cfg.Admin.Token != "" {
		return credentials.Static(cfg.Admin.Token)
	}
	return credentials.NewPasswordGrant(client, credentials.PasswordGrantConfig{
		Realm:    cfg.Admin.Realm,
		ClientID: cfg.Admin.ClientID,
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
	}, l)
}
