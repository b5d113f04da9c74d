// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package health

import (
	"context"
	"strconv"

	"github.com/stratastor/adminevents/internal/constants"
	"github.com/stratastor/adminevents/pkg/errors"
	"github.com/stratastor/adminevents/pkg/httpclient"
	"github.com/stratastor/logger"
)

type HealthChecker struct {
	Client *httpclient.Client
	Logger logger.Logger
	Path   string
}

// NewHealthChecker probes path on the client's base URL. An empty path uses
// DefaultHealthPath.
func NewHealthChecker(client *httpclient.Client, path string, l logger.Logger) *HealthChecker {
	if path == "" {
		path = constants.DefaultHealthPath
	}
	return &HealthChecker{
		Client: client,
		Logger: l,
		Path:   path,
	}
}

// CheckHealth returns the response body of a successful probe
func (hc *HealthChecker) CheckHealth(ctx context.Context) (string, error) {
	resp, err := hc.Client.NewRequest(httpclient.RequestConfig{
		Path:    hc.Path,
		Context: ctx,
	}).Get()
	if err != nil {
		return "", errors.Wrap(err, errors.ServerUnhealthy).
			WithMetadata("url", hc.Client.BaseURL()+hc.Path)
	}

	hc.Logger.Debug("Health probe", "path", hc.Path, "status", resp.StatusCode())

	if !resp.IsSuccess() {
		return "", errors.New(errors.ServerUnhealthy, resp.String()).
			WithMetadata("status", strconv.Itoa(resp.StatusCode())).
			WithMetadata("url", hc.Client.BaseURL()+hc.Path)
	}
	return resp.String(), nil
}
