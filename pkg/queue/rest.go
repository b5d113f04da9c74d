// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/stratastor/adminevents/internal/constants"
	"github.com/stratastor/adminevents/pkg/adminevent"
	"github.com/stratastor/adminevents/pkg/errors"
	"github.com/stratastor/adminevents/pkg/httpclient"
	"github.com/stratastor/logger"
)

// RESTQueueConfig names the testing endpoints. Empty fields take the defaults:
// the master realm's testing resource, POST clear-admin-event-queue and
// GET poll-admin-event.
type RESTQueueConfig struct {
	TestingPath string
	ClearPath   string
	PollPath    string
	PollMethod  string
}

// RESTQueue talks to the testing endpoints over HTTP
type RESTQueue struct {
	client *httpclient.Client
	cfg    RESTQueueConfig
	logger logger.Logger
}

// NewRESTQueue returns a queue rooted at cfg.TestingPath on the client's base URL
func NewRESTQueue(client *httpclient.Client, cfg RESTQueueConfig, l logger.Logger) *RESTQueue {
	if cfg.TestingPath == "" {
		cfg.TestingPath = constants.DefaultTestingPath
	}
	if cfg.ClearPath == "" {
		cfg.ClearPath = constants.ClearAdminEventQueue
	}
	if cfg.PollPath == "" {
		cfg.PollPath = constants.PollAdminEvent
	}
	if cfg.PollMethod == "" {
		cfg.PollMethod = http.MethodGet
	}
	cfg.PollMethod = strings.ToUpper(cfg.PollMethod)
	return &RESTQueue{client: client, cfg: cfg, logger: l}
}

func (q *RESTQueue) Clear(ctx context.Context) error {
	path := q.cfg.TestingPath + q.cfg.ClearPath

	resp, err := q.client.NewRequest(httpclient.RequestConfig{
		Path:    path,
		Context: ctx,
	}).Post()
	if err != nil {
		return errors.Wrap(err, errors.QueueClearFailed).WithMetadata("path", path)
	}

	q.logger.Debug("Cleared admin event queue", "status", resp.StatusCode())

	if !isSuccess(resp.StatusCode()) {
		return errors.New(errors.QueueClearFailed, resp.Status()).
			WithMetadata("status", strconv.Itoa(resp.StatusCode())).
			WithMetadata("path", path)
	}
	return nil
}

func (q *RESTQueue) Poll(ctx context.Context) (*adminevent.AdminEvent, error) {
	path := q.cfg.TestingPath + q.cfg.PollPath

	resp, err := q.client.NewRequest(httpclient.RequestConfig{
		Path:    path,
		Headers: map[string]string{"Accept": "application/json"},
		Context: ctx,
	}).Execute(q.cfg.PollMethod)
	if err != nil {
		return nil, errors.Wrap(err, errors.QueuePollFailed).WithMetadata("path", path)
	}

	status := resp.StatusCode()
	if !isSuccess(status) {
		return nil, errors.New(errors.QueueUnexpectedStatus, resp.Status()).
			WithMetadata("status", strconv.Itoa(status)).
			WithMetadata("path", path)
	}

	body := bytes.TrimSpace(resp.Body())
	if status == http.StatusNoContent || len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, nil
	}

	var event adminevent.AdminEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, errors.Wrap(err, errors.QueueEventDecodeFailed).WithMetadata("path", path)
	}
	q.logger.Debug("Polled admin event",
		"operationType", event.OperationType,
		"resourcePath", event.ResourcePath)
	return &event, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
