/*
 * Copyright 2024 Raamsri Kumar <raam@tinkershack.in> and The StrataSTOR Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package httpclient

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stratastor/adminevents/internal/constants"
	"github.com/stratastor/logger"
)

const (
	defaultTimeout         = 10 * time.Second
	defaultMaxIdleConns    = 10
	defaultIdleConnTimeout = 30 * time.Second
	defaultUserAgent       = "AdminEvents-Test"
)

// Client wraps resty.Client with the settings used against testing endpoints
type Client struct {
	*resty.Client
	config ClientConfig
}

// ClientConfig holds configuration values for the HTTP client
type ClientConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	// RetryCount is zero by default: a failed call against the system under
	// test is surfaced to the test as-is.
	RetryCount    int
	RetryWaitTime time.Duration

	TLSConfig     *tls.Config
	AllowInsecure bool

	Headers     map[string]string
	BearerToken string

	// Logger receives resty's own diagnostics when Debug is set.
	Logger logger.Logger
	Debug  bool
}

// NewClientConfig returns a ClientConfig with sensible defaults
func NewClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:   defaultTimeout,
		UserAgent: defaultUserAgent + "/" + constants.AdminEventsVersion,
		Headers:   make(map[string]string),
	}
}

// NewClient creates a new Resty client with provided configuration
func NewClient(config ClientConfig) *Client {
	client := &Client{
		Client: resty.New(),
		config: config,
	}
	client.applyConfig()
	return client
}

func (c *Client) applyConfig() {
	if c.config.Timeout > 0 {
		c.Client.SetTimeout(c.config.Timeout)
	}
	c.Client.SetRetryCount(c.config.RetryCount)
	if c.config.RetryWaitTime > 0 {
		c.Client.SetRetryWaitTime(c.config.RetryWaitTime)
	}
	if c.config.UserAgent != "" {
		c.Client.SetHeader("User-Agent", c.config.UserAgent)
	}
	if c.config.BaseURL != "" {
		c.Client.SetBaseURL(c.config.BaseURL)
	}
	if len(c.config.Headers) > 0 {
		c.Client.SetHeaders(c.config.Headers)
	}
	if c.config.BearerToken != "" {
		c.Client.SetAuthToken(c.config.BearerToken)
	}

	if c.config.Debug && c.config.Logger != nil {
		c.Client.SetDebug(true)
		c.Client.SetLogger(restyLogger{l: c.config.Logger})
	} else {
		c.Client.SetDebug(false)
		c.Client.SetLogger(NoOpLogger{})
	}

	transport := &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		MaxIdleConns:    defaultMaxIdleConns,
		IdleConnTimeout: defaultIdleConnTimeout,
	}
	if c.config.TLSConfig != nil {
		transport.TLSClientConfig = c.config.TLSConfig
	} else if c.config.AllowInsecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	c.Client.SetTransport(transport)
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// restyLogger forwards resty diagnostics to the structured logger
type restyLogger struct {
	l logger.Logger
}

func (r restyLogger) Errorf(format string, v ...interface{}) {
	r.l.Error(fmt.Sprintf(format, v...))
}

func (r restyLogger) Warnf(format string, v ...interface{}) {
	r.l.Warn(fmt.Sprintf(format, v...))
}

func (r restyLogger) Debugf(format string, v ...interface{}) {
	r.l.Debug(fmt.Sprintf(format, v...))
}

// NoOpLogger suppresses all logs
type NoOpLogger struct{}

func (l NoOpLogger) Errorf(format string, v ...interface{}) {}

func (l NoOpLogger) Warnf(format string, v ...interface{}) {}

func (l NoOpLogger) Debugf(format string, v ...interface{}) {}

// RequestConfig holds request-level parameters
type RequestConfig struct {
	Path        string
	Headers     map[string]string
	QueryParams map[string]string
	FormData    map[string]string
	Body        interface{}
	Result      interface{}
	Context     context.Context
}

// Request wraps resty.Request with its configured path
type Request struct {
	request *resty.Request
	config  RequestConfig
}

// NewRequest creates a new request with given configuration
func (c *Client) NewRequest(cfg RequestConfig) *Request {
	req := &Request{
		request: c.R(),
		config:  cfg,
	}

	if cfg.Headers != nil {
		req.request.SetHeaders(cfg.Headers)
	}
	if cfg.QueryParams != nil {
		req.request.SetQueryParams(cfg.QueryParams)
	}
	if cfg.FormData != nil {
		req.request.SetFormData(cfg.FormData)
	}
	if cfg.Body != nil {
		req.request.SetBody(cfg.Body)
	}
	if cfg.Result != nil {
		req.request.SetResult(cfg.Result)
	}
	if cfg.Context != nil {
		req.request.SetContext(cfg.Context)
	}

	return req
}

// Execute performs the HTTP request with the specified method
func (r *Request) Execute(method string) (*resty.Response, error) {
	return r.request.Execute(method, r.config.Path)
}

func (r *Request) Get() (*resty.Response, error) {
	return r.Execute(http.MethodGet)
}

func (r *Request) Post() (*resty.Response, error) {
	return r.Execute(http.MethodPost)
}
