/*
 * Copyright 2024-2025 Raamsri Kumar <raam@tinkershack.in>
 * Copyright 2024-2025 The StrataSTOR Authors and Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package fakeidp

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stratastor/adminevents/pkg/errors"
	"github.com/stratastor/logger"
)

// LoggerMiddleware logs every request except health checks, tagged with a
// request id taken from X-Request-Id or generated.
func LoggerMiddleware(l logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		if path == "/health" {
			c.Next()
			return
		}

		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header("X-Request-Id", requestID)
		c.Set("request_id", requestID)

		c.Next()

		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", c.Writer.Status()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			slog.String("ip", c.ClientIP()),
		}

		if len(c.Errors) > 0 {
			for _, err := range c.Errors {
				if ae, ok := err.Err.(*errors.AdminEventsError); ok {
					attrs = append(attrs,
						slog.Int("error_code", int(ae.Code)),
						slog.String("error_domain", string(ae.Domain)),
						slog.String("error_details", ae.Details),
					)
					for k, v := range ae.Metadata {
						attrs = append(attrs, slog.String("error_metadata_"+k, v))
					}
				} else {
					attrs = append(attrs, slog.String("error", err.Error()))
				}
			}

			switch {
			case c.Writer.Status() >= 500:
				l.Error("Server Error", logAttrs(attrs)...)
			default:
				l.Warn("Client Error", logAttrs(attrs)...)
			}
			return
		}

		l.Debug("Request", logAttrs(attrs)...)
	}
}

// ErrorHandler renders the last handler error as JSON
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last()

		status := http.StatusInternalServerError
		if ae, ok := err.Err.(*errors.AdminEventsError); ok {
			if ae.HTTPStatus != 0 {
				status = ae.HTTPStatus
			}
			c.JSON(status, ae)
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
	}
}

// APIError records err on the context and stops the handler chain
func APIError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func logAttrs(attrs []slog.Attr) []interface{} {
	args := make([]interface{}, len(attrs)*2)
	for i, attr := range attrs {
		args[i*2] = attr.Key
		args[i*2+1] = attr.Value.Any()
	}
	return args
}
