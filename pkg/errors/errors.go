// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// New creates an AdminEventsError for the given code. Unknown codes fall back
// to a generic miscellaneous error.
func New(code ErrorCode, details string) *AdminEventsError {
	def, ok := errorDefinitions[code]
	if !ok {
		return &AdminEventsError{
			Code:       code,
			Domain:     DomainMisc,
			Message:    "Unknown error",
			Details:    details,
			HTTPStatus: http.StatusInternalServerError,
		}
	}
	return &AdminEventsError{
		Code:       code,
		Domain:     def.domain,
		Message:    def.message,
		Details:    details,
		HTTPStatus: def.httpStatus,
	}
}

// Wrap attaches a code to an underlying error. The cause stays reachable via
// errors.Unwrap / errors.Is.
func Wrap(err error, code ErrorCode) *AdminEventsError {
	if err == nil {
		return nil
	}
	e := New(code, err.Error())
	e.cause = err
	return e
}

// WithMetadata adds a key/value pair and returns the receiver for chaining.
func (e *AdminEventsError) WithMetadata(key, value string) *AdminEventsError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

func (e *AdminEventsError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("Error %d [%s]: %s - %s", e.Code, e.Domain, e.Message, e.Details)
	}
	return fmt.Sprintf("Error %d [%s]: %s", e.Code, e.Domain, e.Message)
}

func (e *AdminEventsError) Unwrap() error {
	return e.cause
}

// Is reports whether any error in err's chain is an AdminEventsError with the given code.
func Is(err error, code ErrorCode) bool {
	var ae *AdminEventsError
	for err != nil {
		if stderrors.As(err, &ae) {
			if ae.Code == code {
				return true
			}
			err = ae.cause
			continue
		}
		return false
	}
	return false
}
