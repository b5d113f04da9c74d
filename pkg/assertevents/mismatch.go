// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package assertevents

import "fmt"

// MismatchError names the first field of an admin event that did not match
// its expectation.
type MismatchError struct {
	Field    string
	Expected any
	Actual   any

	// Detail replaces the generated message when set
	Detail string

	cause error
}

func (m *MismatchError) Error() string {
	if m.Detail != "" {
		return m.Detail
	}
	return fmt.Sprintf("%s not equal. expected: %v, actual: %v", m.Field, m.Expected, m.Actual)
}

func (m *MismatchError) Unwrap() error {
	return m.cause
}

func mismatch(field string, expected, actual any) *MismatchError {
	return &MismatchError{Field: field, Expected: expected, Actual: actual}
}
