// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package repdiff compares representation payloads partially: only the
// properties set on an expected value are checked against the actual value.
//
// A Schema is built once per representation shape and lists, for every
// property, how to tell whether the expected value set it and how to compare
// it. Unset properties are skipped, so the actual value may carry any number of
// additional properties.
package repdiff

import (
	"fmt"
	"maps"
	"slices"
)

// Field describes one comparable property of T
type Field[T any] struct {
	Name string

	// IsSet reports whether the expected value specifies this property
	IsSet func(expected T) bool

	// Equal compares the property of expected and actual
	Equal func(expected, actual T) bool

	// Show renders the property value for failure messages
	Show func(v T) any
}

// Schema is an ordered set of fields for a representation shape
type Schema[T any] struct {
	name   string
	fields []Field[T]
}

// PropertyMismatch reports the first property that differs
type PropertyMismatch struct {
	Shape    string
	Property string
	Expected any
	Actual   any
}

func (m *PropertyMismatch) Error() string {
	return fmt.Sprintf("Property %s of %s not equal. expected: %v, actual: %v",
		m.Property, m.Shape, m.Expected, m.Actual)
}

// NewSchema builds a schema. Fields are compared in the order given.
func NewSchema[T any](name string, fields ...Field[T]) *Schema[T] {
	return &Schema[T]{name: name, fields: fields}
}

// Name returns the shape name used in mismatch messages
func (s *Schema[T]) Name() string {
	return s.name
}

// Fields returns the names of all fields in comparison order
func (s *Schema[T]) Fields() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Compare returns the first mismatching property set on expected, or nil.
func (s *Schema[T]) Compare(expected, actual T) error {
	for _, f := range s.fields {
		if !f.IsSet(expected) {
			continue
		}
		if !f.Equal(expected, actual) {
			return s.mismatch(f, expected, actual)
		}
	}
	return nil
}

// Diff returns every mismatching property set on expected.
func (s *Schema[T]) Diff(expected, actual T) []PropertyMismatch {
	var out []PropertyMismatch
	for _, f := range s.fields {
		if f.IsSet(expected) && !f.Equal(expected, actual) {
			out = append(out, *s.mismatch(f, expected, actual))
		}
	}
	return out
}

func (s *Schema[T]) mismatch(f Field[T], expected, actual T) *PropertyMismatch {
	return &PropertyMismatch{
		Shape:    s.name,
		Property: f.Name,
		Expected: f.Show(expected),
		Actual:   f.Show(actual),
	}
}

// Value is a comparable property; the zero value means unset.
func Value[T any, V comparable](name string, get func(T) V) Field[T] {
	var zero V
	return Field[T]{
		Name:  name,
		IsSet: func(e T) bool { return get(e) != zero },
		Equal: func(e, a T) bool { return get(e) == get(a) },
		Show:  func(v T) any { return get(v) },
	}
}

// Ptr is an optional comparable property; nil means unset.
func Ptr[T any, V comparable](name string, get func(T) *V) Field[T] {
	return Field[T]{
		Name:  name,
		IsSet: func(e T) bool { return get(e) != nil },
		Equal: func(e, a T) bool {
			ev, av := get(e), get(a)
			if ev == nil || av == nil {
				return ev == av
			}
			return *ev == *av
		},
		Show: func(v T) any {
			if p := get(v); p != nil {
				return *p
			}
			return nil
		},
	}
}

// Slice is an ordered list property; nil means unset, an empty non-nil slice
// expects an empty list.
func Slice[T any, E comparable](name string, get func(T) []E) Field[T] {
	return Field[T]{
		Name:  name,
		IsSet: func(e T) bool { return get(e) != nil },
		Equal: func(e, a T) bool {
			ev, av := get(e), get(a)
			if (ev == nil) != (av == nil) {
				return false
			}
			return slices.Equal(ev, av)
		},
		Show:  func(v T) any { return get(v) },
	}
}

// Map is a map property with comparable values; nil means unset, an empty
// non-nil map expects an empty map.
func Map[T any, K comparable, V comparable](name string, get func(T) map[K]V) Field[T] {
	return Field[T]{
		Name:  name,
		IsSet: func(e T) bool { return get(e) != nil },
		Equal: func(e, a T) bool {
			ev, av := get(e), get(a)
			if (ev == nil) != (av == nil) {
				return false
			}
			return maps.Equal(ev, av)
		},
		Show:  func(v T) any { return get(v) },
	}
}

// MapOfSlices is a multi-valued map property such as attributes; nil means unset.
func MapOfSlices[T any, K comparable, E comparable](name string, get func(T) map[K][]E) Field[T] {
	return Field[T]{
		Name:  name,
		IsSet: func(e T) bool { return get(e) != nil },
		Equal: func(e, a T) bool {
			ev, av := get(e), get(a)
			if (ev == nil) != (av == nil) {
				return false
			}
			return maps.EqualFunc(ev, av, func(x, y []E) bool { return slices.Equal(x, y) })
		},
		Show: func(v T) any { return get(v) },
	}
}

// Custom builds a field from explicit functions.
func Custom[T any](name string, isSet func(T) bool, equal func(e, a T) bool, show func(T) any) Field[T] {
	return Field[T]{Name: name, IsSet: isSet, Equal: equal, Show: show}
}
