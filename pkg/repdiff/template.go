// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package repdiff

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/stratastor/adminevents/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// Template is an expected representation. Match decodes a raw payload into the
// template's shape and compares it. A *PropertyMismatch means the payload
// differs; any other error means the payload could not be decoded.
type Template interface {
	Match(raw []byte) error
	String() string
}

type typedTemplate[T any] struct {
	schema   *Schema[T]
	expected T
}

// Expect returns a template comparing payloads decoded into T against expected
// using schema.
func Expect[T any](schema *Schema[T], expected T) Template {
	return typedTemplate[T]{schema: schema, expected: expected}
}

func (t typedTemplate[T]) Match(raw []byte) error {
	var actual T
	if err := json.Unmarshal(raw, &actual); err != nil {
		return errors.Wrap(err, errors.RepresentationDecodeFailed).
			WithMetadata("shape", t.schema.Name())
	}
	return t.schema.Compare(t.expected, actual)
}

func (t typedTemplate[T]) String() string {
	data, err := json.Marshal(t.expected)
	if err != nil {
		return fmt.Sprintf("%s%+v", t.schema.Name(), t.expected)
	}
	return fmt.Sprintf("%s%s", t.schema.Name(), data)
}

type jsonTemplate struct {
	raw      string
	expected map[string]any
}

// ExpectJSON returns a template from a JSON object. Only its non-null
// top-level keys are compared; nested values must match exactly.
func ExpectJSON(object string) (Template, error) {
	var expected map[string]any
	dec := json.NewDecoder(bytes.NewReader([]byte(object)))
	dec.UseNumber()
	if err := dec.Decode(&expected); err != nil {
		return nil, errors.Wrap(err, errors.RepresentationTemplateInvalid)
	}
	if expected == nil {
		return nil, errors.New(errors.RepresentationTemplateInvalid, "template must be a JSON object")
	}
	return jsonTemplate{raw: object, expected: expected}, nil
}

func (t jsonTemplate) Match(raw []byte) error {
	var actual map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&actual); err != nil {
		return errors.Wrap(err, errors.RepresentationDecodeFailed).
			WithMetadata("shape", "object")
	}

	keys := make([]string, 0, len(t.expected))
	for k := range t.expected {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		ev := t.expected[k]
		if ev == nil {
			continue
		}
		av := actual[k]
		if !jsonEqual(ev, av) {
			return &PropertyMismatch{Shape: "object", Property: k, Expected: ev, Actual: av}
		}
	}
	return nil
}

// jsonEqual compares decoded JSON values. Numbers are equal by value, so 2,
// 2.0 and 2e0 match.
func jsonEqual(e, a any) bool {
	switch ev := e.(type) {
	case json.Number:
		av, ok := a.(json.Number)
		if !ok {
			return false
		}
		if ei, err := ev.Int64(); err == nil {
			if ai, err := av.Int64(); err == nil {
				return ei == ai
			}
		}
		ef, err1 := ev.Float64()
		af, err2 := av.Float64()
		if err1 != nil || err2 != nil {
			return ev == av
		}
		return ef == af
	case map[string]any:
		av, ok := a.(map[string]any)
		if !ok || len(ev) != len(av) {
			return false
		}
		for k, v := range ev {
			w, found := av[k]
			if !found || !jsonEqual(v, w) {
				return false
			}
		}
		return true
	case []any:
		av, ok := a.([]any)
		if !ok || len(ev) != len(av) {
			return false
		}
		for i := range ev {
			if !jsonEqual(ev[i], av[i]) {
				return false
			}
		}
		return true
	default:
		return assert.ObjectsAreEqual(e, a)
	}
}

func (t jsonTemplate) String() string {
	return t.raw
}
