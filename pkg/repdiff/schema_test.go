// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package repdiff

import (
	stderrors "errors"
	"testing"

	"github.com/stratastor/adminevents/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	A    *string             `json:"a,omitempty"`
	B    *string             `json:"b,omitempty"`
	C    *bool               `json:"c,omitempty"`
	N    int                 `json:"n,omitempty"`
	Tags []string            `json:"tags,omitempty"`
	Meta map[string]string   `json:"meta,omitempty"`
	Attr map[string][]string `json:"attr,omitempty"`
}

var sampleSchema = NewSchema("Sample",
	Ptr("a", func(s sample) *string { return s.A }),
	Ptr("b", func(s sample) *string { return s.B }),
	Ptr("c", func(s sample) *bool { return s.C }),
	Value("n", func(s sample) int { return s.N }),
	Slice("tags", func(s sample) []string { return s.Tags }),
	Map("meta", func(s sample) map[string]string { return s.Meta }),
	MapOfSlices("attr", func(s sample) map[string][]string { return s.Attr }),
)

func str(s string) *string { return &s }
func boolean(b bool) *bool { return &b }

func TestCompareOnlySetProperties(t *testing.T) {
	expected := sample{A: str("x"), C: boolean(true)}

	for _, b := range []*string{nil, str("anything"), str("")} {
		actual := sample{A: str("x"), B: b, C: boolean(true), N: 7, Tags: []string{"t"}}
		assert.NoError(t, sampleSchema.Compare(expected, actual))
	}
}

func TestCompareEmptyExpectedMatchesAnything(t *testing.T) {
	assert.NoError(t, sampleSchema.Compare(sample{}, sample{A: str("y"), N: 3}))
}

func TestCompareFirstMismatch(t *testing.T) {
	expected := sample{A: str("x"), C: boolean(true)}
	actual := sample{A: str("z"), C: boolean(false)}

	err := sampleSchema.Compare(expected, actual)
	require.Error(t, err)

	var m *PropertyMismatch
	require.ErrorAs(t, err, &m)
	assert.Equal(t, "a", m.Property)
	assert.Equal(t, "Sample", m.Shape)
	assert.Equal(t, "x", m.Expected)
	assert.Equal(t, "z", m.Actual)
	assert.Equal(t, "Property a of Sample not equal. expected: x, actual: z", err.Error())
}

func TestCompareExpectedSetActualMissing(t *testing.T) {
	err := sampleSchema.Compare(sample{B: str("b")}, sample{})
	var m *PropertyMismatch
	require.ErrorAs(t, err, &m)
	assert.Equal(t, "b", m.Property)
	assert.Nil(t, m.Actual)
}

func TestDiffReportsAll(t *testing.T) {
	expected := sample{A: str("x"), C: boolean(true), N: 1, Tags: []string{"a", "b"}}
	actual := sample{A: str("z"), C: boolean(true), N: 2, Tags: []string{"b", "a"}}

	diff := sampleSchema.Diff(expected, actual)
	props := make([]string, len(diff))
	for i, d := range diff {
		props[i] = d.Property
	}
	assert.Equal(t, []string{"a", "n", "tags"}, props)
}

func TestCollectionFields(t *testing.T) {
	t.Run("EmptySliceExpectsEmpty", func(t *testing.T) {
		assert.NoError(t, sampleSchema.Compare(sample{Tags: []string{}}, sample{Tags: []string{}}))
		assert.Error(t, sampleSchema.Compare(sample{Tags: []string{}}, sample{Tags: []string{"x"}}))
	})

	t.Run("EmptyExpectsPresent", func(t *testing.T) {
		err := sampleSchema.Compare(sample{Tags: []string{}}, sample{})
		var m *PropertyMismatch
		require.ErrorAs(t, err, &m)
		assert.Equal(t, "tags", m.Property)

		require.ErrorAs(t, sampleSchema.Compare(sample{Meta: map[string]string{}}, sample{}), &m)
		assert.Equal(t, "meta", m.Property)

		require.ErrorAs(t, sampleSchema.Compare(sample{Attr: map[string][]string{}}, sample{}), &m)
		assert.Equal(t, "attr", m.Property)
	})

	t.Run("Map", func(t *testing.T) {
		e := sample{Meta: map[string]string{"k": "v"}}
		assert.NoError(t, sampleSchema.Compare(e, sample{Meta: map[string]string{"k": "v"}}))
		assert.Error(t, sampleSchema.Compare(e, sample{Meta: map[string]string{"k": "w"}}))
	})

	t.Run("MapOfSlices", func(t *testing.T) {
		e := sample{Attr: map[string][]string{"dept": {"eng"}}}
		assert.NoError(t, sampleSchema.Compare(e, sample{Attr: map[string][]string{"dept": {"eng"}}}))
		assert.Error(t, sampleSchema.Compare(e, sample{Attr: map[string][]string{"dept": {"ops"}}}))
	})
}

func TestExpectJSONNumbers(t *testing.T) {
	tmpl, err := ExpectJSON(`{"count":2,"ratio":0.5,"limits":{"max":10},"ports":[80,443]}`)
	require.NoError(t, err)

	for _, payload := range []string{
		`{"count":2,"ratio":0.5,"limits":{"max":10},"ports":[80,443]}`,
		`{"count":2.0,"ratio":5e-1,"limits":{"max":1e1},"ports":[80.0,443]}`,
		`{"count":2e0,"ratio":0.50,"limits":{"max":10.0},"ports":[8e1,4.43e2]}`,
	} {
		assert.NoError(t, tmpl.Match([]byte(payload)), payload)
	}

	err = tmpl.Match([]byte(`{"count":3,"ratio":0.5,"limits":{"max":10},"ports":[80,443]}`))
	var m *PropertyMismatch
	require.ErrorAs(t, err, &m)
	assert.Equal(t, "count", m.Property)

	err = tmpl.Match([]byte(`{"count":"2","ratio":0.5,"limits":{"max":10},"ports":[80,443]}`))
	require.ErrorAs(t, err, &m)
	assert.Equal(t, "count", m.Property)

	err = tmpl.Match([]byte(`{"count":2,"ratio":0.5,"limits":{"max":10,"min":1},"ports":[80,443]}`))
	require.ErrorAs(t, err, &m)
	assert.Equal(t, "limits", m.Property)
}

func TestSchemaFields(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", "n", "tags", "meta", "attr"}, sampleSchema.Fields())
}

func TestExpectTemplate(t *testing.T) {
	tmpl := Expect(sampleSchema, sample{A: str("x")})

	assert.NoError(t, tmpl.Match([]byte(`{"a":"x","b":"extra","unknown":1}`)))

	err := tmpl.Match([]byte(`{"a":"y"}`))
	var m *PropertyMismatch
	require.ErrorAs(t, err, &m)
	assert.Equal(t, "a", m.Property)

	err = tmpl.Match([]byte(`not json`))
	require.Error(t, err)
	assert.False(t, stderrors.As(err, &m))
	assert.True(t, errors.Is(err, errors.RepresentationDecodeFailed))

	assert.Equal(t, `Sample{"a":"x"}`, tmpl.String())
}

func TestExpectJSON(t *testing.T) {
	tmpl, err := ExpectJSON(`{"username":"alice","enabled":true,"ignored":null,"count":2}`)
	require.NoError(t, err)

	assert.NoError(t, tmpl.Match([]byte(`{"username":"alice","enabled":true,"count":2,"id":"1"}`)))

	err = tmpl.Match([]byte(`{"username":"alice","enabled":false,"count":2}`))
	var m *PropertyMismatch
	require.ErrorAs(t, err, &m)
	assert.Equal(t, "enabled", m.Property)

	err = tmpl.Match([]byte(`[1,2]`))
	assert.True(t, errors.Is(err, errors.RepresentationDecodeFailed))

	_, err = ExpectJSON(`[1]`)
	assert.True(t, errors.Is(err, errors.RepresentationTemplateInvalid))

	_, err = ExpectJSON(`null`)
	assert.True(t, errors.Is(err, errors.RepresentationTemplateInvalid))
}
