// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package assertevents

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/stratastor/adminevents/pkg/errors"
)

// StringMatcher is a predicate over resource paths
type StringMatcher interface {
	Matches(s string) bool
	String() string
}

type matcherFunc struct {
	match func(string) bool
	desc  string
}

func (m matcherFunc) Matches(s string) bool { return m.match(s) }
func (m matcherFunc) String() string        { return m.desc }

// EqualTo matches exactly s
func EqualTo(s string) StringMatcher {
	return matcherFunc{
		match: func(v string) bool { return v == s },
		desc:  fmt.Sprintf("%q", s),
	}
}

func HasPrefix(prefix string) StringMatcher {
	return matcherFunc{
		match: func(v string) bool { return strings.HasPrefix(v, prefix) },
		desc:  fmt.Sprintf("a string starting with %q", prefix),
	}
}

func HasSuffix(suffix string) StringMatcher {
	return matcherFunc{
		match: func(v string) bool { return strings.HasSuffix(v, suffix) },
		desc:  fmt.Sprintf("a string ending with %q", suffix),
	}
}

func Contains(substr string) StringMatcher {
	return matcherFunc{
		match: func(v string) bool { return strings.Contains(v, substr) },
		desc:  fmt.Sprintf("a string containing %q", substr),
	}
}

// MatchesPattern matches the regular expression pattern. It panics if the
// pattern does not compile, like regexp.MustCompile.
func MatchesPattern(pattern string) StringMatcher {
	return patternMatcher(regexp.MustCompile(pattern))
}

// Pattern is MatchesPattern for patterns that come from user input
func Pattern(pattern string) (StringMatcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrap(err, errors.OperationFailed).WithMetadata("pattern", pattern)
	}
	return patternMatcher(re), nil
}

func patternMatcher(re *regexp.Regexp) StringMatcher {
	return matcherFunc{
		match: re.MatchString,
		desc:  fmt.Sprintf("a string matching /%s/", re.String()),
	}
}

// Any matches every string
func Any() StringMatcher {
	return matcherFunc{
		match: func(string) bool { return true },
		desc:  "any string",
	}
}
