// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package representations

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/stratastor/adminevents/pkg/errors"
	"github.com/stratastor/adminevents/pkg/repdiff"
)

var kinds = map[string]func(data []byte) (repdiff.Template, error){
	"realm":  decodeAs(Realm),
	"user":   decodeAs(User),
	"client": decodeAs(Client),
	"role":   decodeAs(Role),
	"group":  decodeAs(Group),
}

func decodeAs[T any](build func(T) repdiff.Template) func([]byte) (repdiff.Template, error) {
	return func(data []byte) (repdiff.Template, error) {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return build(v), nil
	}
}

// Kinds lists the shape names accepted by FromJSON
func Kinds() []string {
	out := make([]string, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// FromJSON builds a template of the named shape from a JSON object. An empty
// kind compares the raw JSON object instead.
func FromJSON(kind, object string) (repdiff.Template, error) {
	if kind == "" {
		return repdiff.ExpectJSON(object)
	}
	decode, ok := kinds[strings.ToLower(kind)]
	if !ok {
		return nil, errors.New(errors.RepresentationTemplateInvalid,
			fmt.Sprintf("unknown representation type %q, expected one of %s", kind, strings.Join(Kinds(), ", ")))
	}
	tmpl, err := decode([]byte(object))
	if err != nil {
		return nil, errors.Wrap(err, errors.RepresentationTemplateInvalid).WithMetadata("type", kind)
	}
	return tmpl, nil
}
