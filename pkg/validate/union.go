package validate

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Fields is a JSON object split into its top-level members.
type Fields map[string]json.RawMessage

// Has reports whether every key is present and not null.
func (f Fields) Has(keys ...string) bool {
	for _, k := range keys {
		v, ok := f[k]
		if !ok || string(bytes.TrimSpace(v)) == "null" {
			return false
		}
	}
	return true
}

// Text returns the member as a string, or "" when absent or not a string.
func (f Fields) Text(key string) string {
	var s string
	if v, ok := f[key]; ok {
		_ = json.Unmarshal(v, &s)
	}
	return s
}

// Candidate is one possible shape of a union-typed field.
type Candidate struct {
	// Name is matched against a discriminant by Tagged.
	Name string
	// Required keys must all be present and non-null.
	Required []string
	// Match, when set, is an additional structural check.
	Match func(Fields) bool
	// New returns a pointer to decode into.
	New func() any
}

func (c Candidate) matches(f Fields) bool {
	if !f.Has(c.Required...) {
		return false
	}
	return c.Match == nil || c.Match(f)
}

// ErrNoCandidate is wrapped when no candidate shape fits a union value.
var ErrNoCandidate = errors.New("no candidate shape matched")

// Union tries the candidates in order and decodes raw into the first one
// whose shape fits. Order matters when shapes overlap: a value that fits
// several candidates resolves to the earliest. Empty input yields ("", nil).
func Union(raw json.RawMessage, candidates ...Candidate) (string, any, error) {
	data := bytes.TrimSpace(raw)
	if isEmpty(data) {
		return "", nil, nil
	}
	var fields Fields
	if err := json.Unmarshal(data, &fields); err != nil {
		return "", nil, &Error{Target: "union", Cause: err}
	}
	for _, c := range candidates {
		if !c.matches(fields) {
			continue
		}
		v := c.New()
		if err := json.Unmarshal(data, v); err != nil {
			continue
		}
		return c.Name, v, nil
	}
	return "", nil, &Error{Target: "union", Cause: ErrNoCandidate}
}

// Tagged decodes raw as the candidate named by tag when the discriminant is
// known, and falls back to structural matching through Union otherwise.
func Tagged(tag string, raw json.RawMessage, candidates ...Candidate) (string, any, error) {
	data := bytes.TrimSpace(raw)
	if isEmpty(data) {
		return "", nil, nil
	}
	for _, c := range candidates {
		if tag == "" || c.Name != tag {
			continue
		}
		v := c.New()
		if err := json.Unmarshal(data, v); err != nil {
			return "", nil, &Error{Target: c.Name, Cause: err}
		}
		return c.Name, v, nil
	}
	return Union(data, candidates...)
}
