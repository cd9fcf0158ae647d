// Package enums holds the closed sets of wire values accepted by the
// Shikimori API as query and body parameters.
//
// Each axis is its own string type, so the Go identifier (AnimeKindTV) is
// kept apart from the value sent over the wire ("tv"). Filters that accept
// exclusions take a value passed through Not, e.g. Not(AnimeKindMusic)
// becomes "!music".
package enums

import "strings"

// Value is implemented by every enumeration in this package.
type Value interface {
	~string
	Valid() bool
}

const negation = "!"

// Not returns the excluding form of v as understood by list filters.
func Not[T ~string](v T) T {
	if strings.HasPrefix(string(v), negation) {
		return v
	}
	return T(negation + string(v))
}

// Join renders values as a comma separated query value.
func Join[T ~string](values ...T) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		parts = append(parts, string(v))
	}
	return strings.Join(parts, ",")
}

// AllValid reports whether every value belongs to its enumeration.
func AllValid[T Value](values ...T) bool {
	for _, v := range values {
		if !v.Valid() {
			return false
		}
	}
	return true
}

type set map[string]struct{}

func newSet(values ...string) set {
	s := make(set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s set) has(v string) bool {
	_, ok := s[v]
	return ok
}

// hasNegatable accepts both "x" and "!x" for members x.
func (s set) hasNegatable(v string) bool {
	return s.has(strings.TrimPrefix(v, negation))
}
