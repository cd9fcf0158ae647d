package enums

import (
	"sort"
	"strings"
)

// Scope is an OAuth scope granted to an application.
type Scope string

const (
	ScopeUserRates Scope = "user_rates"
	ScopeEmail     Scope = "email"
	ScopeMessages  Scope = "messages"
	ScopeComments  Scope = "comments"
	ScopeTopics    Scope = "topics"
	ScopeContent   Scope = "content"
	ScopeClubs     Scope = "clubs"
	ScopeFriends   Scope = "friends"
	ScopeIgnores   Scope = "ignores"
)

func (s Scope) String() string { return string(s) }

// Scopes is a set of granted scopes.
type Scopes map[Scope]struct{}

// ParseScopes splits a scope string on spaces, plus signs or commas.
func ParseScopes(raw string) Scopes {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == '+' || r == ','
	})
	out := make(Scopes, len(fields))
	for _, f := range fields {
		out[Scope(f)] = struct{}{}
	}
	return out
}

// Has reports whether s was granted. The empty scope is always granted.
func (s Scopes) Has(scope Scope) bool {
	if scope == "" {
		return true
	}
	_, ok := s[scope]
	return ok
}

// List returns the scopes sorted, for stable storage and comparison.
func (s Scopes) List() []string {
	out := make([]string, 0, len(s))
	for scope := range s {
		out = append(out, string(scope))
	}
	sort.Strings(out)
	return out
}

// String renders the set in the plus-joined form the authorize page uses.
func (s Scopes) String() string {
	return strings.Join(s.List(), "+")
}
