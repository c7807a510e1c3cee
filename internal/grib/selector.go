package grib

import (
	"fmt"
	"sort"
	"strings"
)

// Matcher keys understood by Matchers.Match.
const (
	MatchShortName = "shortName"
	MatchLevelType = "levelType"
	MatchLevel     = "level"
)

// Matchers is a set of metadata constraints. A record matches when every
// entry compares equal against the corresponding record attribute.
type Matchers map[string]any

// Match reports whether r satisfies every matcher. An unrecognized key can
// never be satisfied, so it fails the match rather than being ignored.
func (m Matchers) Match(r *Record) bool {
	for key, want := range m {
		switch key {
		case MatchShortName:
			s, ok := want.(string)
			if !ok || r.ShortName != s {
				return false
			}
		case MatchLevelType:
			switch t := want.(type) {
			case LevelType:
				if r.LevelType != t {
					return false
				}
			case string:
				if r.LevelType != LevelType(t) {
					return false
				}
			default:
				return false
			}
		case MatchLevel:
			n, ok := want.(int)
			if !ok || r.Level != n {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// String renders the matcher set in a stable key-sorted form for error
// messages and logs.
func (m Matchers) String() string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, m[k]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// SelectOne returns the single record in pool satisfying every matcher.
// Zero hits yield a *NoMatchError and more than one hit a *AmbiguousMatchError;
// ambiguity is never resolved by picking an arbitrary record, since that is
// exactly how unit and level bugs slip through unnoticed. The pool is not
// mutated.
func SelectOne(pool []*Record, matchers Matchers) (*Record, error) {
	var found *Record
	hits := 0
	for _, r := range pool {
		if matchers.Match(r) {
			found = r
			hits++
		}
	}

	switch {
	case hits == 0:
		return nil, &NoMatchError{Matchers: matchers}
	case hits > 1:
		return nil, &AmbiguousMatchError{Matchers: matchers, Hits: hits}
	}
	return found, nil
}
