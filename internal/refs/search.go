package refs

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Logic selects how multiple search terms combine.
type Logic string

const (
	// LogicOR matches if any term is contained in any field.
	LogicOR Logic = "OR"
	// LogicAND matches if every term is contained in at least one field,
	// not necessarily the same field for every term.
	LogicAND Logic = "AND"
)

// ParseLogic validates a search logic string. Matching is case-insensitive.
func ParseLogic(s string) (Logic, error) {
	switch Logic(strings.ToUpper(s)) {
	case LogicOR:
		return LogicOR, nil
	case LogicAND:
		return LogicAND, nil
	}
	return "", fmt.Errorf("unknown search logic %q (expected OR or AND)", s)
}

// Match reports whether the whitespace-separated terms match the fields
// under the given logic. Matching is case-insensitive substring
// containment; there is no ordering or positional requirement. Empty or
// whitespace-only terms always match.
func Match(terms string, logic Logic, fields ...string) bool {
	split := strings.Fields(terms)
	if len(split) == 0 {
		return true
	}

	lowered := make([]string, len(fields))
	for i, f := range fields {
		lowered[i] = strings.ToLower(f)
	}

	if logic == LogicOR {
		for _, term := range split {
			term = strings.ToLower(term)
			for _, field := range lowered {
				if strings.Contains(field, term) {
					return true
				}
			}
		}
		return false
	}

	// AND: every term must be contained in at least one field.
	for _, term := range split {
		term = strings.ToLower(term)
		matched := false
		for _, field := range lowered {
			if strings.Contains(field, term) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// SearchReferences narrows a candidate list to the references whose name,
// subject, hash or track matches the terms. Empty terms return the list
// unchanged.
func SearchReferences(list []Reference, terms string, logic Logic) []Reference {
	if strings.TrimSpace(terms) == "" {
		return list
	}
	matched := make([]Reference, 0, len(list))
	for _, ref := range list {
		if Match(terms, logic, ref.Name, ref.Subject, ref.Hash, ref.Track) {
			matched = append(matched, ref)
		}
	}
	return matched
}

// refSource implements fuzzy.Source over reference names.
type refSource []Reference

func (s refSource) String(i int) string { return s[i].Name }
func (s refSource) Len() int            { return len(s) }

// FuzzyRank returns the references whose name fuzzy-matches the query,
// best match first. An empty query returns the list unchanged.
func FuzzyRank(query string, list []Reference) []Reference {
	if strings.TrimSpace(query) == "" {
		return list
	}
	matches := fuzzy.FindFrom(query, refSource(list))
	ranked := make([]Reference, 0, len(matches))
	for _, m := range matches {
		ranked = append(ranked, list[m.Index])
	}
	return ranked
}
