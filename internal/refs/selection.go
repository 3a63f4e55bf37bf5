package refs

import (
	"strconv"
	"strings"
)

// SelectionResult holds the items and 1-based indices a user selected,
// in matching order.
type SelectionResult[T any] struct {
	Items   []T   `json:"items"`
	Indices []int `json:"indices"`
}

// ParseSelection parses a user-supplied selection string into a validated,
// deduplicated list of 1-based indices.
//
// Supported syntaxes, combinable with commas: a single index ("3"), the
// literal "all" or "a" meaning every index from 1 to count, and an
// inclusive range "a-b". Whitespace around tokens is ignored.
//
// Duplicate indices collapse to their first occurrence, and the output
// preserves input order of first occurrence rather than numeric order.
// Empty input, out-of-range indices and reversed ranges are
// ValidationErrors.
func ParseSelection(input string, count int) ([]int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, &ValidationError{Reason: "nothing selected"}
	}

	if lower := strings.ToLower(input); lower == "a" || lower == "all" {
		all := make([]int, count)
		for i := range all {
			all[i] = i + 1
		}
		return all, nil
	}

	var indices []int
	seen := make(map[int]bool)
	add := func(idx int) {
		if !seen[idx] {
			seen[idx] = true
			indices = append(indices, idx)
		}
	}

	for _, token := range strings.Split(input, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, &ValidationError{Token: token, Reason: "empty token"}
		}

		if strings.Contains(token, "-") {
			start, end, err := parseRange(token, count)
			if err != nil {
				return nil, err
			}
			for i := start; i <= end; i++ {
				add(i)
			}
			continue
		}

		idx, err := parseIndex(token, count)
		if err != nil {
			return nil, err
		}
		add(idx)
	}

	return indices, nil
}

// parseIndex parses a single 1-based index and checks bounds.
func parseIndex(token string, count int) (int, error) {
	idx, err := strconv.Atoi(token)
	if err != nil {
		return 0, &ValidationError{Token: token, Reason: "not a number"}
	}
	if idx < 1 || idx > count {
		return 0, &ValidationError{Token: token, Reason: "index out of range"}
	}
	return idx, nil
}

// parseRange parses an inclusive "a-b" range and checks both endpoints.
// A reversed range (a > b) is rejected rather than silently swapped.
func parseRange(token string, count int) (start, end int, err error) {
	parts := strings.SplitN(token, "-", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return 0, 0, &ValidationError{Token: token, Reason: "malformed range"}
	}

	start, err = parseIndex(strings.TrimSpace(parts[0]), count)
	if err != nil {
		return 0, 0, err
	}
	end, err = parseIndex(strings.TrimSpace(parts[1]), count)
	if err != nil {
		return 0, 0, err
	}
	if start > end {
		return 0, 0, &ValidationError{Token: token, Reason: "reversed range"}
	}
	return start, end, nil
}

// Select parses a selection string against items and returns the selected
// items with their 1-based indices, in first-occurrence order.
func Select[T any](items []T, input string) (SelectionResult[T], error) {
	indices, err := ParseSelection(input, len(items))
	if err != nil {
		return SelectionResult[T]{}, err
	}

	selected := make([]T, len(indices))
	for i, idx := range indices {
		selected[i] = items[idx-1]
	}
	return SelectionResult[T]{Items: selected, Indices: indices}, nil
}
