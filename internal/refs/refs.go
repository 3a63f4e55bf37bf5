// Package refs implements the reference query and selection engine:
// the record model, context-dependent sorting, exclusion filtering,
// free-text search and selection-string parsing over repository
// references.
//
// All operations are read-only and synchronous. References are held as a
// single slice of structs so that name, hash, subject, track and timestamp
// stay aligned by construction.
package refs

import (
	"context"
	"fmt"
	"sort"
)

// Reference is a named pointer to a commit plus its commit metadata.
type Reference struct {
	Name      string `json:"name"`
	Hash      string `json:"hash"`
	Subject   string `json:"subject"`
	Track     string `json:"track,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Kind selects which references a backend enumerates.
type Kind string

const (
	KindLocal  Kind = "local"
	KindRemote Kind = "remote"
	KindWIP    Kind = "wip"
)

// ParseKind validates a reference kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindLocal, KindRemote, KindWIP:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown reference kind %q (expected local, remote or wip)", s)
}

// SortContext is the UI situation that determines ordering direction.
//
// A single-select picker starts with the cursor at the bottom of the list,
// so ascending order puts the newest references at the cursor. A
// multi-select picker starts at the top, so descending order puts them at
// the cursor instead. Static output places the newest item nearest the
// trailing prompt. SortLegacy names the descending behavior of call sites
// that pre-date context awareness; it is never an implicit default.
type SortContext string

const (
	SortStatic SortContext = "static"
	SortSingle SortContext = "single"
	SortMulti  SortContext = "multi"
	SortLegacy SortContext = "legacy"
)

// ParseSortContext validates a sort context string.
func ParseSortContext(s string) (SortContext, error) {
	switch SortContext(s) {
	case SortStatic, SortSingle, SortMulti, SortLegacy:
		return SortContext(s), nil
	}
	return "", fmt.Errorf("unknown sort context %q (expected static, single, multi or legacy)", s)
}

// Sort orders references by commit timestamp according to the sort context.
// The sort is stable: references with identical timestamps keep their
// backend order. Returns an error for an unknown context.
func Sort(list []Reference, sc SortContext) error {
	switch sc {
	case SortStatic, SortSingle:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Timestamp < list[j].Timestamp
		})
	case SortMulti, SortLegacy:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Timestamp > list[j].Timestamp
		})
	default:
		return fmt.Errorf("unknown sort context %q", sc)
	}
	return nil
}

// Backend retrieves raw reference metadata for a kind.
// It returns references in the backend's natural order along with the name
// of the currently checked-out reference (empty when the kind has no notion
// of a current reference).
type Backend interface {
	ListReferences(ctx context.Context, kind Kind) (list []Reference, current string, err error)
}

// EnumerateOptions configures Enumerate.
type EnumerateOptions struct {
	Sort   SortContext
	Filter FilterOptions
}

// Enumerate retrieves references of the given kind, applies exclusion
// filtering and orders the result for the requested sort context.
// An empty result is not an error.
func Enumerate(ctx context.Context, b Backend, kind Kind, opts EnumerateOptions) ([]Reference, error) {
	list, current, err := b.ListReferences(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s references: %w", kind, err)
	}

	filter := opts.Filter
	filter.Current = current
	list = Filter(list, filter)

	if err := Sort(list, opts.Sort); err != nil {
		return nil, err
	}
	return list, nil
}
