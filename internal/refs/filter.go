package refs

import "strings"

// FilterOptions configures reference filtering.
type FilterOptions struct {
	// ExcludeCurrent drops the reference whose name equals Current.
	ExcludeCurrent bool

	// Current is the name of the currently checked-out reference.
	// Enumerate fills this from the backend.
	Current string

	// ExcludeBackup drops references under the backup namespace prefix.
	ExcludeBackup bool

	// BackupPrefix is the reserved backup namespace (e.g. "hug-backups/").
	BackupPrefix string

	// Keep, when non-nil, drops any reference for which it returns false.
	// It applies in addition to the other criteria, not instead of them.
	Keep func(name string) bool
}

// Filter returns the references that pass all enabled exclusion criteria.
// An empty input yields an empty output, never an error. Filtering an
// already-filtered list with the same options yields an identical list.
func Filter(list []Reference, opts FilterOptions) []Reference {
	filtered := make([]Reference, 0, len(list))
	for _, ref := range list {
		if opts.ExcludeCurrent && ref.Name == opts.Current {
			continue
		}
		if opts.ExcludeBackup && opts.BackupPrefix != "" && strings.HasPrefix(ref.Name, opts.BackupPrefix) {
			continue
		}
		if opts.Keep != nil && !opts.Keep(ref.Name) {
			continue
		}
		filtered = append(filtered, ref)
	}
	return filtered
}
