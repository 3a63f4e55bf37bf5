package refs

import (
	"reflect"
	"strings"
	"testing"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	list := []Reference{
		{Name: "main"},
		{Name: "feature"},
		{Name: "hug-backups/main_1"},
		{Name: "hug-backups/feature_2"},
	}

	tests := []struct {
		name string
		opts FilterOptions
		want []string
	}{
		{
			name: "no criteria keeps everything",
			opts: FilterOptions{},
			want: []string{"main", "feature", "hug-backups/main_1", "hug-backups/feature_2"},
		},
		{
			name: "exclude current",
			opts: FilterOptions{ExcludeCurrent: true, Current: "main"},
			want: []string{"feature", "hug-backups/main_1", "hug-backups/feature_2"},
		},
		{
			name: "exclude current with empty current keeps everything",
			opts: FilterOptions{ExcludeCurrent: true},
			want: []string{"main", "feature", "hug-backups/main_1", "hug-backups/feature_2"},
		},
		{
			name: "exclude backup namespace",
			opts: FilterOptions{ExcludeBackup: true, BackupPrefix: "hug-backups/"},
			want: []string{"main", "feature"},
		},
		{
			name: "backup exclusion without a prefix keeps everything",
			opts: FilterOptions{ExcludeBackup: true},
			want: []string{"main", "feature", "hug-backups/main_1", "hug-backups/feature_2"},
		},
		{
			name: "custom predicate combines with backup exclusion",
			opts: FilterOptions{
				ExcludeBackup: true,
				BackupPrefix:  "hug-backups/",
				Keep:          func(name string) bool { return strings.Contains(name, "a") },
			},
			want: []string{"main", "feature"},
		},
		{
			name: "all criteria at once",
			opts: FilterOptions{
				ExcludeCurrent: true,
				Current:        "main",
				ExcludeBackup:  true,
				BackupPrefix:   "hug-backups/",
				Keep:           func(name string) bool { return name != "feature" },
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := names(Filter(list, tt.opts))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterEmptyInput(t *testing.T) {
	t.Parallel()

	got := Filter(nil, FilterOptions{ExcludeCurrent: true, Current: "main"})
	if len(got) != 0 {
		t.Errorf("Filter(nil) = %v, want empty", got)
	}
}

func TestFilterIdempotent(t *testing.T) {
	t.Parallel()

	list := []Reference{
		{Name: "main"},
		{Name: "feature"},
		{Name: "hug-backups/main_1"},
	}
	opts := FilterOptions{ExcludeBackup: true, BackupPrefix: "hug-backups/"}

	once := Filter(list, opts)
	twice := Filter(once, opts)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second filter pass changed the result: %v != %v", once, twice)
	}
}

func names(list []Reference) []string {
	out := make([]string, 0, len(list))
	for _, ref := range list {
		out = append(out, ref.Name)
	}
	return out
}
