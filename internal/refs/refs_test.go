package refs

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestSort(t *testing.T) {
	t.Parallel()

	base := []Reference{
		{Name: "old", Timestamp: 100},
		{Name: "new", Timestamp: 300},
		{Name: "mid", Timestamp: 200},
	}

	tests := []struct {
		sc   SortContext
		want []string
	}{
		{SortStatic, []string{"old", "mid", "new"}},
		{SortSingle, []string{"old", "mid", "new"}},
		{SortMulti, []string{"new", "mid", "old"}},
		{SortLegacy, []string{"new", "mid", "old"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.sc), func(t *testing.T) {
			t.Parallel()

			list := make([]Reference, len(base))
			copy(list, base)
			if err := Sort(list, tt.sc); err != nil {
				t.Fatalf("Sort() error: %v", err)
			}
			if got := names(list); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sort(%s) = %v, want %v", tt.sc, got, tt.want)
			}
		})
	}
}

func TestSortSymmetry(t *testing.T) {
	t.Parallel()

	asc := []Reference{
		{Name: "a", Timestamp: 1},
		{Name: "b", Timestamp: 2},
		{Name: "c", Timestamp: 3},
	}
	desc := make([]Reference, len(asc))
	copy(desc, asc)

	if err := Sort(asc, SortSingle); err != nil {
		t.Fatal(err)
	}
	if err := Sort(desc, SortMulti); err != nil {
		t.Fatal(err)
	}

	// Single and multi contexts produce exact reversals of each other.
	for i := range asc {
		if asc[i].Name != desc[len(desc)-1-i].Name {
			t.Fatalf("single %v is not the reverse of multi %v", names(asc), names(desc))
		}
	}
}

func TestSortStableTies(t *testing.T) {
	t.Parallel()

	list := []Reference{
		{Name: "first", Timestamp: 100},
		{Name: "second", Timestamp: 100},
		{Name: "third", Timestamp: 100},
	}

	if err := Sort(list, SortMulti); err != nil {
		t.Fatal(err)
	}
	want := []string{"first", "second", "third"}
	if got := names(list); !reflect.DeepEqual(got, want) {
		t.Errorf("tied timestamps reordered: %v, want %v", got, want)
	}
}

func TestSortUnknownContext(t *testing.T) {
	t.Parallel()

	if err := Sort(nil, SortContext("bogus")); err == nil {
		t.Error("Sort(bogus) expected error")
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"local", "remote", "wip"} {
		if _, err := ParseKind(s); err != nil {
			t.Errorf("ParseKind(%q) error: %v", s, err)
		}
	}
	if _, err := ParseKind("tags"); err == nil {
		t.Error("ParseKind(tags) expected error")
	}
}

func TestParseSortContext(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"static", "single", "multi", "legacy"} {
		if _, err := ParseSortContext(s); err != nil {
			t.Errorf("ParseSortContext(%q) error: %v", s, err)
		}
	}
	if _, err := ParseSortContext("default"); err == nil {
		t.Error("ParseSortContext(default) expected error")
	}
}

// fakeBackend serves a fixed reference list.
type fakeBackend struct {
	list    []Reference
	current string
	err     error
}

func (f *fakeBackend) ListReferences(ctx context.Context, kind Kind) ([]Reference, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	list := make([]Reference, len(f.list))
	copy(list, f.list)
	return list, f.current, nil
}

func TestEnumerate(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		list: []Reference{
			{Name: "main", Timestamp: 100},
			{Name: "feature", Timestamp: 200},
			{Name: "hug-backups/main_1", Timestamp: 50},
		},
		current: "main",
	}

	got, err := Enumerate(context.Background(), backend, KindLocal, EnumerateOptions{
		Sort: SortMulti,
		Filter: FilterOptions{
			ExcludeBackup: true,
			BackupPrefix:  "hug-backups/",
		},
	})
	if err != nil {
		t.Fatalf("Enumerate() error: %v", err)
	}
	want := []string{"feature", "main"}
	if !reflect.DeepEqual(names(got), want) {
		t.Errorf("Enumerate() = %v, want %v", names(got), want)
	}
}

func TestEnumerateExcludesCurrent(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		list: []Reference{
			{Name: "main", Timestamp: 100},
			{Name: "feature", Timestamp: 200},
		},
		current: "main",
	}

	got, err := Enumerate(context.Background(), backend, KindLocal, EnumerateOptions{
		Sort:   SortStatic,
		Filter: FilterOptions{ExcludeCurrent: true},
	})
	if err != nil {
		t.Fatalf("Enumerate() error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "feature" {
		t.Errorf("Enumerate() = %v, want only feature", names(got))
	}
}

func TestEnumerateEmptyResult(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	got, err := Enumerate(context.Background(), backend, KindWIP, EnumerateOptions{Sort: SortStatic})
	if err != nil {
		t.Fatalf("empty enumeration must not error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Enumerate() = %v, want empty", names(got))
	}
}

func TestEnumerateBackendError(t *testing.T) {
	t.Parallel()

	backendErr := errors.New("boom")
	backend := &fakeBackend{err: backendErr}

	_, err := Enumerate(context.Background(), backend, KindLocal, EnumerateOptions{Sort: SortStatic})
	if !errors.Is(err, backendErr) {
		t.Errorf("Enumerate() error = %v, want wrapped backend error", err)
	}
}
