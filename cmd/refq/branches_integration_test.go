//go:build integration

package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"strings"
	"testing"
)

// TestBranches_ListLocal tests listing local branches.
//
// Scenario: User runs `refq branches` in a repo with several branches
// Expected: All local branches are listed with metadata columns
func TestBranches_ListLocal(t *testing.T) {
	// Not parallel - sets command globals

	repoPath := setupTestRepo(t, t.TempDir(), "branches-repo")
	runGitCommand(t, repoPath, "git", "branch", "feature-a")
	runGitCommand(t, repoPath, "git", "branch", "feature-b")
	useRepo(t, repoPath)

	ctx, out := testContextWithOutput(t)
	cmd := newBranchesCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("branches command failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"main", "feature-a", "feature-b"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got: %s", want, got)
		}
	}
}

// TestBranches_ExcludesBackupNamespace tests the default backup exclusion.
//
// Scenario: User runs `refq branches` in a repo with backup branches
// Expected: Branches under hug-backups/ are hidden unless --include-backup
func TestBranches_ExcludesBackupNamespace(t *testing.T) {
	// Not parallel - sets command globals

	repoPath := setupTestRepo(t, t.TempDir(), "backup-repo")
	runGitCommand(t, repoPath, "git", "branch", "hug-backups/main_1")
	useRepo(t, repoPath)

	ctx, out := testContextWithOutput(t)
	cmd := newBranchesCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("branches command failed: %v", err)
	}
	if strings.Contains(out.String(), "hug-backups/") {
		t.Errorf("backup branch listed without --include-backup: %s", out.String())
	}

	ctx, out = testContextWithOutput(t)
	cmd = newBranchesCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--include-backup"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("branches --include-backup failed: %v", err)
	}
	if !strings.Contains(out.String(), "hug-backups/main_1") {
		t.Errorf("backup branch missing with --include-backup: %s", out.String())
	}
}

// TestBranches_ExcludeCurrent tests hiding the checked-out branch.
//
// Scenario: User runs `refq branches --exclude-current` on main
// Expected: main is not listed
func TestBranches_ExcludeCurrent(t *testing.T) {
	// Not parallel - sets command globals

	repoPath := setupTestRepo(t, t.TempDir(), "current-repo")
	runGitCommand(t, repoPath, "git", "branch", "feature")
	useRepo(t, repoPath)

	ctx, out := testContextWithOutput(t)
	cmd := newBranchesCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--exclude-current"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("branches command failed: %v", err)
	}

	got := out.String()
	if strings.Contains(got, "main") {
		t.Errorf("current branch listed with --exclude-current: %s", got)
	}
	if !strings.Contains(got, "feature") {
		t.Errorf("expected feature branch, got: %s", got)
	}
}

// TestBranches_Search tests free-text search filtering.
//
// Scenario: User runs `refq branches --search feat`
// Expected: Only matching branches are listed
func TestBranches_Search(t *testing.T) {
	// Not parallel - sets command globals

	repoPath := setupTestRepo(t, t.TempDir(), "search-repo")
	runGitCommand(t, repoPath, "git", "branch", "feature-x")
	runGitCommand(t, repoPath, "git", "branch", "bugfix-y")
	useRepo(t, repoPath)

	ctx, out := testContextWithOutput(t)
	cmd := newBranchesCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--search", "feat"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("branches command failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "feature-x") {
		t.Errorf("expected feature-x, got: %s", got)
	}
	if strings.Contains(got, "bugfix-y") {
		t.Errorf("non-matching branch listed: %s", got)
	}
}

// TestBranches_NoMatches tests the empty-result error.
//
// Scenario: User runs `refq branches --search` with terms nothing matches
// Expected: Command fails with a not-found error
func TestBranches_NoMatches(t *testing.T) {
	// Not parallel - sets command globals

	repoPath := setupTestRepo(t, t.TempDir(), "empty-repo")
	useRepo(t, repoPath)

	cmd := newBranchesCmd()
	cmd.SetContext(testContext(t))
	cmd.SetArgs([]string{"--search", "no-such-branch-anywhere"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error when nothing matches")
	}
}

// TestBranches_JSON tests JSON output.
//
// Scenario: User runs `refq branches --json`
// Expected: Output decodes as a JSON array of references
func TestBranches_JSON(t *testing.T) {
	// Not parallel - sets command globals

	repoPath := setupTestRepo(t, t.TempDir(), "json-repo")
	useRepo(t, repoPath)

	ctx, out := testContextWithOutput(t)
	cmd := newBranchesCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--json"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("branches --json failed: %v", err)
	}

	var decoded []struct {
		Name      string `json:"name"`
		Hash      string `json:"hash"`
		Timestamp int64  `json:"timestamp"`
	}
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out.String())
	}
	if len(decoded) != 1 || decoded[0].Name != "main" {
		t.Errorf("decoded = %+v, want single main entry", decoded)
	}
	if decoded[0].Hash == "" || decoded[0].Timestamp == 0 {
		t.Errorf("missing metadata in %+v", decoded[0])
	}
}

// TestBranches_SortStatic tests oldest-first ordering.
//
// Scenario: User runs `refq branches --sort static` with branches of
// different ages
// Expected: Older branch appears before newer branch
func TestBranches_SortStatic(t *testing.T) {
	// Not parallel - sets command globals

	repoPath := setupTestRepo(t, t.TempDir(), "sort-repo")

	// old-branch points at the initial commit; main gains a newer commit.
	// Ordering follows the committer date, so pin it explicitly.
	runGitCommand(t, repoPath, "git", "branch", "old-branch")
	commit := exec.Command("git", "commit", "--allow-empty", "-m", "Newer commit")
	commit.Dir = repoPath
	commit.Env = append(os.Environ(), "GIT_COMMITTER_DATE=2030-01-01T00:00:00")
	if out, err := commit.CombinedOutput(); err != nil {
		t.Fatalf("failed to commit: %v\n%s", err, out)
	}
	useRepo(t, repoPath)

	ctx, out := testContextWithOutput(t)
	cmd := newBranchesCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--sort", "static", "--no-tracks"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("branches command failed: %v", err)
	}

	got := out.String()
	oldIdx := strings.Index(got, "old-branch")
	mainIdx := strings.Index(got, "main")
	if oldIdx < 0 || mainIdx < 0 {
		t.Fatalf("branches missing from output: %s", got)
	}
	if oldIdx > mainIdx {
		t.Errorf("static sort order wrong (want oldest first): %s", got)
	}
}

// TestBranches_InvalidKind tests argument validation.
//
// Scenario: User runs `refq branches tags`
// Expected: Command fails
func TestBranches_InvalidKind(t *testing.T) {
	// Not parallel - sets command globals

	repoPath := setupTestRepo(t, t.TempDir(), "kind-repo")
	useRepo(t, repoPath)

	cmd := newBranchesCmd()
	cmd.SetContext(testContext(t))
	cmd.SetArgs([]string{"tags"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for unknown reference kind")
	}
}
