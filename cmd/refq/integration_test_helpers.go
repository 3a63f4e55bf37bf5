//go:build integration

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/hug-scm/refq/internal/config"
	"github.com/hug-scm/refq/internal/log"
	"github.com/hug-scm/refq/internal/output"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// runGitCommand runs a git command and returns output.
func runGitCommand(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run %v: %v\n%s", args, err, out)
	}
	return string(out)
}

// setupTestRepo creates a git repo with initial commit in dir/name.
// Returns the absolute path to the created repo (with symlinks resolved).
func setupTestRepo(t *testing.T, dir, name string) string {
	t.Helper()

	dir = resolvePath(t, dir)
	repoPath := filepath.Join(dir, name)
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}

	runGitCommand(t, repoPath, "git", "init", "-b", "main")
	runGitCommand(t, repoPath, "git", "config", "user.email", "test@test.com")
	runGitCommand(t, repoPath, "git", "config", "user.name", "Test User")
	runGitCommand(t, repoPath, "git", "config", "commit.gpgsign", "false")

	readmePath := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readmePath, []byte("# "+name+"\n"), 0644); err != nil {
		t.Fatalf("failed to write README: %v", err)
	}
	runGitCommand(t, repoPath, "git", "add", "README.md")
	runGitCommand(t, repoPath, "git", "commit", "-m", "Initial commit")

	return repoPath
}

// setupWorktree creates a worktree from repoPath at worktreePath on a new branch.
func setupWorktree(t *testing.T, repoPath, worktreePath, branch string) {
	t.Helper()
	runGitCommand(t, repoPath, "git", "worktree", "add", "-b", branch, worktreePath)
}

// makeDirty creates uncommitted changes in a worktree.
func makeDirty(t *testing.T, worktreePath string) {
	t.Helper()

	filePath := filepath.Join(worktreePath, "dirty.txt")
	if err := os.WriteFile(filePath, []byte("uncommitted changes\n"), 0644); err != nil {
		t.Fatalf("failed to create dirty file: %v", err)
	}
}

// testContext returns a context with a discarded logger.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(io.Discard, false, true))
	ctx = output.WithPrinter(ctx, io.Discard)
	return ctx
}

// testContextWithOutput returns a context whose printer writes to the
// returned buffer.
func testContextWithOutput(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(io.Discard, false, true))
	ctx = output.WithPrinter(ctx, &buf)
	return ctx, &buf
}

// useRepo points the command globals at the given repository with default
// config, restoring them when the test finishes.
func useRepo(t *testing.T, repoPath string) {
	t.Helper()

	oldCfg, oldDir := cfg, repoDir
	defaults := config.Default()
	cfg = &defaults
	repoDir = repoPath
	t.Cleanup(func() {
		cfg, repoDir = oldCfg, oldDir
	})
}
