package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// ListWorktreeText returns the raw `git worktree list --porcelain` output
// for the repository. Parsing the block-structured text is the worktree
// package's job.
func (b *Backend) ListWorktreeText(ctx context.Context) (string, error) {
	output, err := outputGit(ctx, b.Dir, "worktree", "list", "--porcelain")
	if err != nil {
		return "", fmt.Errorf("failed to list worktrees: %w", err)
	}
	return string(output), nil
}

// MainRepoPath returns the absolute path of the main repository checkout,
// derived from the common git directory. This holds regardless of which
// worktree (or nested subdirectory) the backend points at.
func (b *Backend) MainRepoPath(ctx context.Context) (string, error) {
	output, err := outputGit(ctx, b.Dir, "rev-parse", "--path-format=absolute", "--git-common-dir")
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %w", err)
	}

	commonDir := strings.TrimSpace(string(output))
	if filepath.Base(commonDir) == ".git" {
		return filepath.Dir(commonDir), nil
	}
	// Bare repository: the common dir is the repository itself.
	return commonDir, nil
}

// CurrentWorktreePath returns the absolute top-level path of the checkout
// the backend's directory is inside, or "" when outside a work tree.
func (b *Backend) CurrentWorktreePath(ctx context.Context) string {
	output, err := outputGit(ctx, b.Dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}

// Probe reports whether the checkout at path has uncommitted changes,
// staged changes or untracked files. Implements worktree.DirtyProber.
// A context deadline is surfaced as the context's error so callers can
// distinguish timeouts from git failures.
func (b *Backend) Probe(ctx context.Context, path string) (bool, error) {
	output, err := outputGit(ctx, path, "status", "--porcelain")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		return false, err
	}
	return strings.TrimSpace(string(output)) != "", nil
}
