// Package git provides the reference and worktree backend via shell
// commands.
//
// All operations use the git CLI directly rather than a Go git library.
// This approach is simpler, more reliable, and ensures compatibility with
// user configurations (SSH keys, credential helpers, aliases).
package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hug-scm/refq/internal/refs"
)

// Backend queries a repository for reference and worktree metadata.
// It implements refs.Backend.
type Backend struct {
	// Dir is the repository directory; empty means the process working
	// directory.
	Dir string

	// WIPPattern is the ref pattern queried for refs.KindWIP
	// (e.g. "refs/heads/WIP/").
	WIPPattern string
}

// fieldSep separates for-each-ref format fields. NUL cannot appear in ref
// names or subjects, unlike tabs.
const fieldSep = "\x00"

// forEachRefFormat queries name, short hash, subject, committer date (unix)
// and upstream short name in one call.
var forEachRefFormat = strings.Join([]string{
	"%(refname:short)",
	"%(objectname:short)",
	"%(subject)",
	"%(committerdate:unix)",
	"%(upstream:short)",
}, fieldSep)

// ListReferences enumerates references of the given kind in the backend's
// natural order (refname-sorted), along with the name of the currently
// checked-out branch for local kinds. No references is not an error; the
// returned list is simply empty.
func (b *Backend) ListReferences(ctx context.Context, kind refs.Kind) ([]refs.Reference, string, error) {
	var pattern string
	switch kind {
	case refs.KindLocal:
		pattern = "refs/heads/"
	case refs.KindRemote:
		pattern = "refs/remotes/"
	case refs.KindWIP:
		pattern = b.WIPPattern
	default:
		return nil, "", fmt.Errorf("unknown reference kind %q", kind)
	}

	output, err := outputGit(ctx, b.Dir,
		"for-each-ref",
		"--format="+forEachRefFormat,
		"--sort=refname",
		pattern,
	)
	if err != nil {
		return nil, "", fmt.Errorf("for-each-ref %s: %w", pattern, err)
	}

	var list []refs.Reference
	for _, line := range strings.Split(string(output), "\n") {
		if line == "" {
			continue
		}
		ref, ok := parseRefLine(line)
		if !ok {
			continue
		}

		if kind == refs.KindRemote {
			// Skip symbolic HEAD entries and strip the remote prefix so
			// names line up with their local counterparts.
			if strings.HasSuffix(ref.Name, "/HEAD") {
				continue
			}
			_, name, found := strings.Cut(ref.Name, "/")
			if !found || name == "" {
				continue
			}
			ref.Name = name
		}

		list = append(list, ref)
	}

	current := ""
	if kind == refs.KindLocal || kind == refs.KindWIP {
		current = b.currentBranch(ctx)
	}

	return list, current, nil
}

// parseRefLine splits one for-each-ref output line into a Reference.
// The upstream field becomes a "[upstream]" track string; divergence is
// appended separately by AnnotateTracks.
func parseRefLine(line string) (refs.Reference, bool) {
	fields := strings.Split(line, fieldSep)
	if len(fields) != 5 {
		return refs.Reference{}, false
	}

	name := strings.TrimSpace(fields[0])
	if name == "" {
		return refs.Reference{}, false
	}

	timestamp, err := strconv.ParseInt(strings.TrimSpace(fields[3]), 10, 64)
	if err != nil {
		timestamp = 0
	}

	track := ""
	if upstream := strings.TrimSpace(fields[4]); upstream != "" {
		track = "[" + upstream + "]"
	}

	return refs.Reference{
		Name:      name,
		Hash:      fields[1],
		Subject:   strings.TrimSpace(fields[2]),
		Timestamp: timestamp,
		Track:     track,
	}, true
}

// currentBranch returns the checked-out branch name, empty when detached.
func (b *Backend) currentBranch(ctx context.Context) string {
	output, err := outputGit(ctx, b.Dir, "branch", "--show-current")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}

// AnnotateTracks replaces plain "[upstream]" track strings with divergence
// summaries like "[origin/main: ahead 2, behind 1]" where the branch has
// diverged from its upstream. References without an upstream are left
// untouched.
func (b *Backend) AnnotateTracks(ctx context.Context, list []refs.Reference) {
	for i := range list {
		track := list[i].Track
		if len(track) < 2 {
			continue
		}
		upstream := track[1 : len(track)-1]
		if status := b.divergence(ctx, list[i].Name, upstream); status != "" {
			list[i].Track = "[" + upstream + ": " + status + "]"
		}
	}
}

// divergence computes the ahead/behind summary for branch against upstream.
// Returns "" when the branch and upstream point at the same commit.
func (b *Backend) divergence(ctx context.Context, branch, upstream string) string {
	output, err := outputGit(ctx, b.Dir,
		"rev-list", "--left-right", "--count",
		branch+"..."+upstream,
	)
	if err != nil {
		return ""
	}

	parts := strings.Fields(string(output))
	if len(parts) != 2 {
		return ""
	}
	ahead, behind := parts[0], parts[1]

	switch {
	case ahead != "0" && behind != "0":
		return fmt.Sprintf("ahead %s, behind %s", ahead, behind)
	case ahead != "0":
		return "ahead " + ahead
	case behind != "0":
		return "behind " + behind
	}
	return ""
}
