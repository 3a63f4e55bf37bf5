// Package worktree parses the block-structured `git worktree list
// --porcelain` format into typed records and resolves per-worktree dirty
// status through an injectable prober, keeping the parser itself pure.
package worktree

import (
	"fmt"
	"strings"
)

// DirtyStatus is the tri-state result of a dirty probe.
// Unknown means the probe could not complete (e.g. it timed out); it is
// deliberately distinct from both Clean and Dirty.
type DirtyStatus int

const (
	DirtyUnknown DirtyStatus = iota
	Clean
	Dirty
)

func (s DirtyStatus) String() string {
	switch s {
	case Clean:
		return "clean"
	case Dirty:
		return "dirty"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status as its string form for JSON output.
func (s DirtyStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Record describes one working-directory checkout bound to the repository.
type Record struct {
	Path    string      `json:"path"`
	Branch  string      `json:"branch,omitempty"` // empty for detached HEAD and bare checkouts
	Commit  string      `json:"commit,omitempty"` // short hash, empty for bare checkouts
	Dirty   DirtyStatus `json:"dirty"`
	Locked  bool        `json:"locked"`
	Bare    bool        `json:"bare"`
	Main    bool        `json:"main"`
	Current bool        `json:"current"`
}

// ParseError reports a malformed worktree listing block.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line == "" {
		return fmt.Sprintf("malformed worktree listing: %s", e.Reason)
	}
	return fmt.Sprintf("malformed worktree listing at %q: %s", e.Line, e.Reason)
}

// lineKind tags one porcelain listing line.
type lineKind int

const (
	lineBlank lineKind = iota
	linePath
	lineHEAD
	lineBranch
	lineDetached
	lineLocked
	lineBare
	lineUnknown
)

// parsedLine is the tagged variant a listing line parses into.
type parsedLine struct {
	kind  lineKind
	value string
}

// parseLine classifies a single porcelain line.
// HEAD appears as "HEAD <hash>" for attached checkouts and alongside a
// "detached" marker otherwise; both carry the same commit field.
func parseLine(line string) parsedLine {
	switch {
	case line == "":
		return parsedLine{kind: lineBlank}
	case strings.HasPrefix(line, "worktree "):
		return parsedLine{kind: linePath, value: strings.TrimPrefix(line, "worktree ")}
	case strings.HasPrefix(line, "HEAD "):
		return parsedLine{kind: lineHEAD, value: strings.TrimPrefix(line, "HEAD ")}
	case strings.HasPrefix(line, "branch refs/heads/"):
		return parsedLine{kind: lineBranch, value: strings.TrimPrefix(line, "branch refs/heads/")}
	case strings.HasPrefix(line, "branch "):
		// Non-local ref checked out; treat like detached.
		return parsedLine{kind: lineDetached}
	case line == "detached":
		return parsedLine{kind: lineDetached}
	case line == "locked" || strings.HasPrefix(line, "locked "):
		return parsedLine{kind: lineLocked}
	case line == "bare":
		return parsedLine{kind: lineBare}
	default:
		return parsedLine{kind: lineUnknown}
	}
}

// shortHashLen matches git's default abbreviated hash length.
const shortHashLen = 7

// Parse converts raw porcelain listing text into an ordered list of
// records. Blocks are separated by blank lines; a block's attributes must
// follow its "worktree <path>" line. A block carrying attributes without a
// path line is a ParseError. Bare checkouts produce a record with only the
// path set.
func Parse(listing string) ([]Record, error) {
	var records []Record
	var current Record
	open := false

	flush := func() {
		if open {
			records = append(records, current)
		}
		current = Record{}
		open = false
	}

	for _, line := range strings.Split(listing, "\n") {
		pl := parseLine(strings.TrimRight(line, "\r"))
		switch pl.kind {
		case lineBlank:
			flush()
		case linePath:
			flush()
			current.Path = pl.value
			open = true
		case lineHEAD:
			if !open {
				return nil, &ParseError{Line: line, Reason: "attribute before worktree path"}
			}
			hash := pl.value
			if len(hash) > shortHashLen {
				hash = hash[:shortHashLen]
			}
			current.Commit = hash
		case lineBranch:
			if !open {
				return nil, &ParseError{Line: line, Reason: "attribute before worktree path"}
			}
			current.Branch = pl.value
		case lineDetached:
			if !open {
				return nil, &ParseError{Line: line, Reason: "attribute before worktree path"}
			}
			current.Branch = ""
		case lineLocked:
			if !open {
				return nil, &ParseError{Line: line, Reason: "attribute before worktree path"}
			}
			current.Locked = true
		case lineBare:
			if !open {
				return nil, &ParseError{Line: line, Reason: "attribute before worktree path"}
			}
			current.Bare = true
			current.Branch = ""
			current.Commit = ""
		case lineUnknown:
			// Future porcelain attributes are ignored.
		}
	}
	flush()

	return records, nil
}

// Annotate marks the main and current records. Both paths are supplied by
// the caller: the main-repository path is never inferred from the process
// working directory, so invoking from a nested checkout cannot mark the
// wrong record. Only the first record matching mainPath is marked main.
func Annotate(records []Record, mainPath, currentPath string) {
	mainSeen := false
	for i := range records {
		if !mainSeen && records[i].Path == mainPath {
			records[i].Main = true
			mainSeen = true
		}
		if currentPath != "" && records[i].Path == currentPath {
			records[i].Current = true
		}
	}
}
