package worktree

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// DirtyProber checks a single checkout for pending changes.
// The git-backed implementation lives in the git package; tests inject
// fakes so the parser package stays free of subprocess calls.
type DirtyProber interface {
	Probe(ctx context.Context, path string) (dirty bool, err error)
}

// ProberFunc adapts a function to the DirtyProber interface.
type ProberFunc func(ctx context.Context, path string) (bool, error)

func (f ProberFunc) Probe(ctx context.Context, path string) (bool, error) {
	return f(ctx, path)
}

// ProbeTimeoutError reports that a dirty-status probe exceeded its bound.
// The affected record's status degrades to DirtyUnknown; the rest of the
// batch is unaffected.
type ProbeTimeoutError struct {
	Path    string
	Timeout time.Duration
}

func (e *ProbeTimeoutError) Error() string {
	return fmt.Sprintf("dirty-status probe for %s exceeded %v", e.Path, e.Timeout)
}

// Is makes errors.Is(err, context.DeadlineExceeded) hold for probe timeouts.
func (e *ProbeTimeoutError) Is(target error) bool {
	return target == context.DeadlineExceeded
}

// ProbeOptions bounds the dirty-probe fan-out.
type ProbeOptions struct {
	// Timeout bounds each individual probe so one unreachable or locked
	// checkout cannot stall enumeration of the rest.
	Timeout time.Duration

	// Concurrency bounds the number of simultaneous probes.
	Concurrency int
}

// ProbeDirty fills in the dirty status of each non-bare record.
// Probes run concurrently across independent checkout paths; each probe is
// read-only and touches a disjoint checkout. A timed-out probe leaves that
// record at DirtyUnknown and is returned as a warning; other probe errors
// also degrade to DirtyUnknown. Returns early only if ctx is cancelled.
func ProbeDirty(ctx context.Context, records []Record, prober DirtyProber, opts ProbeOptions) []error {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	warnings := make([]error, len(records))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range records {
		if records[i].Bare {
			continue
		}
		g.Go(func() error {
			rec := &records[i]

			probeCtx := ctx
			cancel := context.CancelFunc(func() {})
			if opts.Timeout > 0 {
				probeCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
			}
			defer cancel()

			dirty, err := prober.Probe(probeCtx, rec.Path)
			switch {
			case err == nil:
				if dirty {
					rec.Dirty = Dirty
				} else {
					rec.Dirty = Clean
				}
			case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
				rec.Dirty = DirtyUnknown
				warnings[i] = &ProbeTimeoutError{Path: rec.Path, Timeout: opts.Timeout}
			default:
				rec.Dirty = DirtyUnknown
				warnings[i] = err
			}
			return nil // degradation is per record, never fatal for the batch
		})
	}

	_ = g.Wait() // goroutines collect errors as warnings

	var out []error
	for _, w := range warnings {
		if w != nil {
			out = append(out, w)
		}
	}
	return out
}
