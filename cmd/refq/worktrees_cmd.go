package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hug-scm/refq/internal/log"
	"github.com/hug-scm/refq/internal/output"
	"github.com/hug-scm/refq/internal/refs"
	"github.com/hug-scm/refq/internal/worktree"
)

func newWorktreesCmd() *cobra.Command {
	var (
		includeMain bool
		probeDirty  bool
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:     "worktrees",
		Short:   "List worktrees",
		Aliases: []string{"wt"},
		Args:    cobra.NoArgs,
		Long: `List the repository's worktrees with branch, commit and lock state.

The main checkout is excluded unless --include-main is given. With
--dirty, each worktree is probed for uncommitted changes; a probe that
exceeds its timeout leaves that worktree's status as "unknown" without
aborting the rest.`,
		Example: `  refq worktrees                 # additional worktrees only
  refq worktrees --include-main
  refq worktrees --dirty --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			b := backend()

			listing, err := b.ListWorktreeText(ctx)
			if err != nil {
				return err
			}
			records, err := worktree.Parse(listing)
			if err != nil {
				return err
			}

			mainPath, err := b.MainRepoPath(ctx)
			if err != nil {
				return err
			}
			worktree.Annotate(records, mainPath, b.CurrentWorktreePath(ctx))

			if !includeMain {
				kept := records[:0]
				for _, rec := range records {
					if !rec.Main {
						kept = append(kept, rec)
					}
				}
				records = kept
			}

			if len(records) == 0 {
				return &refs.NotFoundError{Resource: "worktrees"}
			}

			if probeDirty {
				warnings := worktree.ProbeDirty(ctx, records, b, worktree.ProbeOptions{
					Timeout:     cfg.ProbeTimeoutDuration(),
					Concurrency: cfg.ProbeConcurrency,
				})
				for _, w := range warnings {
					l.Printf("Warning: %v\n", w)
				}
			}

			l.Debug("listed worktrees", "count", len(records), "probed", probeDirty)

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			for _, rec := range records {
				out.Printf("%s\t%s\t%s\t%s\n", rec.Path, branchLabel(rec), rec.Commit, flagLabel(rec, probeDirty))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeMain, "include-main", false, "Include the main repository checkout")
	cmd.Flags().BoolVar(&probeDirty, "dirty", false, "Probe each worktree for uncommitted changes")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// branchLabel returns the branch column for plain output.
func branchLabel(rec worktree.Record) string {
	switch {
	case rec.Bare:
		return "(bare)"
	case rec.Branch == "":
		return "(detached)"
	default:
		return rec.Branch
	}
}

// flagLabel returns the status column for plain output.
func flagLabel(rec worktree.Record, probed bool) string {
	var flags []string
	if probed && !rec.Bare {
		flags = append(flags, rec.Dirty.String())
	}
	if rec.Locked {
		flags = append(flags, "locked")
	}
	if rec.Main {
		flags = append(flags, "main")
	}
	if rec.Current {
		flags = append(flags, "current")
	}
	return strings.Join(flags, ",")
}
