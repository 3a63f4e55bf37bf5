package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/hug-scm/refq/internal/log"
	"github.com/hug-scm/refq/internal/output"
	"github.com/hug-scm/refq/internal/refs"
)

func newBranchesCmd() *cobra.Command {
	var (
		sortContext    string
		excludeCurrent bool
		includeBackup  bool
		search         string
		logic          string
		fuzzyQuery     string
		noTracks       bool
		jsonOutput     bool
	)

	cmd := &cobra.Command{
		Use:     "branches [local|remote|wip]",
		Short:   "List branches with commit metadata",
		Aliases: []string{"br"},
		Args:    cobra.MaximumNArgs(1),
		Long: `List branches of the given kind (default: local) with short hash,
commit timestamp, subject and upstream tracking summary.

Backup branches (under the configured backup namespace) are excluded
unless --include-backup is given. The --sort context controls ordering:
static and single list oldest first, multi and legacy list newest first.`,
		Example: `  refq branches                        # local branches, newest first
  refq branches remote --sort static   # remote branches, oldest first
  refq branches --search "feat fix" --logic AND
  refq branches --exclude-current --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			kind := refs.KindLocal
			if len(args) == 1 {
				var err error
				if kind, err = refs.ParseKind(args[0]); err != nil {
					return err
				}
			}

			sc, err := refs.ParseSortContext(sortContext)
			if err != nil {
				return err
			}
			lg, err := refs.ParseLogic(logic)
			if err != nil {
				return err
			}

			b := backend()
			list, err := refs.Enumerate(ctx, b, kind, refs.EnumerateOptions{
				Sort: sc,
				Filter: refs.FilterOptions{
					ExcludeCurrent: excludeCurrent,
					ExcludeBackup:  !includeBackup,
					BackupPrefix:   cfg.BackupNamespace,
				},
			})
			if err != nil {
				return err
			}

			list = refs.SearchReferences(list, search, lg)
			list = refs.FuzzyRank(fuzzyQuery, list)

			if len(list) == 0 {
				return &refs.NotFoundError{Resource: string(kind) + " branches"}
			}

			if !noTracks && kind == refs.KindLocal {
				b.AnnotateTracks(ctx, list)
			}

			l.Debug("listed branches", "kind", kind, "count", len(list))

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}

			for _, ref := range list {
				out.Printf("%s\t%s\t%d\t%s\t%s\n", ref.Name, ref.Hash, ref.Timestamp, ref.Subject, ref.Track)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sortContext, "sort", string(refs.SortLegacy), "Sort context: static, single, multi or legacy")
	cmd.Flags().BoolVar(&excludeCurrent, "exclude-current", false, "Exclude the currently checked-out branch")
	cmd.Flags().BoolVar(&includeBackup, "include-backup", false, "Include branches under the backup namespace")
	cmd.Flags().StringVar(&search, "search", "", "Free-text search terms (whitespace separated)")
	cmd.Flags().StringVar(&logic, "logic", string(refs.LogicOR), "Search logic: OR or AND")
	cmd.Flags().StringVar(&fuzzyQuery, "fuzzy", "", "Fuzzy-rank branches by name against this query")
	cmd.Flags().BoolVar(&noTracks, "no-tracks", false, "Skip ahead/behind divergence computation")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
