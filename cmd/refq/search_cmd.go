package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/hug-scm/refq/internal/output"
	"github.com/hug-scm/refq/internal/refs"
)

func newSearchCmd() *cobra.Command {
	var (
		terms     string
		logic     string
		fuzzyMode bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Filter candidate lines from stdin by search terms",
		Args:  cobra.NoArgs,
		Long: `Read candidate lines from stdin and print the ones matching the
search terms.

Matching is case-insensitive substring containment. With OR logic any
term may match; with AND logic every term must match. Empty terms match
everything. With --fuzzy, lines are instead fuzzy-ranked against the
terms, best match first.`,
		Example: `  git branch --format='%(refname:short)' | refq search --terms "feat fix"
  refq worktrees | refq search --terms "feature 123" --logic AND
  refq branches | refq search --terms ftr --fuzzy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			lg, err := refs.ParseLogic(logic)
			if err != nil {
				return err
			}

			var lines []string
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				lines = append(lines, scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read candidates: %w", err)
			}

			if fuzzyMode {
				for _, m := range fuzzy.Find(terms, lines) {
					out.Println(lines[m.Index])
				}
				return nil
			}

			for _, line := range lines {
				if refs.Match(terms, lg, line) {
					out.Println(line)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&terms, "terms", "", "Whitespace-separated search terms")
	cmd.Flags().StringVar(&logic, "logic", string(refs.LogicOR), "Search logic: OR or AND")
	cmd.Flags().BoolVar(&fuzzyMode, "fuzzy", false, "Fuzzy-rank lines instead of substring matching")

	return cmd
}
