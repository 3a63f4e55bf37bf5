package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/hug-scm/refq/internal/output"
	"github.com/hug-scm/refq/internal/refs"
)

func newSelectCmd() *cobra.Command {
	var (
		count      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "select [SELECTION]",
		Short: "Parse a selection string against a numbered list",
		Args:  cobra.MaximumNArgs(1),
		Long: `Parse a selection string like "1,3-5,7" or "all" against a numbered
list of items.

Items are read from stdin (one per line) when stdin is piped; the
selected items are printed in first-occurrence order. With --count and
no piped items, only the validated indices are printed. When stdin is a
terminal and no SELECTION argument is given, the selection is prompted
for interactively.`,
		Example: `  git branch --format='%(refname:short)' | refq select "1,3-5"
  refq select all --count 4
  refq select "2,2,2" --count 5      # prints 2 once`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			input := ""
			if len(args) == 1 {
				input = args[0]
			}

			stdinTTY := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

			var items []string
			if !stdinTTY {
				scanner := bufio.NewScanner(os.Stdin)
				for scanner.Scan() {
					items = append(items, scanner.Text())
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("read items: %w", err)
				}
			}

			if input == "" {
				if !stdinTTY {
					return fmt.Errorf("no selection given (pass it as an argument when piping items)")
				}
				var err error
				if input, err = promptSelection(); err != nil {
					return err
				}
			}

			// Piped items define the list; otherwise --count does.
			if len(items) > 0 {
				result, err := refs.Select(items, input)
				if err != nil {
					return err
				}
				if jsonOutput {
					enc := json.NewEncoder(out.Writer())
					enc.SetIndent("", "  ")
					return enc.Encode(result)
				}
				for _, item := range result.Items {
					out.Println(item)
				}
				return nil
			}

			if count <= 0 {
				return fmt.Errorf("either pipe items on stdin or pass --count")
			}
			indices, err := refs.ParseSelection(input, count)
			if err != nil {
				return err
			}
			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				return enc.Encode(indices)
			}
			for _, idx := range indices {
				out.Println(idx)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of selectable items (when no items are piped)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// promptSelection reads a selection string interactively.
// The prompt goes to stderr so stdout stays parseable.
func promptSelection() (string, error) {
	fmt.Fprint(os.Stderr, "Enter numbers to select (comma-separated, ranges like 1-5, or 'a' for all): ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read selection: %w", err)
	}
	return line, nil
}
