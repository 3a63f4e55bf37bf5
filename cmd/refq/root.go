package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hug-scm/refq/internal/config"
	"github.com/hug-scm/refq/internal/git"
	"github.com/hug-scm/refq/internal/log"
	"github.com/hug-scm/refq/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	repoDir string

	// Shared state injected into commands
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "refq",
	Short: "Query and select git branches and worktrees",
	Long: `refq enumerates a repository's branches and worktrees with commit
metadata, filters and searches them, and parses selection input for
scripts and pickers built on top.

It is read-only: nothing here checks out, deletes or pushes anything.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}
		if verbose && quiet {
			return fmt.Errorf("--verbose and --quiet are mutually exclusive")
		}
		return git.CheckGit()
	},
	// Run is not set - shows help when no subcommand provided
}

// backend returns the git backend for the target repository.
func backend() *git.Backend {
	return &git.Backend{Dir: repoDir, WIPPattern: cfg.WIPPattern}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg = &loadedCfg

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Logger on stderr for diagnostics, printer on stdout for data
	logger := log.New(os.Stderr, verbose, quiet)
	ctx = log.WithLogger(ctx, logger)
	ctx = output.WithPrinter(ctx, os.Stdout)

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all diagnostic output")
	rootCmd.PersistentFlags().StringVarP(&repoDir, "repo", "C", "", "Repository directory (default: current directory)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(newBranchesCmd())
	rootCmd.AddCommand(newWorktreesCmd())
	rootCmd.AddCommand(newSelectCmd())
	rootCmd.AddCommand(newSearchCmd())
}
