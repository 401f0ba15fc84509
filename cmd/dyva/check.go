package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dyva/internal/diagfmt"
	"dyva/internal/program"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.dyva>",
	Short: "Load an entry file and every module it imports, reporting all diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringSlice("search-path", nil, "additional import search directory (repeatable)")
	checkCmd.Flags().Bool("watch", false, "re-run on every change to the entry file (imported files are not watched)")
	checkCmd.Flags().Bool("timings", false, "print lex/parse/scope/lower/analysis durations per module")
}

func runCheck(cmd *cobra.Command, args []string) error {
	tracer, cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	searchPaths, err := cmd.Flags().GetStringSlice("search-path")
	if err != nil {
		return fmt.Errorf("failed to get search-path flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("failed to get watch flag: %w", err)
	}
	timings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	unit := program.Unit{
		EntryPath:      args[0],
		AsMain:         true,
		SearchPaths:    searchPaths,
		MaxDiagnostics: maxDiagnostics,
		Tracer:         tracer,
	}

	if watch {
		return runCheckWatch(cmd, unit, timings)
	}

	failed, err := runCheckOnce(cmd, unit, timings)
	if err != nil {
		return err
	}
	if failed {
		cmd.SilenceUsage = true
		return fmt.Errorf("check failed")
	}
	return nil
}

// runCheckOnce loads unit once and prints its diagnostics, reporting
// whether the program contained an error.
func runCheckOnce(cmd *cobra.Command, unit program.Unit, timings bool) (bool, error) {
	prog, err := program.Load(cmd.Context(), unit)
	if err != nil {
		return false, fmt.Errorf("load failed: %w", err)
	}

	opts := diagfmt.Options{Color: wantColor(cmd, os.Stderr), Preview: previewFlag(cmd)}
	for _, path := range prog.Order {
		result := prog.Modules[path]
		if result == nil {
			continue
		}
		if result.Bag.Len() > 0 {
			diagfmt.Format(cmd.ErrOrStderr(), result.Bag, prog.FileSet, opts)
		}
		if timings && len(result.Timings.Phases) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s:\n", path)
			for _, p := range result.Timings.Phases {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %-10s %7.2f ms\n", p.Name, p.DurationMS)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "  %-10s %7.2f ms\n", "total", result.Timings.TotalMS)
		}
	}
	return prog.ContainsError(), nil
}

func runCheckWatch(cmd *cobra.Command, unit program.Unit, timings bool) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	events, err := watchPaths(ctx, unit.EntryPath)
	if err != nil {
		return err
	}

	useSpinner := isTerminal(os.Stdout)

	for {
		var outcome checkOutcome
		if useSpinner {
			outcome = runWithSpinner(unit.EntryPath, func() checkOutcome {
				failed, err := runCheckOnce(cmd, unit, timings)
				return checkOutcome{failed: failed, err: err}
			})
		} else {
			failed, err := runCheckOnce(cmd, unit, timings)
			outcome = checkOutcome{failed: failed, err: err}
		}

		switch {
		case outcome.err != nil:
			fmt.Fprintln(cmd.ErrOrStderr(), outcome.err)
		case outcome.failed:
			fmt.Fprintln(cmd.OutOrStdout(), "FAIL")
		default:
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-events:
		}
	}
}
