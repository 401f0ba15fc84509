// Command dyva is the driver for the dyva compiler front end: it exposes
// each pipeline stage (tokenize, parse, scope, lower) as its own
// subcommand plus a `check` command that runs the whole pipeline
// including imports, per spec.md §2/§9.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"dyva/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "dyva",
	Short: "dyva language front end",
	Long:  `dyva is an indentation-sensitive, expression-oriented language front end: lexer, parser, scoper, lowerer and IR analyses.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(scopeCmd)
	rootCmd.AddCommand(lowerCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 200, "maximum number of diagnostics to accumulate per module")
	rootCmd.PersistentFlags().Bool("preview", false, "show a caret-underlined source preview under each diagnostic")
	rootCmd.PersistentFlags().String("trace", "", "write a trace to this path (- for stdout)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace granularity (off|error|phase|detail|debug)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func wantColor(cmd *cobra.Command, out *os.File) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	return mode == "on" || (mode == "auto" && isTerminal(out))
}
