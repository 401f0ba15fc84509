package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dyva/internal/ast"
	"dyva/internal/diag"
	"dyva/internal/diagfmt"
	"dyva/internal/lexer"
	"dyva/internal/parser"
	"dyva/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.dyva>",
	Short: "Parse a dyva source file and report the resulting node counts",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Bool("library", false, "parse as a library module (declarations) instead of a main module (statements)")
}

func runParse(cmd *cobra.Command, args []string) error {
	asMain, err := libraryFlagToAsMain(cmd)
	if err != nil {
		return err
	}

	fs := source.NewFileSetWithBase(".")
	fileID, err := fs.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}
	file := fs.Get(fileID)

	bag := diag.NewBag()
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})

	interner := source.NewInterner()
	module := ast.NewModule(0, file, asMain, interner)
	parser.ParseFile(lx, module, parser.Options{Reporter: reporter, MaxErrors: 200})

	if asMain {
		fmt.Fprintf(cmd.OutOrStdout(), "parsed %d top-level statement(s)\n", len(module.Stmts))
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "parsed %d top-level declaration(s)\n", len(module.Decls))
	}

	if bag.Len() > 0 {
		opts := diagfmt.Options{Color: wantColor(cmd, os.Stderr), Preview: previewFlag(cmd)}
		diagfmt.Format(cmd.ErrOrStderr(), bag, fs, opts)
	}
	if bag.ContainsError() {
		cmd.SilenceUsage = true
		return fmt.Errorf("parsing failed")
	}
	return nil
}

func libraryFlagToAsMain(cmd *cobra.Command) (bool, error) {
	lib, err := cmd.Flags().GetBool("library")
	if err != nil {
		return false, fmt.Errorf("failed to get library flag: %w", err)
	}
	return !lib, nil
}

func previewFlag(cmd *cobra.Command) bool {
	v, _ := cmd.Root().PersistentFlags().GetBool("preview")
	return v
}
