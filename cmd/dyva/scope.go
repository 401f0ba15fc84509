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
	"dyva/internal/scope"
	"dyva/internal/source"
)

var scopeCmd = &cobra.Command{
	Use:   "scope <file.dyva>",
	Short: "Parse a dyva source file and run scope resolution over it",
	Args:  cobra.ExactArgs(1),
	RunE:  runScope,
}

func init() {
	scopeCmd.Flags().Bool("library", false, "parse as a library module (declarations) instead of a main module (statements)")
}

func runScope(cmd *cobra.Command, args []string) error {
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

	if !bag.ContainsError() {
		scope.Run(module)
		fmt.Fprintln(cmd.OutOrStdout(), "scope resolution complete")
	}

	if bag.Len() > 0 {
		opts := diagfmt.Options{Color: wantColor(cmd, os.Stderr), Preview: previewFlag(cmd)}
		diagfmt.Format(cmd.ErrOrStderr(), bag, fs, opts)
	}
	if bag.ContainsError() {
		cmd.SilenceUsage = true
		return fmt.Errorf("scoping failed")
	}
	return nil
}
