package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dyva/internal/analysis"
	"dyva/internal/ast"
	"dyva/internal/diag"
	"dyva/internal/diagfmt"
	"dyva/internal/ir"
	"dyva/internal/lexer"
	"dyva/internal/lower"
	"dyva/internal/parser"
	"dyva/internal/scope"
	"dyva/internal/source"
)

var lowerCmd = &cobra.Command{
	Use:   "lower <file.dyva>",
	Short: "Run the full parse/scope/lower/analysis pipeline and print the resulting IR",
	Args:  cobra.ExactArgs(1),
	RunE:  runLower,
}

func init() {
	lowerCmd.Flags().Bool("library", false, "parse as a library module (declarations) instead of a main module (statements)")
}

func runLower(cmd *cobra.Command, args []string) error {
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

	var mod *ir.Module
	if !bag.ContainsError() {
		scope.Run(module)
		mod = lower.New(module, reporter).Run()
		analysis.Run(mod, reporter)
	}

	if mod != nil && !bag.ContainsError() {
		if err := ir.Print(cmd.OutOrStdout(), mod); err != nil {
			return fmt.Errorf("failed to print ir: %w", err)
		}
	}

	if bag.Len() > 0 {
		opts := diagfmt.Options{Color: wantColor(cmd, os.Stderr), Preview: previewFlag(cmd)}
		diagfmt.Format(cmd.ErrOrStderr(), bag, fs, opts)
	}
	if bag.ContainsError() {
		cmd.SilenceUsage = true
		return fmt.Errorf("lowering failed")
	}
	return nil
}
