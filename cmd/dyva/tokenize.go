package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dyva/internal/diag"
	"dyva/internal/diagfmt"
	"dyva/internal/lexer"
	"dyva/internal/source"
	"dyva/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file.dyva>",
	Short: "Tokenize a dyva source file and print its token stream",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	fs := source.NewFileSetWithBase(".")
	fileID, err := fs.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}
	file := fs.Get(fileID)

	bag := diag.NewBag()
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	out := cmd.OutOrStdout()
	for {
		t := lx.Next()
		fmt.Fprintf(out, "%-14s %s\n", t.Tag, tokenText(t))
		if t.Tag == token.EOF {
			break
		}
	}

	if bag.Len() > 0 {
		opts := diagfmt.Options{Color: wantColor(cmd, os.Stderr)}
		diagfmt.Format(cmd.ErrOrStderr(), bag, fs, opts)
	}
	if bag.ContainsError() {
		cmd.SilenceUsage = true
		return fmt.Errorf("tokenization failed")
	}
	return nil
}

func tokenText(t token.Token) string {
	if t.Text == "" {
		return "<none>"
	}
	return t.Text
}
