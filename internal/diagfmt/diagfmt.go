// Package diagfmt renders a diag.Bag to the GNU-style one-line format of
// spec.md §6.4, plus an optional caret-underlined source preview. It is an
// outer-surface convenience for cmd/dyva's stderr output, never called by
// internal/program: only accumulation is specified by the core.
package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"dyva/internal/diag"
	"dyva/internal/source"
)

// PathMode controls how a diagnostic's file name is rendered.
type PathMode uint8

const (
	PathModeAbsolute PathMode = iota
	PathModeRelative
	PathModeBasename
)

// Options configures Format.
type Options struct {
	Color    bool
	PathMode PathMode
	BaseDir  string // used when PathMode is PathModeRelative
	Preview  bool   // print the offending source line with a caret underline
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	noteColor    = color.New(color.FgCyan)
)

// Format writes every diagnostic in bag, in fs's §3.5 total order, to w.
func Format(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts Options) {
	for _, d := range bag.Sorted(fs) {
		writeOne(w, d, fs, opts)
		for _, n := range d.Notes {
			note := diag.New(diag.SeverityNote, d.Code, n.Site, n.Message)
			writeOne(w, note, fs, opts)
		}
	}
}

func writeOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts Options) {
	fmt.Fprintln(w, headerLine(d, fs, opts))
	if opts.Preview && fs != nil {
		if line := previewLine(d, fs); line != "" {
			fmt.Fprintln(w, line)
		}
	}
}

// headerLine renders `<file>:<line>.<column>[-[<line>:]<column>]: <level>: <message>`.
func headerLine(d diag.Diagnostic, fs *source.FileSet, opts Options) string {
	path := "<unknown>"
	if fs != nil {
		path = displayPath(fs.Get(d.Site.File).Path, opts)
	}
	start, end := source.LineCol{}, source.LineCol{}
	if fs != nil {
		start, end = fs.Resolve(d.Site)
	}

	loc := fmt.Sprintf("%d.%d", start.Line, start.Col)
	if !d.Site.Empty() {
		switch {
		case end.Line == start.Line && end.Col != start.Col:
			loc += fmt.Sprintf("-%d", end.Col)
		case end.Line != start.Line:
			loc += fmt.Sprintf("-%d:%d", end.Line, end.Col)
		}
	}

	level := levelText(d.Severity, opts.Color)
	return fmt.Sprintf("%s:%s: %s: %s", path, loc, level, d.Message)
}

func levelText(sev diag.Severity, useColor bool) string {
	if !useColor {
		return sev.String()
	}
	switch sev {
	case diag.Error:
		return errorColor.Sprint(sev.String())
	case diag.Warning:
		return warningColor.Sprint(sev.String())
	default:
		return noteColor.Sprint(sev.String())
	}
}

func displayPath(path string, opts Options) string {
	switch opts.PathMode {
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeRelative:
		if opts.BaseDir == "" {
			return path
		}
		if rel, err := filepath.Rel(opts.BaseDir, path); err == nil {
			return rel
		}
		return path
	default:
		return path
	}
}

// previewLine renders the offending source line followed by a caret
// underline spanning the diagnostic's columns, accounting for wide
// runes via go-runewidth so the underline lines up visually.
func previewLine(d diag.Diagnostic, fs *source.FileSet) string {
	file := fs.Get(d.Site.File)
	start, end := fs.Resolve(d.Site)
	text := file.GetLine(start.Line)
	if text == "" {
		return ""
	}

	runes := []rune(text)
	startCol := int(start.Col) - 1
	endCol := int(end.Col) - 1
	if start.Line != end.Line || endCol <= startCol {
		endCol = startCol + 1
	}
	if startCol < 0 {
		startCol = 0
	}
	if endCol > len(runes) {
		endCol = len(runes)
	}

	prefixWidth := runewidth.StringWidth(string(runes[:min(startCol, len(runes))]))
	markWidth := 1
	if endCol > startCol {
		markWidth = runewidth.StringWidth(string(runes[startCol:endCol]))
	}

	underline := make([]byte, 0, prefixWidth+markWidth)
	for i := 0; i < prefixWidth; i++ {
		underline = append(underline, ' ')
	}
	underline = append(underline, '^')
	for i := 1; i < markWidth; i++ {
		underline = append(underline, '~')
	}

	return text + "\n" + string(underline)
}
