package lexer

import (
	"dyva/internal/diag"
	"dyva/internal/source"
)

// Options configures a Lexer. Reporter may be nil, in which case lexical
// errors are silently absorbed into Error-tagged tokens but never reported.
type Options struct {
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(diag.NewError(code, sp, msg))
	}
}
