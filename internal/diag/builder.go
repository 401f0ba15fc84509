package diag

import "dyva/internal/source"

// Builder accumulates a diagnostic's notes before it is reported exactly
// once, a fluent report-then-emit style.
type Builder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// ReportError starts a Builder for an Error-severity diagnostic.
func ReportError(r Reporter, code Code, site source.Span, message string) *Builder {
	return &Builder{reporter: r, diag: NewError(code, site, message)}
}

// ReportWarning starts a Builder for a Warning-severity diagnostic.
func ReportWarning(r Reporter, code Code, site source.Span, message string) *Builder {
	return &Builder{reporter: r, diag: New(Warning, code, site, message)}
}

// WithNote appends a note and returns the receiver for chaining.
func (b *Builder) WithNote(site source.Span, message string) *Builder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNote(site, message)
	return b
}

// Emit sends the accumulated diagnostic to the reporter exactly once.
func (b *Builder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag)
	}
	b.emitted = true
}

// Diagnostic returns the accumulated diagnostic without emitting it.
func (b *Builder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}
