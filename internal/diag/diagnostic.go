package diag

import "dyva/internal/source"

// Note is a sub-diagnostic; its Severity is always Note (enforced by
// Diagnostic.WithNote, the only constructor for notes).
type Note struct {
	Site    source.Span
	Message string
}

// Diagnostic is the (level, message, site, notes) tuple of §3.5.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Site     source.Span
	Notes    []Note
}

// New constructs a Diagnostic with no notes.
func New(sev Severity, code Code, site source.Span, message string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Message: message, Site: site}
}

// NewError is a shortcut for the common case of an Error-severity diagnostic.
func NewError(code Code, site source.Span, message string) Diagnostic {
	return New(Error, code, site, message)
}

// WithNote appends a Note-severity sub-diagnostic and returns the receiver.
func (d Diagnostic) WithNote(site source.Span, message string) Diagnostic {
	d.Notes = append(d.Notes, Note{Site: site, Message: message})
	return d
}
