package diag

import (
	"sort"
	"strings"

	"dyva/internal/source"
)

// Bag accumulates diagnostics in insertion order, per §3.5 ("A module
// aggregates diagnostics in insertion order and remembers whether any is an
// error").
type Bag struct {
	items        []Diagnostic
	containsError bool
}

// NewBag returns an empty Bag.
func NewBag() *Bag { return &Bag{} }

// Add appends a diagnostic and updates ContainsError.
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
	if d.Severity == Error {
		b.containsError = true
	}
}

// ContainsError reports whether any diagnostic added so far has Error severity.
func (b *Bag) ContainsError() bool { return b.containsError }

// Len returns the number of diagnostics accumulated.
func (b *Bag) Len() int { return len(b.items) }

// Items returns the diagnostics in insertion order. The caller must not
// mutate the returned slice.
func (b *Bag) Items() []Diagnostic { return b.items }

// Merge appends every diagnostic from other, preserving relative order.
func (b *Bag) Merge(other *Bag) {
	for _, d := range other.items {
		b.Add(d)
	}
}

// Sorted returns a copy of the diagnostics in the total order required by
// §3.5: (file-name, start position, reverse level, message, notes). Notes
// break remaining ties by comparing their rendered text, which is stable
// because notes are themselves ordered by insertion.
func (b *Bag) Sorted(fs *source.FileSet) []Diagnostic {
	out := make([]Diagnostic, len(b.items))
	copy(out, b.items)

	name := func(d Diagnostic) string {
		if fs == nil {
			return ""
		}
		return fs.Get(d.Site.File).Path
	}
	notesKey := func(d Diagnostic) string {
		parts := make([]string, len(d.Notes))
		for i, n := range d.Notes {
			parts[i] = n.Message
		}
		return strings.Join(parts, "\x00")
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i], out[j]
		if ni, nj := name(di), name(dj); ni != nj {
			return ni < nj
		}
		if di.Site.Start != dj.Site.Start {
			return di.Site.Start < dj.Site.Start
		}
		// "reverse level": Error sorts before Warning sorts before Note.
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		if di.Message != dj.Message {
			return di.Message < dj.Message
		}
		return notesKey(di) < notesKey(dj)
	})
	return out
}
