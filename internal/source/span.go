package source

import (
	"fmt"
)

type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// ShiftLeft moves s n bytes toward the start of the file. A shift larger
// than s.Start returns s unchanged.
func (s Span) ShiftLeft(n uint32) Span {
	if n > s.Start {
		return s
	}
	return Span{
		File:  s.File,
		Start: s.Start - n,
		End:   s.End - n,
	}
}

// ShiftRight moves s n bytes toward the end of the file. A shift larger
// than the span's length returns s unchanged.
func (s Span) ShiftRight(n uint32) Span {
	if n > s.Len() {
		return s
	}
	return Span{
		File:  s.File,
		Start: s.Start + n,
		End:   s.End + n,
	}
}

// ZeroideToStart collapses s to a zero-length span at its start.
func (s Span) ZeroideToStart() Span {
	s.End = s.Start
	return s
}

// ZeroideToEnd collapses s to a zero-length span at its end.
func (s Span) ZeroideToEnd() Span {
	s.Start = s.End
	return s
}

// Position is a single point in a source file: a file plus a byte index.
type Position struct {
	File FileID
	Byte uint32
}

// AtPosition returns an empty span starting and ending at p.
func AtPosition(p Position) Span {
	return Span{File: p.File, Start: p.Byte, End: p.Byte}
}

// Start_ returns the position at the beginning of the span.
func (s Span) Start_() Position { return Position{File: s.File, Byte: s.Start} }

// End_ returns the position just past the end of the span.
func (s Span) End_() Position { return Position{File: s.File, Byte: s.End} }

// Intersects reports whether s and other share at least one byte, or are
// both empty at the same position. Spans in different files never intersect.
func (s Span) Intersects(other Span) bool {
	if s.File != other.File {
		return false
	}
	if s.Empty() || other.Empty() {
		return s.Start >= other.Start && s.Start <= other.End ||
			other.Start >= s.Start && other.Start <= s.End
	}
	return s.Start < other.End && other.Start < s.End
}

// Intersection returns the overlapping range of s and other, and whether one
// exists. Spans in different files never intersect.
func (s Span) Intersection(other Span) (Span, bool) {
	if !s.Intersects(other) {
		return Span{}, false
	}
	start := s.Start
	if other.Start > start {
		start = other.Start
	}
	end := s.End
	if other.End < end {
		end = other.End
	}
	return Span{File: s.File, Start: start, End: end}, true
}

// ExtendedToCover returns the smallest span covering both s and other. It is
// an alias for Cover kept for the vocabulary used by the lowerer and scoper.
func (s Span) ExtendedToCover(other Span) Span {
	return s.Cover(other)
}

// ExtendedUpTo stretches s so that its end becomes p, provided p lies in the
// same file and at or beyond s.End; otherwise s is returned unchanged.
func (s Span) ExtendedUpTo(p Position) Span {
	if p.File != s.File || p.Byte < s.End {
		return s
	}
	s.End = p.Byte
	return s
}
