package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside one file.
// All trivia anchoring is done in terms of spans; human-readable
// line/column pairs are derived on demand via File.LineIdx.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
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

// Contains reports whether other lies fully inside s.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}

// Cover extends s to include other. Spans from different files are left as is.
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

// Before reports whether s orders strictly before other: earlier start first,
// ties broken by the smaller (more specific) span.
func (s Span) Before(other Span) bool {
	if s.Start != other.Start {
		return s.Start < other.Start
	}
	return s.End < other.End
}
