package diag

import (
	"sort"
)

// Bag collects diagnostics up to a fixed capacity.
type Bag struct {
	items []Diagnostic
	max   uint16
}

func NewBag(max int) *Bag {
	if max <= 0 {
		max = 1
	}
	return &Bag{
		items: make([]Diagnostic, 0, max),
		max:   uint16(max),
	}
}

// Add stores a diagnostic, honouring the capacity limit.
// Returns false when the diagnostic was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 {
	return b.max
}

func (b *Bag) Len() int {
	return len(b.items)
}

// HasErrors reports whether the bag holds at least one error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// Items returns the collected diagnostics in insertion order.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Sorted returns diagnostics ordered by file, then start offset, then code.
func (b *Bag) Sorted() []Diagnostic {
	out := make([]Diagnostic, len(b.items))
	copy(out, b.items)
	sort.SliceStable(out, func(i, j int) bool {
		a, c := out[i], out[j]
		if a.Primary.File != c.Primary.File {
			return a.Primary.File < c.Primary.File
		}
		if a.Primary.Start != c.Primary.Start {
			return a.Primary.Start < c.Primary.Start
		}
		return a.Code < c.Code
	})
	return out
}
