package ast

// Arena is an append-only store addressed by 1-based uint32 indices.
// Index 0 is reserved for "no value" so zero IDs stay invalid.
type Arena[T any] struct {
	data []T
}

// NewArena creates an *Arena[T] with capacity capHint (zero allowed).
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate stores value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return uint32(len(a.data))
}

// Get returns a pointer to the element, or nil for index 0.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

// Slice exposes the backing storage. Read-only by convention.
func (a *Arena[T]) Slice() []T {
	return a.data
}

func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data))
}
