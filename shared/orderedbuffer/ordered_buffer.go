package orderedbuffer

import (
	"slices"
	"sort"
)

type CompareFunc[T any] func(a, b T) int

// OrderedBoundedBuffer keeps the maxBufLen greatest values it has seen, in
// ascending order. Inserting into a full buffer evicts the smallest value.
type OrderedBoundedBuffer[T any] struct {
	data      []T
	maxBufLen int
	compare   CompareFunc[T]
}

func NewOrderedBoundedBuffer[T any](maxBufLen int, cmp CompareFunc[T]) *OrderedBoundedBuffer[T] {
	if maxBufLen <= 0 {
		panic("maxBufLen should be greater than 0")
	}
	return &OrderedBoundedBuffer[T]{
		data:      make([]T, 0, maxBufLen+1),
		maxBufLen: maxBufLen,
		compare:   cmp,
	}
}

// Insert adds val and returns the value evicted to make room, if any. Equal
// values keep insertion order, so among ties the earliest is evicted first.
func (b *OrderedBoundedBuffer[T]) Insert(val T) (evicted T, ok bool) {
	idx := sort.Search(len(b.data), func(i int) bool {
		return b.compare(val, b.data[i]) < 0
	})
	b.data = slices.Insert(b.data, idx, val)

	if len(b.data) > b.maxBufLen {
		evicted = b.data[0]
		b.data = slices.Delete(b.data, 0, 1)
		return evicted, true
	}
	return evicted, false
}

func (b *OrderedBoundedBuffer[T]) Len() int {
	return len(b.data)
}

// Ascending returns a copy of the buffered values, smallest first.
func (b *OrderedBoundedBuffer[T]) Ascending() []T {
	return slices.Clone(b.data)
}

// Descending returns a copy of the buffered values, greatest first.
func (b *OrderedBoundedBuffer[T]) Descending() []T {
	out := slices.Clone(b.data)
	slices.Reverse(out)
	return out
}
