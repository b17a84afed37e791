package graph

// inlineCap is the largest fan-out stored without a heap allocation.
// Adjacency lists in road-like routing graphs rarely exceed 10 outgoing
// edges, so the common case stays inline.
const inlineCap = 10

// SmallArray is a compact array that keeps up to inlineCap elements in an
// inline buffer and spills to a heap-allocated slice beyond that. The zero
// value is an empty array and allocates nothing.
type SmallArray[T any] struct {
	n      int
	inline [inlineCap]T
	spill  []T
}

// Len returns the number of stored elements.
func (a *SmallArray[T]) Len() int { return a.n }

// Empty reports whether the array holds no elements.
func (a *SmallArray[T]) Empty() bool { return a.n == 0 }

// Push appends v. Amortized O(1).
func (a *SmallArray[T]) Push(v T) {
	if a.n < inlineCap {
		a.inline[a.n] = v
	} else {
		if a.n == inlineCap && len(a.spill) == 0 {
			a.spill = make([]T, 0, inlineCap)
		}
		a.spill = append(a.spill, v)
	}
	a.n++
}

// Pop removes and returns the last element. The second return is false when
// the array is empty.
func (a *SmallArray[T]) Pop() (T, bool) {
	var zero T
	if a.n == 0 {
		return zero, false
	}
	a.n--
	if a.n >= inlineCap {
		v := a.spill[a.n-inlineCap]
		a.spill = a.spill[:a.n-inlineCap]
		return v, true
	}
	v := a.inline[a.n]
	a.inline[a.n] = zero
	return v, true
}

// At returns the element at index i. Panics when i is out of range, matching
// slice indexing semantics.
func (a *SmallArray[T]) At(i int) T {
	if i < 0 || i >= a.n {
		panic("graph: SmallArray index out of range")
	}
	if i < inlineCap {
		return a.inline[i]
	}
	return a.spill[i-inlineCap]
}

// Set overwrites the element at index i.
func (a *SmallArray[T]) Set(i int, v T) {
	if i < 0 || i >= a.n {
		panic("graph: SmallArray index out of range")
	}
	if i < inlineCap {
		a.inline[i] = v
		return
	}
	a.spill[i-inlineCap] = v
}

// Swap exchanges the elements at i and j.
func (a *SmallArray[T]) Swap(i, j int) {
	vi, vj := a.At(i), a.At(j)
	a.Set(i, vj)
	a.Set(j, vi)
}

// Slice returns a copy of the contents as a plain slice. Returns nil when
// empty so callers can distinguish the zero-allocation state.
func (a *SmallArray[T]) Slice() []T {
	if a.n == 0 {
		return nil
	}
	out := make([]T, 0, a.n)
	for i := 0; i < a.n; i++ {
		out = append(out, a.At(i))
	}
	return out
}
