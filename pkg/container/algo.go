package container

import "iter"

// FindIf returns a handle at the first element in [first, last) matching
// pred, or a clone of last when none does. first is not moved.
func FindIf[T any](first, last *Iterator[T], pred func(T) bool) *Iterator[T] {
	for it := first.Clone(); it.Valid() && !it.Equal(last); it.Next() {
		if v, _ := it.Get(); pred(v) {
			return it
		}
	}
	return last.Clone()
}

// CountIf counts the elements in [first, last) matching pred.
func CountIf[T any](first, last *ConstIterator[T], pred func(T) bool) int {
	n := 0
	for v := range Seq(first, last) {
		if pred(v) {
			n++
		}
	}
	return n
}

// ReplaceIf overwrites every element in [first, last) matching pred with v.
func ReplaceIf[T any](first, last *Iterator[T], pred func(T) bool, v T) {
	for p := range RefSeq(first, last) {
		if pred(*p) {
			*p = v
		}
	}
}

// ForEach calls fn with a pointer to every element in [first, last).
func ForEach[T any](first, last *Iterator[T], fn func(*T)) {
	for p := range RefSeq(first, last) {
		fn(p)
	}
}

// Seq yields copies of the elements in [first, last).
func Seq[T any](first, last *ConstIterator[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := first.Clone(); it.Valid() && !it.Equal(last); it.Next() {
			v, err := it.Get()
			if err != nil || !yield(v) {
				return
			}
		}
	}
}

// RefSeq yields pointers to the elements in [first, last).
func RefSeq[T any](first, last *Iterator[T]) iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for it := first.Clone(); it.Valid() && !it.Equal(last); it.Next() {
			p, err := it.Ptr()
			if err != nil || !yield(p) {
				return
			}
		}
	}
}

// Equal reports whether a and b hold equal elements in the same traversal
// order. Their kinds are not compared.
func Equal[T comparable](a, b View[T]) bool {
	if a.Size() != b.Size() {
		return false
	}
	ia, ib := a.CBegin(), b.CBegin()
	for ia.Valid() && ib.Valid() {
		va, _ := ia.Get()
		vb, _ := ib.Get()
		if va != vb {
			return false
		}
		ia.Next()
		ib.Next()
	}
	return ia.Valid() == ib.Valid()
}

// Values collects the elements of v in traversal order.
func Values[T any](v View[T]) []T {
	out := make([]T, 0, v.Size())
	for x := range v.All() {
		out = append(out, x)
	}
	return out
}
