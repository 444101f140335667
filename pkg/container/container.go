// Package container defines the contract shared by the sequential containers
// in this module: the cursor capabilities each container implements, the
// Iterator and ConstIterator handles callers use, and the container
// interfaces with their text serialization hooks.
//
// A typical traversal:
//
//	for it, end := s.Begin(), s.End(); !it.Equal(end); it.Next() {
//		p, _ := it.Ptr()
//		*p *= 2
//	}
package container

import (
	"io"
	"iter"
)

// View is the read path of a container.
type View[T any] interface {
	Kind() Kind

	// Front returns the element Pop would remove next.
	Front() (T, error)
	IsEmpty() bool
	Size() int

	// FreeSlots returns how many more elements fit before Push fails.
	FreeSlots() uint64
	// UsedSlots returns how many elements are stored.
	UsedSlots() uint64

	CBegin() *ConstIterator[T]
	CEnd() *ConstIterator[T]
	// All yields copies of the elements in traversal order.
	All() iter.Seq[T]

	// Serialize writes the elements in traversal order separated by a
	// single space.
	Serialize(w io.Writer) error
}

// Container is the full sequential container contract implemented by
// stack.Stack and queue.Queue.
type Container[T any] interface {
	View[T]

	Push(v T) error
	Pop() (T, error)
	FrontPtr() (*T, error)

	Begin() *Iterator[T]
	End() *Iterator[T]
	// Refs yields pointers into the nodes in traversal order.
	Refs() iter.Seq[*T]

	// Assign replaces the contents with a deep copy of other. It fails with
	// ErrTypeMismatch, leaving the receiver untouched, unless other is the
	// same kind of container.
	Assign(other Container[T]) error

	// Deserialize pushes every token read from r. On failure the container
	// is restored to its contents before the call.
	Deserialize(r io.Reader) error

	Clear()
}

// ConstRef is a read-only reference to a container. Its Begin and End give
// read-only handles; it has no mutators.
type ConstRef[T any] struct {
	v View[T]
}

// ConstOf returns a read-only reference to v.
func ConstOf[T any](v View[T]) *ConstRef[T] {
	return &ConstRef[T]{v: v}
}

func (r *ConstRef[T]) Kind() Kind                  { return r.v.Kind() }
func (r *ConstRef[T]) Front() (T, error)           { return r.v.Front() }
func (r *ConstRef[T]) IsEmpty() bool               { return r.v.IsEmpty() }
func (r *ConstRef[T]) Size() int                   { return r.v.Size() }
func (r *ConstRef[T]) FreeSlots() uint64           { return r.v.FreeSlots() }
func (r *ConstRef[T]) UsedSlots() uint64           { return r.v.UsedSlots() }
func (r *ConstRef[T]) Begin() *ConstIterator[T]    { return r.v.CBegin() }
func (r *ConstRef[T]) End() *ConstIterator[T]      { return r.v.CEnd() }
func (r *ConstRef[T]) CBegin() *ConstIterator[T]   { return r.v.CBegin() }
func (r *ConstRef[T]) CEnd() *ConstIterator[T]     { return r.v.CEnd() }
func (r *ConstRef[T]) All() iter.Seq[T]            { return r.v.All() }
func (r *ConstRef[T]) Serialize(w io.Writer) error { return r.v.Serialize(w) }

var _ View[int] = (*ConstRef[int])(nil)
