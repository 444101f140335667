// Package stack provides a LIFO container over a singly-linked chain.
package stack

import (
	"io"
	"iter"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/i5heu/GoFwdContainers/internal/chain"
	"github.com/i5heu/GoFwdContainers/pkg/container"
)

var _ container.Container[int] = (*Stack[int])(nil)

// Stack is a last-in-first-out container. Traversal starts at the most
// recently pushed element. The zero value is an empty, unbounded stack.
//
// Stack is not safe for concurrent use; see package synced.
type Stack[T any] struct {
	top  *chain.Node[T]
	size uint64
	opts container.Options[T]
}

// New creates an empty stack.
func New[T any](opts ...container.Option[T]) *Stack[T] {
	return &Stack[T]{opts: container.NewOptions(opts...)}
}

// Kind returns container.KindStack.
func (s *Stack[T]) Kind() container.Kind {
	return container.KindStack
}

// Push puts v on top of the stack. It fails with container.ErrAllocation
// when the stack is at capacity.
func (s *Stack[T]) Push(v T) error {
	if s.opts.Full(s.size) {
		return errors.Wrapf(container.ErrAllocation, "stack at capacity %d", s.opts.Capacity)
	}
	s.top = chain.New(v, s.top)
	s.size++
	return nil
}

// Pop removes and returns the top element.
func (s *Stack[T]) Pop() (T, error) {
	if s.top == nil {
		var zero T
		return zero, container.ErrEmptyContainer
	}
	n := s.top
	s.top = n.Next
	n.Next = nil
	s.size--
	return n.Value, nil
}

// Front returns the top element.
func (s *Stack[T]) Front() (T, error) {
	if s.top == nil {
		var zero T
		return zero, container.ErrEmptyContainer
	}
	return s.top.Value, nil
}

// FrontPtr returns a pointer to the top element.
func (s *Stack[T]) FrontPtr() (*T, error) {
	if s.top == nil {
		return nil, container.ErrEmptyContainer
	}
	return &s.top.Value, nil
}

// Top is an alias for Front.
func (s *Stack[T]) Top() (T, error) {
	return s.Front()
}

func (s *Stack[T]) IsEmpty() bool {
	return s.size == 0
}

func (s *Stack[T]) Size() int {
	return int(s.size)
}

func (s *Stack[T]) FreeSlots() uint64 {
	return s.opts.FreeSlots(s.size)
}

func (s *Stack[T]) UsedSlots() uint64 {
	return s.size
}

// Clear drops every element.
func (s *Stack[T]) Clear() {
	chain.Release(s.top)
	s.top = nil
	s.size = 0
}

func (s *Stack[T]) Begin() *container.Iterator[T] {
	return container.NewIterator[T](&cursor[T]{node: s.top})
}

func (s *Stack[T]) End() *container.Iterator[T] {
	return container.NewIterator[T](&cursor[T]{})
}

func (s *Stack[T]) CBegin() *container.ConstIterator[T] {
	return container.NewConstIterator[T](&constCursor[T]{node: s.top})
}

func (s *Stack[T]) CEnd() *container.ConstIterator[T] {
	return container.NewConstIterator[T](&constCursor[T]{})
}

// All yields the elements from top to bottom.
func (s *Stack[T]) All() iter.Seq[T] {
	return container.Seq(s.CBegin(), s.CEnd())
}

// Refs yields pointers to the elements from top to bottom. Writes through
// them change the stack.
func (s *Stack[T]) Refs() iter.Seq[*T] {
	return container.RefSeq(s.Begin(), s.End())
}

// Clone returns a deep copy with the same options.
func (s *Stack[T]) Clone() (*Stack[T], error) {
	out := &Stack[T]{opts: s.opts}
	if err := out.CopyFrom(s); err != nil {
		return nil, err
	}
	return out, nil
}

// CopyFrom replaces the contents with a deep copy of src. If src does not
// fit the receiver's capacity the partial copy is released and the receiver
// is left as it was.
func (s *Stack[T]) CopyFrom(src *Stack[T]) error {
	if s == src {
		return nil
	}
	top, _, n, err := chain.Copy(src.top, s.opts.Capacity)
	if err != nil {
		return errors.Wrapf(container.ErrAllocation, "copy stack of %d: %v", src.size, err)
	}
	chain.Release(s.top)
	s.top, s.size = top, n
	return nil
}

// Assign copies other into s if other is a stack.
func (s *Stack[T]) Assign(other container.Container[T]) error {
	if other == nil {
		return errors.Wrap(container.ErrTypeMismatch, "assign nil to stack")
	}
	if k := other.Kind(); k != container.KindStack {
		glog.V(2).Infof("stack: rejected assignment from %s", k)
		return errors.Wrapf(container.ErrTypeMismatch, "assign %s to stack", k)
	}
	src, ok := other.(*Stack[T])
	if !ok {
		return errors.Wrapf(container.ErrTypeMismatch, "assign %T to stack", other)
	}
	return s.CopyFrom(src)
}

// MoveFrom takes over the chain of src, leaving src empty. The receiver keeps
// its own options; capacity is not checked.
func (s *Stack[T]) MoveFrom(src *Stack[T]) {
	if s == src {
		return
	}
	chain.Release(s.top)
	s.top, s.size = src.top, src.size
	src.top, src.size = nil, 0
}

// Take moves the contents into a new stack with the same options.
func (s *Stack[T]) Take() *Stack[T] {
	out := &Stack[T]{opts: s.opts}
	out.MoveFrom(s)
	return out
}

// Serialize writes the elements from top to bottom.
func (s *Stack[T]) Serialize(w io.Writer) error {
	return container.WriteTokens(w, s.CBegin(), s.CEnd(), s.opts.TokenCodec())
}

// Deserialize pushes every token from r in order, so the last token read
// ends up on top. On any failure the pushes made by this call are undone.
func (s *Stack[T]) Deserialize(r io.Reader) error {
	n, err := container.ReadTokens(r, s.opts.TokenCodec(), s.Push)
	if err != nil {
		for ; n > 0; n-- {
			s.Pop()
		}
		glog.V(2).Infof("stack: deserialize rolled back: %v", err)
		return err
	}
	return nil
}

// String returns the serialized form.
func (s *Stack[T]) String() string {
	return container.Format[T](s)
}
