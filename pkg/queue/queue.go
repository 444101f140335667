// Package queue provides a FIFO container over a singly-linked chain that
// tracks both of its ends.
package queue

import (
	"io"
	"iter"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/i5heu/GoFwdContainers/internal/chain"
	"github.com/i5heu/GoFwdContainers/pkg/container"
)

var _ container.Container[int] = (*Queue[int])(nil)

// Queue is a first-in-first-out container. Traversal runs from the front
// (next to pop) to the rear (last pushed). The zero value is an empty,
// unbounded queue.
//
// Queue is not safe for concurrent use; see package synced.
type Queue[T any] struct {
	front *chain.Node[T]
	rear  *chain.Node[T]
	size  uint64
	opts  container.Options[T]
}

// New creates an empty queue.
func New[T any](opts ...container.Option[T]) *Queue[T] {
	return &Queue[T]{opts: container.NewOptions(opts...)}
}

// Kind returns container.KindQueue.
func (q *Queue[T]) Kind() container.Kind {
	return container.KindQueue
}

// Push appends v at the rear. It fails with container.ErrAllocation when the
// queue is at capacity.
func (q *Queue[T]) Push(v T) error {
	if q.opts.Full(q.size) {
		return errors.Wrapf(container.ErrAllocation, "queue at capacity %d", q.opts.Capacity)
	}
	n := chain.New(v, nil)
	if q.rear == nil {
		q.front = n
	} else {
		q.rear.Next = n
	}
	q.rear = n
	q.size++
	return nil
}

// Pop removes and returns the front element.
func (q *Queue[T]) Pop() (T, error) {
	if q.front == nil {
		var zero T
		return zero, container.ErrEmptyContainer
	}
	n := q.front
	q.front = n.Next
	if q.front == nil {
		q.rear = nil
	}
	n.Next = nil
	q.size--
	return n.Value, nil
}

// Front returns the element Pop would remove next.
func (q *Queue[T]) Front() (T, error) {
	if q.front == nil {
		var zero T
		return zero, container.ErrEmptyContainer
	}
	return q.front.Value, nil
}

func (q *Queue[T]) FrontPtr() (*T, error) {
	if q.front == nil {
		return nil, container.ErrEmptyContainer
	}
	return &q.front.Value, nil
}

// Back returns the most recently pushed element.
func (q *Queue[T]) Back() (T, error) {
	if q.rear == nil {
		var zero T
		return zero, container.ErrEmptyContainer
	}
	return q.rear.Value, nil
}

func (q *Queue[T]) IsEmpty() bool {
	return q.size == 0
}

func (q *Queue[T]) Size() int {
	return int(q.size)
}

func (q *Queue[T]) FreeSlots() uint64 {
	return q.opts.FreeSlots(q.size)
}

func (q *Queue[T]) UsedSlots() uint64 {
	return q.size
}

// Clear drops every element.
func (q *Queue[T]) Clear() {
	chain.Release(q.front)
	q.front, q.rear, q.size = nil, nil, 0
}

func (q *Queue[T]) Begin() *container.Iterator[T] {
	return container.NewIterator[T](&cursor[T]{node: q.front})
}

func (q *Queue[T]) End() *container.Iterator[T] {
	return container.NewIterator[T](&cursor[T]{})
}

func (q *Queue[T]) CBegin() *container.ConstIterator[T] {
	return container.NewConstIterator[T](&constCursor[T]{node: q.front})
}

func (q *Queue[T]) CEnd() *container.ConstIterator[T] {
	return container.NewConstIterator[T](&constCursor[T]{})
}

// All yields the elements from front to rear.
func (q *Queue[T]) All() iter.Seq[T] {
	return container.Seq(q.CBegin(), q.CEnd())
}

// Refs yields pointers to the elements from front to rear.
func (q *Queue[T]) Refs() iter.Seq[*T] {
	return container.RefSeq(q.Begin(), q.End())
}

// Clone returns a deep copy with the same options.
func (q *Queue[T]) Clone() (*Queue[T], error) {
	out := &Queue[T]{opts: q.opts}
	if err := out.CopyFrom(q); err != nil {
		return nil, err
	}
	return out, nil
}

// CopyFrom replaces the contents with a deep copy of src. If src does not
// fit the receiver's capacity the partial copy is released and the receiver
// is left as it was.
func (q *Queue[T]) CopyFrom(src *Queue[T]) error {
	if q == src {
		return nil
	}
	front, rear, n, err := chain.Copy(src.front, q.opts.Capacity)
	if err != nil {
		return errors.Wrapf(container.ErrAllocation, "copy queue of %d: %v", src.size, err)
	}
	chain.Release(q.front)
	q.front, q.rear, q.size = front, rear, n
	return nil
}

// Assign copies other into q if other is a queue.
func (q *Queue[T]) Assign(other container.Container[T]) error {
	if other == nil {
		return errors.Wrap(container.ErrTypeMismatch, "assign nil to queue")
	}
	if k := other.Kind(); k != container.KindQueue {
		glog.V(2).Infof("queue: rejected assignment from %s", k)
		return errors.Wrapf(container.ErrTypeMismatch, "assign %s to queue", k)
	}
	src, ok := other.(*Queue[T])
	if !ok {
		return errors.Wrapf(container.ErrTypeMismatch, "assign %T to queue", other)
	}
	return q.CopyFrom(src)
}

// MoveFrom takes over the chain of src, leaving src empty. The receiver keeps
// its own options; capacity is not checked.
func (q *Queue[T]) MoveFrom(src *Queue[T]) {
	if q == src {
		return
	}
	chain.Release(q.front)
	q.front, q.rear, q.size = src.front, src.rear, src.size
	src.front, src.rear, src.size = nil, nil, 0
}

// Take moves the contents into a new queue with the same options.
func (q *Queue[T]) Take() *Queue[T] {
	out := &Queue[T]{opts: q.opts}
	out.MoveFrom(q)
	return out
}

// Serialize writes the elements from front to rear.
func (q *Queue[T]) Serialize(w io.Writer) error {
	return container.WriteTokens(w, q.CBegin(), q.CEnd(), q.opts.TokenCodec())
}

// Deserialize appends every token from r. On any failure the queue is cut
// back to the rear it had before the call.
func (q *Queue[T]) Deserialize(r io.Reader) error {
	rear, size := q.rear, q.size
	if _, err := container.ReadTokens(r, q.opts.TokenCodec(), q.Push); err != nil {
		q.truncate(rear, size)
		glog.V(2).Infof("queue: deserialize rolled back: %v", err)
		return err
	}
	return nil
}

// truncate drops everything after rear, which must be the node that was the
// rear when the queue held size elements.
func (q *Queue[T]) truncate(rear *chain.Node[T], size uint64) {
	if rear == nil {
		q.Clear()
		return
	}
	chain.Release(rear.Next)
	rear.Next = nil
	q.rear, q.size = rear, size
}

// String returns the serialized form.
func (q *Queue[T]) String() string {
	return container.Format[T](q)
}
