// Package synced serializes access to a container so it can be shared between
// goroutines. It exposes the Enqueue/Dequeue/FreeSlots/UsedSlots contract
// used by the benchmark harness.
package synced

import (
	"io"
	"sync"

	"code.hybscloud.com/iox"
	"github.com/pkg/errors"

	"github.com/i5heu/GoFwdContainers/pkg/container"
)

// Container guards a container.Container with a mutex.
type Container[T any] struct {
	mu sync.Mutex
	c  container.Container[T]
}

// New wraps c. The caller must not use c directly afterwards.
func New[T any](c container.Container[T]) *Container[T] {
	return &Container[T]{c: c}
}

// TryEnqueue pushes v, returning iox.ErrWouldBlock if the container is full.
func (s *Container[T]) TryEnqueue(v T) error {
	s.mu.Lock()
	err := s.c.Push(v)
	s.mu.Unlock()
	if errors.Is(err, container.ErrAllocation) {
		return iox.ErrWouldBlock
	}
	return err
}

// Enqueue pushes v, backing off while the container is full.
func (s *Container[T]) Enqueue(v T) {
	var bo iox.Backoff
	for {
		err := s.TryEnqueue(v)
		if err == nil {
			return
		}
		if err != iox.ErrWouldBlock {
			panic(err)
		}
		bo.Wait()
	}
}

// Dequeue pops the next element. It returns false if the container is empty.
func (s *Container[T]) Dequeue() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.c.Pop()
	return v, err == nil
}

func (s *Container[T]) FreeSlots() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.FreeSlots()
}

func (s *Container[T]) UsedSlots() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.UsedSlots()
}

// Do runs fn with exclusive access to the wrapped container. Cursors obtained
// inside fn must not escape it.
func (s *Container[T]) Do(fn func(c container.Container[T])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.c)
}

// Serialize writes the contents under the lock.
func (s *Container[T]) Serialize(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Serialize(w)
}
