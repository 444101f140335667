package main

import (
	"sync/atomic"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"

	"github.com/i5heu/GoFwdContainers/pkg/container"
	"github.com/i5heu/GoFwdContainers/pkg/queue"
	"github.com/i5heu/GoFwdContainers/pkg/stack"
	"github.com/i5heu/GoFwdContainers/pkg/synced"
)

// getImplementations enumerates the containers the bench knows about.
func getImplementations() []Implementation[*int, target] {
	return []Implementation[*int, target]{
		{
			name:        "SyncedStack",
			pkgName:     "stack",
			kind:        container.KindStack.String(),
			description: "Linked stack behind a mutex; Dequeue pops the newest element.",
			features:    []string{"MPMC", "LIFO", "Bounded"},
			newTarget: func(capacity uint64) target {
				return synced.New[*int](stack.New(container.WithCapacity[*int](capacity)))
			},
		},
		{
			name:        "SyncedQueue",
			pkgName:     "queue",
			kind:        container.KindQueue.String(),
			description: "Linked queue behind a mutex.",
			features:    []string{"MPMC", "FIFO", "Bounded"},
			newTarget: func(capacity uint64) target {
				return synced.New[*int](queue.New(container.WithCapacity[*int](capacity)))
			},
		},
		{
			name:        "LFQ SPSC",
			pkgName:     "lfq",
			kind:        "baseline",
			description: "Bounded lock-free ring from code.hybscloud.com/lfq, used as a reference point.",
			features:    []string{"SPSC", "FIFO", "Bounded", "Lock-Free"},
			newTarget: func(capacity uint64) target {
				return newSPSC[*int](capacity)
			},
		},
	}
}

// spsc adapts lfq.SPSC to the harness contract. Its Enqueue spins with
// iox.Backoff while the ring is full. Only one producer and one consumer may
// use it at a time.
type spsc[T any] struct {
	q        lfq.SPSC[T]
	capacity uint64

	// used may run ahead of the ring by one in-flight Enqueue.
	used atomic.Int64
}

func newSPSC[T any](capacity uint64) *spsc[T] {
	s := &spsc[T]{capacity: capacity}
	s.q.Init(int(capacity))
	return s
}

func (s *spsc[T]) Enqueue(v T) {
	s.used.Add(1)
	var bo iox.Backoff
	for {
		err := s.q.Enqueue(&v)
		if err == nil {
			return
		}
		if !iox.IsWouldBlock(err) {
			s.used.Add(-1)
			panic(err)
		}
		bo.Wait()
	}
}

func (s *spsc[T]) Dequeue() (T, bool) {
	v, err := s.q.Dequeue()
	if err != nil {
		var zero T
		return zero, false
	}
	s.used.Add(-1)
	return v, true
}

func (s *spsc[T]) UsedSlots() uint64 {
	return uint64(max(s.used.Load(), 0))
}

func (s *spsc[T]) FreeSlots() uint64 {
	used := s.UsedSlots()
	if used >= s.capacity {
		return 0
	}
	return s.capacity - used
}
