package testbench

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Target is a type constraint for anything the harness can drive. It is only
// used at compile time; targets are never stored in a runtime interface.
type Target[T any] interface {
	// Enqueue adds an element and blocks while the target is full.
	Enqueue(T)

	// Dequeue removes the next element in the target's own order (LIFO for a
	// stack, FIFO for a queue). It returns false if nothing is available.
	Dequeue() (T, bool)

	// FreeSlots returns how many more elements fit before the target is full.
	FreeSlots() uint64

	// UsedSlots returns how many elements are currently held.
	UsedSlots() uint64
}

// Config is only about concurrency: how many producers, how many consumers.
type Config struct {
	NumProducers int
	NumConsumers int
}

// Result is what one timed run measured.
type Result struct {
	Produced int64
	Consumed int64
	Elapsed  time.Duration
	// Leftover is UsedSlots after consumers finished draining.
	Leftover uint64
}

// Throughput is consumed messages per second.
func (r Result) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Consumed) / r.Elapsed.Seconds()
}

// NsPerOp is the mean wall time per consumed message.
func (r Result) NsPerOp() float64 {
	if r.Consumed == 0 {
		return 0
	}
	return float64(r.Elapsed.Nanoseconds()) / float64(r.Consumed)
}

// RunTimedTest spawns producers and consumers that run until ctx expires or
// testDuration passes, whichever is first. Once production stops, consumers
// drain whatever is left in the target.
func RunTimedTest[T any, Q Target[T]](
	ctx context.Context,
	q Q,
	cfg Config,
	testDuration time.Duration,
	valueGenerator func(int) T,
) Result {
	ctx, cancel := context.WithTimeout(ctx, testDuration)
	defer cancel()

	var (
		produced, consumed atomic.Int64
		msgIndex           atomic.Int64
		productionDone     atomic.Bool
		producersExited    atomic.Bool
	)

	start := time.Now()

	var prodWg sync.WaitGroup
	prodWg.Add(cfg.NumProducers)
	for range cfg.NumProducers {
		go func() {
			defer prodWg.Done()
			for !productionDone.Load() {
				idx := msgIndex.Add(1) - 1
				q.Enqueue(valueGenerator(int(idx)))
				produced.Add(1)
			}
		}()
	}

	// Consumers keep going until every producer has returned and the target
	// reads empty. A producer can sit in a blocking Enqueue after the deadline,
	// so consumers must not stop before that.
	var consWg sync.WaitGroup
	consWg.Add(cfg.NumConsumers)
	for range cfg.NumConsumers {
		go func() {
			defer consWg.Done()
			for {
				exited := producersExited.Load()
				if _, ok := q.Dequeue(); ok {
					consumed.Add(1)
					continue
				}
				if exited {
					return
				}
				runtime.Gosched()
			}
		}()
	}

	<-ctx.Done()
	productionDone.Store(true)
	prodWg.Wait()
	producersExited.Store(true)
	consWg.Wait()

	return Result{
		Produced: produced.Load(),
		Consumed: consumed.Load(),
		Elapsed:  time.Since(start),
		Leftover: q.UsedSlots(),
	}
}
