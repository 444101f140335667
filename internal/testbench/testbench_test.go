package testbench

import (
	"context"
	"testing"
	"time"

	"github.com/i5heu/GoFwdContainers/pkg/container"
	"github.com/i5heu/GoFwdContainers/pkg/queue"
	"github.com/i5heu/GoFwdContainers/pkg/stack"
	"github.com/i5heu/GoFwdContainers/pkg/synced"
)

func TestRunTimedTestDrains(t *testing.T) {
	for _, tc := range []struct {
		name string
		c    container.Container[int]
	}{
		{"stack", stack.New(container.WithCapacity[int](8))},
		{"queue", queue.New(container.WithCapacity[int](8))},
	} {
		t.Run(tc.name, func(t *testing.T) {
			target := synced.New(tc.c)
			res := RunTimedTest(context.Background(), target, Config{NumProducers: 3, NumConsumers: 2},
				50*time.Millisecond, func(i int) int { return i })

			if res.Produced == 0 {
				t.Fatalf("nothing produced")
			}
			if res.Produced != res.Consumed {
				t.Fatalf("produced=%d consumed=%d", res.Produced, res.Consumed)
			}
			if res.Leftover != 0 {
				t.Fatalf("expected empty target after drain, %d left", res.Leftover)
			}
			if res.Throughput() <= 0 || res.NsPerOp() <= 0 {
				t.Fatalf("bad derived metrics: %+v", res)
			}
		})
	}
}

func TestRunTimedTestHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	target := synced.New[int](queue.New[int]())
	start := time.Now()
	res := RunTimedTest(ctx, target, Config{NumProducers: 1, NumConsumers: 1}, time.Minute, func(i int) int { return i })
	if time.Since(start) > 10*time.Second {
		t.Fatalf("cancelled context did not stop the run")
	}
	if res.Produced != res.Consumed {
		t.Fatalf("produced=%d consumed=%d", res.Produced, res.Consumed)
	}
}

func TestResultZero(t *testing.T) {
	var r Result
	if r.Throughput() != 0 || r.NsPerOp() != 0 {
		t.Fatalf("zero result should report zero metrics")
	}
}
