package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i5heu/GoFwdContainers/pkg/container"
	"github.com/i5heu/GoFwdContainers/pkg/queue"
	"github.com/i5heu/GoFwdContainers/pkg/stack"
)

func isEven(v int) bool { return v%2 == 0 }

func TestAlgorithmsOverStack(t *testing.T) {
	s := stack.New[int]()
	for i := 1; i <= 5; i++ {
		require.NoError(t, s.Push(i))
	}

	it := container.FindIf(s.Begin(), s.End(), isEven)
	v, err := it.Get()
	require.NoError(t, err)
	assert.Equal(t, 4, v)
	require.NoError(t, it.Set(3))

	r := container.ConstOf[int](s)
	first := container.FindIf(s.Begin(), s.End(), isEven).ReadOnly()
	v, err = first.Get()
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	miss := container.FindIf(s.Begin(), s.End(), func(v int) bool { return v == 0 })
	assert.True(t, miss.Equal(s.End()))

	assert.Equal(t, 1, container.CountIf(r.Begin(), r.End(), isEven))

	container.ReplaceIf(s.Begin(), s.End(), func(v int) bool { return !isEven(v) }, 99)
	assert.Equal(t, []int{99, 99, 99, 2, 99}, container.Values[int](s))

	container.ForEach(s.Begin(), s.End(), func(p *int) { *p++ })
	assert.Equal(t, []int{100, 100, 100, 3, 100}, container.Values[int](s))
}

func TestAlgorithmsRespectRange(t *testing.T) {
	q := queue.New[int]()
	for i := 1; i <= 6; i++ {
		require.NoError(t, q.Push(i))
	}
	// [begin, fourth) covers 1 2 3.
	last := q.Begin().Next().Next().Next()
	container.ForEach(q.Begin(), last, func(p *int) { *p *= 10 })
	assert.Equal(t, []int{10, 20, 30, 4, 5, 6}, container.Values[int](q))

	assert.Equal(t, 2, container.CountIf(q.CBegin(), last.ReadOnly(), func(v int) bool { return v > 10 }))

	var seen []int
	for v := range container.Seq(q.CBegin(), last.ReadOnly()) {
		seen = append(seen, v)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []int{10, 20}, seen)
}

func TestEqual(t *testing.T) {
	s := stack.New[int]()
	q := queue.New[int]()
	require.NoError(t, s.Push(1))
	require.NoError(t, q.Push(1))
	assert.True(t, container.Equal[int](s, q), "Equal compares elements only")

	require.NoError(t, s.Push(2))
	assert.False(t, container.Equal[int](s, q))
	require.NoError(t, q.Push(2))
	assert.False(t, container.Equal[int](s, q), "2 1 vs 1 2")
}
