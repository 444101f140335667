package container_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i5heu/GoFwdContainers/pkg/container"
	"github.com/i5heu/GoFwdContainers/pkg/queue"
	"github.com/i5heu/GoFwdContainers/pkg/stack"
)

// Implementation describes one container kind under test.
type Implementation struct {
	name     string
	kind     container.Kind
	features []string
	// order maps a push sequence to the expected traversal order.
	order        func(pushed []int) []int
	newContainer func(opts ...container.Option[int]) container.Container[int]
}

func getImplementations() []Implementation {
	return []Implementation{
		{
			name:     "Stack",
			kind:     container.KindStack,
			features: []string{"LIFO"},
			order: func(pushed []int) []int {
				out := slices.Clone(pushed)
				slices.Reverse(out)
				return out
			},
			newContainer: func(opts ...container.Option[int]) container.Container[int] {
				return stack.New(opts...)
			},
		},
		{
			name:     "Queue",
			kind:     container.KindQueue,
			features: []string{"FIFO"},
			order: func(pushed []int) []int {
				return slices.Clone(pushed)
			},
			newContainer: func(opts ...container.Option[int]) container.Container[int] {
				return queue.New(opts...)
			},
		},
	}
}

// withAllContainers runs fn once per implementation as a subtest.
func withAllContainers(t *testing.T, fn func(t *testing.T, impl Implementation)) {
	t.Helper()
	for _, impl := range getImplementations() {
		t.Run(impl.name, func(t *testing.T) {
			fn(t, impl)
		})
	}
}

func fill(t *testing.T, c container.Container[int], vals ...int) {
	t.Helper()
	for _, v := range vals {
		require.NoError(t, c.Push(v))
	}
}

func TestTraversalOrder(t *testing.T) {
	withAllContainers(t, func(t *testing.T, impl Implementation) {
		pushed := []int{4, 8, 15, 16, 23, 42}
		c := impl.newContainer()
		fill(t, c, pushed...)

		want := impl.order(pushed)
		if diff := cmp.Diff(want, container.Values[int](c)); diff != "" {
			t.Errorf("All() mismatch (-want +got):\n%s", diff)
		}

		var got []int
		for it, end := c.Begin(), c.End(); !it.Equal(end); it.Next() {
			v, err := it.Get()
			require.NoError(t, err)
			got = append(got, v)
		}
		assert.Equal(t, want, got)

		got = got[:0]
		for it, end := c.CBegin(), c.CEnd(); !it.Equal(end); it.Next() {
			v, err := it.Get()
			require.NoError(t, err)
			got = append(got, v)
		}
		assert.Equal(t, want, got)
	})
}

func TestPopOrderMatchesTraversal(t *testing.T) {
	withAllContainers(t, func(t *testing.T, impl Implementation) {
		pushed := []int{1, 2, 3, 4, 5}
		c := impl.newContainer()
		fill(t, c, pushed...)

		for _, want := range impl.order(pushed) {
			front, err := c.Front()
			require.NoError(t, err)
			assert.Equal(t, want, front)
			got, err := c.Pop()
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
		assert.True(t, c.IsEmpty())
		assert.Zero(t, c.Size())
	})
}

func TestEmptyContainerErrors(t *testing.T) {
	withAllContainers(t, func(t *testing.T, impl Implementation) {
		c := impl.newContainer()
		_, err := c.Pop()
		assert.True(t, errors.Is(err, container.ErrEmptyContainer))
		_, err = c.Front()
		assert.True(t, errors.Is(err, container.ErrEmptyContainer))
		_, err = c.FrontPtr()
		assert.True(t, errors.Is(err, container.ErrEmptyContainer))
		assert.True(t, c.Begin().Equal(c.End()))
		assert.True(t, c.CBegin().Equal(c.CEnd()))
	})
}

func TestFrontPtrWritesThrough(t *testing.T) {
	withAllContainers(t, func(t *testing.T, impl Implementation) {
		c := impl.newContainer()
		fill(t, c, 1, 2)
		p, err := c.FrontPtr()
		require.NoError(t, err)
		*p = 100
		v, err := c.Pop()
		require.NoError(t, err)
		assert.Equal(t, 100, v)
	})
}

func TestCapacity(t *testing.T) {
	withAllContainers(t, func(t *testing.T, impl Implementation) {
		c := impl.newContainer(container.WithCapacity[int](2))
		assert.Equal(t, uint64(2), c.FreeSlots())
		fill(t, c, 1, 2)
		assert.Zero(t, c.FreeSlots())
		assert.Equal(t, uint64(2), c.UsedSlots())

		err := c.Push(3)
		require.Error(t, err)
		assert.True(t, errors.Is(err, container.ErrAllocation))
		assert.Equal(t, 2, c.Size())

		_, err = c.Pop()
		require.NoError(t, err)
		assert.NoError(t, c.Push(3))
	})
}

func TestClear(t *testing.T) {
	withAllContainers(t, func(t *testing.T, impl Implementation) {
		c := impl.newContainer()
		fill(t, c, 1, 2, 3)
		c.Clear()
		assert.True(t, c.IsEmpty())
		assert.True(t, c.Begin().Equal(c.End()))
		fill(t, c, 7)
		assert.Equal(t, []int{7}, container.Values[int](c))
	})
}

func TestAssignSameKindCopies(t *testing.T) {
	withAllContainers(t, func(t *testing.T, impl Implementation) {
		src := impl.newContainer()
		fill(t, src, 1, 2, 3)
		dst := impl.newContainer()
		fill(t, dst, 9)

		require.NoError(t, dst.Assign(src))
		assert.True(t, container.Equal[int](src, dst))

		// Independence in both directions.
		require.NoError(t, dst.Begin().Set(-1))
		v, err := src.Front()
		require.NoError(t, err)
		assert.NotEqual(t, -1, v)

		_, err = src.Pop()
		require.NoError(t, err)
		assert.Equal(t, 3, dst.Size())
	})
}

func TestAssignSelf(t *testing.T) {
	withAllContainers(t, func(t *testing.T, impl Implementation) {
		c := impl.newContainer()
		fill(t, c, 1, 2, 3)
		want := container.Values[int](c)
		require.NoError(t, c.Assign(c))
		assert.Equal(t, want, container.Values[int](c))
	})
}

func TestAssignCrossKindFails(t *testing.T) {
	s := stack.New[int]()
	q := queue.New[int]()
	fill(t, s, 1, 2, 3)
	fill(t, q, 10, 20, 30)

	var bs container.Container[int] = s
	var bq container.Container[int] = q

	err := bs.Assign(bq)
	require.Error(t, err)
	assert.True(t, errors.Is(err, container.ErrTypeMismatch))
	assert.Equal(t, "3 2 1", s.String())

	err = bq.Assign(bs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, container.ErrTypeMismatch))
	assert.Equal(t, "10 20 30", q.String())

	err = bs.Assign(nil)
	assert.True(t, errors.Is(err, container.ErrTypeMismatch))
}

func TestAssignOverCapacityLeavesTargetUnchanged(t *testing.T) {
	withAllContainers(t, func(t *testing.T, impl Implementation) {
		src := impl.newContainer()
		fill(t, src, 1, 2, 3, 4)
		dst := impl.newContainer(container.WithCapacity[int](3))
		fill(t, dst, 7, 8)
		want := container.Values[int](dst)

		err := dst.Assign(src)
		require.Error(t, err)
		assert.True(t, errors.Is(err, container.ErrAllocation))
		assert.Equal(t, want, container.Values[int](dst))
		assert.Equal(t, 2, dst.Size())
	})
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	withAllContainers(t, func(t *testing.T, impl Implementation) {
		src := impl.newContainer()
		fill(t, src, 5, -3, 0, 12, 7)

		var sb strings.Builder
		require.NoError(t, src.Serialize(&sb))

		// A stack reads its own output back reversed, so push the reverse
		// of the traversal to recreate it.
		input := sb.String()
		if impl.kind == container.KindStack {
			toks := strings.Fields(input)
			slices.Reverse(toks)
			input = strings.Join(toks, " ")
		}
		dst := impl.newContainer()
		require.NoError(t, dst.Deserialize(strings.NewReader(input)))
		assert.True(t, container.Equal[int](src, dst))
	})
}

func TestSerializeEmpty(t *testing.T) {
	withAllContainers(t, func(t *testing.T, impl Implementation) {
		var sb strings.Builder
		require.NoError(t, impl.newContainer().Serialize(&sb))
		assert.Empty(t, sb.String())
	})
}

func TestDeserializeRollback(t *testing.T) {
	withAllContainers(t, func(t *testing.T, impl Implementation) {
		for _, start := range [][]int{nil, {100}, {100, 200, 300}} {
			c := impl.newContainer()
			fill(t, c, start...)
			want := container.Values[int](c)

			err := c.Deserialize(strings.NewReader("1 2 3 x 5"))
			require.Error(t, err)
			assert.True(t, errors.Is(err, container.ErrMalformedInput), "%v", err)
			assert.Equal(t, want, container.Values[int](c))
			assert.Equal(t, len(start), c.Size())

			// Still fully usable after the rollback.
			require.NoError(t, c.Push(9))
			assert.Equal(t, len(start)+1, c.Size())
		}
	})
}

func TestDeserializeRollbackOnCapacity(t *testing.T) {
	withAllContainers(t, func(t *testing.T, impl Implementation) {
		c := impl.newContainer(container.WithCapacity[int](3))
		fill(t, c, 1)
		err := c.Deserialize(strings.NewReader("2 3 4"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, container.ErrAllocation))
		assert.Equal(t, []int{1}, container.Values[int](c))
	})
}

func TestDeserializeWhitespace(t *testing.T) {
	withAllContainers(t, func(t *testing.T, impl Implementation) {
		c := impl.newContainer()
		require.NoError(t, c.Deserialize(strings.NewReader("  1\n\t2   3 \n")))
		assert.Equal(t, impl.order([]int{1, 2, 3}), container.Values[int](c))
	})
}

func TestRefsWriteThrough(t *testing.T) {
	withAllContainers(t, func(t *testing.T, impl Implementation) {
		c := impl.newContainer()
		fill(t, c, 1, 2, 3)
		for p := range c.Refs() {
			*p *= 2
		}
		assert.Equal(t, impl.order([]int{2, 4, 6}), container.Values[int](c))
	})
}

func TestConstRef(t *testing.T) {
	withAllContainers(t, func(t *testing.T, impl Implementation) {
		c := impl.newContainer()
		fill(t, c, 1, 2, 3)
		r := container.ConstOf[int](c)

		assert.Equal(t, impl.kind, r.Kind())
		assert.Equal(t, 3, r.Size())
		var got []int
		for it := r.Begin(); !it.Equal(r.End()); it.Next() {
			v, err := it.Get()
			require.NoError(t, err)
			got = append(got, v)
		}
		assert.Equal(t, impl.order([]int{1, 2, 3}), got)
		assert.True(t, r.Begin().Equal(c.Begin()))
		assert.True(t, r.CEnd().Equal(c.End()))
	})
}

func TestCustomCodec(t *testing.T) {
	hex := container.CodecFuncs[int]{
		FormatFunc: func(v int) string { return "#" + string(rune('a'+v)) },
		ParseFunc: func(tok string) (int, error) {
			if len(tok) != 2 || tok[0] != '#' {
				return 0, errors.Errorf("bad token %q", tok)
			}
			return int(tok[1] - 'a'), nil
		},
	}
	withAllContainers(t, func(t *testing.T, impl Implementation) {
		c := impl.newContainer(container.WithCodec[int](hex))
		require.NoError(t, c.Deserialize(strings.NewReader("#a #b #c")))
		assert.Equal(t, impl.order([]int{0, 1, 2}), container.Values[int](c))

		var sb strings.Builder
		require.NoError(t, c.Serialize(&sb))
		assert.Len(t, strings.Fields(sb.String()), 3)

		err := c.Deserialize(strings.NewReader("#d 4"))
		assert.True(t, errors.Is(err, container.ErrMalformedInput))
		assert.Equal(t, 3, c.Size())
	})
}
