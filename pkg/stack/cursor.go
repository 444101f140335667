package stack

import (
	"github.com/i5heu/GoFwdContainers/internal/chain"
	"github.com/i5heu/GoFwdContainers/pkg/container"
)

var (
	_ container.Cursor[int]      = (*cursor[int])(nil)
	_ container.ConstCursor[int] = (*constCursor[int])(nil)
)

// cursor walks a stack chain from the top down.
type cursor[T any] struct {
	node *chain.Node[T]
}

func (c *cursor[T]) Kind() container.Kind { return container.KindStack }
func (c *cursor[T]) At() *chain.Node[T]   { return c.node }

func (c *cursor[T]) Clone() container.Cursor[T] {
	return &cursor[T]{node: c.node}
}

func (c *cursor[T]) Deref() (*T, error) {
	if c.node == nil {
		return nil, container.ErrEndOfChain
	}
	return &c.node.Value, nil
}

func (c *cursor[T]) Advance() {
	if c.node != nil {
		c.node = c.node.Next
	}
}

func (c *cursor[T]) Equal(other container.Position[T]) bool {
	return container.SamePosition[T](c, other)
}

func (c *cursor[T]) ReadOnly() container.ConstCursor[T] {
	return &constCursor[T]{node: c.node}
}

type constCursor[T any] struct {
	node *chain.Node[T]
}

func (c *constCursor[T]) Kind() container.Kind { return container.KindStack }
func (c *constCursor[T]) At() *chain.Node[T]   { return c.node }

func (c *constCursor[T]) Clone() container.ConstCursor[T] {
	return &constCursor[T]{node: c.node}
}

func (c *constCursor[T]) Deref() (T, error) {
	if c.node == nil {
		var zero T
		return zero, container.ErrEndOfChain
	}
	return c.node.Value, nil
}

func (c *constCursor[T]) Advance() {
	if c.node != nil {
		c.node = c.node.Next
	}
}

func (c *constCursor[T]) Equal(other container.Position[T]) bool {
	return container.SamePosition[T](c, other)
}
