package container

import "github.com/i5heu/GoFwdContainers/internal/chain"

// Position is the part of a cursor that equality looks at: the kind of the
// container that produced it and the node it aliases. A nil node is the end
// position.
//
// The node type lives in an internal package, so the set of cursor
// implementations is closed to this module.
type Position[T any] interface {
	Kind() Kind
	At() *chain.Node[T]
}

// Comparer is a Position that can compare itself to any other position,
// mutable or read-only, of any kind.
type Comparer[T any] interface {
	Position[T]
	Equal(other Position[T]) bool
}

// Cursor is the mutable cursor capability every container supplies.
type Cursor[T any] interface {
	Comparer[T]
	// Deref returns a pointer into the current node.
	Deref() (*T, error)
	// Advance moves to the next node. At the end it does nothing.
	Advance()
	Clone() Cursor[T]
	// ReadOnly returns a read-only cursor at the same position.
	ReadOnly() ConstCursor[T]
}

// ConstCursor is the read-only cursor capability. It has no way back to a
// mutable Cursor.
type ConstCursor[T any] interface {
	Comparer[T]
	// Deref returns a copy of the current value.
	Deref() (T, error)
	Advance()
	Clone() ConstCursor[T]
}

// SamePosition reports whether a and b come from the same kind of container
// and alias the same node. Two end positions of the same kind are equal; end
// positions of different kinds are not.
func SamePosition[T any](a, b Position[T]) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	return a.At() == b.At()
}
