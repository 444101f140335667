// Package chain holds the singly-linked node type shared by the stack and
// queue implementations, plus the helpers that copy and release whole chains.
package chain

import "github.com/pkg/errors"

// ErrLimit is returned when a copy would allocate more nodes than allowed.
var ErrLimit = errors.New("chain: node limit reached")

// Node is one link of a chain. A chain owns each of its nodes exclusively.
type Node[T any] struct {
	Value T
	Next  *Node[T]
}

// New allocates a node holding v in front of next.
func New[T any](v T, next *Node[T]) *Node[T] {
	return &Node[T]{Value: v, Next: next}
}

// Copy duplicates the chain starting at head, preserving order, and returns
// the first and last node of the copy together with its length.
// With a non-zero limit the copy fails with ErrLimit once more than limit
// nodes would be needed; the nodes allocated up to that point are released
// and nothing is returned.
func Copy[T any](head *Node[T], limit uint64) (first, last *Node[T], n uint64, err error) {
	for cur := head; cur != nil; cur = cur.Next {
		if limit != 0 && n == limit {
			Release(first)
			return nil, nil, 0, errors.Wrapf(ErrLimit, "copied %d of more than %d nodes", n, limit)
		}
		node := New(cur.Value, nil)
		if last == nil {
			first = node
		} else {
			last.Next = node
		}
		last = node
		n++
	}
	return first, last, n, nil
}

// Release unlinks every node reachable from head so that no node keeps its
// successor alive.
func Release[T any](head *Node[T]) {
	for head != nil {
		next := head.Next
		head.Next = nil
		head = next
	}
}

// Len counts the nodes reachable from head. The containers keep their own
// size; Len is for checking that size against the chain.
func Len[T any](head *Node[T]) uint64 {
	var n uint64
	for ; head != nil; head = head.Next {
		n++
	}
	return n
}

// Nth returns the node reached by following Next i times from head, or nil.
// Like Len it walks the chain and is meant for invariant checks, not for
// element access.
func Nth[T any](head *Node[T], i uint64) *Node[T] {
	for ; head != nil && i > 0; i-- {
		head = head.Next
	}
	return head
}
