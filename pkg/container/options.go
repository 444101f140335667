package container

import "math"

// Options configure a container. The zero value is an unbounded container
// using TextCodec.
type Options[T any] struct {
	// Capacity is the maximum number of nodes; 0 means unbounded.
	Capacity uint64
	Codec    Codec[T]
}

type Option[T any] func(*Options[T])

// WithCapacity bounds the number of elements. Pushing past it fails with
// ErrAllocation.
func WithCapacity[T any](capacity uint64) Option[T] {
	return func(o *Options[T]) {
		o.Capacity = capacity
	}
}

// WithCodec sets the token codec used by Serialize and Deserialize.
func WithCodec[T any](c Codec[T]) Option[T] {
	return func(o *Options[T]) {
		o.Codec = c
	}
}

// NewOptions applies opts over the defaults.
func NewOptions[T any](opts ...Option[T]) Options[T] {
	var o Options[T]
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// TokenCodec returns the configured codec or TextCodec.
func (o Options[T]) TokenCodec() Codec[T] {
	if o.Codec == nil {
		return TextCodec[T]{}
	}
	return o.Codec
}

// Full reports whether size elements leave no room for another one.
func (o Options[T]) Full(size uint64) bool {
	return o.Capacity != 0 && size >= o.Capacity
}

// FreeSlots returns the room left after size elements.
func (o Options[T]) FreeSlots(size uint64) uint64 {
	if o.Capacity == 0 {
		return math.MaxUint64 - size
	}
	if size >= o.Capacity {
		return 0
	}
	return o.Capacity - size
}
