package container

import "github.com/pkg/errors"

var (
	// ErrEmptyContainer is returned by Pop and Front on an empty container.
	ErrEmptyContainer = errors.New("container is empty")
	// ErrAllocation is returned when a node cannot be allocated because the
	// container reached its capacity. Bulk operations roll back first.
	ErrAllocation = errors.New("node allocation failed")
	// ErrTypeMismatch is returned by Assign when the source is a different
	// kind of container than the target.
	ErrTypeMismatch = errors.New("container kind mismatch")
	// ErrMalformedInput is returned by Deserialize for a token the codec
	// cannot parse.
	ErrMalformedInput = errors.New("malformed input")

	ErrInvalidCursor = errors.New("invalid cursor")
	ErrEndOfChain    = errors.New("cursor at end of chain")
)
