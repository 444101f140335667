package container

// Handle is implemented by *Iterator and *ConstIterator so that either can be
// compared with the other.
type Handle[T any] interface {
	comparer() Comparer[T]
}

// Iterator is the caller-facing mutable cursor handle. It owns exactly one
// Cursor, or none; the zero value is an empty handle.
//
// Copying an Iterator struct shares its cursor. Use Clone for an independent
// copy and Take to move the cursor out.
type Iterator[T any] struct {
	cur Cursor[T]
}

// NewIterator wraps c. A nil c gives an empty handle.
func NewIterator[T any](c Cursor[T]) *Iterator[T] {
	return &Iterator[T]{cur: c}
}

func (it *Iterator[T]) comparer() Comparer[T] {
	if it == nil || it.cur == nil {
		return nil
	}
	return it.cur
}

// IsEmpty reports whether the handle owns no cursor.
func (it *Iterator[T]) IsEmpty() bool {
	return it == nil || it.cur == nil
}

// Valid reports whether the handle points at an element.
func (it *Iterator[T]) Valid() bool {
	return !it.IsEmpty() && it.cur.At() != nil
}

// Kind returns the kind of the owned cursor, or KindNone for an empty handle.
func (it *Iterator[T]) Kind() Kind {
	if it.IsEmpty() {
		return KindNone
	}
	return it.cur.Kind()
}

// Clone returns a handle owning a copy of the cursor.
func (it *Iterator[T]) Clone() *Iterator[T] {
	if it.IsEmpty() {
		return &Iterator[T]{}
	}
	return &Iterator[T]{cur: it.cur.Clone()}
}

// Take moves the cursor into a new handle and leaves it empty.
func (it *Iterator[T]) Take() *Iterator[T] {
	if it == nil {
		return &Iterator[T]{}
	}
	out := &Iterator[T]{cur: it.cur}
	it.cur = nil
	return out
}

// ReadOnly returns a read-only handle at the same position.
func (it *Iterator[T]) ReadOnly() *ConstIterator[T] {
	if it.IsEmpty() {
		return &ConstIterator[T]{}
	}
	return &ConstIterator[T]{cur: it.cur.ReadOnly()}
}

// Ptr returns a pointer to the current element. Writes through it change the
// node in the container.
func (it *Iterator[T]) Ptr() (*T, error) {
	if it.IsEmpty() {
		return nil, ErrInvalidCursor
	}
	return it.cur.Deref()
}

// Get returns a copy of the current element.
func (it *Iterator[T]) Get() (T, error) {
	p, err := it.Ptr()
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// Set overwrites the current element.
func (it *Iterator[T]) Set(v T) error {
	p, err := it.Ptr()
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Next advances the handle and returns it.
func (it *Iterator[T]) Next() *Iterator[T] {
	if !it.IsEmpty() {
		it.cur.Advance()
	}
	return it
}

// PostNext advances the handle and returns a clone taken before the move.
func (it *Iterator[T]) PostNext() *Iterator[T] {
	prev := it.Clone()
	it.Next()
	return prev
}

// Equal compares with a mutable or read-only handle. Two empty handles are
// equal, an empty and a non-empty one are not.
func (it *Iterator[T]) Equal(other Handle[T]) bool {
	return equalHandles[T](it, other)
}

// ConstIterator is the read-only cursor handle. It can be built from an
// Iterator but never converted back.
type ConstIterator[T any] struct {
	cur ConstCursor[T]
}

// NewConstIterator wraps c. A nil c gives an empty handle.
func NewConstIterator[T any](c ConstCursor[T]) *ConstIterator[T] {
	return &ConstIterator[T]{cur: c}
}

func (it *ConstIterator[T]) comparer() Comparer[T] {
	if it == nil || it.cur == nil {
		return nil
	}
	return it.cur
}

func (it *ConstIterator[T]) IsEmpty() bool {
	return it == nil || it.cur == nil
}

func (it *ConstIterator[T]) Valid() bool {
	return !it.IsEmpty() && it.cur.At() != nil
}

func (it *ConstIterator[T]) Kind() Kind {
	if it.IsEmpty() {
		return KindNone
	}
	return it.cur.Kind()
}

func (it *ConstIterator[T]) Clone() *ConstIterator[T] {
	if it.IsEmpty() {
		return &ConstIterator[T]{}
	}
	return &ConstIterator[T]{cur: it.cur.Clone()}
}

func (it *ConstIterator[T]) Take() *ConstIterator[T] {
	if it == nil {
		return &ConstIterator[T]{}
	}
	out := &ConstIterator[T]{cur: it.cur}
	it.cur = nil
	return out
}

// Get returns a copy of the current element.
func (it *ConstIterator[T]) Get() (T, error) {
	if it.IsEmpty() {
		var zero T
		return zero, ErrInvalidCursor
	}
	return it.cur.Deref()
}

func (it *ConstIterator[T]) Next() *ConstIterator[T] {
	if !it.IsEmpty() {
		it.cur.Advance()
	}
	return it
}

func (it *ConstIterator[T]) PostNext() *ConstIterator[T] {
	prev := it.Clone()
	it.Next()
	return prev
}

func (it *ConstIterator[T]) Equal(other Handle[T]) bool {
	return equalHandles[T](it, other)
}

func equalHandles[T any](a, b Handle[T]) bool {
	var ca, cb Comparer[T]
	if a != nil {
		ca = a.comparer()
	}
	if b != nil {
		cb = b.comparer()
	}
	switch {
	case ca == nil && cb == nil:
		return true
	case ca == nil || cb == nil:
		return false
	}
	return ca.Equal(cb)
}
