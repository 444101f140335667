package container

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// WriteTokens writes the elements in [first, last) to w, formatted by codec
// and separated by a single space, without a trailing separator.
func WriteTokens[T any](w io.Writer, first, last *ConstIterator[T], codec Codec[T]) error {
	bw := bufio.NewWriter(w)
	it := first.Clone()
	for sep := false; it.Valid() && !it.Equal(last); it.Next() {
		v, err := it.Get()
		if err != nil {
			return err
		}
		if sep {
			if err := bw.WriteByte(' '); err != nil {
				return errors.Wrap(err, "write separator")
			}
		}
		if _, err := bw.WriteString(codec.Format(v)); err != nil {
			return errors.Wrap(err, "write token")
		}
		sep = true
	}
	return errors.Wrap(bw.Flush(), "flush tokens")
}

// ReadTokens reads whitespace-separated tokens from r until EOF, parses each
// with codec and hands it to push. It stops at the first failure and returns
// the number of elements pushed before it. Rolling back those pushes is the
// caller's job.
func ReadTokens[T any](r io.Reader, codec Codec[T], push func(T) error) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	n := 0
	for sc.Scan() {
		tok := sc.Text()
		v, err := codec.Parse(tok)
		if err != nil {
			return n, errors.Wrapf(ErrMalformedInput, "token %d %q: %v", n+1, tok, err)
		}
		if err := push(v); err != nil {
			return n, errors.Wrapf(err, "token %d", n+1)
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return n, errors.Wrap(err, "read tokens")
	}
	return n, nil
}

// Format returns the serialized form of v, or the error text if writing
// failed.
func Format[T any](v View[T]) string {
	var sb strings.Builder
	if err := v.Serialize(&sb); err != nil {
		return err.Error()
	}
	return sb.String()
}
