package container

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Codec converts elements to and from whitespace-free text tokens.
type Codec[T any] interface {
	Format(v T) string
	Parse(tok string) (T, error)
}

// TextCodec formats with fmt.Sprint and parses with fmt.Fscan, so it handles
// the builtin numeric, bool and string types and anything implementing
// fmt.Scanner. A token must be consumed completely: "12abc" is not an int.
type TextCodec[T any] struct{}

func (TextCodec[T]) Format(v T) string {
	return fmt.Sprint(v)
}

func (TextCodec[T]) Parse(tok string) (T, error) {
	var v T
	r := strings.NewReader(tok)
	if _, err := fmt.Fscan(r, &v); err != nil {
		return v, err
	}
	if r.Len() != 0 {
		return v, errors.Errorf("trailing characters %q", tok[len(tok)-r.Len():])
	}
	return v, nil
}

// CodecFuncs adapts a pair of functions to Codec.
type CodecFuncs[T any] struct {
	FormatFunc func(T) string
	ParseFunc  func(string) (T, error)
}

func (c CodecFuncs[T]) Format(v T) string           { return c.FormatFunc(v) }
func (c CodecFuncs[T]) Parse(tok string) (T, error) { return c.ParseFunc(tok) }
