// Command fwdc reads whitespace separated integers into a stack or queue, pops
// some of them and prints what is left.
//
//	echo "1 2 3" | fwdc -kind stack -pop 1
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/i5heu/GoFwdContainers/pkg/container"
	"github.com/i5heu/GoFwdContainers/pkg/queue"
	"github.com/i5heu/GoFwdContainers/pkg/stack"
)

type options struct {
	kind     string
	pop      int
	capacity uint64
}

func newContainer(o options) (container.Container[int], error) {
	opts := []container.Option[int]{container.WithCapacity[int](o.capacity)}
	switch o.kind {
	case container.KindStack.String():
		return stack.New(opts...), nil
	case container.KindQueue.String():
		return queue.New(opts...), nil
	}
	return nil, errors.Errorf("unknown kind %q, want stack or queue", o.kind)
}

// run loads in into a fresh container, pops o.pop elements printing one per
// line, then prints the remaining contents on a final line.
func run(o options, in io.Reader, out io.Writer) error {
	c, err := newContainer(o)
	if err != nil {
		return err
	}
	if err := c.Deserialize(in); err != nil {
		return errors.Wrap(err, "loading input")
	}
	glog.V(1).Infof("loaded %d elements into %s", c.Size(), c.Kind())

	w := bufio.NewWriter(out)
	for i := 0; i < o.pop; i++ {
		v, err := c.Pop()
		if err != nil {
			return errors.Wrapf(err, "pop %d of %d", i+1, o.pop)
		}
		fmt.Fprintln(w, v)
	}
	if err := c.Serialize(w); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return w.Flush()
}

func main() {
	kind := flag.String("kind", "stack", "Container kind: stack or queue")
	in := flag.String("in", "", "Input file; standard input if empty")
	pop := flag.Int("pop", 0, "Number of elements to pop and print before printing the rest")
	capacity := flag.Uint64("capacity", 0, "Maximum number of elements, 0 for unbounded")
	flag.Parse()
	defer glog.Flush()

	var r io.Reader = os.Stdin
	if *in != "" {
		f, err := os.Open(*in)
		if err != nil {
			glog.Exitf("open input: %v", err)
		}
		defer f.Close()
		r = f
	}

	if err := run(options{kind: *kind, pop: *pop, capacity: *capacity}, r, os.Stdout); err != nil {
		glog.Flush()
		fmt.Fprintln(os.Stderr, "fwdc:", err)
		os.Exit(1)
	}
}
