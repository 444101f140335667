package container

// Kind identifies which concrete container produced a container value or a
// cursor. Cursor equality checks Kind before it looks at positions.
type Kind uint8

const (
	KindNone Kind = iota
	KindStack
	KindQueue
)

func (k Kind) String() string {
	switch k {
	case KindStack:
		return "stack"
	case KindQueue:
		return "queue"
	default:
		return "none"
	}
}
