package bstree

import "fmt"

// childState classifies a node by which child slots are populated. The
// value selects the deletion strategy applied to the node.
type childState uint8

const (
	childNone  childState = 0b00
	childRight childState = 0b01
	childLeft  childState = 0b10
	childBoth  childState = 0b11
)

func (s childState) String() string {
	switch s {
	case childNone:
		return "none"
	case childRight:
		return "right"
	case childLeft:
		return "left"
	case childBoth:
		return "both"
	}
	return fmt.Sprintf("childState(%d)", uint8(s))
}

// node owns its two subtrees; nothing else points at them.
type node[K, V any] struct {
	key   K
	value V
	left  *node[K, V]
	right *node[K, V]
}

func newNode[K, V any](key K, value V) *node[K, V] {
	return &node[K, V]{key: key, value: value}
}

func (n *node[K, V]) state() (s childState) {
	if n.left != nil {
		s |= childLeft
	}
	if n.right != nil {
		s |= childRight
	}
	return
}

// release drops every reference held by a detached node.
func (n *node[K, V]) release() {
	*n = node[K, V]{}
}

// node implements [fmt.Stringer]
func (n *node[K, V]) String() string {
	if n == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%s)", formatKey(n.key), n.state())
}

func formatKey[K any](key K) string {
	if s, ok := any(key).(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", key)
}
