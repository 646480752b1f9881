package bstree

import (
	"iter"
	"strings"
)

// emptyMarker is what every traversal renders for an empty tree.
const emptyMarker = "**[Empty]**"

type Order uint8

const (
	PreOrder Order = iota
	InOrder
	PostOrder
	BreadthFirst
)

var orderNames = map[Order]string{
	PreOrder:     "pre",
	InOrder:      "in",
	PostOrder:    "post",
	BreadthFirst: "bfs",
}

func (o Order) String() string {
	if name, ok := orderNames[o]; ok {
		return name
	}
	return "unknown"
}

// ParseOrder accepts the names printed by [Order.String].
func ParseOrder(s string) (Order, bool) {
	for o, name := range orderNames {
		if name == s {
			return o, true
		}
	}
	return 0, false
}

// Walk returns the entries in the given order.
func (t *Tree[K, V]) Walk(o Order) iter.Seq2[K, V] {
	switch o {
	case PreOrder:
		return t.PreOrder()
	case PostOrder:
		return t.PostOrder()
	case BreadthFirst:
		return t.BreadthFirst()
	}
	return t.All()
}

// Traversal renders the keys in the given order.
func (t *Tree[K, V]) Traversal(o Order) string {
	return render(t.Walk(o))
}

func (t *Tree[K, V]) PreOrderTraversal() string {
	return render(t.PreOrder())
}

func (t *Tree[K, V]) InOrderTraversal() string {
	return render(t.All())
}

func (t *Tree[K, V]) PostOrderTraversal() string {
	return render(t.PostOrder())
}

func (t *Tree[K, V]) BreadthFirstTraversal() string {
	return render(t.BreadthFirst())
}

func render[K, V any](seq iter.Seq2[K, V]) string {
	var b strings.Builder
	for k := range seq {
		if b.Len() == 0 {
			b.WriteByte('[')
		} else {
			b.WriteString(", ")
		}
		b.WriteString(formatKey(k))
	}
	if b.Len() == 0 {
		return emptyMarker
	}
	b.WriteByte(']')
	return b.String()
}

// All yields the entries in ascending key order.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		var (
			stack []*node[K, V]
			n     = t.root
		)
		for n != nil || len(stack) > 0 {
			for n != nil {
				stack = append(stack, n)
				n = n.left
			}
			n = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(n.key, n.value) {
				return
			}
			n = n.right
		}
	}
}

func (t *Tree[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range t.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// PreOrder yields a node before its left subtree, then its right subtree.
// Re-inserting the entries in this order rebuilds the same shape.
func (t *Tree[K, V]) PreOrder() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if t.root == nil {
			return
		}
		stack := []*node[K, V]{t.root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(n.key, n.value) {
				return
			}
			if n.right != nil {
				stack = append(stack, n.right)
			}
			if n.left != nil {
				stack = append(stack, n.left)
			}
		}
	}
}

// PostOrder yields both subtrees of a node before the node itself.
func (t *Tree[K, V]) PostOrder() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		var (
			stack []*node[K, V]
			last  *node[K, V]
			n     = t.root
		)
		for n != nil || len(stack) > 0 {
			if n != nil {
				stack = append(stack, n)
				n = n.left
				continue
			}
			top := stack[len(stack)-1]
			if top.right != nil && top.right != last {
				n = top.right
				continue
			}
			stack = stack[:len(stack)-1]
			if !yield(top.key, top.value) {
				return
			}
			last = top
		}
	}
}

// BreadthFirst yields the tree level by level, left to right.
func (t *Tree[K, V]) BreadthFirst() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if t.root == nil {
			return
		}
		queue := []*node[K, V]{t.root}
		for len(queue) > 0 {
			n := queue[0]
			queue[0] = nil
			queue = queue[1:]
			if !yield(n.key, n.value) {
				return
			}
			if n.left != nil {
				queue = append(queue, n.left)
			}
			if n.right != nil {
				queue = append(queue, n.right)
			}
		}
	}
}
