package bstree

import (
	"cmp"
	"errors"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// ErrNotFound is returned by [Tree.Remove] when no node holds the key.
var ErrNotFound = errors.New("key not found")

type CompareFunc[K any] func(x, y K) int

type Pair[K, V any] struct {
	Key   K
	Value V
}

// Tree is an unbalanced binary search tree. Keys in a left subtree are
// smaller than their parent, keys in a right subtree are greater or equal.
// The one exception is a key inserted more than once: removing a node with
// two children may promote one copy above the others, which then stay in
// its left subtree. Get keeps returning the copy that was visible before.
// A Tree is not safe for concurrent use.
type Tree[K, V any] struct {
	root  *node[K, V]
	cmp   CompareFunc[K]
	count int
}

func New[K, V any](compare CompareFunc[K]) *Tree[K, V] {
	return &Tree[K, V]{
		root: nil,
		cmp:  compare,
	}
}

func NewOrdered[K cmp.Ordered, V any]() *Tree[K, V] {
	return New[K, V](cmp.Compare[K])
}

// FromSequence builds a tree by inserting pairs in order.
func FromSequence[K, V any](compare CompareFunc[K], pairs []Pair[K, V]) *Tree[K, V] {
	t := New[K, V](compare)
	for _, p := range pairs {
		t.Insert(p.Key, p.Value)
	}
	return t
}

func FromOrderedSequence[K cmp.Ordered, V any](pairs []Pair[K, V]) *Tree[K, V] {
	return FromSequence(cmp.Compare[K], pairs)
}

// Tree implements [fmt.Stringer]
func (t *Tree[K, V]) String() string {
	return t.InOrderTraversal()
}

func (t *Tree[K, V]) Count() int {
	return t.count
}

func (t *Tree[K, V]) IsEmpty() bool {
	return t.root == nil
}

// Get returns the value of the first node on the search path whose key
// equals key.
func (t *Tree[K, V]) Get(key K) (value V, ok bool) {
	n := t.root
	for n != nil {
		c := t.cmp(key, n.key)
		if c == 0 {
			return n.value, true
		}
		if c > 0 {
			n = n.right
		} else {
			n = n.left
		}
	}
	return
}

// Insert always adds a new node. An equal key goes to the right subtree and
// stays shadowed by the existing one until that one is removed.
func (t *Tree[K, V]) Insert(key K, value V) {
	slot := &t.root
	for *slot != nil {
		if t.cmp(key, (*slot).key) < 0 {
			slot = &(*slot).left
		} else {
			slot = &(*slot).right
		}
	}
	*slot = newNode(key, value)
	t.count++
}

// Set overwrites the value of the first node holding key, or inserts a new
// node when there is none.
func (t *Tree[K, V]) Set(key K, value V) (old V, replaced bool) {
	slot := &t.root
	for *slot != nil {
		n := *slot
		c := t.cmp(key, n.key)
		if c == 0 {
			old, n.value = n.value, value
			return old, true
		}
		if c < 0 {
			slot = &n.left
		} else {
			slot = &n.right
		}
	}
	*slot = newNode(key, value)
	t.count++
	return old, false
}

// Min returns the entry with the lowest key.
func (t *Tree[K, V]) Min() (key K, value V, ok bool) {
	n := t.root
	if n == nil {
		return
	}
	for n.left != nil {
		n = n.left
	}
	return n.key, n.value, true
}

// Max returns the entry with the highest key.
func (t *Tree[K, V]) Max() (key K, value V, ok bool) {
	n := t.root
	if n == nil {
		return
	}
	for n.right != nil {
		n = n.right
	}
	return n.key, n.value, true
}

// Height is the number of levels, zero for an empty tree.
func (t *Tree[K, V]) Height() (h int) {
	if t.root == nil {
		return
	}
	level := []*node[K, V]{t.root}
	for len(level) > 0 {
		h++
		var next []*node[K, V]
		for _, n := range level {
			if n.left != nil {
				next = append(next, n.left)
			}
			if n.right != nil {
				next = append(next, n.right)
			}
		}
		level = next
	}
	return
}
