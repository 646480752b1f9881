package bstree

import (
	"errors"
	"fmt"
)

var ErrInvalidTree = errors.New("invalid tree")

// Validate checks the order invariant of every node against the bounds set
// by its ancestors, and that the node count matches. A left subtree may
// hold copies of its parent's key once a removal has promoted one of them.
func (t *Tree[K, V]) Validate() error {
	type frame struct {
		n      *node[K, V]
		lo, hi *K // both inclusive
	}

	seen := 0
	stack := []frame{}
	if t.root != nil {
		stack = append(stack, frame{n: t.root})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		seen++

		if f.lo != nil && t.cmp(f.n.key, *f.lo) < 0 {
			return fmt.Errorf("%w: %s is below %s", ErrInvalidTree, formatKey(f.n.key), formatKey(*f.lo))
		}
		if f.hi != nil && t.cmp(f.n.key, *f.hi) > 0 {
			return fmt.Errorf("%w: %s is above %s", ErrInvalidTree, formatKey(f.n.key), formatKey(*f.hi))
		}

		key := &f.n.key
		if f.n.left != nil {
			stack = append(stack, frame{f.n.left, f.lo, key})
		}
		if f.n.right != nil {
			stack = append(stack, frame{f.n.right, key, f.hi})
		}
	}

	if seen != t.count {
		return fmt.Errorf("%w: counted %d nodes, expected %d", ErrInvalidTree, seen, t.count)
	}
	return nil
}
