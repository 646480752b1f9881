package bstree

import (
	"io"

	"github.com/xlab/treeprint"
)

// Print writes an ASCII rendering of the tree shape, marking each child
// with L or R.
func (t *Tree[K, V]) Print(w io.Writer) error {
	if t.root == nil {
		_, err := io.WriteString(w, emptyMarker+"\n")
		return err
	}

	type frame struct {
		branch treeprint.Tree
		n      *node[K, V]
	}

	root := treeprint.NewWithRoot(formatKey(t.root.key))
	stack := []frame{{root, t.root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.n.left != nil {
			stack = append(stack, frame{f.branch.AddMetaBranch("L", formatKey(f.n.left.key)), f.n.left})
		}
		if f.n.right != nil {
			stack = append(stack, frame{f.branch.AddMetaBranch("R", formatKey(f.n.right.key)), f.n.right})
		}
	}

	_, err := io.WriteString(w, root.String())
	return err
}
