package bstree

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

/*
Find the slot holding the first node on the search path whose key equals
key. The root is checked on its own; below it every child is compared
before descending, so the returned slot is always the parent's link (or
the tree's root link) and can be rewired in place. Returns nil if the key
is absent.
*/
func (t *Tree[K, V]) findSlot(key K) (slot **node[K, V], atRoot bool) {
	n := t.root
	if n == nil {
		return nil, false
	}
	c := t.cmp(key, n.key)
	if c == 0 {
		return &t.root, true
	}
	for {
		next := &n.right
		if c < 0 {
			next = &n.left
		}
		if *next == nil {
			return nil, false /* the required child does not exist */
		}
		n = *next
		if c = t.cmp(key, n.key); c == 0 {
			return next, false
		}
	}
}

/*
Remove the first node on the search path whose key equals key and return
its value. The tree is left untouched and ErrNotFound is returned if there
is no such node.
*/
func (t *Tree[K, V]) Remove(key K) (V, error) {
	slot, atRoot := t.findSlot(key)
	if slot == nil {
		var zero V
		return zero, fmt.Errorf("%w: %s", ErrNotFound, formatKey(key))
	}

	if Log.IsLevelEnabled(logrus.DebugLevel) {
		Log.WithFields(logrus.Fields{
			"key": formatKey(key), "node": *slot, "root": atRoot,
		}).Debug("removing node")
	}

	value := t.unlink(slot)
	t.count--
	return value, nil
}

/*
Detach the node in slot according to its child state. A node with at most
one child is replaced by that child (or by nothing). A node with two
children keeps its place in the tree and takes over the key and value of
its in-order predecessor, which is spliced out instead.
*/
func (t *Tree[K, V]) unlink(slot **node[K, V]) V {
	target := *slot
	value := target.value

	switch target.state() {
	case childNone:
		*slot = nil
	case childRight:
		*slot = target.right
	case childLeft:
		*slot = target.left
	case childBoth:
		t.splicePredecessor(target)
		return value
	}

	target.release()
	return value
}

/*
Replace target's key and value with those of its in-order predecessor, the
right-most node of its left subtree, and splice the predecessor out. The
predecessor has no right child, so its left subtree takes its place.

Copies of the predecessor's key on the right spine keep their shadowing
order: target receives the value of the shallowest copy and each copy
takes the value of the next deeper one.
*/
func (t *Tree[K, V]) splicePredecessor(target *node[K, V]) {
	var parent *node[K, V]
	pred := target.left
	for pred.right != nil {
		parent, pred = pred, pred.right
	}

	if Log.IsLevelEnabled(logrus.DebugLevel) {
		Log.WithFields(logrus.Fields{
			"target": target, "predecessor": pred,
		}).Debug("promoting predecessor")
	}

	target.key, target.value = pred.key, t.shiftCopies(target.left, pred)

	if parent == nil {
		/*
		 * The left child is the predecessor: lift its left subtree
		 * into target's left slot.
		 */
		target.left = pred.left
	} else {
		parent.right = pred.left
	}
	pred.release()
}

// shiftCopies moves the values of the nodes on the right spine from n down
// to pred that hold pred's key one copy up, and returns the value that
// leaves the shallowest copy.
func (t *Tree[K, V]) shiftCopies(n, pred *node[K, V]) V {
	var prev *node[K, V]
	value := pred.value
	for ; n != pred; n = n.right {
		if t.cmp(n.key, pred.key) != 0 {
			continue
		}
		if prev == nil {
			value = n.value
		} else {
			prev.value = n.value
		}
		prev = n
	}
	if prev != nil {
		prev.value = pred.value
	}
	return value
}
