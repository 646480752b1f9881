package store

import (
	"io"
	"sync"

	"github.com/vancomm/bstree/bstree"
	"github.com/vancomm/bstree/internal/metrics"
)

type Entry = bstree.Pair[string, string]

// Store guards a string keyed tree with a single-writer, multiple-reader
// lock. All methods are safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	tree *bstree.Tree[string, string]
}

func New() *Store {
	return &Store{tree: bstree.NewOrdered[string, string]()}
}

// NewFromEntries loads entries in order, so a pre-order dump taken with
// [Store.Entries] comes back with the same shape.
func NewFromEntries(entries []Entry) *Store {
	s := &Store{tree: bstree.FromOrderedSequence(entries)}
	metrics.TreeEntries.Set(float64(s.tree.Count()))
	return s
}

func outcome(ok bool) string {
	if ok {
		return "hit"
	}
	return "miss"
}

func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.tree.Get(key)
	metrics.TreeOperations.WithLabelValues("get", outcome(ok)).Inc()
	return value, ok
}

// Set overwrites the first entry holding key or adds a new one.
func (s *Store) Set(key, value string) (previous string, replaced bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, replaced = s.tree.Set(key, value)
	metrics.TreeOperations.WithLabelValues("set", outcome(replaced)).Inc()
	metrics.TreeEntries.Set(float64(s.tree.Count()))
	return
}

// Insert always adds an entry, even if key is already present.
func (s *Store) Insert(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tree.Insert(key, value)
	metrics.TreeOperations.WithLabelValues("insert", "ok").Inc()
	metrics.TreeEntries.Set(float64(s.tree.Count()))
}

// Remove returns an error wrapping [bstree.ErrNotFound] if key is absent.
func (s *Store) Remove(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, err := s.tree.Remove(key)
	metrics.TreeOperations.WithLabelValues("remove", outcome(err == nil)).Inc()
	metrics.TreeEntries.Set(float64(s.tree.Count()))
	return value, err
}

func (s *Store) Traverse(o bstree.Order) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metrics.TreeOperations.WithLabelValues("traverse", o.String()).Inc()
	return s.tree.Traversal(o)
}

// TraverseKeys renders the traversal and lists its keys from one walk
// under a single read lock, so both always describe the same tree.
func (s *Store) TraverseKeys(o bstree.Order) (rendered string, keys []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metrics.TreeOperations.WithLabelValues("traverse", o.String()).Inc()
	keys = make([]string, 0, s.tree.Count())
	for k := range s.tree.Walk(o) {
		keys = append(keys, k)
	}
	return s.tree.Traversal(o), keys
}

func (s *Store) Print(w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tree.Print(w)
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tree.Count()
}

func (s *Store) Height() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tree.Height()
}

// Entries dumps the tree in pre-order.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, s.tree.Count())
	for k, v := range s.tree.PreOrder() {
		entries = append(entries, Entry{Key: k, Value: v})
	}
	return entries
}

// Restore replaces the whole tree with entries inserted in order.
func (s *Store) Restore(entries []Entry) {
	tree := bstree.FromOrderedSequence(entries)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tree = tree
	metrics.TreeEntries.Set(float64(tree.Count()))
}
