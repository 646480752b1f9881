package store_test

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vancomm/bstree/bstree"
	"github.com/vancomm/bstree/internal/store"
)

func setupTestStore() *store.Store {
	s := store.New()
	for _, k := range []string{"F", "B", "G", "A", "D", "I", "C", "E", "H"} {
		s.Insert(k, "value of "+k)
	}
	return s
}

func TestStoreReadEmpty(t *testing.T) {
	s := store.New()

	_, ok := s.Get("some key")
	assert.False(t, ok)

	_, err := s.Remove("some key")
	assert.ErrorIs(t, err, bstree.ErrNotFound)
	assert.Equal(t, "**[Empty]**", s.Traverse(bstree.InOrder))
	assert.Empty(t, s.Entries())
}

func TestStoreSetAndGet(t *testing.T) {
	s := setupTestStore()

	prev, replaced := s.Set("D", "new")
	assert.True(t, replaced)
	assert.Equal(t, "value of D", prev)

	v, ok := s.Get("D")
	assert.True(t, ok)
	assert.Equal(t, "new", v)

	_, replaced = s.Set("Z", "z")
	assert.False(t, replaced)
	assert.Equal(t, 10, s.Count())
}

func TestStoreRemove(t *testing.T) {
	s := setupTestStore()

	v, err := s.Remove("F")
	require.NoError(t, err)
	assert.Equal(t, "value of F", v)
	assert.Equal(t, "[E, B, G, A, D, I, C, H]", s.Traverse(bstree.BreadthFirst))

	rendered, keys := s.TraverseKeys(bstree.InOrder)
	assert.Equal(t, "[A, B, C, D, E, G, H, I]", rendered)
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "G", "H", "I"}, keys)
}

func TestStoreTraverseKeysConsistentUnderWrites(t *testing.T) {
	s := store.New()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 500 {
			key := fmt.Sprintf("k%03d", i)
			s.Insert(key, "v")
			if i%3 == 0 {
				_, err := s.Remove(key)
				assert.NoError(t, err)
			}
		}
	}()

	for range 200 {
		rendered, keys := s.TraverseKeys(bstree.PreOrder)
		want := "**[Empty]**"
		if len(keys) > 0 {
			want = "[" + strings.Join(keys, ", ") + "]"
		}
		require.Equal(t, want, rendered)
	}
	wg.Wait()
}

func TestStoreEntriesRoundTrip(t *testing.T) {
	s := setupTestStore()

	entries := s.Entries()
	assert.Equal(t, "F", entries[0].Key)

	restored := store.NewFromEntries(entries)
	assert.Equal(t, s.Traverse(bstree.BreadthFirst), restored.Traverse(bstree.BreadthFirst))
	assert.Equal(t, s.Height(), restored.Height())

	other := store.New()
	other.Restore(entries)
	assert.Equal(t, s.Traverse(bstree.PreOrder), other.Traverse(bstree.PreOrder))
}

func TestStorePrint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, setupTestStore().Print(&buf))
	assert.Contains(t, buf.String(), "H")
}

func TestStoreConcurrentAccess(t *testing.T) {
	var (
		s  = store.New()
		wg sync.WaitGroup
	)

	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				key := fmt.Sprintf("%d-%03d", w, i)
				s.Set(key, key)
				s.Get(key)
				if i%2 == 0 {
					_, err := s.Remove(key)
					assert.NoError(t, err)
				}
			}
		}()
	}
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				s.Traverse(bstree.InOrder)
				s.Count()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 8*100, s.Count())
}
