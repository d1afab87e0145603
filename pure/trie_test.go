package pure_test

import (
	"sync"
	"testing"

	"github.com/on-the-ground/tableize_go/pure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustKey(t *testing.T, args pure.Args) pure.Key {
	t.Helper()
	key, err := pure.NewKey(args)
	require.NoError(t, err)
	return key
}

func TestTrie_BasicUsage(t *testing.T) {
	stores := map[string]pure.Store[string]{
		"Trie":        pure.NewTrie[string](),
		"SyncTrie":    pure.NewSyncTrie[string](),
		"BoundedTrie": pure.NewBoundedTrie[string](4),
	}
	for name, trie := range stores {
		t.Run(name, func(t *testing.T) {
			// store a value
			require.NoError(t, trie.Store(mustKey(t, pure.A("a", "b", "c")), "final"))

			// load it back
			val, ok, err := trie.Load(mustKey(t, pure.A("a", "b", "c")))
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "final", val)

			// wrong key path
			_, ok, _ = trie.Load(mustKey(t, pure.A("a", "b", "x")))
			assert.False(t, ok)

			// prefix of a stored key is not an entry
			_, ok, _ = trie.Load(mustKey(t, pure.A("a", "b")))
			assert.False(t, ok)

			// overwrite existing
			require.NoError(t, trie.Store(mustKey(t, pure.A("a", "b", "c")), "updated"))
			val, ok, _ = trie.Load(mustKey(t, pure.A("a", "b", "c")))
			assert.True(t, ok)
			assert.Equal(t, "updated", val)
			assert.Equal(t, 1, trie.Len())
		})
	}
}

func TestTrie_EmptyKeyIsAnEntry(t *testing.T) {
	trie := pure.NewTrie[int]()

	_, ok, _ := trie.Load(pure.Key{})
	assert.False(t, ok)

	require.NoError(t, trie.Store(pure.Key{}, 42))
	v, ok, _ := trie.Load(pure.Key{})
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, trie.Len())
}

func TestBoundedTrie_RotatesGenerations(t *testing.T) {
	trie := pure.NewBoundedTrie[int](2)

	for i := 0; i < 2; i++ {
		require.NoError(t, trie.Store(mustKey(t, pure.A(i)), i))
	}
	// head is full: 2 starts a new generation and 0, 1 move to the tail
	require.NoError(t, trie.Store(mustKey(t, pure.A(2)), 2))
	for i := 0; i < 3; i++ {
		v, ok, _ := trie.Load(mustKey(t, pure.A(i)))
		assert.True(t, ok)
		assert.Equal(t, i, v)
	}

	// 3 fills the head; 4 rotates again and drops 0, 1
	require.NoError(t, trie.Store(mustKey(t, pure.A(3)), 3))
	require.NoError(t, trie.Store(mustKey(t, pure.A(4)), 4))
	for i := 0; i < 2; i++ {
		_, ok, _ := trie.Load(mustKey(t, pure.A(i)))
		assert.False(t, ok, "key %d should have been dropped", i)
	}
	for i := 2; i < 5; i++ {
		_, ok, _ := trie.Load(mustKey(t, pure.A(i)))
		assert.True(t, ok, "key %d should be present", i)
	}
	assert.Equal(t, 3, trie.Len())
}

func TestBoundedTrie_ZeroSizePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic on zero maxSize, but didn't panic")
		}
	}()
	pure.NewBoundedTrie[int](0)
}

func TestSyncTrie_ConcurrentStoresLastWriteWins(t *testing.T) {
	trie := pure.NewSyncTrie[int]()
	key := mustKey(t, pure.A("shared"))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = trie.Store(key, i)
		}(i)
	}
	wg.Wait()

	v, ok, err := trie.Load(key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, v, 0)
	assert.Less(t, v, 32)
	assert.Equal(t, 1, trie.Len())
}
