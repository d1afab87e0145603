package pure

import (
	"sync"
	"sync/atomic"
)

var (
	_ Store[any] = (*Trie[any])(nil)
	_ Store[any] = (*SyncTrie[any])(nil)
	_ Store[any] = (*BoundedTrie[any])(nil)
)

type trieNode[O any] struct {
	children map[ComparableOrString]*trieNode[O]
	value    O
	ok       bool
}

// Trie is an unbounded table with one level per key part.
// It is not safe for concurrent use.
type Trie[O any] struct {
	root trieNode[O]
	size int
}

func NewTrie[O any]() *Trie[O] {
	return &Trie[O]{}
}

func (t *Trie[O]) Load(key Key) (O, bool, error) {
	n := &t.root
	for _, k := range key {
		child, ok := n.children[k]
		if !ok {
			var zero O
			return zero, false, nil
		}
		n = child
	}
	return n.value, n.ok, nil
}

func (t *Trie[O]) Store(key Key, value O) error {
	n := &t.root
	for _, k := range key {
		if n.children == nil {
			n.children = make(map[ComparableOrString]*trieNode[O])
		}
		child, ok := n.children[k]
		if !ok {
			child = &trieNode[O]{}
			n.children[k] = child
		}
		n = child
	}
	if !n.ok {
		t.size++
	}
	n.value, n.ok = value, true
	return nil
}

func (t *Trie[O]) Len() int {
	return t.size
}

type syncTrieNode[O any] struct {
	children sync.Map
	value    atomic.Pointer[O]
}

// SyncTrie is an unbounded table built from nested sync.Maps. It is safe for
// concurrent use; concurrent stores to one key are last-write-wins.
type SyncTrie[O any] struct {
	root syncTrieNode[O]
	size atomic.Int64
}

func NewSyncTrie[O any]() *SyncTrie[O] {
	return &SyncTrie[O]{}
}

func (t *SyncTrie[O]) Load(key Key) (O, bool, error) {
	n := &t.root
	for _, k := range key {
		child, ok := n.children.Load(k)
		if !ok {
			var zero O
			return zero, false, nil
		}
		n = child.(*syncTrieNode[O])
	}
	if v := n.value.Load(); v != nil {
		return *v, true, nil
	}
	var zero O
	return zero, false, nil
}

func (t *SyncTrie[O]) Store(key Key, value O) error {
	n := &t.root
	for _, k := range key {
		child, _ := n.children.LoadOrStore(k, &syncTrieNode[O]{})
		n = child.(*syncTrieNode[O])
	}
	if old := n.value.Swap(&value); old == nil {
		t.size.Add(1)
	}
	return nil
}

func (t *SyncTrie[O]) Len() int {
	return int(t.size.Load())
}

// BoundedTrie keeps at most two generations of maxSize entries each. Stores go to
// the head generation; once it holds maxSize entries it becomes the tail and the
// previous tail is dropped. Loads check the head, then the tail.
// It is not safe for concurrent use.
type BoundedTrie[O any] struct {
	memos   [2]*Trie[O]
	headIdx int
	maxSize uint32
}

func NewBoundedTrie[O any](maxSize uint32) *BoundedTrie[O] {
	if maxSize == 0 {
		panic("maxSize should be greater than 0")
	}
	return &BoundedTrie[O]{
		memos:   [2]*Trie[O]{NewTrie[O](), NewTrie[O]()},
		maxSize: maxSize,
	}
}

func (t *BoundedTrie[O]) Load(key Key) (O, bool, error) {
	if v, ok, _ := t.memos[t.headIdx].Load(key); ok {
		return v, true, nil
	}
	return t.memos[1-t.headIdx].Load(key)
}

func (t *BoundedTrie[O]) Store(key Key, value O) error {
	head := t.memos[t.headIdx]
	if _, ok, _ := head.Load(key); !ok && uint32(head.Len()) >= t.maxSize {
		t.headIdx = 1 - t.headIdx
		t.memos[t.headIdx] = NewTrie[O]()
		head = t.memos[t.headIdx]
	}
	return head.Store(key, value)
}

// Len counts entries in both generations; a key present in both counts twice.
func (t *BoundedTrie[O]) Len() int {
	return t.memos[0].Len() + t.memos[1].Len()
}
