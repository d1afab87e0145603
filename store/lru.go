package store

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/on-the-ground/tableize_go/pure"
	"github.com/on-the-ground/tableize_go/shared/helper"
)

var _ pure.Store[any] = LRU[any]{}

// LRU is a bounded store that evicts the least recently used entry.
type LRU[O any] struct {
	cache *lru.Cache
}

func NewLRU[O any](size int) (LRU[O], error) {
	cache, err := lru.New(size)
	if err != nil {
		return LRU[O]{}, err
	}
	return LRU[O]{cache: cache}, nil
}

func (l LRU[O]) Load(key pure.Key) (O, bool, error) {
	v, ok := helper.GetTypedValueOf2[O](func() (any, bool) {
		return l.cache.Get(key.Fingerprint())
	})
	return v, ok, nil
}

func (l LRU[O]) Store(key pure.Key, value O) error {
	l.cache.Add(key.Fingerprint(), value)
	return nil
}

func (l LRU[O]) Len() int {
	return l.cache.Len()
}
