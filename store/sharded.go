package store

import (
	"sync"

	"github.com/on-the-ground/tableize_go/pure"
)

var _ pure.Store[any] = (*Sharded[any])(nil)

type shard[O any] struct {
	mu      sync.RWMutex
	entries map[string]O
}

// Sharded is an unbounded store split over mutex-guarded maps. A key's shard is
// chosen by the hash of its fingerprint, so hot keys only contend within a shard.
type Sharded[O any] struct {
	shards []*shard[O]
}

func NewSharded[O any](numShards int) *Sharded[O] {
	if numShards <= 0 {
		numShards = 1
	}
	shards := make([]*shard[O], numShards)
	for i := range shards {
		shards[i] = &shard[O]{entries: make(map[string]O)}
	}
	return &Sharded[O]{shards: shards}
}

func (s *Sharded[O]) shardOf(key pure.Key) (*shard[O], string) {
	fp := key.Fingerprint()
	if len(s.shards) == 1 {
		return s.shards[0], fp
	}
	return s.shards[key.Hash()%uint64(len(s.shards))], fp
}

func (s *Sharded[O]) Load(key pure.Key) (O, bool, error) {
	sh, fp := s.shardOf(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	v, ok := sh.entries[fp]
	return v, ok, nil
}

func (s *Sharded[O]) Store(key pure.Key, value O) error {
	sh, fp := s.shardOf(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.entries[fp] = value
	return nil
}

func (s *Sharded[O]) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		n += len(sh.entries)
		sh.mu.RUnlock()
	}
	return n
}
