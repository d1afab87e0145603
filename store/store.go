// Package store provides pure.Store implementations backed by concurrent maps and
// third-party caches, identified by pure.Key.Fingerprint. Sharded, LRU, Ristretto
// and MemDB are safe for concurrent use; concurrent stores to one key are
// last-write-wins. New also hands out the pure tries: KindSyncTrie is concurrent,
// KindTrie and KindBounded are not (see Kind.Concurrent).
package store

import (
	"errors"
	"fmt"

	"github.com/on-the-ground/tableize_go/pure"
)

// Kind names a store implementation.
type Kind string

const (
	KindTrie      Kind = "trie"
	KindSyncTrie  Kind = "sync"
	KindBounded   Kind = "bounded"
	KindSharded   Kind = "sharded"
	KindLRU       Kind = "lru"
	KindRistretto Kind = "ristretto"
	KindMemDB     Kind = "memdb"
)

// Concurrent reports whether stores of this kind may be shared between goroutines.
func (k Kind) Concurrent() bool {
	switch k {
	case KindSyncTrie, KindSharded, KindLRU, KindRistretto, KindMemDB:
		return true
	}
	return false
}

var ErrUnknownKind = errors.New("unknown store kind")

var ErrInvalidCapacity = errors.New("bounded store needs a positive capacity")

// New builds a store of the given kind. capacity applies to bounded kinds and
// shards to the sharded kind.
func New[O any](kind Kind, capacity, shards int) (pure.Store[O], error) {
	switch kind {
	case KindTrie, "":
		return pure.NewTrie[O](), nil
	case KindSyncTrie:
		return pure.NewSyncTrie[O](), nil
	case KindSharded:
		return NewSharded[O](shards), nil
	case KindMemDB:
		db, err := NewMemDB[O]()
		if err != nil {
			return nil, err
		}
		return db, nil
	}

	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %s: %d", ErrInvalidCapacity, kind, capacity)
	}
	switch kind {
	case KindBounded:
		return pure.NewBoundedTrie[O](uint32(capacity)), nil
	case KindLRU:
		l, err := NewLRU[O](capacity)
		if err != nil {
			return nil, err
		}
		return l, nil
	case KindRistretto:
		r, err := NewRistretto[O](int64(capacity))
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
