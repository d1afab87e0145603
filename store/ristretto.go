package store

import (
	ristretto "github.com/dgraph-io/ristretto/v2"
	"github.com/on-the-ground/tableize_go/pure"
)

var _ pure.Store[any] = Ristretto[any]{}

// Ristretto is a bounded store with TinyLFU admission. Admission may refuse a new
// entry, in which case the next call with that key computes it again.
type Ristretto[O any] struct {
	*ristretto.Cache[string, O]
}

func NewRistretto[O any](maxItems int64) (Ristretto[O], error) {
	if maxItems <= 0 {
		maxItems = 1
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, O]{
		NumCounters:        10 * maxItems, // keys to track frequency of
		MaxCost:            maxItems,      // one cost unit per entry
		BufferItems:        64,            // keys per Get buffer
		IgnoreInternalCost: true,
		Metrics:            true,
	})
	if err != nil {
		return Ristretto[O]{}, err
	}
	return Ristretto[O]{Cache: cache}, nil
}

func (r Ristretto[O]) Load(key pure.Key) (O, bool, error) {
	v, ok := r.Cache.Get(key.Fingerprint())
	return v, ok, nil
}

func (r Ristretto[O]) Store(key pure.Key, value O) error {
	if r.Cache.Set(key.Fingerprint(), value, 1) {
		// make the write visible to the next Load
		r.Cache.Wait()
	}
	return nil
}

func (r Ristretto[O]) Len() int {
	return int(r.Cache.Metrics.KeysAdded() - r.Cache.Metrics.KeysEvicted())
}
