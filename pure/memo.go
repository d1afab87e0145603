package pure

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Stats is a snapshot of a Memo's counters.
type Stats struct {
	Hits   uint64
	Misses uint64
	Errors uint64
}

type options struct {
	name   string
	logger *zap.Logger
}

type Option func(*options)

// WithName labels the memo in logs.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger for hit/miss debug logs. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Memo tables the results of a pure function by its arguments.
//
// Memo itself holds no locks: whether it may be shared between goroutines is
// decided by its Store. With a concurrent store two simultaneous misses on the same
// key both run the function and the later write wins.
type Memo[O any] struct {
	ID string

	fn     func(Args) (O, error)
	store  Store[O]
	name   string
	logger *zap.Logger

	hits   atomic.Uint64
	misses atomic.Uint64
	errors atomic.Uint64
}

// New wraps fn with a table held in store. A nil store means an unbounded Trie.
func New[O any](fn func(Args) (O, error), store Store[O], opts ...Option) *Memo[O] {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if store == nil {
		store = NewTrie[O]()
	}
	return &Memo[O]{
		ID:     uuid.New().String(),
		fn:     fn,
		store:  store,
		name:   o.name,
		logger: o.logger,
	}
}

// Call returns the tabled result for args, computing and storing it on a miss.
// An error from the wrapped function is returned as is and nothing is stored.
func (m *Memo[O]) Call(args Args) (O, error) {
	var zero O

	key, err := NewKey(args)
	if err != nil {
		return zero, err
	}

	v, ok, err := m.store.Load(key)
	if err != nil {
		return zero, fmt.Errorf("%w: load: %w", ErrStore, err)
	}
	if ok {
		m.hits.Add(1)
		m.debug("memo hit", key)
		return v, nil
	}

	m.misses.Add(1)
	m.debug("memo miss", key)
	v, err = m.fn(args)
	if err != nil {
		m.errors.Add(1)
		m.debug("memo result not tabled", key, zap.Error(err))
		return zero, err
	}
	if err := m.store.Store(key, v); err != nil {
		return zero, fmt.Errorf("%w: store: %w", ErrStore, err)
	}
	return v, nil
}

func (m *Memo[O]) debug(msg string, key Key, fields ...zap.Field) {
	ce := m.logger.Check(zapcore.DebugLevel, msg)
	if ce == nil {
		return
	}
	ce.Write(append(fields,
		zap.String("memo", m.name),
		zap.String("memoId", m.ID),
		zap.String("key", key.Fingerprint()),
	)...)
}

func (m *Memo[O]) Stats() Stats {
	return Stats{
		Hits:   m.hits.Load(),
		Misses: m.misses.Load(),
		Errors: m.errors.Load(),
	}
}

// Len is the number of tabled results.
func (m *Memo[O]) Len() int {
	return m.store.Len()
}
