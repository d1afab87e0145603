package pure_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/on-the-ground/tableize_go/pure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMemo_PlusOneComputesOnce(t *testing.T) {
	count := 0
	memo := pure.New(func(args pure.Args) (int, error) {
		count++
		return args.Pos[0].(int) + 1, nil
	}, nil)

	v, err := memo.Call(pure.A(2))
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	v, err = memo.Call(pure.A(2))
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	assert.Equal(t, 1, count)
	assert.Equal(t, pure.Stats{Hits: 1, Misses: 1}, memo.Stats())
	assert.Equal(t, 1, memo.Len())
}

func TestMemo_ErrorsPropagateAndAreNotTabled(t *testing.T) {
	errBoom := errors.New("boom")
	count := 0
	memo := pure.New(func(args pure.Args) (string, error) {
		count++
		if args.Pos[0] == "bad" {
			return "", errBoom
		}
		return "ok", nil
	}, nil)

	_, err := memo.Call(pure.A("bad"))
	assert.Same(t, errBoom, err)
	_, err = memo.Call(pure.A("bad"))
	assert.Same(t, errBoom, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 0, memo.Len())
	assert.Equal(t, uint64(2), memo.Stats().Errors)
}

func TestMemo_PanicsPropagateAndAreNotTabled(t *testing.T) {
	count := 0
	memo := pure.New(func(args pure.Args) (int, error) {
		count++
		panic("broken")
	}, nil)

	for i := 0; i < 2; i++ {
		assert.Panics(t, func() { _, _ = memo.Call(pure.A(1)) })
	}
	assert.Equal(t, 2, count)
	assert.Equal(t, 0, memo.Len())
}

func TestMemo_ReorderedKeywordsAreDistinctCalls(t *testing.T) {
	count := 0
	memo := pure.New(func(args pure.Args) (int, error) {
		count++
		sum := 0
		for _, kw := range args.Kw {
			sum += kw.Value.(int)
		}
		return sum, nil
	}, nil)

	v1, err := memo.Call(pure.A().With("x", 1).With("y", 2))
	require.NoError(t, err)
	v2, err := memo.Call(pure.A().With("y", 2).With("x", 1))
	require.NoError(t, err)
	_, _ = memo.Call(pure.A().With("x", 1).With("y", 2))

	assert.Equal(t, v1, v2)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, memo.Len())
}

func TestMemo_UnhashableArgumentDoesNotInvoke(t *testing.T) {
	count := 0
	memo := pure.New(func(args pure.Args) (int, error) {
		count++
		return 0, nil
	}, nil)

	_, err := memo.Call(pure.A([]int{1, 2}))
	require.ErrorIs(t, err, pure.ErrUnhashableKey)
	assert.Equal(t, 0, count)
	assert.Equal(t, pure.Stats{}, memo.Stats())
}

func TestMemo_NullaryCall(t *testing.T) {
	count := 0
	memo := pure.New(func(pure.Args) (string, error) {
		count++
		return "constant", nil
	}, nil)

	for i := 0; i < 3; i++ {
		v, err := memo.Call(pure.A())
		require.NoError(t, err)
		assert.Equal(t, "constant", v)
	}
	assert.Equal(t, 1, count)
}

type failingStore struct{ err error }

func (s failingStore) Load(pure.Key) (int, bool, error) { return 0, false, s.err }
func (s failingStore) Store(pure.Key, int) error       { return s.err }
func (s failingStore) Len() int                        { return 0 }

func TestMemo_StoreErrorsAreWrapped(t *testing.T) {
	errDisk := errors.New("disk on fire")
	memo := pure.New(func(pure.Args) (int, error) { return 1, nil }, failingStore{err: errDisk})

	_, err := memo.Call(pure.A(1))
	require.ErrorIs(t, err, pure.ErrStore)
	require.ErrorIs(t, err, errDisk)
}

func TestMemo_LogsHitsAndMissesAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	memo := pure.New(func(args pure.Args) (int, error) {
		return args.Pos[0].(int) * 10, nil
	}, nil, pure.WithName("times10"), pure.WithLogger(zap.New(core)))

	_, _ = memo.Call(pure.A(1))
	_, _ = memo.Call(pure.A(1))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "memo miss", entries[0].Message)
	assert.Equal(t, "memo hit", entries[1].Message)
	assert.Equal(t, "times10", entries[1].ContextMap()["memo"])
	assert.Equal(t, memo.ID, entries[1].ContextMap()["memoId"])
}

func TestMemo_NoLogsAboveDebug(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	memo := pure.New(func(pure.Args) (int, error) { return 1, nil }, nil, pure.WithLogger(zap.New(core)))

	_, _ = memo.Call(pure.A(1))
	_, _ = memo.Call(pure.A(1))
	assert.Equal(t, 0, logs.Len())
}

func TestMemo_DistinctMemosHaveDistinctTables(t *testing.T) {
	double := pure.New(func(a pure.Args) (int, error) { return a.Pos[0].(int) * 2, nil }, nil)
	triple := pure.New(func(a pure.Args) (int, error) { return a.Pos[0].(int) * 3, nil }, nil)

	v, _ := double.Call(pure.A(5))
	assert.Equal(t, 10, v)
	v, _ = triple.Call(pure.A(5))
	assert.Equal(t, 15, v)
	assert.NotEqual(t, double.ID, triple.ID)
}

func TestMemo_ConcurrentCallsWithSyncTrie(t *testing.T) {
	var calls atomic.Int64
	memo := pure.New(func(args pure.Args) (int, error) {
		calls.Add(1)
		return args.Pos[0].(int) * args.Pos[0].(int), nil
	}, pure.NewSyncTrie[int]())

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				v, err := memo.Call(pure.A(i % 10))
				assert.NoError(t, err)
				assert.Equal(t, (i%10)*(i%10), v)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, memo.Len())
	// concurrent misses may compute the same key more than once
	assert.GreaterOrEqual(t, calls.Load(), int64(10))
	stats := memo.Stats()
	assert.Equal(t, uint64(800), stats.Hits+stats.Misses)
}
