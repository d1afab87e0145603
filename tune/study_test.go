package tune_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/on-the-ground/tableize_go/pure"
	"github.com/on-the-ground/tableize_go/tune"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func quadratic(_ context.Context, t *tune.Trial) (float64, error) {
	x := t.SuggestFloat("x", -10, 10)
	return (x - 2) * (x - 2), nil
}

func TestStudy_MinimizeFindsNearOptimum(t *testing.T) {
	study := tune.NewStudy(tune.Minimize, tune.WithSeed(1), tune.WithWorkers(4))

	require.NoError(t, study.Optimize(context.Background(), quadratic, 200))

	value, err := study.BestValue()
	require.NoError(t, err)
	assert.Less(t, value, 0.5)

	params, err := study.BestParams()
	require.NoError(t, err)
	x, err := tune.Param[float64](params, "x")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, x, 0.75)
	assert.Len(t, study.Trials(), 200)
}

func TestStudy_MaximizeWithIntParams(t *testing.T) {
	study := tune.NewStudy(tune.Maximize, tune.WithSeed(5), tune.WithWorkers(2))

	err := study.Optimize(context.Background(), func(_ context.Context, t *tune.Trial) (float64, error) {
		n := t.SuggestInt("n", 1, 10)
		return float64(n), nil
	}, 100)
	require.NoError(t, err)

	best, err := study.BestTrial()
	require.NoError(t, err)
	assert.Equal(t, 10.0, best.Value)
	n, err := tune.Param[int](best.Params, "n")
	require.NoError(t, err)
	assert.Equal(t, 10, n)
}

func TestStudy_SameSeedSameSuggestions(t *testing.T) {
	run := func() []float64 {
		study := tune.NewStudy(tune.Minimize, tune.WithSeed(9), tune.WithWorkers(3))
		require.NoError(t, study.Optimize(context.Background(), quadratic, 10))
		var values []float64
		for _, tr := range study.Trials() {
			values = append(values, tr.Value)
		}
		return values
	}
	assert.Equal(t, run(), run())
}

func TestStudy_FailedTrialsAreRecordedAndLogged(t *testing.T) {
	errOdd := errors.New("odd trial")
	core, logs := observer.New(zap.InfoLevel)
	study := tune.NewStudy(tune.Maximize, tune.WithLogger(zap.New(core)), tune.WithName("flaky"))

	err := study.Optimize(context.Background(), func(_ context.Context, t *tune.Trial) (float64, error) {
		if t.Number%2 == 1 {
			return 0, errOdd
		}
		return float64(t.Number), nil
	}, 6)
	require.NoError(t, err)

	failed := 0
	for _, tr := range study.Trials() {
		if tr.State == tune.TrialFailed {
			failed++
			assert.ErrorIs(t, tr.Err, errOdd)
		}
	}
	assert.Equal(t, 3, failed)
	assert.Equal(t, 3, logs.FilterMessage("trial failed").Len())

	best, err := study.BestTrial()
	require.NoError(t, err)
	assert.Equal(t, 4, best.Number)

	failures := study.Failures()
	assert.ErrorIs(t, failures, errOdd)
	assert.Len(t, multierr.Errors(failures), 3)
	assert.Contains(t, failures.Error(), "trial 3")
}

func TestStudy_NoCompletedTrials(t *testing.T) {
	study := tune.NewStudy(tune.Minimize)

	_, err := study.BestTrial()
	assert.ErrorIs(t, err, tune.ErrNoCompletedTrials)
	assert.NoError(t, study.Failures())

	require.NoError(t, study.Optimize(context.Background(), func(context.Context, *tune.Trial) (float64, error) {
		return 0, errors.New("always")
	}, 3))
	_, err = study.BestValue()
	assert.ErrorIs(t, err, tune.ErrNoCompletedTrials)
	_, err = study.BestParams()
	assert.ErrorIs(t, err, tune.ErrNoCompletedTrials)
}

func TestStudy_CancelStopsScheduling(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	study := tune.NewStudy(tune.Maximize)

	var ran atomic.Int64
	err := study.Optimize(ctx, func(context.Context, *tune.Trial) (float64, error) {
		if ran.Add(1) == 3 {
			cancel()
		}
		return 1, nil
	}, 100)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, ran.Load(), int64(100))
}

func TestStudy_MemoizedObjective(t *testing.T) {
	var evaluations atomic.Int64
	score := pure.New(func(args pure.Args) (float64, error) {
		evaluations.Add(1)
		return float64(args.Pos[0].(int)), nil
	}, pure.NewSyncTrie[float64]())

	study := tune.NewStudy(tune.Maximize, tune.WithSeed(3), tune.WithWorkers(4))
	err := study.Optimize(context.Background(), func(_ context.Context, t *tune.Trial) (float64, error) {
		return score.Call(pure.A(t.SuggestInt("k", 1, 3)))
	}, 60)
	require.NoError(t, err)

	// three possible params, concurrent misses may evaluate one twice
	assert.Equal(t, 3, score.Len())
	assert.Less(t, evaluations.Load(), int64(60))
	value, err := study.BestValue()
	require.NoError(t, err)
	assert.Equal(t, 3.0, value)
}

func TestTrial_RepeatedSuggestionIsStable(t *testing.T) {
	study := tune.NewStudy(tune.Maximize)
	require.NoError(t, study.Optimize(context.Background(), func(_ context.Context, t *tune.Trial) (float64, error) {
		a := t.SuggestInt("a", 0, 1000)
		b := t.SuggestInt("a", 0, 1000)
		if a != b {
			return 0, errors.New("unstable")
		}
		return 1, nil
	}, 5))

	for _, tr := range study.Trials() {
		assert.Equal(t, tune.TrialComplete, tr.State)
	}
}

func TestParam_Errors(t *testing.T) {
	params := map[string]any{"n": 3}

	_, err := tune.Param[int](params, "missing")
	assert.ErrorIs(t, err, tune.ErrUnknownParam)
	_, err = tune.Param[float64](params, "n")
	assert.Error(t, err)
}

func TestParseDirection(t *testing.T) {
	d, err := tune.ParseDirection("minimize")
	require.NoError(t, err)
	assert.Equal(t, tune.Minimize, d)
	assert.Equal(t, "minimize", d.String())

	_, err = tune.ParseDirection("sideways")
	assert.Error(t, err)
}

func TestStudy_TopTrials(t *testing.T) {
	study := tune.NewStudy(tune.Minimize)
	values := []float64{5, 1, 3, 1, 4}
	require.NoError(t, study.Optimize(context.Background(), func(_ context.Context, t *tune.Trial) (float64, error) {
		return values[t.Number], nil
	}, len(values)))

	top := study.TopTrials(3)
	require.Len(t, top, 3)
	assert.Equal(t, []int{1, 3, 2}, []int{top[0].Number, top[1].Number, top[2].Number})
	assert.Len(t, study.TopTrials(10), 5)
	assert.Empty(t, study.TopTrials(0))
}
