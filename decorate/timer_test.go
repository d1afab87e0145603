package decorate_test

import (
	"errors"
	"testing"
	"time"

	"github.com/on-the-ground/tableize_go/decorate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMeasure(t *testing.T) {
	span := decorate.Measure(func() { time.Sleep(5 * time.Millisecond) })

	assert.GreaterOrEqual(t, span.Duration(), 5*time.Millisecond)
	assert.False(t, span.End().Before(span.Start()))
}

func TestTimed_LogsAndReturnsResult(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sleepy := decorate.Timed("sleepy", func(d time.Duration) string {
		time.Sleep(d)
		return "done"
	}, zap.New(core))

	assert.Equal(t, "done", sleepy(2*time.Millisecond))

	entries := logs.FilterMessage("function executed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "sleepy", fields["function"])
	assert.GreaterOrEqual(t, fields["elapsed"], 2*time.Millisecond)
}

func TestTimed_NilLogger(t *testing.T) {
	double := decorate.Timed("double", func(i int) int { return i * 2 }, nil)
	assert.Equal(t, 8, double(4))
}

func TestTimedErr_LogsFailure(t *testing.T) {
	errNope := errors.New("nope")
	core, logs := observer.New(zap.InfoLevel)
	fn := decorate.TimedErr("picky", func(i int) (int, error) {
		if i < 0 {
			return 0, errNope
		}
		return i, nil
	}, zap.New(core))

	_, err := fn(-1)
	assert.Same(t, errNope, err)
	v, err := fn(3)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	assert.Equal(t, 1, logs.FilterMessage("function failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("function executed").Len())
}
