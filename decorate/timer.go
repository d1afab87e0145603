// Package decorate wraps functions with timing instrumentation.
package decorate

import (
	"time"

	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/zap"
)

// Measure runs fn and returns the span it ran in.
func Measure(fn func()) timespan.TimeSpan {
	start := time.Now()
	fn()
	return timespan.BetweenTimes(start, time.Now())
}

// Timed returns fn wrapped so that every call logs its elapsed time under name.
// A nil logger disables logging but the call is still timed.
func Timed[I, O any](name string, fn func(I) O, logger *zap.Logger) func(I) O {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(in I) O {
		var out O
		span := Measure(func() {
			out = fn(in)
		})
		logger.Info("function executed",
			zap.String("function", name),
			zap.Duration("elapsed", span.Duration()),
			zap.Time("start", span.Start()),
		)
		return out
	}
}

// TimedErr is Timed for functions that can fail. The error is logged alongside the
// elapsed time and returned unchanged.
func TimedErr[I, O any](name string, fn func(I) (O, error), logger *zap.Logger) func(I) (O, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(in I) (O, error) {
		var (
			out O
			err error
		)
		span := Measure(func() {
			out, err = fn(in)
		})
		fields := []zap.Field{
			zap.String("function", name),
			zap.Duration("elapsed", span.Duration()),
			zap.Time("start", span.Start()),
		}
		if err != nil {
			logger.Warn("function failed", append(fields, zap.Error(err))...)
			return out, err
		}
		logger.Info("function executed", fields...)
		return out, nil
	}
}
