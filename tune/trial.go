package tune

import (
	"errors"
	"fmt"
	"maps"
	"math/rand/v2"
	"sync"

	"github.com/on-the-ground/tableize_go/shared/helper"
	"github.com/rickb777/date/v2/timespan"
)

var ErrUnknownParam = errors.New("unknown param")

type TrialState int

const (
	TrialRunning TrialState = iota
	TrialComplete
	TrialFailed
)

func (s TrialState) String() string {
	switch s {
	case TrialRunning:
		return "running"
	case TrialComplete:
		return "complete"
	case TrialFailed:
		return "failed"
	}
	return fmt.Sprintf("TrialState(%d)", int(s))
}

// Trial is one evaluation of an objective. Suggestions are drawn from a source
// seeded by the study seed and the trial number, so reruns suggest the same params.
type Trial struct {
	Number int

	// settled by the study once the objective returns
	state TrialState
	value float64
	err   error
	span  timespan.TimeSpan

	mu     sync.Mutex
	params map[string]any
	rng    *rand.Rand
}

func newTrial(number int, seed uint64) *Trial {
	return &Trial{
		Number: number,
		params: map[string]any{},
		rng:    rand.New(rand.NewPCG(seed, uint64(number))),
	}
}

// SuggestInt draws an integer in [low, high]. Asking again for the same name
// returns the first suggestion.
func (t *Trial) SuggestInt(name string, low, high int) int {
	if low > high {
		panic(fmt.Sprintf("tune: SuggestInt %q: low %d > high %d", name, low, high))
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := t.params[name].(int); ok {
		return v
	}
	v := low + t.rng.IntN(high-low+1)
	t.params[name] = v
	return v
}

// SuggestFloat draws a float in [low, high).
func (t *Trial) SuggestFloat(name string, low, high float64) float64 {
	if low > high {
		panic(fmt.Sprintf("tune: SuggestFloat %q: low %g > high %g", name, low, high))
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := t.params[name].(float64); ok {
		return v
	}
	v := low + t.rng.Float64()*(high-low)
	t.params[name] = v
	return v
}

// Params returns a copy of the suggestions made so far.
func (t *Trial) Params() map[string]any {
	t.mu.Lock()
	defer t.mu.Unlock()
	return maps.Clone(t.params)
}

// Param reads a suggested value back as T.
func Param[T any](params map[string]any, name string) (T, error) {
	return helper.GetTypedValueOf[T](func() (any, error) {
		v, ok := params[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownParam, name)
		}
		return v, nil
	})
}
