// Package tune searches a parameter space for the best value of an objective, running
// trials concurrently.
package tune

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/on-the-ground/tableize_go/shared/orderedbuffer"
	"github.com/rickb777/date/v2/timespan"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var ErrNoCompletedTrials = errors.New("no completed trials")

type Direction int

const (
	Maximize Direction = iota
	Minimize
)

func ParseDirection(s string) (Direction, error) {
	switch s {
	case "maximize":
		return Maximize, nil
	case "minimize":
		return Minimize, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) String() string {
	if d == Minimize {
		return "minimize"
	}
	return "maximize"
}

func (d Direction) better(a, b float64) bool {
	if d == Minimize {
		return a < b
	}
	return a > b
}

// Objective scores the params suggested through t.
type Objective func(ctx context.Context, t *Trial) (float64, error)

type options struct {
	name    string
	seed    uint64
	workers int
	logger  *zap.Logger
}

type Option func(*options)

func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithWorkers bounds how many trials run at once. Values below 1 mean 1.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

type Study struct {
	ID        string
	Name      string
	Direction Direction

	seed    uint64
	workers int
	logger  *zap.Logger

	mu     sync.Mutex
	trials []*Trial
}

func NewStudy(direction Direction, opts ...Option) *Study {
	o := options{workers: 1, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	id := uuid.New().String()
	if o.name == "" {
		o.name = "study-" + id[:8]
	}
	return &Study{
		ID:        id,
		Name:      o.name,
		Direction: direction,
		seed:      o.seed,
		workers:   o.workers,
		logger:    o.logger.With(zap.String("study", o.name)),
	}
}

// Optimize runs nTrials more trials of objective. A failing trial is recorded and
// the study goes on. Cancelling ctx stops scheduling new trials; running ones see
// the cancelled ctx and Optimize returns ctx's error once they finish.
func (s *Study) Optimize(ctx context.Context, objective Objective, nTrials int) error {
	p := pool.New().WithContext(ctx).WithMaxGoroutines(s.workers)
	for i := 0; i < nTrials; i++ {
		if ctx.Err() != nil {
			break
		}
		trial := s.newTrial()
		p.Go(func(ctx context.Context) error {
			s.run(ctx, objective, trial)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (s *Study) newTrial() *Trial {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := newTrial(len(s.trials), s.seed)
	s.trials = append(s.trials, t)
	return t
}

func (s *Study) run(ctx context.Context, objective Objective, t *Trial) {
	start := time.Now()
	value, err := objective(ctx, t)
	span := timespan.BetweenTimes(start, time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	t.span = span
	if err != nil {
		t.state, t.err = TrialFailed, err
		s.logger.Warn("trial failed",
			zap.Int("trial", t.Number),
			zap.Any("params", t.Params()),
			zap.Error(err),
		)
		return
	}
	t.state, t.value = TrialComplete, value
	s.logger.Info("trial finished",
		zap.Int("trial", t.Number),
		zap.Float64("value", value),
		zap.Any("params", t.Params()),
		zap.Duration("elapsed", span.Duration()),
	)
}

// TrialResult is a settled snapshot of a Trial.
type TrialResult struct {
	Number int
	State  TrialState
	Value  float64
	Params map[string]any
	Err    error
	Span   timespan.TimeSpan
}

func (s *Study) snapshot(t *Trial) TrialResult {
	return TrialResult{
		Number: t.Number,
		State:  t.state,
		Value:  t.value,
		Params: t.Params(),
		Err:    t.err,
		Span:   t.span,
	}
}

// Trials lists every trial in number order.
func (s *Study) Trials() []TrialResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TrialResult, len(s.trials))
	for i, t := range s.trials {
		out[i] = s.snapshot(t)
	}
	return out
}

// BestTrial is the completed trial with the best value. Ties go to the lower number.
func (s *Study) BestTrial() (TrialResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var best *Trial
	for _, t := range s.trials {
		if t.state != TrialComplete {
			continue
		}
		if best == nil || s.Direction.better(t.value, best.value) {
			best = t
		}
	}
	if best == nil {
		return TrialResult{}, ErrNoCompletedTrials
	}
	return s.snapshot(best), nil
}

// Failures combines the errors of every failed trial, or nil if none failed.
func (s *Study) Failures() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	for _, t := range s.trials {
		if t.state == TrialFailed {
			err = multierr.Append(err, fmt.Errorf("trial %d: %w", t.Number, t.err))
		}
	}
	return err
}

// TopTrials returns up to k completed trials, best first.
func (s *Study) TopTrials(k int) []TrialResult {
	if k <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// greater means better; among equal values the lower number wins
	top := orderedbuffer.NewOrderedBoundedBuffer(k, func(a, b *Trial) int {
		switch {
		case s.Direction.better(a.value, b.value):
			return 1
		case s.Direction.better(b.value, a.value):
			return -1
		}
		return b.Number - a.Number
	})
	for _, t := range s.trials {
		if t.state == TrialComplete {
			top.Insert(t)
		}
	}
	out := make([]TrialResult, 0, top.Len())
	for _, t := range top.Descending() {
		out = append(out, s.snapshot(t))
	}
	return out
}

func (s *Study) BestParams() (map[string]any, error) {
	best, err := s.BestTrial()
	if err != nil {
		return nil, err
	}
	return maps.Clone(best.Params), nil
}

func (s *Study) BestValue() (float64, error) {
	best, err := s.BestTrial()
	if err != nil {
		return 0, err
	}
	return best.Value, nil
}
