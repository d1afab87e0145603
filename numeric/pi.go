// Package numeric holds the number-crunching kernels used by the demos: Monte Carlo
// estimation and logistic regression by gradient descent.
package numeric

import (
	"math/rand/v2"

	"github.com/sourcegraph/conc/pool"
)

func newRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

func countInside(samples int, r *rand.Rand) int {
	acc := 0
	for i := 0; i < samples; i++ {
		x, y := r.Float64(), r.Float64()
		if x*x+y*y < 1.0 {
			acc++
		}
	}
	return acc
}

// MonteCarloPi estimates pi from samples uniform points in the unit square.
// The same seed gives the same estimate.
func MonteCarloPi(samples int, seed uint64) float64 {
	if samples <= 0 {
		return 0
	}
	return 4.0 * float64(countInside(samples, newRand(seed, 0))) / float64(samples)
}

// MonteCarloPiParallel splits samples across workers, each with its own stream
// derived from seed. The result depends on seed and workers, not on scheduling.
func MonteCarloPiParallel(samples, workers int, seed uint64) float64 {
	if samples <= 0 {
		return 0
	}
	if workers < 1 {
		workers = 1
	}
	if workers > samples {
		workers = samples
	}

	p := pool.NewWithResults[int]().WithMaxGoroutines(workers)
	per, rest := samples/workers, samples%workers
	for w := 0; w < workers; w++ {
		n := per
		if w < rest {
			n++
		}
		stream := uint64(w) + 1
		p.Go(func() int {
			return countInside(n, newRand(seed, stream))
		})
	}

	acc := 0
	for _, inside := range p.Wait() {
		acc += inside
	}
	return 4.0 * float64(acc) / float64(samples)
}
