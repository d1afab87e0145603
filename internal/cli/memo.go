package cli

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/on-the-ground/tableize_go/decorate"
	"github.com/on-the-ground/tableize_go/pure"
	"github.com/on-the-ground/tableize_go/store"
	"github.com/spf13/cobra"
)

// fib(93) is the largest that fits in a uint64.
const maxFib = 93

var errFibRange = errors.New("fib: n out of range")

func newMemo[O any](a *app, name string, fn func(pure.Args) (O, error)) (*pure.Memo[O], error) {
	s, err := store.New[O](store.Kind(a.cfg.Memo.Store), a.cfg.Memo.Capacity, a.cfg.Memo.Shards)
	if err != nil {
		return nil, err
	}
	return pure.New(fn, s, pure.WithName(name), pure.WithLogger(a.logger)), nil
}

func newFib(a *app) (func(int) (uint64, error), *pure.Memo[uint64], error) {
	var memo *pure.Memo[uint64]
	fib := func(n int) (uint64, error) {
		return memo.Call(pure.A(n))
	}
	memo, err := newMemo(a, "fib", func(args pure.Args) (uint64, error) {
		n := args.Pos[0].(int)
		if n <= 1 {
			return uint64(n), nil
		}
		x, err := fib(n - 1)
		if err != nil {
			return 0, err
		}
		y, err := fib(n - 2)
		if err != nil {
			return 0, err
		}
		return x + y, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return fib, memo, nil
}

func newFibCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fib N",
		Short: "Compute the Nth Fibonacci number with a memoized recursion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("fib: %w", err)
			}
			if n < 0 || n > maxFib {
				return fmt.Errorf("%w: %d not in [0, %d]", errFibRange, n, maxFib)
			}
			fib, memo, err := newFib(a)
			if err != nil {
				return err
			}
			timed := decorate.TimedErr("fib", fib, a.logger)
			v, err := timed(n)
			if err != nil {
				return err
			}
			stats := memo.Stats()
			printf(cmd, "fib(%d) = %d\n", n, v)
			printf(cmd, "store=%s entries=%d hits=%d misses=%d\n",
				a.cfg.Memo.Store, memo.Len(), stats.Hits, stats.Misses)
			return nil
		},
	}
}

// newLevenshtein counts edits in runes, not bytes.
func newLevenshtein(a *app) (func(x, y string) (int, error), *pure.Memo[int], error) {
	var memo *pure.Memo[int]
	lev := func(x, y string) (int, error) {
		return memo.Call(pure.A(x, y))
	}
	memo, err := newMemo(a, "levenshtein", func(args pure.Args) (int, error) {
		x, y := args.Pos[0].(string), args.Pos[1].(string)
		if len(x) == 0 {
			return utf8.RuneCountInString(y), nil
		}
		if len(y) == 0 {
			return utf8.RuneCountInString(x), nil
		}
		rx, nx := utf8.DecodeRuneInString(x)
		ry, ny := utf8.DecodeRuneInString(y)
		if rx == ry {
			return lev(x[nx:], y[ny:])
		}
		best := -1
		for _, next := range [][2]string{{x[nx:], y}, {x, y[ny:]}, {x[nx:], y[ny:]}} {
			d, err := lev(next[0], next[1])
			if err != nil {
				return 0, err
			}
			if best < 0 || d < best {
				best = d
			}
		}
		return 1 + best, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return lev, memo, nil
}

func newLevenshteinCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "levenshtein A B",
		Short: "Edit distance between two strings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lev, memo, err := newLevenshtein(a)
			if err != nil {
				return err
			}
			d, err := lev(args[0], args[1])
			if err != nil {
				return err
			}
			printf(cmd, "levenshtein(%q, %q) = %d\n", args[0], args[1], d)
			printf(cmd, "store=%s entries=%d\n", a.cfg.Memo.Store, memo.Len())
			return nil
		},
	}
}
