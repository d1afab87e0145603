// Package dryrun turns query dry runs into test assertions. A dry run validates a
// query without executing it; Query reports success as ErrQuerySucceeded so a test
// can tell "the query is valid" apart from every other outcome.
package dryrun

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var ErrQuerySucceeded = errors.New("query succeeded")

// Runner validates a query without running it.
type Runner interface {
	DryRun(ctx context.Context, query string) error
}

type RunnerFunc func(ctx context.Context, query string) error

func (f RunnerFunc) DryRun(ctx context.Context, query string) error {
	return f(ctx, query)
}

// Query returns ErrQuerySucceeded when runner accepts query, and runner's error
// otherwise.
func Query(ctx context.Context, runner Runner, query string) error {
	if err := runner.DryRun(ctx, query); err != nil {
		return err
	}
	return ErrQuerySucceeded
}

// Test wraps a dry-run test body: the test passes only if fn ends with
// ErrQuerySucceeded. Apply it innermost, before any table or parallel wrapper.
func Test(fn func(t *testing.T) error) func(t *testing.T) {
	return Raises(ErrQuerySucceeded, fn)
}

// Raises wraps fn into a test that fails unless fn returns an error matching target.
func Raises(target error, fn func(t *testing.T) error) func(t *testing.T) {
	return func(t *testing.T) {
		t.Helper()
		require.ErrorIs(t, fn(t), target)
	}
}
