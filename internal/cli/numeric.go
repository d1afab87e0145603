package cli

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/on-the-ground/tableize_go/decorate"
	"github.com/on-the-ground/tableize_go/numeric"
	"github.com/on-the-ground/tableize_go/pure"
	"github.com/on-the-ground/tableize_go/tune"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

func newPiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pi",
		Short: "Estimate pi by Monte Carlo sampling",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := a.cfg.Sampling
			estimate := decorate.Timed("monte_carlo_pi", func(n int) float64 {
				return numeric.MonteCarloPiParallel(n, s.Workers, s.Seed)
			}, a.logger)

			pi := estimate(s.Samples)
			printf(cmd, "pi ~ %.6f (error %.6f, samples=%d, workers=%d)\n",
				pi, math.Abs(pi-math.Pi), s.Samples, s.Workers)
			return nil
		},
	}
}

func newTuneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tune",
		Short: "Tune logistic regression iterations and learning rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tc := a.cfg.Tune
			direction, err := tune.ParseDirection(tc.Direction)
			if err != nil {
				return err
			}

			X, Y := numeric.Blobs(tc.SampleSize, tc.Seed)
			trainX, trainY, testX, testY := numeric.Split(X, Y, 0.8)
			_, features := X.Dims()

			score := pure.New(func(args pure.Args) (float64, error) {
				iterations, rate := args.Pos[0].(int), args.Pos[1].(float64)
				w := numeric.LogisticRegression(trainY, trainX, mat.NewVecDense(features, nil), iterations, rate)
				return numeric.Accuracy(testY, numeric.Predict(testX, w)), nil
			}, pure.NewSyncTrie[float64](), pure.WithName("accuracy"), pure.WithLogger(a.logger))

			study := tune.NewStudy(direction,
				tune.WithName("logistic-regression"),
				tune.WithSeed(tc.Seed),
				tune.WithWorkers(tc.Workers),
				tune.WithLogger(a.logger),
			)
			err = study.Optimize(cmd.Context(), func(_ context.Context, t *tune.Trial) (float64, error) {
				iterations := t.SuggestInt("iterations", 10, 200)
				// rounded so nearby suggestions share a table entry
				rate := math.Round(t.SuggestFloat("rate", 0.0001, 0.05)*1e4) / 1e4
				return score.Call(pure.A(iterations, rate))
			}, tc.Trials)
			if err != nil {
				return err
			}

			best, err := study.BestTrial()
			if err != nil {
				return err
			}
			printf(cmd, "best %s value: %.4f (trial %d)\n", study.Direction, best.Value, best.Number)
			printf(cmd, "best params: %s\n", formatParams(best.Params))
			for i, tr := range study.TopTrials(3) {
				printf(cmd, "  #%d trial %d: %.4f %s\n", i+1, tr.Number, tr.Value, formatParams(tr.Params))
			}
			printf(cmd, "evaluations: %d of %d trials\n", score.Stats().Misses, len(study.Trials()))
			return nil
		},
	}
}

func formatParams(params map[string]any) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	out := ""
	for i, name := range names {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s=%v", name, params[name])
	}
	return out
}
