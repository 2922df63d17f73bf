package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/PetroleumCyberneticsGroup/opm-parser/internal/deck"
	"github.com/PetroleumCyberneticsGroup/opm-parser/internal/observability"
	"github.com/PetroleumCyberneticsGroup/opm-parser/pkg/schedule"
)

const secondsPerDay = 86400.0

var stepsCmd = &cobra.Command{
	Use:   "steps <deck>",
	Short: "Print every report step of the deck's timeline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tm, err := buildTimeMap(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("start %s, %d steps, %.1f days total\n",
			tm.StartTime(), tm.NumSteps(), tm.TotalDuration()/secondsPerDay)
		for i := 1; i <= tm.NumSteps(); i++ {
			at, err := tm.InstantAt(i)
			if err != nil {
				return err
			}
			elapsed, err := tm.ElapsedSinceStart(i)
			if err != nil {
				return err
			}
			fmt.Printf("%4d  %s  %8.2f days\n", i, at, elapsed/secondsPerDay)
		}

		fmt.Printf("month boundary steps: %v\n", tm.FirstStepMonths())
		fmt.Printf("year boundary steps:  %v\n", tm.FirstStepYears())
		return nil
	},
}

// buildTimeMap scans the deck file and builds its timeline, with a span and
// build metrics around the construction.
func buildTimeMap(ctx context.Context, path string) (*schedule.TimeMap, error) {
	ctx, span := observability.Tracer(serviceName).Start(ctx, "build_timemap")
	defer span.End()
	span.SetAttributes(attribute.String("deck.path", path))

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deck: %w", err)
	}
	defer f.Close()

	tm, err := deck.BuildTimeMap(f)
	if err != nil {
		return nil, fmt.Errorf("build timeline from %s: %w", path, err)
	}

	metrics, err := observability.NewTimelineMetrics(observability.Meter(serviceName))
	if err != nil {
		return nil, err
	}
	metrics.RecordBuild(ctx, tm.NumSteps(), len(tm.FirstStepMonths()), len(tm.FirstStepYears()))

	observability.LoggerFromContext(ctx).Info("timeline built",
		slog.String("deck", path),
		slog.Int("steps", tm.NumSteps()),
		slog.Int("month_boundaries", len(tm.FirstStepMonths())),
		slog.Int("year_boundaries", len(tm.FirstStepYears())),
	)
	return tm, nil
}

func init() {
	rootCmd.AddCommand(stepsCmd)
}
