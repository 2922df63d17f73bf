package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/PetroleumCyberneticsGroup/opm-parser/internal/config"
	"github.com/PetroleumCyberneticsGroup/opm-parser/internal/observability"
)

const (
	serviceName    = "schedinfo"
	serviceVersion = "0.1.0"
)

var (
	cfg    *config.Config
	logger *slog.Logger

	tracerProvider  *observability.TracerProvider
	metricsProvider *observability.MetricsProvider
)

var rootCmd = &cobra.Command{
	Use:   "schedinfo",
	Short: "Inspect the report-step timeline of a simulation deck",
	Long: `schedinfo reads the schedule section of a simulation deck (START,
TSTEP and DATES keywords), builds the report-step timeline, and prints
step, boundary and periodic report information.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return setup(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration and initializes logging, tracing and metrics.
func setup(ctx context.Context) error {
	var err error
	cfg, err = config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger = observability.InitLogger(observability.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: serviceName,
		Environment: cfg.Environment,
	}).With(slog.String("run_id", uuid.NewString()))

	tracerProvider, err = observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTEL.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("initialize tracer: %w", err)
	}

	metricsProvider, err = observability.InitMetrics(ctx, observability.MetricsConfig{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTEL.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("initialize metrics: %w", err)
	}

	return nil
}

// teardown flushes the telemetry providers.
func teardown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if tracerProvider != nil {
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}
	if metricsProvider != nil {
		if err := metricsProvider.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics", slog.String("error", err.Error()))
		}
	}
	return nil
}
