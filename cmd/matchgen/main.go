package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/loadgen"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/pkg/logger"
)

// Default configuration constants.
const (
	defaultPopulation = 200
	defaultRequesters = 10
	defaultRepeat     = 3
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

var (
	verbose   bool
	logFormat string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "matchgen",
		Short: "Synthetic populations and selection replay for the matching server",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts := []logger.Option{logger.WithFormat(logFormat), logger.WithWriter(cmd.ErrOrStderr())}
			if err := logger.Init(opts...); err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}
			if verbose {
				return logger.SetLevelString("debug")
			}
			return nil
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newRunCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	var (
		count int
		seed  int64
		out   string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic population as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pop, err := loadgen.Generate(count, seed, time.Now().UTC().Truncate(time.Second))
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				return loadgen.WritePopulation(cmd.OutOrStdout(), pop)
			}
			return loadgen.SavePopulation(cmd.Context(), out, pop)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", defaultPopulation, "Number of users to generate")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func newRunCmd() *cobra.Command {
	var (
		cfg        loadgen.Config
		population string
		count      int
		seed       int64
	)
	cfg.Workers = runtime.NumCPU() * defaultWorkers

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Replay selections against a server and check rankings are stable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				pop loadgen.Population
				err error
			)
			if population != "" {
				pop, err = loadgen.LoadPopulation(population)
			} else {
				pop, err = loadgen.Generate(count, seed, time.Now().UTC())
			}
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
			defer cancel()

			cfg.Verbose = verbose
			stats, err := loadgen.Run(ctx, &cfg, pop)
			if stats != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "sent=%d ok=%d failed=%d invalid=%d mismatches=%d duration=%s\n",
					stats.RequestsSent, stats.RequestsSuccessful, stats.RequestsFailed,
					stats.InvalidRankings, stats.Mismatches, stats.Duration)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "Base URL of the service")
	cmd.Flags().StringVarP(&population, "population", "p", "", "Population YAML (default: generate one)")
	cmd.Flags().IntVarP(&count, "count", "n", defaultPopulation, "Users to generate when no population file is given")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed for a generated population")
	cmd.Flags().IntVar(&cfg.Requesters, "requesters", defaultRequesters, "Population members used as requesters")
	cmd.Flags().IntVar(&cfg.Repeat, "repeat", defaultRepeat, "Times each selection is sent")
	cmd.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of concurrent workers")
	cmd.Flags().IntVar(&cfg.Limit, "limit", 0, "Matches per selection (0 uses the server default)")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "HTTP request timeout")
	return cmd
}
