package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"swaglabs-e2e/internal/di"
	"swaglabs-e2e/internal/domain/entity"
	"swaglabs-e2e/internal/infrastructure/env"
)

var errScenariosFailed = errors.New("scenarios failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errScenariosFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "e2e",
		Short:         "Swag Labs end-to-end flows driven through page objects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newListCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		headless bool
		baseURL  string
		retries  int
		logLevel string
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run [scenario...]",
		Short: "Run the named scenarios, or all of them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := di.ConfigFromEnv(env.NewEnvService())
			flags := cmd.Flags()
			if flags.Changed("headless") {
				cfg.BrowserHeadless = headless
			}
			if flags.Changed("base-url") {
				cfg.BaseURL = baseURL
			}
			if flags.Changed("retries") {
				cfg.Retries = retries
			}
			if flags.Changed("log-level") {
				cfg.Log.Level = logLevel
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			container, err := di.NewContainer(ctx, cfg)
			if err != nil {
				return fmt.Errorf("initialization failed: %w", err)
			}
			defer container.Close()

			results, err := container.Runner.Run(ctx, args...)
			if err != nil {
				return err
			}
			for _, r := range results {
				if r.Status == entity.ScenarioFailed {
					return errScenariosFailed
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&headless, "headless", true, "run the browser without a window")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "site under test (overrides BASE_URL and test data)")
	cmd.Flags().IntVar(&retries, "retries", 0, "extra attempts for scenarios failing on driver errors")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "overall deadline for the run")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := di.ConfigFromEnv(env.NewEnvService())
			cfg.Log.Level = "error"

			container, err := di.NewContainer(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("initialization failed: %w", err)
			}
			defer container.Close()

			for _, s := range container.Scenarios.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-26s %s\n", s.Name(), s.Description())
			}
			return nil
		},
	}
}
