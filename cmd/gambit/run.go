package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/boristopalov/gambit/internal/logging"
	"github.com/boristopalov/gambit/pkg/experiment"
	"github.com/boristopalov/gambit/pkg/messaging"
	"github.com/boristopalov/gambit/pkg/report"
)

const configFile = "config.yaml"

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation and write its reports",
		Long: `Run a simulation and write its reports into a new folder under
output_dir_base. Interrupting with Ctrl-C stops after the current generation
and still writes reports for the generations that finished.

Examples:
  gambit run
  gambit run --agent adaptive --lr 0.1 --generations 500
  gambit run --config experiment.yaml --seed 42`,
		RunE: runSimulation,
	}
	addConfigFlags(cmd)
	return cmd
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	start := time.Now()
	var seed uint64
	if cfg.Seed != nil {
		seed = *cfg.Seed
	} else {
		seed = uint64(start.UnixNano())
		cfg.Seed = &seed
	}

	runDir, err := report.CreateRunDir(cfg.OutputDirBase,
		report.RunDirName(cfg.Name, cfg.AgentType, cfg.AgentInitialThreshold, start))
	if err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}

	var sinks []io.Writer
	if cfg.Logging.ToConsole {
		sinks = append(sinks, cmd.OutOrStdout())
	}
	if cfg.Logging.ToFile {
		f, err := os.Create(filepath.Join(runDir, report.LogFile))
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		defer f.Close()
		sinks = append(sinks, f)
	}
	logger := logging.NewLogger(cfg.Logging.Level, io.MultiWriter(sinks...))

	logger.Info("starting simulation",
		"name", cfg.Name,
		"agent", cfg.AgentType,
		"generations", cfg.NumGenerations,
		"reward_probability", cfg.RewardProbability,
		"threshold", cfg.AgentInitialThreshold,
		"seed", seed,
		"run_dir", runDir)

	if data, err := cfg.Marshal(); err != nil {
		logger.Warn("failed to render config", "error", err)
	} else if err := os.WriteFile(filepath.Join(runDir, configFile), data, 0o644); err != nil {
		logger.Warn("failed to save config", "error", err)
	}

	broker := messaging.NewBroker()
	defer broker.Reset()

	type subscriber struct {
		id string
		h  messaging.Handler
	}
	metrics := report.NewMetricsCollector()
	subscribers := []subscriber{
		{"logger", logging.NewEventLogger(logger)},
		{"metrics", metrics},
	}
	var detail *report.DetailLog
	if cfg.Report.DetailedLog {
		detail = report.NewDetailLog(cfg.Report.MaxDetailedLogs, report.DefaultDetailLines)
		subscribers = append(subscribers, subscriber{"detail", detail})
	}
	for _, s := range subscribers {
		if err := broker.Subscribe(s.id, s.h); err != nil {
			return err
		}
	}

	stepEvents := cfg.Report.DetailedLog || logging.ParseLevel(cfg.Logging.Level) <= logging.LevelTrace
	exp, err := experiment.NewFromConfig(cfg, "", seed, logger,
		experiment.WithPublisher(broker),
		experiment.WithStepEvents(stepEvents),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, runErr := exp.Run(ctx)
	if result == nil {
		return runErr
	}
	if runErr != nil {
		logger.Warn("simulation stopped early, writing partial results", "error", runErr)
	}

	written, reportErr := report.WriteAll(context.WithoutCancel(ctx), runDir, result, cfg, report.Options{
		Metrics: metrics,
		Detail:  detail,
		Logger:  logger,
	})
	logger.Info("reports written", "count", len(written), "run_dir", runDir)

	fmt.Fprintln(cmd.OutOrStdout(), report.RenderConsoleSummary(result, cfg, runDir))
	return errors.Join(runErr, reportErr)
}
