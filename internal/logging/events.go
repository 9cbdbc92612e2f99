package logging

import (
	"context"
	"log/slog"

	"github.com/boristopalov/gambit/pkg/core"
)

// EventLogger renders simulation events through a slog.Logger. Generation
// summaries go out at INFO roughly twenty times per run and at DEBUG
// otherwise.
type EventLogger struct {
	logger   *slog.Logger
	total    int
	interval int
}

func NewEventLogger(logger *slog.Logger) *EventLogger {
	return &EventLogger{logger: logger, interval: 1}
}

// Handle implements messaging.Handler
func (l *EventLogger) Handle(ev core.Event) error {
	ctx := context.Background()

	switch ev.Type {
	case core.SimulationStarted:
		l.total = ev.Generations
		l.interval = max(1, ev.Generations/20)
		l.logger.Info("simulation started",
			"generations", ev.Generations, "threshold", ev.Threshold)

	case core.GenerationStarted:
		l.logger.Debug("generation started",
			"generation", ev.Generation, "of", l.total, "threshold", ev.Threshold)

	case core.StepObserved:
		if !l.logger.Enabled(ctx, LevelTrace) {
			return nil
		}
		l.logger.Log(ctx, LevelTrace, "step",
			"generation", ev.Generation,
			"step", ev.Step,
			"outcome", ev.Outcome.String(),
			"consecutive", ev.Consecutive,
			"threshold", ev.Threshold)

	case core.GaveUp:
		l.logger.Debug("agent gave up",
			"generation", ev.Generation,
			"step", ev.Step,
			"consecutive", ev.Consecutive,
			"threshold", ev.Threshold,
			"reason", string(ev.Reason))

	case core.StepCapReached:
		l.logger.Warn("generation terminated at step cap",
			"generation", ev.Generation, "step", ev.Step, "reason", string(ev.Reason))

	case core.GenerationEnded:
		level := slog.LevelDebug
		if ev.Generation%l.interval == 0 || ev.Generation == l.total {
			level = slog.LevelInfo
		}
		l.logger.Log(ctx, level, "generation finished",
			"generation", ev.Generation,
			"of", l.total,
			"lifespan", ev.Lifespan,
			"rewards", ev.Rewards,
			"punishments", ev.Punishments,
			"threshold", ev.Threshold,
			"reason", string(ev.Reason))

	case core.ThresholdUpdated:
		l.logger.Info("threshold updated",
			"generation", ev.Generation,
			"historical_average", ev.HistoricalAverage,
			"previous", ev.PreviousThreshold,
			"threshold", ev.Threshold)

	case core.SimulationFinished:
		l.logger.Info("simulation finished",
			"completed", ev.Generation,
			"requested", ev.Generations,
			"total_steps", ev.Step)
	}
	return nil
}
