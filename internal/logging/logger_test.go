package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boristopalov/gambit/pkg/core"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"trace":   LevelTrace,
		"TRACE":   LevelTrace,
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewLoggerLabelsTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("trace", &buf)
	logger.Log(context.Background(), LevelTrace, "deep")
	assert.Contains(t, buf.String(), "level=TRACE")
	assert.Contains(t, buf.String(), "msg=deep")

	buf.Reset()
	NewLogger("info", &buf).Log(context.Background(), LevelTrace, "hidden")
	assert.Empty(t, buf.String())
}

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimSpace(buf.String()), "\n")
}

func TestEventLoggerLevels(t *testing.T) {
	t.Run("info only shows progress cadence", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewEventLogger(NewLogger("info", &buf))

		l.Handle(core.Event{Type: core.SimulationStarted, Generations: 40, Threshold: 5})
		for gen := 1; gen <= 40; gen++ {
			l.Handle(core.Event{Type: core.GenerationStarted, Generation: gen})
			l.Handle(core.Event{Type: core.StepObserved, Generation: gen, Step: 1})
			l.Handle(core.Event{Type: core.GaveUp, Generation: gen, Reason: core.ThresholdReached})
			l.Handle(core.Event{Type: core.GenerationEnded, Generation: gen, Lifespan: 5, Reason: core.ThresholdReached})
		}
		l.Handle(core.Event{Type: core.SimulationFinished, Generation: 40, Generations: 40, Step: 200})

		out := lines(&buf)
		// start + every second generation + finish
		assert.Len(t, out, 1+20+1)
		assert.Contains(t, out[0], "simulation started")
		assert.Contains(t, out[1], "generation=2")
		assert.Contains(t, out[len(out)-1], "total_steps=200")
	})

	t.Run("step cap is a warning", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewEventLogger(NewLogger("warn", &buf))
		l.Handle(core.Event{Type: core.StepCapReached, Generation: 3, Step: 10, Reason: core.MaxStepsReached})
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "reason=max_steps_reached")
	})

	t.Run("trace shows every step", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewEventLogger(NewLogger("trace", &buf))
		l.Handle(core.Event{Type: core.StepObserved, Generation: 1, Step: 4, Outcome: core.Reward})
		assert.Contains(t, buf.String(), "level=TRACE")
		assert.Contains(t, buf.String(), "outcome=reward")
	})

	t.Run("threshold updates", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewEventLogger(NewLogger("info", &buf))
		l.Handle(core.Event{Type: core.ThresholdUpdated, Generation: 2, PreviousThreshold: 50, Threshold: 48, HistoricalAverage: 12.5})
		assert.Contains(t, buf.String(), "previous=50")
		assert.Contains(t, buf.String(), "threshold=48")
		assert.Contains(t, buf.String(), "historical_average=12.5")
	})
}
