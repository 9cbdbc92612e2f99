package agent

import (
	"log/slog"
	"math"

	"github.com/boristopalov/gambit/pkg/core"
	"github.com/boristopalov/gambit/pkg/memory"
)

// AdaptiveAgent moves its threshold toward the average lifespan it has
// achieved so far. The threshold survives Reset.
type AdaptiveAgent struct {
	id           string
	name         string
	learningRate float64
	// level is the smoothed threshold before rounding
	level   float64
	history *memory.Memory[int]
	// historySum is the running total of history
	historySum int
	logger     *slog.Logger
	tally
}

// NewAdaptiveAgent creates a new adaptive-threshold agent
func NewAdaptiveAgent(initialThreshold int, learningRate float64, opts ...AgentOption) (*AdaptiveAgent, error) {
	if initialThreshold <= 0 {
		return nil, core.NewInvalidConfig("agent_initial_threshold", initialThreshold, "must be positive")
	}
	if math.IsNaN(learningRate) || learningRate <= 0 || learningRate > 1 {
		return nil, core.NewInvalidConfig("learning_rate", learningRate, "must be in (0, 1]")
	}
	params := defaultAgentParams()
	params.Name = "AdaptiveAgent"
	for _, opt := range opts {
		opt(params)
	}

	a := &AdaptiveAgent{
		id:           params.AgentID,
		name:         params.Name,
		learningRate: learningRate,
		level:        float64(initialThreshold),
		history:      memory.NewMemory[int](0),
		logger:       params.Logger,
		tally:        tally{threshold: initialThreshold},
	}
	a.logger.Info("adaptive agent initialized",
		"agent", a.name, "threshold", initialThreshold, "learning_rate", learningRate)
	return a, nil
}

func (a *AdaptiveAgent) GetID() string {
	return a.id
}

func (a *AdaptiveAgent) GetName() string {
	return a.name
}

// Reset clears the per-generation counters. The threshold and the
// lifespan history are kept.
func (a *AdaptiveAgent) Reset() {
	a.clear()
}

func (a *AdaptiveAgent) Observe(outcome core.Outcome) {
	a.observe(outcome)
}

func (a *AdaptiveAgent) ShouldContinue() bool {
	return a.shouldContinue()
}

func (a *AdaptiveAgent) Threshold() int {
	return a.threshold
}

func (a *AdaptiveAgent) Summary() core.AgentSummary {
	return a.summary()
}

// Level returns the smoothed threshold before rounding
func (a *AdaptiveAgent) Level() float64 {
	return a.level
}

// LifespanHistory returns every lifespan passed to UpdateThreshold, oldest first
func (a *AdaptiveAgent) LifespanHistory() []int {
	return a.history.GetAll()
}

// HistoricalAverage returns the mean recorded lifespan, or the current
// threshold when nothing has been recorded yet.
func (a *AdaptiveAgent) HistoricalAverage() float64 {
	n := a.history.Len()
	if n == 0 {
		return float64(a.threshold)
	}
	return float64(a.historySum) / float64(n)
}

// UpdateThreshold records lastLifespan and moves the threshold toward the
// historical average by the learning rate. The result is at least 1.
func (a *AdaptiveAgent) UpdateThreshold(lastLifespan int) {
	a.history.Store(lastLifespan)
	a.historySum += lastLifespan
	avg := a.HistoricalAverage()

	a.level += a.learningRate * (avg - a.level)
	if a.level < 1 {
		a.level = 1
	}
	a.threshold = max(1, int(math.Round(a.level)))

	a.logger.Debug("threshold updated",
		"agent", a.name, "historical_average", avg, "level", a.level, "threshold", a.threshold)
}
