package core

import (
	"context"
)

// Environment produces one stochastic outcome per step
type Environment interface {
	// Sample draws the next outcome and updates the cumulative counters
	Sample() Outcome
	// Stats returns the cumulative counters
	Stats() EnvironmentStats
}

// Agent consumes outcomes and decides whether to keep going
type Agent interface {
	// Reset clears the per-generation counters. It must be called before each generation.
	Reset()
	// Observe records the outcome of a step
	Observe(outcome Outcome)
	// ShouldContinue reports whether the punishment streak is still below the threshold
	ShouldContinue() bool
	// Threshold returns the threshold currently in effect
	Threshold() int
	// Summary returns the per-generation counters
	Summary() AgentSummary
}

// AdaptiveAgent is an Agent whose threshold moves between generations
type AdaptiveAgent interface {
	Agent
	// UpdateThreshold folds the last lifespan into the history and moves the threshold
	UpdateThreshold(lastLifespan int)
	// HistoricalAverage returns the mean of all recorded lifespans
	HistoricalAverage() float64
}

// AgentSummary holds an agent's per-generation counters
type AgentSummary struct {
	Steps                  int
	Rewards                int
	Punishments            int
	ConsecutivePunishments int
}

// Publisher delivers events to whoever listens
type Publisher interface {
	Publish(ev Event) error
}

// Experiment coordinates the running of experiments
type Experiment interface {
	// Run executes the experiment according to configuration
	Run(ctx context.Context) (*SimulationResult, error)
	// GetStatus returns current experiment status
	GetStatus() ExperimentStatus
}
