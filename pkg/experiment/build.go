package experiment

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/boristopalov/gambit/pkg/agent"
	"github.com/boristopalov/gambit/pkg/config"
	"github.com/boristopalov/gambit/pkg/core"
	"github.com/boristopalov/gambit/pkg/environment"
)

// NewRand returns the generator a run draws every outcome from
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// NewAgent builds the agent variant named by cfg.AgentType
func NewAgent(cfg *config.ExperimentConfig, logger *slog.Logger) (core.Agent, error) {
	switch cfg.AgentType {
	case config.AgentAdaptive:
		a, err := agent.NewAdaptiveAgent(cfg.AgentInitialThreshold, cfg.LearningRate,
			agent.WithName("AdaptiveAgent"), agent.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return a, nil
	case config.AgentFixed:
		a, err := agent.NewFixedAgent(cfg.AgentInitialThreshold,
			agent.WithName("FixedAgent"), agent.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, core.NewInvalidConfig("agent_type", cfg.AgentType, "must be fixed or adaptive")
	}
}

// NewFromConfig validates cfg and wires a seeded environment and an agent
// into a new experiment.
func NewFromConfig(cfg *config.ExperimentConfig, runID string, seed uint64, logger *slog.Logger, opts ...Option) (*ThresholdExperiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	env, err := environment.NewRewardEnvironment(cfg.RewardProbability, NewRand(seed), environment.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create environment: %w", err)
	}
	a, err := NewAgent(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	params := Params{
		RunID:                 runID,
		Generations:           cfg.NumGenerations,
		MaxStepsPerGeneration: cfg.MaxStepsPerGeneration,
		Seed:                  seed,
	}
	return NewThresholdExperiment(params, a, env, append([]Option{WithLogger(logger)}, opts...)...)
}
