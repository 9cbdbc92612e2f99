package environment

import (
	"log/slog"
	"math"

	"github.com/boristopalov/gambit/pkg/core"
)

// Source is the random number generator an environment draws from.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// RewardEnvironment issues a reward with a fixed probability on every
// step and a punishment otherwise. Draws are independent.
type RewardEnvironment struct {
	rewardProbability float64
	rng               Source
	logger            *slog.Logger

	stepsIssued       int
	rewardsIssued     int
	punishmentsIssued int
}

type Option func(*RewardEnvironment)

// WithLogger sets the logger used for lifecycle messages
func WithLogger(l *slog.Logger) Option {
	return func(e *RewardEnvironment) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewRewardEnvironment creates a new environment drawing from rng
func NewRewardEnvironment(rewardProbability float64, rng Source, opts ...Option) (*RewardEnvironment, error) {
	if math.IsNaN(rewardProbability) || rewardProbability < 0 || rewardProbability > 1 {
		return nil, core.NewInvalidConfig("reward_probability", rewardProbability, "must be between 0.0 and 1.0")
	}
	if rng == nil {
		return nil, core.NewInvalidConfig("rng", nil, "a random source is required")
	}

	e := &RewardEnvironment{
		rewardProbability: rewardProbability,
		rng:               rng,
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.logger.Info("environment initialized", "reward_probability", rewardProbability)
	return e, nil
}

// Sample draws one outcome and updates the cumulative counters
func (e *RewardEnvironment) Sample() core.Outcome {
	e.stepsIssued++
	if e.rng.Float64() < e.rewardProbability {
		e.rewardsIssued++
		return core.Reward
	}
	e.punishmentsIssued++
	return core.Punishment
}

// Stats returns the counters accumulated since construction or the last ResetStats
func (e *RewardEnvironment) Stats() core.EnvironmentStats {
	var rate float64
	if e.stepsIssued > 0 {
		rate = float64(e.rewardsIssued) / float64(e.stepsIssued)
	}
	return core.EnvironmentStats{
		TotalSteps:                  e.stepsIssued,
		TotalRewards:                e.rewardsIssued,
		TotalPunishments:            e.punishmentsIssued,
		ConfiguredRewardProbability: e.rewardProbability,
		ActualRewardRate:            rate,
	}
}

// ResetStats zeroes the cumulative counters
func (e *RewardEnvironment) ResetStats() {
	e.stepsIssued = 0
	e.rewardsIssued = 0
	e.punishmentsIssued = 0
	e.logger.Info("environment statistics reset")
}
