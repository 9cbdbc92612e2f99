package report

import (
	"math"
	"time"

	"github.com/boristopalov/gambit/pkg/config"
	"github.com/boristopalov/gambit/pkg/core"
	"github.com/boristopalov/gambit/pkg/experiment"
)

func sampleResult() *core.SimulationResult {
	records := []core.GenerationRecord{
		{Generation: 1, Lifespan: 5, Rewards: 2, Punishments: 3, Reason: core.ThresholdReached, Threshold: 3, FinalConsecutivePunishments: 3},
		{Generation: 2, Lifespan: 10, Rewards: 7, Punishments: 3, Reason: core.ThresholdReached, Threshold: 3, FinalConsecutivePunishments: 3},
		{Generation: 3, Lifespan: 20, Rewards: 15, Punishments: 5, Reason: core.MaxStepsReached, Threshold: 3, FinalConsecutivePunishments: 1},
	}
	start := time.Date(2024, 1, 31, 15, 45, 0, 0, time.UTC)
	return &core.SimulationResult{
		RunID:                "run-test",
		Seed:                 math.MaxUint64,
		RequestedGenerations: 3,
		Records:              records,
		Environment: core.EnvironmentStats{
			TotalSteps:                  35,
			TotalRewards:                24,
			TotalPunishments:            11,
			ConfiguredRewardProbability: 0.7,
			ActualRewardRate:            24.0 / 35.0,
		},
		Summary:   experiment.Summarize(records),
		StartTime: start,
		EndTime:   start.Add(1500 * time.Millisecond),
	}
}

func sampleConfig() *config.ExperimentConfig {
	cfg := config.Default()
	cfg.NumGenerations = 3
	cfg.RewardProbability = 0.7
	cfg.AgentInitialThreshold = 3
	cfg.MaxStepsPerGeneration = 20
	return cfg
}
