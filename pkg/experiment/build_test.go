package experiment

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boristopalov/gambit/pkg/agent"
	"github.com/boristopalov/gambit/pkg/config"
	"github.com/boristopalov/gambit/pkg/core"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestNewAgent(t *testing.T) {
	cfg := config.Default()
	a, err := NewAgent(cfg, quiet)
	require.NoError(t, err)
	assert.IsType(t, &agent.FixedAgent{}, a)

	cfg.AgentType = config.AgentAdaptive
	a, err = NewAgent(cfg, quiet)
	require.NoError(t, err)
	assert.IsType(t, &agent.AdaptiveAgent{}, a)

	cfg.AgentType = "bogus"
	_, err = NewAgent(cfg, quiet)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
}

func TestNewFromConfig(t *testing.T) {
	t.Run("runs the literal scenario", func(t *testing.T) {
		cfg := config.Default()
		cfg.NumGenerations = 3
		cfg.RewardProbability = 0
		cfg.AgentInitialThreshold = 2
		cfg.MaxStepsPerGeneration = 10

		exp, err := NewFromConfig(cfg, "run", 1, quiet)
		require.NoError(t, err)
		result, err := exp.Run(context.Background())
		require.NoError(t, err)

		require.Len(t, result.Records, 3)
		for _, rec := range result.Records {
			assert.Equal(t, 2, rec.Lifespan)
			assert.Equal(t, core.ThresholdReached, rec.Reason)
		}
		assert.Equal(t, uint64(1), result.Seed)
	})

	t.Run("same seed same result", func(t *testing.T) {
		cfg := config.Default()
		cfg.NumGenerations = 25
		cfg.AgentType = config.AgentAdaptive
		cfg.AgentInitialThreshold = 8

		runOnce := func() []core.GenerationRecord {
			exp, err := NewFromConfig(cfg, "", 2024, quiet)
			require.NoError(t, err)
			result, err := exp.Run(context.Background())
			require.NoError(t, err)
			return result.Records
		}
		assert.Equal(t, runOnce(), runOnce())
	})

	t.Run("invalid config fails", func(t *testing.T) {
		cfg := config.Default()
		cfg.MaxStepsPerGeneration = -1
		_, err := NewFromConfig(cfg, "", 1, quiet)
		var cfgErr *core.InvalidConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "max_steps_per_generation", cfgErr.Field)
	})
}
