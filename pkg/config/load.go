package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/boristopalov/gambit/pkg/core"
)

// LoadConfig reads a YAML file on top of Default. An empty path returns
// the defaults. Unknown keys are rejected.
func LoadConfig(path string) (*ExperimentConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Marshal renders the config as YAML
func (c *ExperimentConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// LookupFunc matches os.LookupEnv
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides fields from GAMBIT_* variables
func (c *ExperimentConfig) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	ints := []struct {
		key   string
		field string
		dst   *int
	}{
		{"GAMBIT_GENERATIONS", "num_generations", &c.NumGenerations},
		{"GAMBIT_THRESHOLD", "agent_initial_threshold", &c.AgentInitialThreshold},
		{"GAMBIT_MAX_STEPS", "max_steps_per_generation", &c.MaxStepsPerGeneration},
	}
	for _, v := range ints {
		raw, ok := lookup(v.key)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return core.NewInvalidConfig(v.field, raw, fmt.Sprintf("%s is not an integer", v.key))
		}
		*v.dst = n
	}

	floats := []struct {
		key   string
		field string
		dst   *float64
	}{
		{"GAMBIT_REWARD_PROB", "reward_probability", &c.RewardProbability},
		{"GAMBIT_LR", "learning_rate", &c.LearningRate},
	}
	for _, v := range floats {
		raw, ok := lookup(v.key)
		if !ok || raw == "" {
			continue
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return core.NewInvalidConfig(v.field, raw, fmt.Sprintf("%s is not a number", v.key))
		}
		*v.dst = f
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"GAMBIT_NAME", &c.Name},
		{"GAMBIT_AGENT", &c.AgentType},
		{"GAMBIT_OUTPUT_BASE", &c.OutputDirBase},
		{"GAMBIT_LOG_LEVEL", &c.Logging.Level},
	}
	for _, v := range strs {
		if raw, ok := lookup(v.key); ok && raw != "" {
			*v.dst = raw
		}
	}

	if raw, ok := lookup("GAMBIT_SEED"); ok && raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return core.NewInvalidConfig("seed", raw, "GAMBIT_SEED is not an unsigned integer")
		}
		c.Seed = &seed
	}

	c.Normalize()
	return nil
}
