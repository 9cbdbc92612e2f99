package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/boristopalov/gambit/pkg/config"
)

// addConfigFlags registers the flags that override config fields
func addConfigFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.String("config", "", "Path to a YAML config file")
	fs.Int("generations", 0, "Number of generations to simulate")
	fs.Float64("reward_prob", 0, "Probability that a step is a reward")
	fs.Int("threshold", 0, "Initial consecutive-punishment threshold")
	fs.String("agent", "", "Agent type: fixed or adaptive")
	fs.Float64("lr", 0, "Learning rate of the adaptive agent")
	fs.String("log_level", "", "Log level: trace, debug, info, warn or error")
	fs.Int("max_steps", 0, "Step cap per generation")
	fs.String("name", "", "Simulation name used in the output folder")
	fs.String("output_base", "", "Base directory for run folders")
	fs.Uint64("seed", 0, "Random seed; a time-based seed is used when unset")
	fs.Bool("detailed_log", false, "Add step-level decision lines to the workbook")
}

// resolveConfig layers defaults, the YAML file, GAMBIT_* variables and
// explicitly set flags, then validates the result.
func resolveConfig(cmd *cobra.Command) (*config.ExperimentConfig, error) {
	fs := cmd.Flags()
	path, _ := fs.GetString("config")

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if fs.Changed("generations") {
		cfg.NumGenerations, _ = fs.GetInt("generations")
	}
	if fs.Changed("reward_prob") {
		cfg.RewardProbability, _ = fs.GetFloat64("reward_prob")
	}
	if fs.Changed("threshold") {
		cfg.AgentInitialThreshold, _ = fs.GetInt("threshold")
	}
	if fs.Changed("agent") {
		cfg.AgentType, _ = fs.GetString("agent")
	}
	if fs.Changed("lr") {
		cfg.LearningRate, _ = fs.GetFloat64("lr")
	}
	if fs.Changed("log_level") {
		cfg.Logging.Level, _ = fs.GetString("log_level")
	}
	if fs.Changed("max_steps") {
		cfg.MaxStepsPerGeneration, _ = fs.GetInt("max_steps")
	}
	if fs.Changed("name") {
		cfg.Name, _ = fs.GetString("name")
	}
	if fs.Changed("output_base") {
		cfg.OutputDirBase, _ = fs.GetString("output_base")
	}
	if fs.Changed("seed") {
		seed, _ := fs.GetUint64("seed")
		cfg.Seed = &seed
	}
	if fs.Changed("detailed_log") {
		cfg.Report.DetailedLog, _ = fs.GetBool("detailed_log")
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
