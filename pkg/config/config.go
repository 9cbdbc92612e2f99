package config

import (
	"strings"
)

const (
	AgentFixed    = "fixed"
	AgentAdaptive = "adaptive"
)

type ExperimentConfig struct {
	Name                  string       `json:"name" yaml:"name" validate:"required"`
	NumGenerations        int          `json:"num_generations" yaml:"num_generations" validate:"gt=0"`
	RewardProbability     float64      `json:"reward_probability" yaml:"reward_probability" validate:"gte=0,lte=1"`
	AgentInitialThreshold int          `json:"agent_initial_threshold" yaml:"agent_initial_threshold" validate:"gt=0"`
	AgentType             string       `json:"agent_type" yaml:"agent_type" validate:"oneof=fixed adaptive"`
	LearningRate          float64      `json:"learning_rate" yaml:"learning_rate" validate:"gte=0,lte=1"`
	MaxStepsPerGeneration int          `json:"max_steps_per_generation" yaml:"max_steps_per_generation" validate:"gt=0"`
	Seed                  *uint64      `json:"seed,omitempty" yaml:"seed,omitempty"`
	OutputDirBase         string       `json:"output_dir_base" yaml:"output_dir_base" validate:"required"`
	Logging               LogConfig    `json:"logging" yaml:"logging"`
	Report                ReportConfig `json:"report" yaml:"report"`
}

type LogConfig struct {
	Level     string `json:"level" yaml:"level" validate:"oneof=trace debug info warn warning error"`
	ToConsole bool   `json:"to_console" yaml:"to_console"`
	ToFile    bool   `json:"to_file" yaml:"to_file"`
}

type ReportConfig struct {
	// DetailedLog adds step-level decision lines to the workbook
	DetailedLog     bool `json:"detailed_log" yaml:"detailed_log"`
	MaxDetailedLogs int  `json:"max_detailed_logs" yaml:"max_detailed_logs" validate:"gte=0"`
}

// Default returns the configuration used when nothing overrides it
func Default() *ExperimentConfig {
	return &ExperimentConfig{
		Name:                  "The_Threshold_Gambit_v1",
		NumGenerations:        100,
		RewardProbability:     1.0 / 28.0, // about one reward every 28 steps
		AgentInitialThreshold: 50,
		AgentType:             AgentFixed,
		LearningRate:          0.05,
		MaxStepsPerGeneration: 10000,
		OutputDirBase:         "simulation_results",
		Logging: LogConfig{
			Level:     "info",
			ToConsole: true,
			ToFile:    true,
		},
		Report: ReportConfig{
			DetailedLog:     false,
			MaxDetailedLogs: 10,
		},
	}
}

// NormalizeAgentType maps accepted spellings onto AgentFixed or AgentAdaptive.
// Unknown values are returned lower-cased so validation can reject them.
func NormalizeAgentType(s string) string {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "fixed", "simple", "simpleagent":
		return AgentFixed
	case "adaptive", "learning", "learningagent":
		return AgentAdaptive
	default:
		return v
	}
}

// Normalize canonicalizes enum-like fields in place
func (c *ExperimentConfig) Normalize() {
	c.AgentType = NormalizeAgentType(c.AgentType)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
}

func (c *ExperimentConfig) IsAdaptive() bool {
	return c.AgentType == AgentAdaptive
}
