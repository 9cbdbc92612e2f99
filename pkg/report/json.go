package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/boristopalov/gambit/pkg/config"
	"github.com/boristopalov/gambit/pkg/core"
)

// SummaryDocument is the machine-readable run summary
type SummaryDocument struct {
	RunID                string                   `json:"run_id"`
	Seed                 string                   `json:"seed"`
	Config               *config.ExperimentConfig `json:"config"`
	RequestedGenerations int                      `json:"requested_generations"`
	CompletedGenerations int                      `json:"completed_generations"`
	Interrupted          bool                     `json:"interrupted"`
	Summary              core.Summary             `json:"summary"`
	Environment          core.EnvironmentStats    `json:"environment"`
	StartTime            time.Time                `json:"start_time"`
	EndTime              time.Time                `json:"end_time"`
	DurationSeconds      float64                  `json:"duration_seconds"`
}

// NewSummaryDocument collects the run-level facts from a result. The seed
// is a string because JSON numbers lose precision past 2^53.
func NewSummaryDocument(result *core.SimulationResult, cfg *config.ExperimentConfig) SummaryDocument {
	return SummaryDocument{
		RunID:                result.RunID,
		Seed:                 strconv.FormatUint(result.Seed, 10),
		Config:               cfg,
		RequestedGenerations: result.RequestedGenerations,
		CompletedGenerations: len(result.Records),
		Interrupted:          !result.Completed(),
		Summary:              result.Summary,
		Environment:          result.Environment,
		StartTime:            result.StartTime,
		EndTime:              result.EndTime,
		DurationSeconds:      result.EndTime.Sub(result.StartTime).Seconds(),
	}
}

// WriteJSON writes the run summary as indented JSON
func WriteJSON(path string, result *core.SimulationResult, cfg *config.ExperimentConfig) error {
	data, err := json.MarshalIndent(NewSummaryDocument(result, cfg), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
