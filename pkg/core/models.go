package core

import (
	"time"
)

// Outcome is the result of a single environment step
type Outcome int

const (
	Punishment Outcome = iota
	Reward
)

func (o Outcome) String() string {
	if o == Reward {
		return "reward"
	}
	return "punishment"
}

// TerminationReason records why a generation stopped
type TerminationReason string

const (
	// ThresholdReached means the agent gave up
	ThresholdReached TerminationReason = "threshold_reached"
	// MaxStepsReached means the generation was capped by the step bound
	MaxStepsReached TerminationReason = "max_steps_reached"
)

// GenerationRecord is the immutable result of one generation
type GenerationRecord struct {
	Generation                  int               `json:"generation" yaml:"generation"`
	Lifespan                    int               `json:"lifespan" yaml:"lifespan"`
	Rewards                     int               `json:"rewards" yaml:"rewards"`
	Punishments                 int               `json:"punishments" yaml:"punishments"`
	Reason                      TerminationReason `json:"reason" yaml:"reason"`
	Threshold                   int               `json:"threshold" yaml:"threshold"`
	FinalConsecutivePunishments int               `json:"final_consecutive_punishments" yaml:"final_consecutive_punishments"`
}

// EnvironmentStats are the cumulative counters of an environment
type EnvironmentStats struct {
	TotalSteps                  int     `json:"total_steps"`
	TotalRewards                int     `json:"total_rewards"`
	TotalPunishments            int     `json:"total_punishments"`
	ConfiguredRewardProbability float64 `json:"configured_reward_probability"`
	ActualRewardRate            float64 `json:"actual_reward_rate"`
}

// Summary holds lifespan statistics across all generations of a run
type Summary struct {
	Generations    int                       `json:"generations"`
	MeanLifespan   float64                   `json:"mean_lifespan"`
	MedianLifespan float64                   `json:"median_lifespan"`
	MinLifespan    int                       `json:"min_lifespan"`
	MaxLifespan    int                       `json:"max_lifespan"`
	StdDevLifespan float64                   `json:"stddev_lifespan"`
	MeanThreshold  float64                   `json:"mean_threshold"`
	ReasonCounts   map[TerminationReason]int `json:"reason_counts"`
}

// SimulationResult is the aggregate output of a run. It is handed to
// report writers read-only.
type SimulationResult struct {
	RunID                string             `json:"run_id"`
	Seed                 uint64             `json:"seed"`
	RequestedGenerations int                `json:"requested_generations"`
	Records              []GenerationRecord `json:"records"`
	Environment          EnvironmentStats   `json:"environment"`
	Summary              Summary            `json:"summary"`
	StartTime            time.Time          `json:"start_time"`
	EndTime              time.Time          `json:"end_time"`
}

// Completed reports whether every requested generation ran
func (r *SimulationResult) Completed() bool {
	return len(r.Records) == r.RequestedGenerations
}

// Lifespans returns the lifespan of each record in generation order
func (r *SimulationResult) Lifespans() []int {
	out := make([]int, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.Lifespan
	}
	return out
}

type ExperimentStatus struct {
	Running   bool
	StartTime time.Time
	EndTime   time.Time
	Errors    []error
}

// EventType identifies a decision point in a run
type EventType string

const (
	SimulationStarted  EventType = "simulation_started"
	GenerationStarted  EventType = "generation_started"
	StepObserved       EventType = "step_observed"
	GaveUp             EventType = "gave_up"
	StepCapReached     EventType = "step_cap_reached"
	GenerationEnded    EventType = "generation_ended"
	ThresholdUpdated   EventType = "threshold_updated"
	SimulationFinished EventType = "simulation_finished"
)

// Event is a structured notification emitted by the generation runner and
// the orchestrator. Fields that do not apply to a type are left zero.
type Event struct {
	Type              EventType
	Generation        int
	Generations       int
	Step              int
	Outcome           Outcome
	Threshold         int
	PreviousThreshold int
	Consecutive       int
	Lifespan          int
	Rewards           int
	Punishments       int
	Reason            TerminationReason
	HistoricalAverage float64
	Timestamp         time.Time
}
