package agent

import (
	"log/slog"

	"github.com/boristopalov/gambit/pkg/core"
	"github.com/google/uuid"
)

type AgentParams struct {
	AgentID string
	Name    string
	Logger  *slog.Logger
}

type AgentOption func(*AgentParams)

func WithAgentId(id string) AgentOption {
	return func(p *AgentParams) {
		p.AgentID = id
	}
}

func WithName(name string) AgentOption {
	return func(p *AgentParams) {
		p.Name = name
	}
}

func WithLogger(l *slog.Logger) AgentOption {
	return func(p *AgentParams) {
		if l != nil {
			p.Logger = l
		}
	}
}

func defaultAgentParams() *AgentParams {
	return &AgentParams{
		AgentID: "agent-" + uuid.New().String(),
		Name:    "Agent",
		Logger:  slog.Default(),
	}
}

// tally holds the per-generation counters and the give-up rule shared by
// both agent variants.
type tally struct {
	threshold   int
	consecutive int
	steps       int
	rewards     int
	punishments int
}

func (t *tally) clear() {
	t.consecutive = 0
	t.steps = 0
	t.rewards = 0
	t.punishments = 0
}

func (t *tally) observe(outcome core.Outcome) {
	t.steps++
	if outcome == core.Reward {
		t.rewards++
		t.consecutive = 0
		return
	}
	t.punishments++
	t.consecutive++
}

func (t *tally) shouldContinue() bool {
	return t.consecutive < t.threshold
}

func (t *tally) summary() core.AgentSummary {
	return core.AgentSummary{
		Steps:                  t.steps,
		Rewards:                t.rewards,
		Punishments:            t.punishments,
		ConsecutivePunishments: t.consecutive,
	}
}

// FixedAgent gives up after a fixed number of consecutive punishments
type FixedAgent struct {
	id               string
	name             string
	initialThreshold int
	logger           *slog.Logger
	tally
}

// NewFixedAgent creates a new fixed-threshold agent
func NewFixedAgent(threshold int, opts ...AgentOption) (*FixedAgent, error) {
	if threshold <= 0 {
		return nil, core.NewInvalidConfig("agent_initial_threshold", threshold, "must be positive")
	}
	params := defaultAgentParams()
	for _, opt := range opts {
		opt(params)
	}

	a := &FixedAgent{
		id:               params.AgentID,
		name:             params.Name,
		initialThreshold: threshold,
		logger:           params.Logger,
		tally:            tally{threshold: threshold},
	}
	a.logger.Info("fixed agent initialized", "agent", a.name, "threshold", threshold)
	return a, nil
}

func (a *FixedAgent) GetID() string {
	return a.id
}

func (a *FixedAgent) GetName() string {
	return a.name
}

// Reset clears the counters and restores the configured threshold
func (a *FixedAgent) Reset() {
	a.clear()
	a.threshold = a.initialThreshold
}

// Observe records the outcome of a step
func (a *FixedAgent) Observe(outcome core.Outcome) {
	a.observe(outcome)
}

// ShouldContinue reports whether consecutive punishments are below the threshold
func (a *FixedAgent) ShouldContinue() bool {
	return a.shouldContinue()
}

func (a *FixedAgent) Threshold() int {
	return a.threshold
}

func (a *FixedAgent) Summary() core.AgentSummary {
	return a.summary()
}
