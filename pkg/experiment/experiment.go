package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/boristopalov/gambit/pkg/core"
	"github.com/boristopalov/gambit/pkg/messaging"
	"github.com/google/uuid"
)

// Params configures a ThresholdExperiment
type Params struct {
	RunID                 string
	Generations           int
	MaxStepsPerGeneration int
	// Seed is recorded in the result; the caller seeds the environment's source with it.
	Seed uint64
}

type Option func(*ThresholdExperiment)

func WithPublisher(p core.Publisher) Option {
	return func(e *ThresholdExperiment) {
		if p != nil {
			e.publisher = p
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *ThresholdExperiment) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithStepEvents publishes a StepObserved event for every step
func WithStepEvents(enabled bool) Option {
	return func(e *ThresholdExperiment) {
		e.stepEvents = enabled
	}
}

// ThresholdExperiment runs generations sequentially against one shared
// environment and one persistent agent.
type ThresholdExperiment struct {
	params    Params
	agent     core.Agent
	env       core.Environment
	runner    *GenerationRunner
	publisher core.Publisher
	logger    *slog.Logger

	stepEvents bool

	mu     sync.RWMutex
	status core.ExperimentStatus
}

// NewThresholdExperiment validates params and creates a new experiment.
// Nothing runs until Run is called.
func NewThresholdExperiment(params Params, a core.Agent, env core.Environment, opts ...Option) (*ThresholdExperiment, error) {
	if params.Generations <= 0 {
		return nil, core.NewInvalidConfig("num_generations", params.Generations, "must be positive")
	}
	if params.MaxStepsPerGeneration <= 0 {
		return nil, core.NewInvalidConfig("max_steps_per_generation", params.MaxStepsPerGeneration, "must be positive")
	}
	if a == nil {
		return nil, core.NewInvalidConfig("agent", nil, "an agent is required")
	}
	if env == nil {
		return nil, core.NewInvalidConfig("environment", nil, "an environment is required")
	}
	if params.RunID == "" {
		params.RunID = uuid.New().String()
	}

	e := &ThresholdExperiment{
		params:    params,
		agent:     a,
		env:       env,
		publisher: messaging.Discard{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	runner, err := NewGenerationRunner(params.MaxStepsPerGeneration, e.publisher, e.logger, e.stepEvents)
	if err != nil {
		return nil, err
	}
	e.runner = runner
	return e, nil
}

// Run executes every generation. If ctx is cancelled between generations
// the result holds the generations completed so far and ctx.Err() is
// returned alongside it.
func (e *ThresholdExperiment) Run(ctx context.Context) (*core.SimulationResult, error) {
	e.mu.Lock()
	if e.status.Running {
		e.mu.Unlock()
		return nil, fmt.Errorf("experiment %s is already running", e.params.RunID)
	}
	e.status.Running = true
	e.status.StartTime = time.Now()
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.status.Running = false
		e.status.EndTime = time.Now()
		e.mu.Unlock()
	}()

	result := &core.SimulationResult{
		RunID:                e.params.RunID,
		Seed:                 e.params.Seed,
		RequestedGenerations: e.params.Generations,
		Records:              make([]core.GenerationRecord, 0, e.params.Generations),
		StartTime:            time.Now(),
	}

	e.emit(core.Event{
		Type:        core.SimulationStarted,
		Generations: e.params.Generations,
		Threshold:   e.agent.Threshold(),
	})

	runErr := e.runLoop(ctx, result)

	result.EndTime = time.Now()
	result.Environment = e.env.Stats()
	result.Summary = Summarize(result.Records)

	e.emit(core.Event{
		Type:        core.SimulationFinished,
		Generation:  len(result.Records),
		Generations: e.params.Generations,
		Step:        result.Environment.TotalSteps,
	})

	if runErr != nil {
		e.mu.Lock()
		e.status.Errors = append(e.status.Errors, runErr)
		e.mu.Unlock()
	}
	return result, runErr
}

func (e *ThresholdExperiment) runLoop(ctx context.Context, result *core.SimulationResult) error {
	adaptive, isAdaptive := e.agent.(core.AdaptiveAgent)

	for gen := 1; gen <= e.params.Generations; gen++ {
		select {
		case <-ctx.Done():
			e.logger.Warn("simulation interrupted",
				"completed", len(result.Records), "requested", e.params.Generations)
			return fmt.Errorf("interrupted after %d generations: %w", len(result.Records), ctx.Err())
		default:
		}

		record := e.runner.Run(gen, e.agent, e.env)
		result.Records = append(result.Records, record)

		// The record already holds the threshold used during the run, so
		// the update only affects the next generation.
		if isAdaptive {
			previous := adaptive.Threshold()
			adaptive.UpdateThreshold(record.Lifespan)
			e.emit(core.Event{
				Type:              core.ThresholdUpdated,
				Generation:        gen,
				Lifespan:          record.Lifespan,
				PreviousThreshold: previous,
				Threshold:         adaptive.Threshold(),
				HistoricalAverage: adaptive.HistoricalAverage(),
			})
		}
	}
	return nil
}

// GetStatus returns current experiment status
func (e *ThresholdExperiment) GetStatus() core.ExperimentStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	status := e.status
	status.Errors = append([]error(nil), e.status.Errors...)
	return status
}

func (e *ThresholdExperiment) emit(ev core.Event) {
	if err := e.publisher.Publish(ev); err != nil {
		e.logger.Warn("failed to publish event", "type", ev.Type, "error", err)
	}
}
