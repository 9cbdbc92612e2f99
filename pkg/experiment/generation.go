package experiment

import (
	"log/slog"

	"github.com/boristopalov/gambit/pkg/core"
	"github.com/boristopalov/gambit/pkg/messaging"
)

// GenerationRunner drives one bounded step loop between an agent and an
// environment.
type GenerationRunner struct {
	maxSteps   int
	publisher  core.Publisher
	logger     *slog.Logger
	stepEvents bool
}

// NewGenerationRunner creates a runner that caps every generation at maxSteps
func NewGenerationRunner(maxSteps int, publisher core.Publisher, logger *slog.Logger, stepEvents bool) (*GenerationRunner, error) {
	if maxSteps <= 0 {
		return nil, core.NewInvalidConfig("max_steps_per_generation", maxSteps, "must be positive")
	}
	if publisher == nil {
		publisher = messaging.Discard{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerationRunner{
		maxSteps:   maxSteps,
		publisher:  publisher,
		logger:     logger,
		stepEvents: stepEvents,
	}, nil
}

// Run resets the agent and steps until it gives up or the step cap is hit.
// The give-up check runs before the cap check on every step, so a
// generation that ends on both counts as ThresholdReached.
func (r *GenerationRunner) Run(generation int, a core.Agent, env core.Environment) core.GenerationRecord {
	a.Reset()
	threshold := a.Threshold()

	r.emit(core.Event{
		Type:       core.GenerationStarted,
		Generation: generation,
		Threshold:  threshold,
	})

	var reason core.TerminationReason
	for {
		outcome := env.Sample()
		a.Observe(outcome)
		s := a.Summary()

		if r.stepEvents {
			r.emit(core.Event{
				Type:        core.StepObserved,
				Generation:  generation,
				Step:        s.Steps,
				Outcome:     outcome,
				Threshold:   threshold,
				Consecutive: s.ConsecutivePunishments,
			})
		}

		if !a.ShouldContinue() {
			reason = core.ThresholdReached
			r.emit(core.Event{
				Type:        core.GaveUp,
				Generation:  generation,
				Step:        s.Steps,
				Threshold:   threshold,
				Consecutive: s.ConsecutivePunishments,
				Reason:      reason,
			})
			break
		}
		if s.Steps >= r.maxSteps {
			reason = core.MaxStepsReached
			r.emit(core.Event{
				Type:        core.StepCapReached,
				Generation:  generation,
				Step:        s.Steps,
				Threshold:   threshold,
				Consecutive: s.ConsecutivePunishments,
				Reason:      reason,
			})
			break
		}
	}

	s := a.Summary()
	record := core.GenerationRecord{
		Generation:                  generation,
		Lifespan:                    s.Steps,
		Rewards:                     s.Rewards,
		Punishments:                 s.Punishments,
		Reason:                      reason,
		Threshold:                   threshold,
		FinalConsecutivePunishments: s.ConsecutivePunishments,
	}

	r.emit(core.Event{
		Type:        core.GenerationEnded,
		Generation:  generation,
		Step:        s.Steps,
		Threshold:   threshold,
		Lifespan:    record.Lifespan,
		Rewards:     record.Rewards,
		Punishments: record.Punishments,
		Reason:      reason,
	})
	return record
}

func (r *GenerationRunner) emit(ev core.Event) {
	if err := r.publisher.Publish(ev); err != nil {
		r.logger.Warn("failed to publish event", "type", ev.Type, "generation", ev.Generation, "error", err)
	}
}
