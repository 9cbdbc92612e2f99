package report

import (
	"fmt"
	"slices"
	"sync"

	"github.com/boristopalov/gambit/pkg/core"
	"github.com/boristopalov/gambit/pkg/memory"
)

// DefaultDetailLines bounds how many lines one generation may keep
const DefaultDetailLines = 2000

// DetailLog records a step-by-step decision trail for the first few
// generations of a run. It only sees step lines when the experiment
// publishes step events.
type DetailLog struct {
	maxGenerations int
	maxLines       int

	mu          sync.Mutex
	generations map[int]*memory.Memory[string]
}

// NewDetailLog keeps lines for generations 1..maxGenerations. A
// generation keeps at most maxLines lines, newest last.
func NewDetailLog(maxGenerations, maxLines int) *DetailLog {
	if maxLines <= 0 {
		maxLines = DefaultDetailLines
	}
	return &DetailLog{
		maxGenerations: maxGenerations,
		maxLines:       maxLines,
		generations:    make(map[int]*memory.Memory[string]),
	}
}

func (d *DetailLog) Handle(ev core.Event) error {
	if ev.Generation < 1 || ev.Generation > d.maxGenerations {
		return nil
	}

	var line string
	switch ev.Type {
	case core.GenerationStarted:
		line = fmt.Sprintf("Generation %d started with threshold %d", ev.Generation, ev.Threshold)
	case core.StepObserved:
		if ev.Outcome == core.Reward {
			line = fmt.Sprintf("Step %d: REWARD received, consecutive punishments reset", ev.Step)
		} else {
			line = fmt.Sprintf("Step %d: PUNISHMENT received, consecutive %d", ev.Step, ev.Consecutive)
		}
	case core.GaveUp:
		line = fmt.Sprintf("Step %d: DECISION give up, reached threshold %d with %d consecutive punishments",
			ev.Step, ev.Threshold, ev.Consecutive)
	case core.StepCapReached:
		line = fmt.Sprintf("Step %d: step cap reached with %d consecutive punishments", ev.Step, ev.Consecutive)
	case core.GenerationEnded:
		line = fmt.Sprintf("Generation %d ended after %d steps (%s): %d rewards, %d punishments",
			ev.Generation, ev.Lifespan, ev.Reason, ev.Rewards, ev.Punishments)
	default:
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	m, ok := d.generations[ev.Generation]
	if !ok {
		m = memory.NewMemory[string](d.maxLines)
		d.generations[ev.Generation] = m
	}
	m.Store(line)
	return nil
}

// Generations lists the generations with recorded lines, ascending
func (d *DetailLog) Generations() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	gens := make([]int, 0, len(d.generations))
	for g := range d.generations {
		gens = append(gens, g)
	}
	slices.Sort(gens)
	return gens
}

// Lines returns the recorded lines for one generation
func (d *DetailLog) Lines(generation int) []string {
	d.mu.Lock()
	m, ok := d.generations[generation]
	d.mu.Unlock()
	if !ok {
		return nil
	}
	return m.GetAll()
}
