package experiment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boristopalov/gambit/pkg/core"
)

func records(lifespans ...int) []core.GenerationRecord {
	out := make([]core.GenerationRecord, len(lifespans))
	for i, l := range lifespans {
		out[i] = core.GenerationRecord{Generation: i + 1, Lifespan: l, Threshold: 10, Reason: core.ThresholdReached}
	}
	return out
}

func TestSummarize(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s := Summarize(nil)
		assert.Equal(t, 0, s.Generations)
		assert.NotNil(t, s.ReasonCounts)
		assert.Zero(t, s.MeanLifespan)
	})

	t.Run("odd count", func(t *testing.T) {
		s := Summarize(records(5, 1, 9))
		assert.Equal(t, 3, s.Generations)
		assert.InDelta(t, 5.0, s.MeanLifespan, 1e-12)
		assert.Equal(t, 5.0, s.MedianLifespan)
		assert.Equal(t, 1, s.MinLifespan)
		assert.Equal(t, 9, s.MaxLifespan)
		assert.InDelta(t, 3.265986, s.StdDevLifespan, 1e-6)
		assert.Equal(t, 10.0, s.MeanThreshold)
		assert.Equal(t, 3, s.ReasonCounts[core.ThresholdReached])
	})

	t.Run("even count takes middle average", func(t *testing.T) {
		s := Summarize(records(4, 1, 3, 10))
		assert.Equal(t, 3.5, s.MedianLifespan)
		assert.Equal(t, 4.5, s.MeanLifespan)
	})

	t.Run("does not reorder input", func(t *testing.T) {
		in := records(3, 2, 1)
		Summarize(in)
		assert.Equal(t, 3, in[0].Lifespan)
	})
}
