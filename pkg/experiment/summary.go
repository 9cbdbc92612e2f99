package experiment

import (
	"math"
	"slices"

	"github.com/boristopalov/gambit/pkg/core"
)

// Summarize computes lifespan statistics over records
func Summarize(records []core.GenerationRecord) core.Summary {
	summary := core.Summary{
		Generations:  len(records),
		ReasonCounts: make(map[core.TerminationReason]int),
	}
	if len(records) == 0 {
		return summary
	}

	lifespans := make([]int, len(records))
	var total, thresholds float64
	for i, r := range records {
		lifespans[i] = r.Lifespan
		total += float64(r.Lifespan)
		thresholds += float64(r.Threshold)
		summary.ReasonCounts[r.Reason]++
	}
	n := float64(len(records))
	mean := total / n

	var sumSquares float64
	for _, l := range lifespans {
		diff := float64(l) - mean
		sumSquares += diff * diff
	}

	slices.Sort(lifespans)
	mid := len(lifespans) / 2
	median := float64(lifespans[mid])
	if len(lifespans)%2 == 0 {
		median = float64(lifespans[mid-1]+lifespans[mid]) / 2
	}

	summary.MeanLifespan = mean
	summary.MedianLifespan = median
	summary.MinLifespan = lifespans[0]
	summary.MaxLifespan = lifespans[len(lifespans)-1]
	summary.StdDevLifespan = math.Sqrt(sumSquares / n)
	summary.MeanThreshold = thresholds / n
	return summary
}
