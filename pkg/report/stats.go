package report

import (
	"math"
	"slices"
)

// MovingAverageWindow picks a window of about a tenth of the run, capped at 50
func MovingAverageWindow(n int) int {
	return max(1, min(n/10, 50))
}

// MovingAverage returns the mean of every full window over values. The
// result has len(values)-window+1 entries; entry i covers values[i:i+window].
func MovingAverage(values []int, window int) []float64 {
	if window <= 0 || len(values) < window {
		return nil
	}
	out := make([]float64, 0, len(values)-window+1)
	var sum int
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out = append(out, float64(sum)/float64(window))
		}
	}
	return out
}

// Percentile interpolates linearly between closest ranks. sorted must be
// in ascending order.
func Percentile(sorted []int, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	frac := idx - float64(lo)
	return float64(sorted[lo]) + (float64(sorted[hi])-float64(sorted[lo]))*frac
}

// HistogramBins chooses a bin count with the Freedman-Diaconis rule,
// clamped to [5, 100]. A single value gets one bin.
func HistogramBins(values []int) int {
	switch len(values) {
	case 0:
		return 0
	case 1:
		return 1
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	n := float64(len(sorted))

	iqr := Percentile(sorted, 75) - Percentile(sorted, 25)
	width := 1.0
	if iqr > 0 {
		width = 2 * iqr * math.Pow(n, -1.0/3.0)
	}

	span := float64(sorted[len(sorted)-1] - sorted[0])
	var bins int
	if width > 0 {
		bins = int(math.Ceil(span / width))
	} else {
		bins = max(10, int(math.Sqrt(n)))
	}
	return max(5, min(bins, 100))
}

// Bin is one histogram bucket covering [Lower, Upper). The last bin also
// includes Upper.
type Bin struct {
	Lower float64
	Upper float64
	Count int
}

// Histogram splits values into equal-width bins between their min and max
func Histogram(values []int, bins int) []Bin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}
	lo := float64(slices.Min(values))
	hi := float64(slices.Max(values))
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	width := (hi - lo) / float64(bins)

	out := make([]Bin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	for _, v := range values {
		idx := int((float64(v) - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		out[idx].Count++
	}
	return out
}
