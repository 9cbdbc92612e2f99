package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovingAverage(t *testing.T) {
	assert.Equal(t, []float64{2, 3, 4}, MovingAverage([]int{1, 2, 3, 4, 5}, 3))
	assert.Equal(t, []float64{1, 2, 3}, MovingAverage([]int{1, 2, 3}, 1))
	assert.Nil(t, MovingAverage([]int{1, 2}, 3))
	assert.Nil(t, MovingAverage([]int{1, 2}, 0))
}

func TestMovingAverageWindow(t *testing.T) {
	assert.Equal(t, 1, MovingAverageWindow(0))
	assert.Equal(t, 1, MovingAverageWindow(9))
	assert.Equal(t, 10, MovingAverageWindow(100))
	assert.Equal(t, 50, MovingAverageWindow(10000))
}

func TestPercentile(t *testing.T) {
	sorted := []int{1, 2, 3, 4}
	assert.Equal(t, 1.75, Percentile(sorted, 25))
	assert.Equal(t, 3.25, Percentile(sorted, 75))
	assert.Equal(t, 2.5, Percentile(sorted, 50))
	assert.Equal(t, 0.0, Percentile(nil, 50))
}

func TestHistogramBins(t *testing.T) {
	assert.Equal(t, 0, HistogramBins(nil))
	assert.Equal(t, 1, HistogramBins([]int{7}))
	// identical values: iqr 0, width 1, span 0 -> clamped up to 5
	assert.Equal(t, 5, HistogramBins([]int{3, 3, 3, 3}))

	// one far outlier blows the bin count past the cap
	wide := make([]int, 0, 101)
	for i := 0; i < 100; i++ {
		wide = append(wide, i)
	}
	wide = append(wide, 1_000_000)
	assert.Equal(t, 100, HistogramBins(wide))

	// 1..8: iqr 3.5, width 3.5, span 7 -> 2 -> clamped to 5
	assert.Equal(t, 5, HistogramBins([]int{8, 7, 6, 5, 4, 3, 2, 1}))
}

func TestHistogram(t *testing.T) {
	t.Run("counts every value once", func(t *testing.T) {
		values := []int{1, 2, 2, 3, 9, 10}
		bins := Histogram(values, 3)
		assert.Len(t, bins, 3)
		assert.Equal(t, 1.0, bins[0].Lower)
		assert.Equal(t, 10.0, bins[2].Upper)

		total := 0
		for _, b := range bins {
			total += b.Count
		}
		assert.Equal(t, len(values), total)
		assert.Equal(t, 4, bins[0].Count)
		assert.Equal(t, 2, bins[2].Count)
	})

	t.Run("single value widens range", func(t *testing.T) {
		bins := Histogram([]int{5, 5}, 1)
		assert.Equal(t, []Bin{{Lower: 4.5, Upper: 5.5, Count: 2}}, bins)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, Histogram(nil, 5))
	})
}

func TestRunDirName(t *testing.T) {
	ts := time.Date(2024, 1, 31, 15, 45, 0, 0, time.UTC)
	assert.Equal(t, "The_Threshold_Gambit_v1_fixed_Thresh50_20240131_154500",
		RunDirName("The_Threshold_Gambit_v1", "fixed", 50, ts))
	assert.Equal(t, "my_run__1_adaptive_Thresh3_20240131_154500",
		RunDirName("my run!#1", "adaptive", 3, ts))
}

func TestCreateRunDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "results")

	first, err := CreateRunDir(base, "run_20240131_154500")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "run_20240131_154500"), first)

	second, err := CreateRunDir(base, "run_20240131_154500")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "run_20240131_154500_2"), second)

	third, err := CreateRunDir(base, "run_20240131_154500")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "run_20240131_154500_3"), third)

	for _, dir := range []string{first, second, third} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestCreateRunDirBaseIsFile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(base, []byte("x"), 0o644))
	_, err := CreateRunDir(base, "run")
	assert.Error(t, err)
}
