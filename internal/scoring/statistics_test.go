package scoring

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
)

func TestCohortStatistics_Quartiles(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected domain.Quartiles
	}{
		{
			name:     "even count splits into equal halves",
			values:   []float64{10, 20, 30, 40, 50, 60, 70, 80},
			expected: domain.Quartiles{Q1: 25, Median: 45, Q3: 65},
		},
		{
			name:     "odd count excludes median from both halves",
			values:   []float64{10, 20, 30, 40, 50},
			expected: domain.Quartiles{Q1: 15, Median: 30, Q3: 45},
		},
		{
			name:     "unsorted input",
			values:   []float64{50, 10, 40, 20, 30},
			expected: domain.Quartiles{Q1: 15, Median: 30, Q3: 45},
		},
		{
			name:     "single value has empty halves",
			values:   []float64{70},
			expected: domain.Quartiles{Q1: 0, Median: 70, Q3: 0},
		},
		{
			name:     "two values",
			values:   []float64{20, 80},
			expected: domain.Quartiles{Q1: 20, Median: 50, Q3: 80},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CohortStatistics(tt.values)
			assert.Equal(t, tt.expected, got.Quartiles)
		})
	}
}

func TestCohortStatistics_Empty(t *testing.T) {
	got := CohortStatistics(nil)
	assert.Equal(t, domain.CohortStats{}, got)
	assert.Equal(t, domain.CohortStats{}, CohortStatistics([]float64{}))
}

func TestCohortStatistics_MeanAndPopulationStdDev(t *testing.T) {
	got := CohortStatistics([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	assert.Equal(t, 8, got.Count)
	assert.InDelta(t, 5.0, got.Mean, 1e-12)
	// Sample standard deviation would be ~2.138.
	assert.InDelta(t, 2.0, got.StdDev, 1e-12)
}

func TestCohortStatistics_Outliers(t *testing.T) {
	t.Run("outlier excluded from whiskers", func(t *testing.T) {
		// q1 = 20, q3 = 50, iqr = 30, fences [-25, 95].
		got := CohortStatistics([]float64{10, 20, 30, 40, 50, 100})

		assert.Equal(t, domain.Quartiles{Q1: 20, Median: 35, Q3: 50}, got.Quartiles)
		assert.InDelta(t, -25.0, got.LowerFence, 1e-12)
		assert.InDelta(t, 95.0, got.UpperFence, 1e-12)
		assert.Equal(t, []float64{100}, got.Outliers)
		assert.Equal(t, 10.0, got.Min)
		assert.Equal(t, 50.0, got.Max)
	})

	t.Run("no outliers uses full range", func(t *testing.T) {
		got := CohortStatistics([]float64{10, 20, 30, 40, 50})
		assert.Empty(t, got.Outliers)
		assert.Equal(t, 10.0, got.Min)
		assert.Equal(t, 50.0, got.Max)
	})

	t.Run("all values outliers falls back to full range", func(t *testing.T) {
		// A single value has q1 = q3 = 0, so both fences are 0.
		got := CohortStatistics([]float64{70})
		assert.Equal(t, []float64{70}, got.Outliers)
		assert.Equal(t, 70.0, got.Min)
		assert.Equal(t, 70.0, got.Max)
	})
}

func TestCohortStatistics_DoesNotMutateInput(t *testing.T) {
	values := []float64{30, 10, 20}
	_ = CohortStatistics(values)
	assert.Equal(t, []float64{30, 10, 20}, values)
}

func TestCohortStatistics_NonFiniteCountsAsZero(t *testing.T) {
	got := CohortStatistics([]float64{math.NaN(), math.Inf(1), 30})
	assert.Equal(t, 3, got.Count)
	assert.InDelta(t, 10.0, got.Mean, 1e-12)
	assert.False(t, math.IsNaN(got.StdDev))
}

func FuzzCohortStatistics(f *testing.F) {
	f.Add(10.0, 20.0, 30.0, 40.0, 50.0)
	f.Add(0.0, 0.0, 0.0, 0.0, 0.0)
	f.Add(100.0, 0.0, 100.0, 0.0, 50.0)
	f.Add(1e-9, 99.999, 42.0, 42.0, 7.5)

	f.Fuzz(func(t *testing.T, a, b, c, d, e float64) {
		values := []float64{a, b, c, d, e}
		for _, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > 1e6 {
				t.Skip()
			}
		}

		got := CohortStatistics(values)
		sorted := slices.Clone(values)
		slices.Sort(sorted)

		if got.Count != len(values) {
			t.Fatalf("Count = %d, want %d", got.Count, len(values))
		}
		if got.Quartiles.Q1 > got.Quartiles.Median || got.Quartiles.Median > got.Quartiles.Q3 {
			t.Errorf("quartiles out of order: %+v", got.Quartiles)
		}
		if got.Mean < sorted[0]-1e-6 || got.Mean > sorted[len(sorted)-1]+1e-6 {
			t.Errorf("mean %v outside [%v, %v]", got.Mean, sorted[0], sorted[len(sorted)-1])
		}
		if got.StdDev < 0 || math.IsNaN(got.StdDev) {
			t.Errorf("invalid stddev %v", got.StdDev)
		}
		if got.Min > got.Max {
			t.Errorf("whiskers inverted: min %v > max %v", got.Min, got.Max)
		}
		if len(got.Outliers) >= len(values) {
			t.Errorf("with five values at most four can be outliers, got %v", got.Outliers)
		}
		require.True(t, slices.IsSorted(got.Outliers))
	})
}
