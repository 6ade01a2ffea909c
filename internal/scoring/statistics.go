package scoring

import (
	"math"
	"slices"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
)

// outlierFactor is the IQR multiplier for the box-plot fences.
const outlierFactor = 1.5

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// populationStdDev divides the squared deviations by N, not N-1.
func populationStdDev(values []float64, mu float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - mu
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

// median of an already sorted slice: the middle element for odd lengths, the
// mean of the two middle elements for even lengths, 0 when empty.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// quartiles splits a sorted slice into halves around the median. For odd
// lengths the median element belongs to neither half.
func quartiles(sorted []float64) domain.Quartiles {
	n := len(sorted)
	if n == 0 {
		return domain.Quartiles{}
	}
	lower := sorted[:n/2]
	upper := sorted[n/2:]
	if n%2 == 1 {
		upper = sorted[n/2+1:]
	}
	return domain.Quartiles{
		Q1:     median(lower),
		Median: median(sorted),
		Q3:     median(upper),
	}
}

// CohortStatistics computes mean, population standard deviation, quartiles
// and box-plot whiskers of values. The input slice is not modified. An empty
// input yields the zero CohortStats; NaN and infinite values count as 0.
//
// Whiskers are the extremes of the non-outlier values, where outliers lie
// outside [Q1-1.5*IQR, Q3+1.5*IQR]. If every value is an outlier the
// whiskers fall back to the overall minimum and maximum.
func CohortStatistics(values []float64) domain.CohortStats {
	if len(values) == 0 {
		return domain.CohortStats{}
	}

	sorted := slices.Clone(values)
	for i, v := range sorted {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			sorted[i] = 0
		}
	}
	slices.Sort(sorted)

	mu := mean(sorted)
	q := quartiles(sorted)
	iqr := q.Q3 - q.Q1
	lowerFence := q.Q1 - outlierFactor*iqr
	upperFence := q.Q3 + outlierFactor*iqr

	stats := domain.CohortStats{
		Count:      len(sorted),
		Mean:       mu,
		StdDev:     populationStdDev(sorted, mu),
		Quartiles:  q,
		LowerFence: lowerFence,
		UpperFence: upperFence,
	}

	var inliers []float64
	for _, v := range sorted {
		if v < lowerFence || v > upperFence {
			stats.Outliers = append(stats.Outliers, v)
			continue
		}
		inliers = append(inliers, v)
	}

	if len(inliers) == 0 {
		stats.Min, stats.Max = sorted[0], sorted[len(sorted)-1]
	} else {
		stats.Min, stats.Max = inliers[0], inliers[len(inliers)-1]
	}
	return stats
}
