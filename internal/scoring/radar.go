package scoring

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
)

// NormalizeCode returns the canonical form of a subject code used to match
// series: surrounding space trimmed and upper-cased.
func NormalizeCode(code string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(code))
}

// RadarSeries reshapes two per-subject average series into one sequence of
// comparison points keyed by subject code. Codes are ordered by first
// appearance in a, then in b; a code absent from one series reads 0 there.
// When a series repeats a code, its first value is used.
func RadarSeries(a, b []domain.SubjectAverage) []domain.RadarPoint {
	var points []domain.RadarPoint
	index := make(map[string]int)
	seenA := make(map[string]bool)
	seenB := make(map[string]bool)

	pointFor := func(code string) *domain.RadarPoint {
		if i, ok := index[code]; ok {
			return &points[i]
		}
		index[code] = len(points)
		points = append(points, domain.RadarPoint{SubjectCode: code})
		return &points[len(points)-1]
	}

	for _, avg := range a {
		code := NormalizeCode(avg.Code)
		if seenA[code] {
			continue
		}
		seenA[code] = true
		pointFor(code).SeriesA = avg.AveragePercentage
	}
	for _, avg := range b {
		code := NormalizeCode(avg.Code)
		if seenB[code] {
			continue
		}
		seenB[code] = true
		pointFor(code).SeriesB = avg.AveragePercentage
	}
	return points
}
