package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
)

func TestRadarSeries(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []domain.SubjectAverage
		expected []domain.RadarPoint
	}{
		{
			name: "parallel series",
			a:    []domain.SubjectAverage{{Code: "PHY", AveragePercentage: 80}, {Code: "CHEM", AveragePercentage: 60}},
			b:    []domain.SubjectAverage{{Code: "PHY", AveragePercentage: 70}, {Code: "CHEM", AveragePercentage: 65}},
			expected: []domain.RadarPoint{
				{SubjectCode: "PHY", SeriesA: 80, SeriesB: 70},
				{SubjectCode: "CHEM", SeriesA: 60, SeriesB: 65},
			},
		},
		{
			name: "codes missing from one side read zero",
			a:    []domain.SubjectAverage{{Code: "PHY", AveragePercentage: 80}},
			b:    []domain.SubjectAverage{{Code: "BIO", AveragePercentage: 55}, {Code: "PHY", AveragePercentage: 70}},
			expected: []domain.RadarPoint{
				{SubjectCode: "PHY", SeriesA: 80, SeriesB: 70},
				{SubjectCode: "BIO", SeriesA: 0, SeriesB: 55},
			},
		},
		{
			name: "codes match regardless of case",
			a:    []domain.SubjectAverage{{Code: "phy", AveragePercentage: 10}},
			b:    []domain.SubjectAverage{{Code: " PHY ", AveragePercentage: 20}},
			expected: []domain.RadarPoint{
				{SubjectCode: "PHY", SeriesA: 10, SeriesB: 20},
			},
		},
		{
			name: "repeated code keeps first value",
			a:    []domain.SubjectAverage{{Code: "PHY", AveragePercentage: 10}, {Code: "PHY", AveragePercentage: 99}},
			expected: []domain.RadarPoint{
				{SubjectCode: "PHY", SeriesA: 10},
			},
		},
		{
			name:     "both empty",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RadarSeries(tt.a, tt.b))
		})
	}
}
