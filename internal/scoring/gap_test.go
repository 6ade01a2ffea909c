package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
)

func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		avg      float64
		expected domain.Priority
	}{
		{avg: 0, expected: domain.PriorityUrgent},
		{avg: 39.99, expected: domain.PriorityUrgent},
		{avg: 40.0, expected: domain.PriorityModerate},
		{avg: 59.99, expected: domain.PriorityModerate},
		{avg: 60.0, expected: domain.PriorityLow},
		{avg: 100, expected: domain.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyPriority(tt.avg), "average %v", tt.avg)
		})
	}
}

func TestSubTopicGap(t *testing.T) {
	waves := domain.SubTopic{ID: "w", Name: "Waves", MaxScore: 20}

	t.Run("missing scores average in as zero", func(t *testing.T) {
		cohort := []domain.Student{
			student("a", "c1", entry("w", 20)),
			student("b", "c1"),
		}
		got := SubTopicGap(waves, cohort)
		assert.Equal(t, "w", got.SubTopicID)
		assert.Equal(t, "Waves", got.SubTopicName)
		assert.InDelta(t, 50.0, got.AveragePercentage, 1e-9)
		assert.Equal(t, domain.PriorityModerate, got.Priority)
	})

	t.Run("empty cohort", func(t *testing.T) {
		got := SubTopicGap(waves, nil)
		assert.Equal(t, 0.0, got.AveragePercentage)
		assert.Equal(t, domain.PriorityUrgent, got.Priority)
	})

	t.Run("zero max score", func(t *testing.T) {
		got := SubTopicGap(domain.SubTopic{ID: "z"}, []domain.Student{student("a", "c1", entry("z", 5))})
		assert.Equal(t, 0.0, got.AveragePercentage)
	})

	t.Run("over-max scores are clamped", func(t *testing.T) {
		got := SubTopicGap(waves, []domain.Student{student("a", "c1", entry("w", 50))})
		assert.Equal(t, 100.0, got.AveragePercentage)
	})
}

func TestGapAnalysis(t *testing.T) {
	cohort := []domain.Student{
		student("a", "c1", entry("m", 25), entry("w", 5), entry("org", 25), entry("inorg", 25)),
		student("b", "c1", entry("m", 15), entry("w", 5), entry("org", 25), entry("inorg", 25)),
	}
	gaps := GapAnalysis([]domain.Subject{physics(), chemistry()}, cohort)

	require.Len(t, gaps, 4)
	// w = 25%, org = inorg = 50% (tie keeps curriculum order), m = 80%.
	assert.Equal(t, "w", gaps[0].SubTopicID)
	assert.Equal(t, domain.PriorityUrgent, gaps[0].Priority)
	assert.Equal(t, "PHY", gaps[0].SubjectCode)
	assert.Equal(t, "org", gaps[1].SubTopicID)
	assert.Equal(t, "inorg", gaps[2].SubTopicID)
	assert.Equal(t, "CHEM", gaps[2].SubjectCode)
	assert.Equal(t, "m", gaps[3].SubTopicID)
	assert.Equal(t, domain.PriorityLow, gaps[3].Priority)

	for i := 1; i < len(gaps); i++ {
		assert.LessOrEqual(t, gaps[i-1].AveragePercentage, gaps[i].AveragePercentage)
	}

	assert.Empty(t, GapAnalysis(nil, cohort))
}
