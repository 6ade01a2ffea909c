package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
)

func physics() domain.Subject {
	return domain.Subject{
		ID:   "phy",
		Name: "Physics",
		Code: "PHY",
		SubTopics: []domain.SubTopic{
			{ID: "m", Name: "Mechanics", MaxScore: 25},
			{ID: "w", Name: "Waves", MaxScore: 20},
		},
	}
}

func chemistry() domain.Subject {
	return domain.Subject{
		ID:   "chem",
		Name: "Chemistry",
		Code: "CHEM",
		SubTopics: []domain.SubTopic{
			{ID: "org", Name: "Organic", MaxScore: 50},
			{ID: "inorg", Name: "Inorganic", MaxScore: 50},
		},
	}
}

func student(id, classID string, scores ...domain.ScoreEntry) domain.Student {
	return domain.Student{ID: id, Name: "Student " + id, ClassID: classID, Scores: scores}
}

func entry(subTopicID string, score float64) domain.ScoreEntry {
	return domain.ScoreEntry{SubTopicID: subTopicID, Score: score}
}

// studentWithPercentage scores a student against a single 100-point sub-topic.
func studentWithPercentage(id string, pct float64) domain.Student {
	return student(id, "c1", entry("t", pct))
}

func hundredPointSubject() []domain.Subject {
	return []domain.Subject{{ID: "s", Code: "S", SubTopics: []domain.SubTopic{{ID: "t", MaxScore: 100}}}}
}

func TestScoreForSubject(t *testing.T) {
	tests := []struct {
		name     string
		student  domain.Student
		subject  domain.Subject
		expected domain.ScoreSummary
	}{
		{
			name:     "missing sub-topic entry counts as zero",
			student:  student("s1", "c1", entry("m", 20)),
			subject:  physics(),
			expected: domain.ScoreSummary{Score: 20, MaxScore: 45, Percentage: 20.0 / 45.0 * 100},
		},
		{
			name:     "no entries at all yields zero score with full max",
			student:  student("s1", "c1"),
			subject:  physics(),
			expected: domain.ScoreSummary{Score: 0, MaxScore: 45, Percentage: 0},
		},
		{
			name:     "empty subject yields zero summary",
			student:  student("s1", "c1", entry("m", 20)),
			subject:  domain.Subject{ID: "empty", Code: "EMP"},
			expected: domain.ScoreSummary{},
		},
		{
			name:     "score above max is clamped",
			student:  student("s1", "c1", entry("m", 40), entry("w", 20)),
			subject:  physics(),
			expected: domain.ScoreSummary{Score: 45, MaxScore: 45, Percentage: 100},
		},
		{
			name:     "negative score is clamped to zero",
			student:  student("s1", "c1", entry("m", -5), entry("w", 10)),
			subject:  physics(),
			expected: domain.ScoreSummary{Score: 10, MaxScore: 45, Percentage: 10.0 / 45.0 * 100},
		},
		{
			name:     "NaN score counts as zero",
			student:  student("s1", "c1", entry("m", math.NaN()), entry("w", 20)),
			subject:  physics(),
			expected: domain.ScoreSummary{Score: 20, MaxScore: 45, Percentage: 20.0 / 45.0 * 100},
		},
		{
			name:    "zero max score sub-topic yields zero percentage",
			student: student("s1", "c1", entry("z", 3)),
			subject: domain.Subject{ID: "z", SubTopics: []domain.SubTopic{{ID: "z", MaxScore: 0}}},
			expected: domain.ScoreSummary{
				Score: 0, MaxScore: 0, Percentage: 0,
			},
		},
		{
			name:    "invalid sub-topic maxima count as zero",
			student: student("s1", "c1", entry("m", 10), entry("n", 5), entry("i", 5)),
			subject: domain.Subject{ID: "mixed", SubTopics: []domain.SubTopic{
				{ID: "m", MaxScore: 20}, {ID: "n", MaxScore: -4}, {ID: "i", MaxScore: math.Inf(1)},
			}},
			expected: domain.ScoreSummary{Score: 10, MaxScore: 20, Percentage: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreForSubject(tt.student, tt.subject)
			assert.Equal(t, tt.expected.Score, got.Score)
			assert.Equal(t, tt.expected.MaxScore, got.MaxScore)
			assert.InDelta(t, tt.expected.Percentage, got.Percentage, 1e-9)
		})
	}
}

func TestScoreForSubject_PhysicsScenario(t *testing.T) {
	got := ScoreForSubject(student("s1", "c1", entry("m", 20)), physics())

	assert.Equal(t, 20.0, got.Score)
	assert.Equal(t, 45.0, got.MaxScore)
	assert.InDelta(t, 44.44, got.Percentage, 0.005)
}

func TestTotalScore(t *testing.T) {
	subjects := []domain.Subject{physics(), chemistry()}

	t.Run("sums across subjects", func(t *testing.T) {
		s := student("s1", "c1", entry("m", 25), entry("w", 20), entry("org", 30))
		got := TotalScore(s, subjects)

		assert.Equal(t, 75.0, got.Score)
		assert.Equal(t, 145.0, got.MaxScore)
		assert.InDelta(t, 75.0/145.0*100, got.Percentage, 1e-9)
	})

	t.Run("empty subject list yields zero summary", func(t *testing.T) {
		got := TotalScore(student("s1", "c1", entry("m", 25)), nil)
		assert.Equal(t, domain.ScoreSummary{}, got)
	})

	t.Run("scores outside the subject scope are ignored", func(t *testing.T) {
		s := student("s1", "c1", entry("org", 50))
		got := TotalScore(s, []domain.Subject{physics()})
		assert.Equal(t, 0.0, got.Score)
		assert.Equal(t, 45.0, got.MaxScore)
	})
}

func TestStudentResult(t *testing.T) {
	s := student("s1", "c1", entry("m", 20), entry("org", 40))
	res := StudentResult(s, []domain.Subject{physics(), chemistry()})

	assert.Equal(t, "s1", res.StudentID)
	assert.Equal(t, "c1", res.ClassID)
	require.Len(t, res.Subjects, 2)
	assert.Equal(t, "PHY", res.Subjects[0].Code)
	assert.Equal(t, 20.0, res.Subjects[0].Score)
	assert.Equal(t, "CHEM", res.Subjects[1].Code)
	assert.Equal(t, 40.0, res.Subjects[1].Score)
	assert.Equal(t, TotalScore(s, []domain.Subject{physics(), chemistry()}), res.Total)
}

func TestAverages(t *testing.T) {
	cohort := []domain.Student{
		student("a", "c1", entry("m", 25), entry("w", 20)),
		student("b", "c1", entry("org", 50)),
	}
	subjects := []domain.Subject{physics(), chemistry()}

	t.Run("subject averages keep subject order", func(t *testing.T) {
		avgs := SubjectAverages(cohort, subjects)
		require.Len(t, avgs, 2)
		assert.Equal(t, "PHY", avgs[0].Code)
		assert.InDelta(t, 50.0, avgs[0].AveragePercentage, 1e-9)
		assert.Equal(t, "CHEM", avgs[1].Code)
		assert.InDelta(t, 25.0, avgs[1].AveragePercentage, 1e-9)
	})

	t.Run("empty cohort averages to zero", func(t *testing.T) {
		assert.Equal(t, 0.0, AveragePercentage(nil, subjects))
		for _, a := range SubjectAverages(nil, subjects) {
			assert.Equal(t, 0.0, a.AveragePercentage)
		}
	})

	t.Run("cohort average of totals", func(t *testing.T) {
		want := (45.0/145.0*100 + 50.0/145.0*100) / 2
		assert.InDelta(t, want, AveragePercentage(cohort, subjects), 1e-9)
	})
}
