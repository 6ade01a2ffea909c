package testutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/scoring"
)

func TestGenerateSampleRoster_Deterministic(t *testing.T) {
	a, err := GenerateSampleRoster(DefaultRosterOptions(), 42)
	require.NoError(t, err)
	b, err := GenerateSampleRoster(DefaultRosterOptions(), 42)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := GenerateSampleRoster(DefaultRosterOptions(), 43)
	require.NoError(t, err)
	assert.NotEqual(t, a.Students, c.Students)
}

func TestGenerateSampleRoster_Shape(t *testing.T) {
	opts := RosterOptions{Classes: []string{"A", "B", "C"}, StudentsPerClass: 7}
	roster, err := GenerateSampleRoster(opts, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, roster.ClassIDs())
	assert.Len(t, roster.Students, 21)
	assert.Len(t, roster.StudentsInClass("B"), 7)
	assert.Equal(t, DefaultSubjects(), roster.Subjects)

	// Without a missing rate every sub-topic is scored.
	for _, st := range roster.Students {
		assert.Len(t, st.Scores, 11, st.ID)
	}
}

func TestGenerateSampleRoster_ScoresWithinBounds(t *testing.T) {
	opts := DefaultRosterOptions()
	opts.MissingRate = 0.3
	roster, err := GenerateSampleRoster(opts, 7)
	require.NoError(t, err)

	_, err = scoring.ValidateRoster(roster)
	require.NoError(t, err)

	maxByID := make(map[string]float64)
	for _, subj := range roster.Subjects {
		for _, st := range subj.SubTopics {
			maxByID[st.ID] = st.MaxScore
		}
	}
	for _, st := range roster.Students {
		for _, e := range st.Scores {
			assert.GreaterOrEqual(t, e.Score, 0.0)
			assert.LessOrEqual(t, e.Score, maxByID[e.SubTopicID])
		}
	}
}

func TestGenerateSampleRoster_CustomSubjects(t *testing.T) {
	opts := RosterOptions{
		Classes:          []string{"X"},
		StudentsPerClass: 3,
		Subjects: []domain.Subject{{ID: "art", Code: "ART", SubTopics: []domain.SubTopic{
			{ID: "draw", MaxScore: 10},
		}}},
	}
	roster, err := GenerateSampleRoster(opts, 3)
	require.NoError(t, err)
	require.Len(t, roster.Subjects, 1)
	for _, st := range roster.Students {
		require.Len(t, st.Scores, 1)
		assert.Equal(t, "draw", st.Scores[0].SubTopicID)
	}
}

func TestGenerateSampleRoster_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts RosterOptions
	}{
		{name: "no classes", opts: RosterOptions{StudentsPerClass: 1}},
		{name: "empty class id", opts: RosterOptions{Classes: []string{""}, StudentsPerClass: 1}},
		{name: "no students", opts: RosterOptions{Classes: []string{"A"}}},
		{name: "missing rate above one", opts: RosterOptions{Classes: []string{"A"}, StudentsPerClass: 1, MissingRate: 1.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateSampleRoster(tt.opts, 1)
			assert.ErrorContains(t, err, "invalid roster options")
		})
	}
}
