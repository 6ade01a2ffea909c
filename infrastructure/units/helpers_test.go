package units

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
)

// testRoster returns two subjects and five students across two classes.
//
//	student  class  PHY(45)      CHEM(100)    total %
//	s1       A      m25 w20      org40 in40   125/145
//	s2       A      m10          org20        30/145
//	s3       B      m20 w10      org50 in50   130/145
//	s4       B      (none)       (none)       0
//	s5       A      m25 w5       org30 in30   90/145
func testRoster() domain.Roster {
	return domain.Roster{
		Subjects: []domain.Subject{
			{ID: "phy", Name: "Physics", Code: "PHY", SubTopics: []domain.SubTopic{
				{ID: "m", Name: "Mechanics", MaxScore: 25},
				{ID: "w", Name: "Waves", MaxScore: 20},
			}},
			{ID: "chem", Name: "Chemistry", Code: "CHEM", SubTopics: []domain.SubTopic{
				{ID: "org", Name: "Organic", MaxScore: 50},
				{ID: "in", Name: "Inorganic", MaxScore: 50},
			}},
		},
		Students: []domain.Student{
			{ID: "s1", Name: "Ann", ClassID: "A", Scores: []domain.ScoreEntry{
				{SubTopicID: "m", Score: 25}, {SubTopicID: "w", Score: 20},
				{SubTopicID: "org", Score: 40}, {SubTopicID: "in", Score: 40},
			}},
			{ID: "s2", Name: "Ben", ClassID: "A", Scores: []domain.ScoreEntry{
				{SubTopicID: "m", Score: 10}, {SubTopicID: "org", Score: 20},
			}},
			{ID: "s3", Name: "Cat", ClassID: "B", Scores: []domain.ScoreEntry{
				{SubTopicID: "m", Score: 20}, {SubTopicID: "w", Score: 10},
				{SubTopicID: "org", Score: 50}, {SubTopicID: "in", Score: 50},
			}},
			{ID: "s4", Name: "Dan", ClassID: "B"},
			{ID: "s5", Name: "Eve", ClassID: "A", Scores: []domain.ScoreEntry{
				{SubTopicID: "m", Score: 25}, {SubTopicID: "w", Score: 5},
				{SubTopicID: "org", Score: 30}, {SubTopicID: "in", Score: 30},
			}},
		},
	}
}

func rosterState() domain.State {
	return domain.With(domain.NewState(), domain.KeyRoster, testRoster())
}

func yamlNode(t *testing.T, src string) yaml.Node {
	t.Helper()
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	require.NotEmpty(t, doc.Content)
	return *doc.Content[0]
}

func refIDs(refs []domain.StudentRef) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.StudentID
	}
	return out
}
