// Package testutils provides deterministic sample data for tests and demos.
// Nothing here runs at import time: callers generate rosters explicitly and
// pass them to the engine like any other data source.
package testutils

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-playground/validator/v10"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
)

var validate = validator.New()

// RosterOptions controls the shape of a generated roster.
type RosterOptions struct {
	// Classes lists the class ids students are spread across.
	Classes []string `validate:"min=1,dive,required"`

	// StudentsPerClass is the number of students generated for each class.
	StudentsPerClass int `validate:"min=1,max=10000"`

	// MissingRate is the probability that a student has no score entry for
	// a sub-topic, which the engine counts as 0.
	MissingRate float64 `validate:"min=0,max=1"`

	// Subjects is the catalog to score against. Empty uses DefaultSubjects.
	Subjects []domain.Subject
}

// DefaultRosterOptions returns two classes of 20 students with a few
// ungraded entries.
func DefaultRosterOptions() RosterOptions {
	return RosterOptions{
		Classes:          []string{"M4/1", "M4/2"},
		StudentsPerClass: 20,
		MissingRate:      0.05,
	}
}

// DefaultSubjects returns a small science and mathematics catalog whose
// sub-topics have uneven maximum scores.
func DefaultSubjects() []domain.Subject {
	return []domain.Subject{
		{ID: "phy", Name: "Physics", Code: "PHY", SubTopics: []domain.SubTopic{
			{ID: "phy-mech", Name: "Mechanics", MaxScore: 25},
			{ID: "phy-waves", Name: "Waves", MaxScore: 20},
			{ID: "phy-elec", Name: "Electricity", MaxScore: 30},
		}},
		{ID: "chem", Name: "Chemistry", Code: "CHEM", SubTopics: []domain.SubTopic{
			{ID: "chem-org", Name: "Organic", MaxScore: 50},
			{ID: "chem-inorg", Name: "Inorganic", MaxScore: 50},
		}},
		{ID: "math", Name: "Mathematics", Code: "MATH", SubTopics: []domain.SubTopic{
			{ID: "math-alg", Name: "Algebra", MaxScore: 40},
			{ID: "math-calc", Name: "Calculus", MaxScore: 40},
			{ID: "math-stat", Name: "Statistics", MaxScore: 20},
		}},
		{ID: "bio", Name: "Biology", Code: "BIO", SubTopics: []domain.SubTopic{
			{ID: "bio-cell", Name: "Cell Biology", MaxScore: 30},
			{ID: "bio-gen", Name: "Genetics", MaxScore: 30},
			{ID: "bio-eco", Name: "Ecology", MaxScore: 40},
		}},
	}
}

var (
	givenNames  = []string{"Anan", "Busaba", "Chai", "Darin", "Ekkachai", "Fah", "Ganya", "Krit", "Lalita", "Mali", "Nok", "Pim", "Somchai", "Tida", "Wichai"}
	familyNames = []string{"Srisuk", "Chaiyaporn", "Boonmee", "Kittisak", "Rattanakorn", "Thongdee", "Wongsa"}
)

// GenerateSampleRoster builds a reproducible roster: the same options and
// seed always yield the same students and scores. Each student has an
// ability level and each sub-topic a difficulty, so classes show realistic
// spread, weak sub-topics and a few at-risk students.
func GenerateSampleRoster(opts RosterOptions, seed int64) (domain.Roster, error) {
	if err := validate.Struct(opts); err != nil {
		return domain.Roster{}, fmt.Errorf("invalid roster options: %w", err)
	}
	subjects := opts.Subjects
	if len(subjects) == 0 {
		subjects = DefaultSubjects()
	}

	rng := rand.New(rand.NewSource(seed))

	difficulty := make(map[string]float64)
	for _, subj := range subjects {
		for _, st := range subj.SubTopics {
			difficulty[st.ID] = rng.NormFloat64() * 0.12
		}
	}

	roster := domain.Roster{
		Subjects: subjects,
		Students: make([]domain.Student, 0, len(opts.Classes)*opts.StudentsPerClass),
	}
	for _, classID := range opts.Classes {
		for range opts.StudentsPerClass {
			n := len(roster.Students) + 1
			ability := 0.62 + rng.NormFloat64()*0.18
			student := domain.Student{
				ID:      fmt.Sprintf("stu-%04d", n),
				Name:    givenNames[rng.Intn(len(givenNames))] + " " + familyNames[rng.Intn(len(familyNames))],
				ClassID: classID,
			}
			for _, subj := range subjects {
				for _, st := range subj.SubTopics {
					if rng.Float64() < opts.MissingRate {
						continue
					}
					share := clamp01(ability - difficulty[st.ID] + rng.NormFloat64()*0.08)
					student.Scores = append(student.Scores, domain.ScoreEntry{
						SubTopicID: st.ID,
						Score:      math.Round(share * st.MaxScore),
					})
				}
			}
			roster.Students = append(roster.Students, student)
		}
	}
	return roster, nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
