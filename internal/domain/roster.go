package domain

// SubTopic is the smallest gradable unit of a subject.
// Its MaxScore must be non-negative; it is immutable once scored against.
type SubTopic struct {
	// ID uniquely identifies the sub-topic across the whole catalog.
	ID string `json:"id" yaml:"id" validate:"required"`

	// Name is the human-readable label shown on dashboards.
	Name string `json:"name" yaml:"name"`

	// MaxScore is the highest score a student can obtain on this sub-topic.
	MaxScore float64 `json:"max_score" yaml:"max_score"`
}

// Subject is an ordered collection of sub-topics, i.e. a course.
// The order of SubTopics is preserved in every derived output.
type Subject struct {
	// ID uniquely identifies the subject.
	ID string `json:"id" yaml:"id" validate:"required"`

	// Name is the full subject name (e.g. "Physics").
	Name string `json:"name" yaml:"name"`

	// Code is the short subject code used as the key of comparison series
	// (e.g. "PHY").
	Code string `json:"code" yaml:"code"`

	// SubTopics lists the sub-topics in curriculum order.
	SubTopics []SubTopic `json:"sub_topics" yaml:"sub_topics" validate:"dive"`
}

// MaxScore returns the sum of the sub-topics' maximum scores.
// A subject without sub-topics has a maximum score of 0.
func (s Subject) MaxScore() float64 {
	var total float64
	for _, st := range s.SubTopics {
		total += st.MaxScore
	}
	return total
}

// ScoreEntry is a student's recorded score for one sub-topic within the
// assessment context selected by the caller.
type ScoreEntry struct {
	SubTopicID string  `json:"sub_topic_id" yaml:"sub_topic_id" validate:"required"`
	Score      float64 `json:"score" yaml:"score"`
}

// Student is a cohort member together with the raw scores to aggregate.
type Student struct {
	ID      string       `json:"id" yaml:"id" validate:"required"`
	Name    string       `json:"name" yaml:"name"`
	ClassID string       `json:"class_id" yaml:"class_id"`
	Scores  []ScoreEntry `json:"scores" yaml:"scores" validate:"dive"`
}

// ScoreFor returns the recorded score for subTopicID and whether an entry
// exists. When several entries share a sub-topic the first one wins; catalog
// validation rejects such rosters before they reach the engine.
func (s Student) ScoreFor(subTopicID string) (float64, bool) {
	for _, e := range s.Scores {
		if e.SubTopicID == subTopicID {
			return e.Score, true
		}
	}
	return 0, false
}

// Roster is the in-memory data set handed to the engine by the data source.
// It is already filtered by year, program, class and assessment.
type Roster struct {
	Subjects []Subject `json:"subjects" yaml:"subjects" validate:"dive"`
	Students []Student `json:"students" yaml:"students" validate:"dive"`
}

// SubjectByCode returns the first subject whose code equals code.
func (r Roster) SubjectByCode(code string) (Subject, bool) {
	for _, s := range r.Subjects {
		if s.Code == code {
			return s, true
		}
	}
	return Subject{}, false
}

// StudentsInClass returns the students of r enrolled in classID, preserving
// roster order.
func (r Roster) StudentsInClass(classID string) []Student {
	var out []Student
	for _, s := range r.Students {
		if s.ClassID == classID {
			out = append(out, s)
		}
	}
	return out
}

// ClassIDs returns the distinct class ids of the roster in order of first
// appearance.
func (r Roster) ClassIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, s := range r.Students {
		if _, ok := seen[s.ClassID]; ok {
			continue
		}
		seen[s.ClassID] = struct{}{}
		ids = append(ids, s.ClassID)
	}
	return ids
}
