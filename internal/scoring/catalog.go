package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/agnivade/levenshtein"
	"github.com/go-playground/validator/v10"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
)

// maxSuggestionDistance bounds how far an unknown sub-topic id may be from a
// known one before no suggestion is offered.
const maxSuggestionDistance = 3

var validate = validator.New()

// Catalog is a validated subject catalog. It indexes every sub-topic so
// cohorts can be checked against it before aggregation.
//
// A Catalog is immutable after construction and safe for concurrent use.
type Catalog struct {
	subjects  []domain.Subject
	subTopics map[string]domain.SubTopic
	order     []string
}

// NewCatalog validates subjects and returns the resulting catalog. It rejects
// empty ids, negative or non-finite max scores, duplicate subject ids and
// sub-topic ids that repeat anywhere in the catalog.
func NewCatalog(subjects []domain.Subject) (*Catalog, error) {
	c := &Catalog{
		subjects:  subjects,
		subTopics: make(map[string]domain.SubTopic),
	}
	seenSubjects := make(map[string]struct{}, len(subjects))

	for i, subj := range subjects {
		if err := validate.Struct(subj); err != nil {
			return nil, tagError("subject", subj.ID, i, err)
		}
		if _, dup := seenSubjects[subj.ID]; dup {
			return nil, domain.NewInvalidInputError("subject", subj.ID, domain.ErrDuplicateSubject)
		}
		seenSubjects[subj.ID] = struct{}{}

		for _, st := range subj.SubTopics {
			switch {
			case math.IsNaN(st.MaxScore) || math.IsInf(st.MaxScore, 0):
				return nil, domain.NewInvalidInputError("sub_topic", st.ID, domain.ErrNonFiniteValue).
					WithDetail("max score %v", st.MaxScore)
			case st.MaxScore < 0:
				return nil, domain.NewInvalidInputError("sub_topic", st.ID, domain.ErrNegativeMaxScore).
					WithDetail("max score %v", st.MaxScore)
			}
			if prev, dup := c.subTopics[st.ID]; dup {
				return nil, domain.NewInvalidInputError("sub_topic", st.ID, domain.ErrDuplicateSubTopic).
					WithDetail("already defined as %q", prev.Name)
			}
			c.subTopics[st.ID] = st
			c.order = append(c.order, st.ID)
		}
	}
	return c, nil
}

// Subjects returns the catalog's subjects in their original order.
func (c *Catalog) Subjects() []domain.Subject { return c.subjects }

// SubTopic looks up a sub-topic by id.
func (c *Catalog) SubTopic(id string) (domain.SubTopic, bool) {
	st, ok := c.subTopics[id]
	return st, ok
}

// ValidateCohort checks students against the catalog. The first
// inconsistency aborts validation: an empty or repeated student id, a score
// entry for an unknown sub-topic, two entries for one sub-topic, or a
// non-finite score. Scores outside [0, maxScore] are accepted; the engine
// clamps them.
func (c *Catalog) ValidateCohort(students []domain.Student) error {
	seen := make(map[string]struct{}, len(students))
	for i, s := range students {
		if err := validate.Struct(s); err != nil {
			return tagError("student", s.ID, i, err)
		}
		if _, dup := seen[s.ID]; dup {
			return domain.NewInvalidInputError("student", s.ID, domain.ErrDuplicateStudent)
		}
		seen[s.ID] = struct{}{}

		entries := make(map[string]struct{}, len(s.Scores))
		for _, e := range s.Scores {
			if _, ok := c.SubTopic(e.SubTopicID); !ok {
				err := domain.NewInvalidInputError("score_entry", e.SubTopicID, domain.ErrUnknownSubTopic).
					WithDetail("student %q", s.ID)
				if hint := c.suggest(e.SubTopicID); hint != "" {
					err.Detail += fmt.Sprintf(", did you mean %q?", hint)
				}
				return err
			}
			if _, dup := entries[e.SubTopicID]; dup {
				return domain.NewInvalidInputError("score_entry", e.SubTopicID, domain.ErrDuplicateScoreEntry).
					WithDetail("student %q", s.ID)
			}
			entries[e.SubTopicID] = struct{}{}
			if math.IsNaN(e.Score) || math.IsInf(e.Score, 0) {
				return domain.NewInvalidInputError("score_entry", e.SubTopicID, domain.ErrNonFiniteValue).
					WithDetail("student %q, score %v", s.ID, e.Score)
			}
		}
	}
	return nil
}

// ValidateRoster builds a catalog from r.Subjects and validates r.Students
// against it.
func ValidateRoster(r domain.Roster) (*Catalog, error) {
	c, err := NewCatalog(r.Subjects)
	if err != nil {
		return nil, err
	}
	if err := c.ValidateCohort(r.Students); err != nil {
		return nil, err
	}
	return c, nil
}

// suggest returns the known sub-topic id closest to id, or "" if none is
// within maxSuggestionDistance. Ties go to catalog order.
func (c *Catalog) suggest(id string) string {
	best, bestDist := "", maxSuggestionDistance+1
	for _, known := range c.order {
		if d := levenshtein.ComputeDistance(id, known); d < bestDist {
			best, bestDist = known, d
		}
	}
	return best
}

// tagError converts a validator failure into an InvalidInputError. Only
// "required" tags exist on the roster types, so any failure is a missing id.
func tagError(entity, id string, index int, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return domain.NewInvalidInputError(entity, id, domain.ErrMissingID).
			WithDetail("index %d, field %s", index, verrs[0].Namespace())
	}
	return domain.NewInvalidInputError(entity, id, fmt.Errorf("%w: %w", domain.ErrMissingID, err))
}
