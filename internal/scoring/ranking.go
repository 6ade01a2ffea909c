package scoring

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
)

// DefaultAtRiskCutoff is the percentage below which a bottom-ranked student is
// reported as needing attention.
const DefaultAtRiskCutoff = 50.0

type ranked struct {
	student    domain.Student
	percentage float64
}

// rankCohort orders the cohort by total percentage. Ties keep input order.
func rankCohort(cohort []domain.Student, subjects []domain.Subject, descending bool) []ranked {
	out := make([]ranked, len(cohort))
	for i, st := range cohort {
		out[i] = ranked{student: st, percentage: TotalScore(st, subjects).Percentage}
	}
	slices.SortStableFunc(out, func(a, b ranked) int {
		if descending {
			return cmp.Compare(b.percentage, a.percentage)
		}
		return cmp.Compare(a.percentage, b.percentage)
	})
	return out
}

// percentileForRank maps a 1-based rank to [0, 100], 100 being the best.
// A cohort of one is the 100th percentile.
func percentileForRank(rank, size int) float64 {
	if size <= 1 {
		return 100
	}
	return float64(size-rank) / float64(size-1) * 100
}

// Standings ranks every cohort member by total percentage, best first.
// Students with equal percentages keep their relative input order.
func Standings(cohort []domain.Student, subjects []domain.Subject) []domain.Standing {
	order := rankCohort(cohort, subjects, true)
	out := make([]domain.Standing, len(order))
	for i, r := range order {
		out[i] = domain.Standing{
			StudentID:  r.student.ID,
			Rank:       i + 1,
			Percentile: percentileForRank(i+1, len(order)),
			Percentage: r.percentage,
		}
	}
	return out
}

// Rank returns the standing of studentID within cohort. The student must be
// a cohort member; when ids repeat, the first occurrence is ranked.
func Rank(studentID string, cohort []domain.Student, subjects []domain.Subject) (domain.Standing, error) {
	for _, s := range Standings(cohort, subjects) {
		if s.StudentID == studentID {
			return s, nil
		}
	}
	return domain.Standing{}, domain.NewInvalidInputError("student", studentID, domain.ErrStudentNotInCohort).
		WithDetail("cohort size %d", len(cohort))
}

// CohortCount returns ceil(size*fraction), at least 1 for a non-empty cohort
// and never more than size.
func CohortCount(size int, fraction float64) (int, error) {
	if math.IsNaN(fraction) || fraction <= 0 || fraction > 1 {
		return 0, domain.NewInvalidInputError("cohort", "", domain.ErrInvalidFraction).
			WithDetail("fraction %v must be in (0, 1]", fraction)
	}
	if size <= 0 {
		return 0, nil
	}
	n := int(math.Ceil(float64(size) * fraction))
	return min(max(n, 1), size), nil
}

// TopN returns the highest-scoring ceil(len(cohort)*fraction) students, best
// first.
func TopN(cohort []domain.Student, subjects []domain.Subject, fraction float64) ([]domain.Student, error) {
	rs, err := extract(cohort, subjects, fraction, true)
	if err != nil {
		return nil, err
	}
	return studentsOf(rs), nil
}

// BottomN returns the lowest-scoring ceil(len(cohort)*fraction) students,
// weakest first. Equal percentages keep input order.
func BottomN(cohort []domain.Student, subjects []domain.Subject, fraction float64) ([]domain.Student, error) {
	rs, err := extract(cohort, subjects, fraction, false)
	if err != nil {
		return nil, err
	}
	return studentsOf(rs), nil
}

// AtRisk returns the students of the bottom ceil(len(cohort)*fraction) whose
// total percentage is strictly below cutoff, weakest first.
func AtRisk(cohort []domain.Student, subjects []domain.Subject, fraction, cutoff float64) ([]domain.Student, error) {
	rs, err := atRisk(cohort, subjects, fraction, cutoff)
	if err != nil {
		return nil, err
	}
	return studentsOf(rs), nil
}

// AtRiskCount is the number of students AtRisk would return.
func AtRiskCount(cohort []domain.Student, subjects []domain.Subject, fraction, cutoff float64) (int, error) {
	rs, err := atRisk(cohort, subjects, fraction, cutoff)
	return len(rs), err
}

// TopRefs is TopN returning lightweight references with percentages.
func TopRefs(cohort []domain.Student, subjects []domain.Subject, fraction float64) ([]domain.StudentRef, error) {
	return refsOf(extract(cohort, subjects, fraction, true))
}

// BottomRefs is BottomN returning lightweight references with percentages.
func BottomRefs(cohort []domain.Student, subjects []domain.Subject, fraction float64) ([]domain.StudentRef, error) {
	return refsOf(extract(cohort, subjects, fraction, false))
}

// AtRiskRefs is AtRisk returning lightweight references with percentages.
func AtRiskRefs(cohort []domain.Student, subjects []domain.Subject, fraction, cutoff float64) ([]domain.StudentRef, error) {
	return refsOf(atRisk(cohort, subjects, fraction, cutoff))
}

func atRisk(cohort []domain.Student, subjects []domain.Subject, fraction, cutoff float64) ([]ranked, error) {
	if math.IsNaN(cutoff) {
		return nil, domain.NewInvalidInputError("cohort", "", domain.ErrNonFiniteValue).WithDetail("at-risk cutoff is NaN")
	}
	bottom, err := extract(cohort, subjects, fraction, false)
	if err != nil {
		return nil, err
	}
	var out []ranked
	for _, r := range bottom {
		if r.percentage < cutoff {
			out = append(out, r)
		}
	}
	return out, nil
}

func extract(cohort []domain.Student, subjects []domain.Subject, fraction float64, top bool) ([]ranked, error) {
	n, err := CohortCount(len(cohort), fraction)
	if err != nil {
		return nil, fmt.Errorf("extract cohort: %w", err)
	}
	return rankCohort(cohort, subjects, top)[:n], nil
}

func toRef(r ranked) domain.StudentRef {
	return domain.StudentRef{
		StudentID:  r.student.ID,
		Name:       r.student.Name,
		ClassID:    r.student.ClassID,
		Percentage: r.percentage,
	}
}

func refsOf(rs []ranked, err error) ([]domain.StudentRef, error) {
	if err != nil {
		return nil, err
	}
	out := make([]domain.StudentRef, len(rs))
	for i, r := range rs {
		out[i] = toRef(r)
	}
	return out, nil
}

func studentsOf(rs []ranked) []domain.Student {
	out := make([]domain.Student, len(rs))
	for i, r := range rs {
		out[i] = r.student
	}
	return out
}
