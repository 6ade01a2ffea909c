package scoring

import (
	"cmp"
	"slices"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
)

// Gap-analysis band boundaries. Each band includes its lower bound.
const (
	UrgentBelow   = 40.0
	ModerateBelow = 60.0
)

// ClassifyPriority maps a cohort average percentage to a remediation
// priority: below 40 is urgent, [40, 60) is moderate, 60 and above is low.
func ClassifyPriority(averagePercentage float64) domain.Priority {
	switch {
	case averagePercentage < UrgentBelow:
		return domain.PriorityUrgent
	case averagePercentage < ModerateBelow:
		return domain.PriorityModerate
	default:
		return domain.PriorityLow
	}
}

// SubTopicGap computes the cohort's average percentage on one sub-topic and
// classifies it. Missing scores count as 0; a zero max score or an empty
// cohort averages to 0.
func SubTopicGap(subTopic domain.SubTopic, cohort []domain.Student) domain.SubTopicGap {
	m := clampMax(subTopic.MaxScore)
	values := make([]float64, len(cohort))
	for i, st := range cohort {
		raw, _ := st.ScoreFor(subTopic.ID)
		values[i] = percentage(clampScore(raw, m), m)
	}
	avg := mean(values)
	return domain.SubTopicGap{
		SubTopicID:        subTopic.ID,
		SubTopicName:      subTopic.Name,
		AveragePercentage: avg,
		Priority:          ClassifyPriority(avg),
	}
}

// GapAnalysis classifies every sub-topic of subjects and orders the results
// weakest first. Equal averages keep curriculum order.
func GapAnalysis(subjects []domain.Subject, cohort []domain.Student) []domain.SubTopicGap {
	var gaps []domain.SubTopicGap
	for _, subj := range subjects {
		for _, st := range subj.SubTopics {
			g := SubTopicGap(st, cohort)
			g.SubjectCode = subj.Code
			gaps = append(gaps, g)
		}
	}
	SortGaps(gaps)
	return gaps
}

// SortGaps orders gaps ascending by average percentage, in place and stable.
func SortGaps(gaps []domain.SubTopicGap) {
	slices.SortStableFunc(gaps, func(a, b domain.SubTopicGap) int {
		return cmp.Compare(a.AveragePercentage, b.AveragePercentage)
	})
}
