// Package scoring is the pure aggregation and ranking engine. It turns raw
// (student, sub-topic, score) tuples into percentages, cohort statistics,
// standings, gap classifications and comparison series.
//
// Every function is a pure, synchronous computation over caller-supplied
// data: no I/O, no shared state, no randomness. Calls may run concurrently.
// Empty inputs yield well-defined zero values; structural problems are
// reported as *domain.InvalidInputError by Catalog validation and by the few
// functions that take a lookup key or a fraction.
package scoring

import (
	"math"
	"slices"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
)

// clampScore limits a raw score to [0, maxScore]. Non-finite scores count as
// 0 and a negative maxScore is treated as 0.
func clampScore(score, maxScore float64) float64 {
	if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 {
		return 0
	}
	maxScore = clampMax(maxScore)
	if score > maxScore {
		return maxScore
	}
	return score
}

func clampMax(maxScore float64) float64 {
	if math.IsNaN(maxScore) || math.IsInf(maxScore, 0) || maxScore < 0 {
		return 0
	}
	return maxScore
}

// percentage returns score/maxScore*100, or 0 when maxScore is not positive.
func percentage(score, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	return score / maxScore * 100
}

func summary(score, maxScore float64) domain.ScoreSummary {
	return domain.ScoreSummary{
		Score:      score,
		MaxScore:   maxScore,
		Percentage: percentage(score, maxScore),
	}
}

// ScoreForSubject sums a student's scores over the subject's sub-topics.
// A sub-topic without a score entry contributes 0 to the score while its
// maximum still counts toward MaxScore. A subject without sub-topics yields
// the zero summary.
func ScoreForSubject(student domain.Student, subject domain.Subject) domain.ScoreSummary {
	var score float64
	for _, st := range subject.SubTopics {
		if raw, ok := student.ScoreFor(st.ID); ok {
			score += clampScore(raw, st.MaxScore)
		}
	}
	return summary(score, subjectMax(subject))
}

// subjectMax is subject.MaxScore with every invalid sub-topic maximum
// counted as 0.
func subjectMax(subject domain.Subject) float64 {
	invalid := slices.ContainsFunc(subject.SubTopics, func(st domain.SubTopic) bool {
		return clampMax(st.MaxScore) != st.MaxScore
	})
	if !invalid {
		return subject.MaxScore()
	}
	var m float64
	for _, st := range subject.SubTopics {
		m += clampMax(st.MaxScore)
	}
	return m
}

// TotalScore sums ScoreForSubject across subjects. The subject list defines
// the curriculum scope; an empty list yields the zero summary.
func TotalScore(student domain.Student, subjects []domain.Subject) domain.ScoreSummary {
	var score, maxScore float64
	for _, subj := range subjects {
		s := ScoreForSubject(student, subj)
		score += s.Score
		maxScore += s.MaxScore
	}
	return summary(score, maxScore)
}

// StudentResult computes the per-subject and total summaries of a student.
func StudentResult(student domain.Student, subjects []domain.Subject) domain.StudentResult {
	res := domain.StudentResult{
		StudentID: student.ID,
		Name:      student.Name,
		ClassID:   student.ClassID,
		Subjects:  make([]domain.SubjectResult, 0, len(subjects)),
	}
	var score, maxScore float64
	for _, subj := range subjects {
		s := ScoreForSubject(student, subj)
		score += s.Score
		maxScore += s.MaxScore
		res.Subjects = append(res.Subjects, domain.SubjectResult{
			SubjectID:    subj.ID,
			Code:         subj.Code,
			ScoreSummary: s,
		})
	}
	res.Total = summary(score, maxScore)
	return res
}

// TotalPercentages returns the total percentage of each cohort member, in
// cohort order.
func TotalPercentages(cohort []domain.Student, subjects []domain.Subject) []float64 {
	out := make([]float64, len(cohort))
	for i, st := range cohort {
		out[i] = TotalScore(st, subjects).Percentage
	}
	return out
}

// SubjectPercentages returns each cohort member's percentage on subject, in
// cohort order.
func SubjectPercentages(cohort []domain.Student, subject domain.Subject) []float64 {
	out := make([]float64, len(cohort))
	for i, st := range cohort {
		out[i] = ScoreForSubject(st, subject).Percentage
	}
	return out
}

// AveragePercentage is the mean total percentage of a cohort (the class,
// program or school average). An empty cohort averages to 0.
func AveragePercentage(cohort []domain.Student, subjects []domain.Subject) float64 {
	return mean(TotalPercentages(cohort, subjects))
}

// SubjectAverages returns the mean percentage of the cohort on each subject,
// in subject order.
func SubjectAverages(cohort []domain.Student, subjects []domain.Subject) []domain.SubjectAverage {
	out := make([]domain.SubjectAverage, 0, len(subjects))
	for _, subj := range subjects {
		out = append(out, domain.SubjectAverage{
			SubjectID:         subj.ID,
			Code:              subj.Code,
			AveragePercentage: mean(SubjectPercentages(cohort, subj)),
		})
	}
	return out
}
