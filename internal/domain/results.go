package domain

import "time"

// ScoreSummary is the score, maximum score and percentage of one student on a
// subject or on a whole curriculum. Percentage is always within [0, 100].
type ScoreSummary struct {
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"max_score"`
	Percentage float64 `json:"percentage"`
}

// Quartiles holds the box-plot quartiles of a cohort.
type Quartiles struct {
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
}

// CohortStats summarizes a sequence of percentages for dashboards and
// box plots.
type CohortStats struct {
	// Count is the number of values the statistics were computed over.
	Count int `json:"count"`

	// Mean is the arithmetic mean; 0 for an empty cohort.
	Mean float64 `json:"mean"`

	// StdDev is the population standard deviation (divides by N, not N-1).
	StdDev float64 `json:"stddev"`

	Quartiles Quartiles `json:"quartiles"`

	// Min and Max are the box-plot whiskers: the extremes of the values that
	// are not outliers.
	Min float64 `json:"min"`
	Max float64 `json:"max"`

	// LowerFence and UpperFence are the IQR outlier bounds.
	LowerFence float64 `json:"lower_fence"`
	UpperFence float64 `json:"upper_fence"`

	// Outliers lists the values outside the fences in ascending order.
	Outliers []float64 `json:"outliers,omitempty"`
}

// Standing is a student's rank-derived position within a cohort.
type Standing struct {
	StudentID string `json:"student_id"`

	// Rank is the 1-based position in the cohort ordered by percentage.
	Rank int `json:"rank"`

	// Percentile is in [0, 100] where 100 is the best in the cohort.
	Percentile float64 `json:"percentile"`

	// Percentage is the total percentage the rank was derived from.
	Percentage float64 `json:"percentage"`
}

// Priority classifies how urgently a sub-topic needs remediation.
type Priority string

// Supported gap-analysis priorities.
const (
	PriorityUrgent   Priority = "urgent"
	PriorityModerate Priority = "moderate"
	PriorityLow      Priority = "low"
)

// String returns the string representation of the priority.
func (p Priority) String() string { return string(p) }

// SubTopicGap is the cohort-wide mastery of one sub-topic.
type SubTopicGap struct {
	SubTopicID        string   `json:"sub_topic_id"`
	SubTopicName      string   `json:"sub_topic_name"`
	SubjectCode       string   `json:"subject_code,omitempty"`
	AveragePercentage float64  `json:"average_percentage"`
	Priority          Priority `json:"priority"`
}

// SubjectAverage is the mean subject percentage of a cohort.
type SubjectAverage struct {
	SubjectID         string  `json:"subject_id"`
	Code              string  `json:"code"`
	AveragePercentage float64 `json:"average_percentage"`
}

// RadarPoint is one axis of a two-series skill-profile comparison.
type RadarPoint struct {
	SubjectCode string  `json:"subject_code"`
	SeriesA     float64 `json:"series_a"`
	SeriesB     float64 `json:"series_b"`
}

// SubjectResult is a student's summary on a single subject.
type SubjectResult struct {
	SubjectID string `json:"subject_id"`
	Code      string `json:"code"`
	ScoreSummary
}

// StudentResult gathers a student's per-subject and total summaries.
type StudentResult struct {
	StudentID string          `json:"student_id"`
	Name      string          `json:"name"`
	ClassID   string          `json:"class_id"`
	Subjects  []SubjectResult `json:"subjects"`
	Total     ScoreSummary    `json:"total"`
}

// ScopedStats labels a CohortStats with the slice of data it covers, e.g.
// scope "total" or a subject code, optionally restricted to one class.
type ScopedStats struct {
	Scope   string      `json:"scope"`
	ClassID string      `json:"class_id,omitempty"`
	Stats   CohortStats `json:"stats"`
}

// StudentRef identifies a student in cohort extracts together with the
// percentage the selection was based on.
type StudentRef struct {
	StudentID  string  `json:"student_id"`
	Name       string  `json:"name"`
	ClassID    string  `json:"class_id"`
	Percentage float64 `json:"percentage"`
}

// Report is the dashboard view model assembled from a report plan run.
// Sections that were not produced by the plan are left empty.
type Report struct {
	// ID uniquely identifies this report run (a UUID).
	ID string `json:"id"`

	// Plan is the name of the report plan that produced this report.
	Plan string `json:"plan"`

	GeneratedAt time.Time `json:"generated_at"`

	StudentResults []StudentResult `json:"student_results,omitempty"`
	CohortStats    []ScopedStats   `json:"cohort_stats,omitempty"`
	Standings      []Standing      `json:"standings,omitempty"`
	Top            []StudentRef    `json:"top,omitempty"`
	Bottom         []StudentRef    `json:"bottom,omitempty"`
	AtRisk         []StudentRef    `json:"at_risk,omitempty"`
	Gaps           []SubTopicGap   `json:"gaps,omitempty"`
	Radar          []RadarPoint    `json:"radar,omitempty"`
}
