package domain

import (
	"fmt"
	"testing"
)

// benchRoster builds a roster of classes*perClass students scored on every
// sub-topic of a four-subject catalog.
func benchRoster(classes, perClass int) Roster {
	var subjects []Subject
	for s := range 4 {
		subj := Subject{ID: fmt.Sprintf("subj%d", s), Code: fmt.Sprintf("S%d", s)}
		for t := range 3 {
			subj.SubTopics = append(subj.SubTopics, SubTopic{ID: fmt.Sprintf("st%d_%d", s, t), MaxScore: 25})
		}
		subjects = append(subjects, subj)
	}

	roster := Roster{Subjects: subjects}
	for c := range classes {
		for i := range perClass {
			st := Student{ID: fmt.Sprintf("c%d_s%d", c, i), ClassID: fmt.Sprintf("class%d", c)}
			for _, subj := range subjects {
				for _, topic := range subj.SubTopics {
					st.Scores = append(st.Scores, ScoreEntry{SubTopicID: topic.ID, Score: float64((i + c) % 26)})
				}
			}
			roster.Students = append(roster.Students, st)
		}
	}
	return roster
}

// BenchmarkState_Get measures typed reads, which deep-copy the stored value.
func BenchmarkState_Get(b *testing.B) {
	standings := make([]Standing, 200)
	for i := range standings {
		standings[i] = Standing{StudentID: fmt.Sprintf("s%d", i), Rank: i + 1}
	}
	state := With(
		With(
			With(NewState(), KeyPlanName, "school-overview"),
			KeyStandings, standings),
		KeyRoster, benchRoster(4, 40))

	b.Run("Get_String", func(b *testing.B) {
		for b.Loop() {
			_, _ = Get(state, KeyPlanName)
		}
	})

	b.Run("Get_Standings", func(b *testing.B) {
		for b.Loop() {
			_, _ = Get(state, KeyStandings)
		}
	})

	b.Run("Get_Roster", func(b *testing.B) {
		for b.Loop() {
			_, _ = Get(state, KeyRoster)
		}
	})

	b.Run("Get_Missing", func(b *testing.B) {
		for b.Loop() {
			_, _ = Get(state, KeyRadar)
		}
	})
}

// BenchmarkState_With measures copy-on-write updates for growing states.
func BenchmarkState_With(b *testing.B) {
	for _, size := range []int{1, 10, 50} {
		base := NewState()
		for i := range size {
			base = With(base, Key[int]{fmt.Sprintf("key_%d", i)}, i)
		}
		gaps := []SubTopicGap{{SubTopicID: "a", Priority: PriorityUrgent}, {SubTopicID: "b", Priority: PriorityLow}}

		b.Run(fmt.Sprintf("With_%dKeys", size), func(b *testing.B) {
			for b.Loop() {
				_ = With(base, KeyGaps, gaps)
			}
		})
	}
}

// BenchmarkState_Merge measures the key-union merge used by parallel
// layers.
func BenchmarkState_Merge(b *testing.B) {
	base := With(NewState(), KeyRoster, benchRoster(2, 20))
	branches := []State{
		With(base, KeyCohortStats, []ScopedStats{{Scope: "total"}}),
		With(base, KeyStandings, []Standing{{StudentID: "a", Rank: 1}}),
		With(base, KeyGaps, []SubTopicGap{{SubTopicID: "x"}}),
	}

	for b.Loop() {
		_ = base.Merge(branches...)
	}
}

// BenchmarkState_DeepCopy measures copying the value types stored in state.
func BenchmarkState_DeepCopy(b *testing.B) {
	b.Run("DeepCopy_String", func(b *testing.B) {
		for b.Loop() {
			_ = deepCopyValue("school-overview")
		}
	})

	b.Run("DeepCopy_CohortStats", func(b *testing.B) {
		value := []ScopedStats{{Scope: "total", Stats: CohortStats{Count: 40, Outliers: []float64{2, 3, 99}}}}
		for b.Loop() {
			_ = deepCopyValue(value)
		}
	})

	for _, perClass := range []int{10, 100} {
		roster := benchRoster(4, perClass)
		b.Run(fmt.Sprintf("DeepCopy_Roster_%dStudents", len(roster.Students)), func(b *testing.B) {
			for b.Loop() {
				_ = deepCopyValue(roster)
			}
		})
	}
}

// BenchmarkState_ConcurrentRead reads one shared state from many
// goroutines.
func BenchmarkState_ConcurrentRead(b *testing.B) {
	state := With(
		With(NewState(), KeyReportID, "report-1"),
		KeyAtRisk, []StudentRef{{StudentID: "s1"}, {StudentID: "s2"}})

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = Get(state, KeyReportID)
			_, _ = Get(state, KeyAtRisk)
		}
	})
}

// BenchmarkState_ConcurrentWrite derives new states from a shared base
// concurrently; the base is never mutated.
func BenchmarkState_ConcurrentWrite(b *testing.B) {
	baseState := NewState()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_ = With(baseState, Key[int]{fmt.Sprintf("key_%d", i)}, i)
			i++
		}
	})
}
