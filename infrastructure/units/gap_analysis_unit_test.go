package units

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
)

func gapIDs(gaps []domain.SubTopicGap) []string {
	out := make([]string, len(gaps))
	for i, g := range gaps {
		out[i] = g.SubTopicID
	}
	return out
}

func TestGapAnalysisUnit_Execute(t *testing.T) {
	// Cohort averages: w 35%, in 48%, org 56%, m 64%.
	tests := []struct {
		name   string
		config GapAnalysisConfig
		want   []string
	}{
		{
			name:   "weakest first",
			config: DefaultGapAnalysisConfig(),
			want:   []string{"w", "in", "org", "m"},
		},
		{
			name:   "limit keeps the weakest",
			config: GapAnalysisConfig{Limit: 2},
			want:   []string{"w", "in"},
		},
		{
			name:   "priority filter",
			config: GapAnalysisConfig{Priorities: []domain.Priority{domain.PriorityModerate}},
			want:   []string{"in", "org"},
		},
		{
			name:   "subject filter",
			config: GapAnalysisConfig{SubjectCodes: []string{"PHY"}},
			want:   []string{"w", "m"},
		},
		{
			name:   "class cohort",
			config: GapAnalysisConfig{ClassID: "B", SubjectCodes: []string{"PHY"}},
			want:   []string{"w", "m"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, err := NewGapAnalysisUnit("gaps", tt.config)
			require.NoError(t, err)

			state, err := unit.Execute(context.Background(), rosterState())
			require.NoError(t, err)

			gaps, ok := domain.Get(state, domain.KeyGaps)
			require.True(t, ok)
			assert.Equal(t, tt.want, gapIDs(gaps))
		})
	}
}

func TestGapAnalysisUnit_Priorities(t *testing.T) {
	unit, err := NewGapAnalysisUnit("gaps", DefaultGapAnalysisConfig())
	require.NoError(t, err)

	state, err := unit.Execute(context.Background(), rosterState())
	require.NoError(t, err)
	gaps, _ := domain.Get(state, domain.KeyGaps)

	require.Len(t, gaps, 4)
	assert.Equal(t, domain.PriorityUrgent, gaps[0].Priority)
	assert.InDelta(t, 35.0, gaps[0].AveragePercentage, 1e-9)
	assert.Equal(t, "PHY", gaps[0].SubjectCode)
	assert.Equal(t, domain.PriorityModerate, gaps[1].Priority)
	assert.Equal(t, domain.PriorityLow, gaps[3].Priority)
}

func TestGapAnalysisUnit_ClassFilter(t *testing.T) {
	tests := []struct {
		name    string
		classID string
		wantErr error
	}{
		{name: "known class", classID: "A"},
		{name: "unknown class", classID: "M4/9", wantErr: domain.ErrUnknownClass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGapAnalysisConfig()
			cfg.ClassID = tt.classID
			unit, err := NewGapAnalysisUnit("gaps", cfg)
			require.NoError(t, err)

			state, err := unit.Execute(context.Background(), rosterState())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				var inputErr *domain.InvalidInputError
				assert.ErrorAs(t, err, &inputErr)
				return
			}
			require.NoError(t, err)
			gaps, ok := domain.Get(state, domain.KeyGaps)
			require.True(t, ok)
			assert.Len(t, gaps, 4)
		})
	}
}

func TestGapAnalysisConfig_Validation(t *testing.T) {
	_, err := NewGapAnalysisUnit("gaps", GapAnalysisConfig{Limit: -1})
	assert.Error(t, err)

	_, err = NewGapAnalysisUnit("gaps", GapAnalysisConfig{Priorities: []domain.Priority{"critical"}})
	assert.Error(t, err)

	_, err = NewGapAnalysisFromConfig("gaps", map[string]any{"priorities": []string{"urgent", "low"}, "limit": 3})
	assert.NoError(t, err)
}

func TestGapAnalysisUnit_UnmarshalParameters(t *testing.T) {
	unit, err := NewGapAnalysisUnit("gaps", DefaultGapAnalysisConfig())
	require.NoError(t, err)

	require.NoError(t, unit.UnmarshalParameters(yamlNode(t, "limit: 5\npriorities: [urgent]")))
	assert.Equal(t, 5, unit.config.Limit)
	assert.Equal(t, []domain.Priority{domain.PriorityUrgent}, unit.config.Priorities)
}
