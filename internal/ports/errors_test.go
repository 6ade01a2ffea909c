package ports

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSourceError verifies message formatting and unwrapping of SourceError.
func TestSourceError(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		operation string
		err       error
		wantMsg   string
	}{
		{
			name:      "open failure",
			source:    "roster.json",
			operation: "open",
			err:       os.ErrNotExist,
			wantMsg:   "source error: operation=open, source=roster.json, err=file does not exist",
		},
		{
			name:      "decode failure",
			source:    "roster.json",
			operation: "decode",
			err:       ErrMalformedRoster,
			wantMsg:   "source error: operation=decode, source=roster.json, err=malformed roster",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSourceError(tt.source, tt.operation, tt.err)

			assert.Equal(t, tt.wantMsg, err.Error())
			assert.True(t, errors.Is(err, tt.err))
		})
	}
}

// TestMetricsError verifies message formatting and unwrapping of MetricsError.
func TestMetricsError(t *testing.T) {
	base := errors.New("duplicate registration")
	err := NewMetricsError("scorereport_cohort_size", "register", base)

	assert.Equal(t, "metrics error: operation=register, metric=scorereport_cohort_size, err=duplicate registration", err.Error())
	assert.ErrorIs(t, err, base)
}

// TestConfigError verifies message formatting and unwrapping of ConfigError.
func TestConfigError(t *testing.T) {
	err := NewConfigError("units.ranking.parameters", ErrConfigNotFound)

	assert.Equal(t, "config error: key=units.ranking.parameters, err=configuration not found", err.Error())
	assert.ErrorIs(t, err, ErrConfigNotFound)

	var cfgErr *ConfigError
	wrapped := errors.Join(errors.New("load plan"), err)
	assert.True(t, errors.As(wrapped, &cfgErr))
	assert.Equal(t, "units.ranking.parameters", cfgErr.ConfigKey)
}
