package ports

import (
	"errors"
	"fmt"
)

// Errors reported by infrastructure adapters.
var (
	// ErrSourceUnavailable indicates that the roster source could not be
	// read.
	ErrSourceUnavailable = errors.New("roster source unavailable")

	// ErrMalformedRoster indicates that the roster source returned data that
	// could not be decoded.
	ErrMalformedRoster = errors.New("malformed roster")

	// ErrConfigNotFound indicates that required configuration is missing.
	ErrConfigNotFound = errors.New("configuration not found")

	// ErrUnsupportedFormat indicates an output format no writer handles.
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

// SourceError reports a failure to load a roster from a source.
type SourceError struct {
	// Source names the source, typically a file path.
	Source string

	// Operation is the step that failed ("open", "decode", ...).
	Operation string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface for SourceError.
func (e *SourceError) Error() string {
	return fmt.Sprintf("source error: operation=%s, source=%s, err=%v", e.Operation, e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error { return e.Err }

// NewSourceError creates a new SourceError with the given details.
func NewSourceError(source, operation string, err error) *SourceError {
	return &SourceError{
		Source:    source,
		Operation: operation,
		Err:       err,
	}
}

// MetricsError represents an error from metrics collection operations.
type MetricsError struct {
	// Metric is the name of the metric being recorded.
	Metric string

	// Operation is the metrics operation that failed.
	Operation string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface for MetricsError.
func (e *MetricsError) Error() string {
	return fmt.Sprintf("metrics error: operation=%s, metric=%s, err=%v", e.Operation, e.Metric, e.Err)
}

// Unwrap returns the underlying error.
func (e *MetricsError) Unwrap() error { return e.Err }

// NewMetricsError creates a new MetricsError with the given details.
func NewMetricsError(metric, operation string, err error) *MetricsError {
	return &MetricsError{
		Metric:    metric,
		Operation: operation,
		Err:       err,
	}
}

// ConfigError represents an error decoding or validating configuration,
// such as a unit's plan parameters.
type ConfigError struct {
	// ConfigKey identifies the offending configuration entry.
	ConfigKey string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface for ConfigError.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: key=%s, err=%v", e.ConfigKey, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError creates a new ConfigError with the given details.
func NewConfigError(key string, err error) *ConfigError {
	return &ConfigError{
		ConfigKey: key,
		Err:       err,
	}
}
