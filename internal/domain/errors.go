package domain

import (
	"errors"
	"fmt"
)

// Input errors that the engine reports instead of fabricating statistics from
// inconsistent data.
var (
	// ErrMissingID indicates that an entity has an empty identifier.
	ErrMissingID = errors.New("missing id")

	// ErrNegativeMaxScore indicates a sub-topic with a negative maximum score.
	ErrNegativeMaxScore = errors.New("negative max score")

	// ErrNonFiniteValue indicates a NaN or infinite score or max score.
	ErrNonFiniteValue = errors.New("non-finite value")

	// ErrDuplicateSubject indicates two subjects sharing an id.
	ErrDuplicateSubject = errors.New("duplicate subject")

	// ErrDuplicateSubTopic indicates two sub-topics sharing an id.
	ErrDuplicateSubTopic = errors.New("duplicate sub-topic")

	// ErrDuplicateStudent indicates two cohort members sharing an id.
	ErrDuplicateStudent = errors.New("duplicate student")

	// ErrDuplicateScoreEntry indicates more than one score entry for the same
	// sub-topic on a single student.
	ErrDuplicateScoreEntry = errors.New("duplicate score entry")

	// ErrUnknownSubTopic indicates a score entry referencing a sub-topic that
	// is not part of any known subject.
	ErrUnknownSubTopic = errors.New("unknown sub-topic")

	// ErrUnknownSubject indicates a reference to a subject code that is not
	// in the catalog.
	ErrUnknownSubject = errors.New("unknown subject")

	// ErrUnknownClass indicates a class filter naming a class that no
	// student in the roster belongs to.
	ErrUnknownClass = errors.New("unknown class")

	// ErrStudentNotInCohort indicates a ranking request for a student that is
	// not a member of the given cohort.
	ErrStudentNotInCohort = errors.New("student not in cohort")

	// ErrInvalidFraction indicates a cohort fraction outside (0, 1].
	ErrInvalidFraction = errors.New("invalid fraction")

	// ErrKeyNotFound indicates that a requested state key does not exist.
	ErrKeyNotFound = errors.New("key not found")
)

// InvalidInputError reports a structural inconsistency in the data handed to
// the engine. It names the offending entity so callers can point a user at
// the bad record.
type InvalidInputError struct {
	// Entity is the kind of record at fault ("subject", "sub_topic",
	// "student", "score_entry", "cohort", "class").
	Entity string

	// ID identifies the offending record, if it has one.
	ID string

	// Detail carries extra context such as a suggested correction.
	Detail string

	// Err is the sentinel describing the inconsistency.
	Err error
}

// Error implements the error interface for InvalidInputError.
func (e *InvalidInputError) Error() string {
	msg := fmt.Sprintf("invalid input: entity=%s, id=%q, err=%v", e.Entity, e.ID, e.Err)
	if e.Detail != "" {
		msg += ", " + e.Detail
	}
	return msg
}

// Unwrap returns the underlying sentinel error.
func (e *InvalidInputError) Unwrap() error { return e.Err }

// NewInvalidInputError creates a new InvalidInputError.
func NewInvalidInputError(entity, id string, err error) *InvalidInputError {
	return &InvalidInputError{
		Entity: entity,
		ID:     id,
		Err:    err,
	}
}

// WithDetail returns e with Detail set, for chaining at construction sites.
func (e *InvalidInputError) WithDetail(format string, args ...any) *InvalidInputError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// StateError represents an error that occurred during State operations.
type StateError struct {
	Key       string
	Operation string
	Err       error
}

// Error implements the error interface for StateError.
func (e *StateError) Error() string {
	return fmt.Sprintf("state error: operation=%s, key=%s, err=%v", e.Operation, e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *StateError) Unwrap() error { return e.Err }

// NewStateError creates a new StateError with the given details.
func NewStateError(key, operation string, err error) *StateError {
	return &StateError{
		Key:       key,
		Operation: operation,
		Err:       err,
	}
}

// ValidationError represents an error that occurred during configuration
// validation. It can contain multiple validation failures.
type ValidationError struct {
	// Entity is the name of the entity that failed validation.
	Entity string

	// Errors contains the list of validation error messages.
	Errors []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation error for %s: %s", e.Entity, e.Errors[0])
	}
	return fmt.Sprintf("validation errors for %s: %v", e.Entity, e.Errors)
}

// AddError adds a new error message to the validation error.
func (e *ValidationError) AddError(msg string) { e.Errors = append(e.Errors, msg) }

// HasErrors returns true if there are any validation errors.
func (e *ValidationError) HasErrors() bool { return len(e.Errors) > 0 }

// NewValidationError creates a new ValidationError for the given entity.
func NewValidationError(entity string) *ValidationError {
	return &ValidationError{
		Entity: entity,
		Errors: make([]string, 0),
	}
}
