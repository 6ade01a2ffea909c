// Package domain contains the pure, dependency-free data model of the score
// aggregation engine: roster inputs, computed results and the immutable
// State that flows through report units.
package domain

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"time"
)

// Key is a typed key for values stored in State. The type parameter gives
// compile-time safety to Get and With.
type Key[T any] struct{ name string }

// NewKey creates a new Key with the specified name and type.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// Name returns the key's string name.
func (k Key[T]) Name() string { return k.name }

// State keys shared by report units.
var (
	// KeyRoster stores the validated roster a report is computed over.
	KeyRoster = Key[Roster]{"roster"}

	// KeyPlanName stores the name of the report plan being executed.
	KeyPlanName = Key[string]{"execution.plan_name"}

	// KeyReportID stores the identifier of the report run.
	KeyReportID = Key[string]{"execution.report_id"}

	KeyStudentResults   = Key[[]StudentResult]{"student_results"}
	KeyCohortStats      = Key[[]ScopedStats]{"cohort_stats"}
	KeyStandings        = Key[[]Standing]{"standings"}
	KeyTopPerformers    = Key[[]StudentRef]{"top_performers"}
	KeyBottomPerformers = Key[[]StudentRef]{"bottom_performers"}
	KeyAtRisk           = Key[[]StudentRef]{"at_risk"}
	KeyGaps             = Key[[]SubTopicGap]{"gaps"}
	KeyRadar            = Key[[]RadarPoint]{"radar"}
)

// deepCopyValue copies slices, maps, pointers and exported struct fields so
// that values read from or written to State cannot be mutated through
// aliases.
func deepCopyValue(value any) any {
	if value == nil {
		return nil
	}
	if val, ok := value.(time.Time); ok {
		return val
	}
	return deepCopy(reflect.ValueOf(value)).Interface()
}

func deepCopy(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := range v.Len() {
			out.Index(i).Set(deepCopy(v.Index(i)))
		}
		return out

	case reflect.Map:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), deepCopy(iter.Value()))
		}
		return out

	case reflect.Ptr:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Elem().Type())
		out.Elem().Set(deepCopy(v.Elem()))
		return out

	case reflect.Struct:
		if v.Type() == reflect.TypeOf(time.Time{}) {
			return v
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		for i := range v.NumField() {
			if out.Field(i).CanSet() {
				out.Field(i).Set(deepCopy(v.Field(i)))
			}
		}
		return out

	default:
		return v
	}
}

// State is an immutable collection of report data passed between units.
// Updates return a new State (copy-on-write), so a State can be shared by
// concurrently executing units without locking.
type State struct {
	data map[string]any
}

// NewState creates a new empty State.
func NewState() State {
	return State{data: make(map[string]any)}
}

// Get retrieves a deep copy of the value stored under key.
// The boolean is false when the key is absent or holds another type.
func Get[T any](s State, key Key[T]) (T, bool) {
	var zero T
	value, exists := s.data[key.name]
	if !exists {
		return zero, false
	}
	val, ok := deepCopyValue(value).(T)
	return val, ok
}

// MustGet is like Get but reports a missing key as a *StateError.
func MustGet[T any](s State, key Key[T], operation string) (T, error) {
	v, ok := Get(s, key)
	if !ok {
		return v, NewStateError(key.name, operation, ErrKeyNotFound)
	}
	return v, nil
}

// With returns a new State with key set to value; s is left unchanged.
func With[T any](s State, key Key[T], value T) State {
	newData := maps.Clone(s.data)
	if newData == nil {
		newData = make(map[string]any)
	}
	newData[key.name] = deepCopyValue(value)
	return State{data: newData}
}

// Merge returns a new State containing the entries of s overlaid with every
// entry of others, applied in order (last write wins).
func (s State) Merge(others ...State) State {
	newData := maps.Clone(s.data)
	if newData == nil {
		newData = make(map[string]any)
	}
	for _, o := range others {
		maps.Copy(newData, o.data)
	}
	return State{data: newData}
}

// Keys returns the sorted names of all keys present in the State.
func (s State) Keys() []string {
	return slices.Sorted(maps.Keys(s.data))
}

// String returns a string representation of the State for debugging.
func (s State) String() string {
	return fmt.Sprintf("State%v", s.Keys())
}
