package core

import (
	"errors"
	"strings"
)

type (
	// CatchRecord is one logged fishing event as stored by the record store.
	CatchRecord struct {
		ID          int64
		Species     string
		Weight      *float64 // nil when not recorded
		Bait        string
		Location    string
		DateOfCatch string
		TimeOfCatch string
		Catcher     string
		ImageRef    string // opaque reference, empty when absent
	}

	// NewCatch carries the fields of a catch that has not been stored yet.
	NewCatch struct {
		Species     string
		Weight      *float64
		Bait        string
		Location    string
		DateOfCatch string
		TimeOfCatch string
		Catcher     string
		ImageRef    string
	}
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("catch not found")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError lists the required fields that were empty or missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Is lets callers match any ValidationError against ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Validate checks that every required field carries a non-blank value.
// Date and time are not parsed; they are stored as given.
func (n NewCatch) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"species", n.Species},
		{"bait", n.Bait},
		{"location", n.Location},
		{"dateOfCatch", n.DateOfCatch},
		{"timeOfCatch", n.TimeOfCatch},
		{"catcher", n.Catcher},
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// Record builds the stored form of the catch under the given id.
func (n NewCatch) Record(id int64) CatchRecord {
	var weight *float64
	if n.Weight != nil {
		w := *n.Weight
		weight = &w
	}
	return CatchRecord{
		ID:          id,
		Species:     n.Species,
		Weight:      weight,
		Bait:        n.Bait,
		Location:    n.Location,
		DateOfCatch: n.DateOfCatch,
		TimeOfCatch: n.TimeOfCatch,
		Catcher:     n.Catcher,
		ImageRef:    n.ImageRef,
	}
}

// HasWeight reports whether a weight was recorded.
func (c CatchRecord) HasWeight() bool {
	return c.Weight != nil
}
