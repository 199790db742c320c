package domain

import (
	"fmt"
	"time"
)

// EventFields is the typed creation record handed to the schedule service.
// Zero values for Status and Organizer take the documented defaults
// (StatusScheduled, "unknown"); Description may stay empty.
type EventFields struct {
	Name          string
	Date          string
	StartTime     string
	DurationHours float64
	EventType     string
	Location      string
	Description   string
	Capacity      int
	Status        Status
	BasePrice     float64
	Organizer     string
}

// Validate checks the record against the venue's capacity bound. All
// failures wrap ErrValidation.
func (f EventFields) Validate(maxCapacity int) error {
	if f.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if _, err := time.Parse(DateLayout, f.Date); err != nil {
		return fmt.Errorf("%w: date %q must match DD/MM/YYYY", ErrValidation, f.Date)
	}
	if _, err := time.Parse(TimeLayout, f.StartTime); err != nil {
		return fmt.Errorf("%w: start time %q must match HH:MM", ErrValidation, f.StartTime)
	}
	if f.DurationHours <= 0 {
		return fmt.Errorf("%w: duration must be greater than zero", ErrValidation)
	}
	if f.EventType == "" {
		return fmt.Errorf("%w: event type is required", ErrValidation)
	}
	if f.Location == "" {
		return fmt.Errorf("%w: location is required", ErrValidation)
	}
	if f.Capacity < 0 {
		return fmt.Errorf("%w: capacity cannot be negative", ErrValidation)
	}
	if f.Capacity > maxCapacity {
		return fmt.Errorf("%w: capacity %d exceeds venue maximum %d", ErrValidation, f.Capacity, maxCapacity)
	}
	if f.Status != "" && !f.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, f.Status)
	}
	if f.BasePrice < 0 {
		return fmt.Errorf("%w: base price cannot be negative", ErrValidation)
	}
	return nil
}

// EventUpdate carries a partial update; nil fields are left unchanged.
// The id and creation timestamp are not updatable.
type EventUpdate struct {
	Name          *string
	Date          *string
	StartTime     *string
	DurationHours *float64
	EventType     *string
	Location      *string
	Description   *string
	Capacity      *int
	Status        *Status
	BasePrice     *float64
	Organizer     *string
}
