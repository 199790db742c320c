package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"stadiumevents/internal/domain"
)

// scheduleService owns the in-memory event collection and enforces the
// no-overlap invariant. It assumes a single logical writer: concurrent
// callers must serialize access externally (e.g. a single-writer lock).
type scheduleService struct {
	store       domain.EventStore
	logger      *slog.Logger
	maxCapacity int

	events []*domain.Event // insertion order
	index  map[string]*domain.Event

	now func() time.Time
}

// NewScheduleService loads the durable store and returns the schedule
// service. A missing store file yields an empty schedule. A corrupt or
// unreadable store is reportable, not fatal: the returned service is usable
// and empty, and the error wraps domain.ErrPersistence so the caller can
// decide whether to continue.
func NewScheduleService(store domain.EventStore, logger *slog.Logger, maxCapacity int) (domain.ScheduleService, error) {
	if maxCapacity <= 0 {
		maxCapacity = domain.DefaultVenueCapacity
	}
	s := &scheduleService{
		store:       store,
		logger:      logger,
		maxCapacity: maxCapacity,
		index:       make(map[string]*domain.Event),
		now:         time.Now,
	}

	events, err := store.Load()
	if err != nil {
		s.logger.Warn("schedule store unreadable, starting empty", "error", err)
		return s, fmt.Errorf("load schedule: %w", err)
	}
	for _, ev := range events {
		if _, ok := s.index[ev.ID]; ok {
			s.logger.Warn("skipping duplicate event id in store", "id", ev.ID)
			continue
		}
		s.events = append(s.events, ev)
		s.index[ev.ID] = ev
	}
	return s, nil
}

// Create validates fields, rejects conflicting windows and duplicate ids,
// then appends the event and persists the collection. When the persist
// fails the event is returned together with an error wrapping
// domain.ErrPersistence; the in-memory insertion is not rolled back.
func (s *scheduleService) Create(ctx context.Context, fields domain.EventFields) (*domain.Event, error) {
	if err := fields.Validate(s.maxCapacity); err != nil {
		return nil, err
	}

	ev := domain.NewEvent(fields, s.now())
	if _, ok := s.index[ev.ID]; ok {
		return nil, fmt.Errorf("%w: event %q already exists", domain.ErrConflict, ev.ID)
	}
	if other := s.firstOverlap(ev, ""); other != nil {
		return nil, fmt.Errorf("%w: %q occupies %s %s-%s",
			domain.ErrConflict, other.Name, other.Date, other.StartTime, other.EndTime())
	}

	s.events = append(s.events, ev)
	s.index[ev.ID] = ev
	s.logger.Info("event created", "id", ev.ID, "name", ev.Name, "date", ev.Date)

	if err := s.persist(ctx); err != nil {
		return ev.Clone(), err
	}
	return ev.Clone(), nil
}

// Delete removes the event with the given id and persists. A nonexistent id
// returns domain.ErrNotFound and leaves memory and store untouched.
func (s *scheduleService) Delete(ctx context.Context, id string) error {
	if _, ok := s.index[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.index, id)
	for i, ev := range s.events {
		if ev.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			break
		}
	}
	s.logger.Info("event deleted", "id", id)
	return s.persist(ctx)
}

// Update applies the non-nil fields of upd to the stored event and persists.
// When the update moves the event's time window, the no-overlap invariant is
// re-checked against all other events and a violation is rejected with
// domain.ErrConflict before anything is applied. The id and creation
// timestamp never change.
func (s *scheduleService) Update(ctx context.Context, id string, upd domain.EventUpdate) error {
	ev, ok := s.index[id]
	if !ok {
		return domain.ErrNotFound
	}

	candidate := ev.Clone()
	if upd.Name != nil {
		candidate.Name = *upd.Name
	}
	if upd.Date != nil {
		candidate.Date = *upd.Date
	}
	if upd.StartTime != nil {
		candidate.StartTime = *upd.StartTime
	}
	if upd.DurationHours != nil {
		candidate.DurationHours = *upd.DurationHours
	}
	if upd.EventType != nil {
		candidate.EventType = *upd.EventType
	}
	if upd.Location != nil {
		candidate.Location = *upd.Location
	}
	if upd.Description != nil {
		candidate.Description = *upd.Description
	}
	if upd.Capacity != nil {
		candidate.Capacity = *upd.Capacity
	}
	if upd.Status != nil {
		candidate.Status = *upd.Status
	}
	if upd.BasePrice != nil {
		candidate.BasePrice = *upd.BasePrice
	}
	if upd.Organizer != nil {
		candidate.Organizer = *upd.Organizer
	}

	if err := s.validateUpdate(candidate, upd); err != nil {
		return err
	}

	windowMoved := upd.Date != nil || upd.StartTime != nil || upd.DurationHours != nil
	if windowMoved {
		if other := s.firstOverlap(candidate, id); other != nil {
			return fmt.Errorf("%w: %q occupies %s %s-%s",
				domain.ErrConflict, other.Name, other.Date, other.StartTime, other.EndTime())
		}
	}

	candidate.ID = ev.ID
	candidate.CreatedAt = ev.CreatedAt
	*ev = *candidate
	s.logger.Info("event updated", "id", id)
	return s.persist(ctx)
}

func (s *scheduleService) validateUpdate(candidate *domain.Event, upd domain.EventUpdate) error {
	if upd.Name != nil && candidate.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if upd.Date != nil {
		if _, err := time.Parse(domain.DateLayout, candidate.Date); err != nil {
			return fmt.Errorf("%w: date %q must match DD/MM/YYYY", domain.ErrValidation, candidate.Date)
		}
	}
	if upd.StartTime != nil {
		if _, err := time.Parse(domain.TimeLayout, candidate.StartTime); err != nil {
			return fmt.Errorf("%w: start time %q must match HH:MM", domain.ErrValidation, candidate.StartTime)
		}
	}
	if upd.DurationHours != nil && candidate.DurationHours <= 0 {
		return fmt.Errorf("%w: duration must be greater than zero", domain.ErrValidation)
	}
	if upd.Capacity != nil {
		if candidate.Capacity < 0 {
			return fmt.Errorf("%w: capacity cannot be negative", domain.ErrValidation)
		}
		if candidate.Capacity > s.maxCapacity {
			return fmt.Errorf("%w: capacity %d exceeds venue maximum %d",
				domain.ErrValidation, candidate.Capacity, s.maxCapacity)
		}
	}
	if upd.Status != nil && !candidate.Status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, candidate.Status)
	}
	if upd.BasePrice != nil && candidate.BasePrice < 0 {
		return fmt.Errorf("%w: base price cannot be negative", domain.ErrValidation)
	}
	return nil
}

// Get returns a copy of the event with the given id.
func (s *scheduleService) Get(id string) (*domain.Event, error) {
	ev, ok := s.index[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev.Clone(), nil
}

// firstOverlap returns the first stored event whose window intersects the
// candidate's, skipping the event with the excluded id. Events with
// unparsable windows never conflict.
func (s *scheduleService) firstOverlap(candidate *domain.Event, excludeID string) *domain.Event {
	for _, other := range s.events {
		if other.ID == excludeID {
			continue
		}
		if candidate.Overlaps(other) {
			return other
		}
	}
	return nil
}

func (s *scheduleService) persist(_ context.Context) error {
	if err := s.store.Save(s.events); err != nil {
		s.logger.Error("schedule persist failed", "error", err)
		if errors.Is(err, domain.ErrPersistence) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}
