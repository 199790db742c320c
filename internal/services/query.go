package services

import (
	"sort"
	"strings"
	"time"

	"stadiumevents/internal/domain"
)

// Queries return fresh slices of cloned events so callers can never reach
// the service's internal state.

func (s *scheduleService) collect(keep func(*domain.Event) bool) []*domain.Event {
	out := make([]*domain.Event, 0)
	for _, ev := range s.events {
		if keep(ev) {
			out = append(out, ev.Clone())
		}
	}
	return out
}

// All returns every event in insertion order.
func (s *scheduleService) All() []*domain.Event {
	return s.collect(func(*domain.Event) bool { return true })
}

// FindByName matches the name case-insensitively on a substring.
func (s *scheduleService) FindByName(substring string) []*domain.Event {
	needle := strings.ToLower(substring)
	return s.collect(func(ev *domain.Event) bool {
		return strings.Contains(strings.ToLower(ev.Name), needle)
	})
}

// FindByType matches the event type case-insensitively, exact.
func (s *scheduleService) FindByType(eventType string) []*domain.Event {
	want := strings.ToLower(eventType)
	return s.collect(func(ev *domain.Event) bool {
		return strings.ToLower(ev.EventType) == want
	})
}

// FindByDate matches the date string exactly.
func (s *scheduleService) FindByDate(date string) []*domain.Event {
	return s.collect(func(ev *domain.Event) bool { return ev.Date == date })
}

// FindByStatus matches the lifecycle state exactly.
func (s *scheduleService) FindByStatus(status domain.Status) []*domain.Event {
	return s.collect(func(ev *domain.Event) bool { return ev.Status == status })
}

// Search unions name and type matches for a single query string, deduped by
// id, preserving insertion order.
func (s *scheduleService) Search(query string) []*domain.Event {
	needle := strings.ToLower(query)
	return s.collect(func(ev *domain.Event) bool {
		return strings.Contains(strings.ToLower(ev.Name), needle) ||
			strings.ToLower(ev.EventType) == needle
	})
}

// Upcoming returns events starting strictly within the next 48 hours.
func (s *scheduleService) Upcoming() []*domain.Event {
	now := s.now()
	return s.collect(func(ev *domain.Event) bool { return ev.IsUpcoming(now) })
}

// Today returns events on the current calendar date.
func (s *scheduleService) Today() []*domain.Event {
	now := s.now()
	return s.collect(func(ev *domain.Event) bool { return ev.IsToday(now) })
}

// ByMonth returns events whose date falls in the given calendar month.
// Events with unparsable dates are silently excluded.
func (s *scheduleService) ByMonth(year int, month time.Month) []*domain.Event {
	return s.collect(func(ev *domain.Event) bool {
		start, ok := ev.StartDateTime()
		if !ok {
			return false
		}
		return start.Year() == year && start.Month() == month
	})
}

// Filter is the generic single-field matcher over {name, type, date,
// location, status}. Unrecognized field names yield an empty result.
func (s *scheduleService) Filter(field, value string) []*domain.Event {
	switch strings.ToLower(field) {
	case "name":
		return s.FindByName(value)
	case "type":
		return s.FindByType(value)
	case "date":
		return s.FindByDate(value)
	case "location":
		want := strings.ToLower(value)
		return s.collect(func(ev *domain.Event) bool {
			return strings.ToLower(ev.Location) == want
		})
	case "status":
		return s.FindByStatus(domain.Status(value))
	default:
		return []*domain.Event{}
	}
}

// Summarize aggregates the whole schedule. The most common type is the one
// with the highest count, ties broken by lexicographically smallest name;
// an empty schedule reports domain.NoType.
func (s *scheduleService) Summarize() domain.Statistics {
	stats := domain.Statistics{
		TotalEvents:    len(s.events),
		ByStatus:       make(map[domain.Status]int),
		ByType:         make(map[string]int),
		MostCommonType: domain.NoType,
	}
	now := s.now()
	for _, ev := range s.events {
		stats.ByStatus[ev.Status]++
		stats.ByType[ev.EventType]++
		stats.TotalCapacity += ev.Capacity
		stats.EstimatedRevenue += ev.EstimatedRevenue()
		if ev.IsUpcoming(now) {
			stats.UpcomingCount++
		}
	}

	types := make([]string, 0, len(stats.ByType))
	for t := range stats.ByType {
		types = append(types, t)
	}
	sort.Strings(types)
	best := -1
	for _, t := range types {
		if stats.ByType[t] > best {
			best = stats.ByType[t]
			stats.MostCommonType = t
		}
	}
	return stats
}
