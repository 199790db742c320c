package domain

import (
	"context"
	"time"
)

// NoType is the sentinel most-common-type value for an empty schedule.
const NoType = "none"

// Statistics is the aggregate view of a schedule.
type Statistics struct {
	TotalEvents      int            `json:"total_events"`
	ByStatus         map[Status]int `json:"by_status"`
	ByType           map[string]int `json:"by_type"`
	MostCommonType   string         `json:"most_common_type"`
	TotalCapacity    int            `json:"total_capacity"`
	EstimatedRevenue float64        `json:"estimated_revenue"`
	UpcomingCount    int            `json:"upcoming_count"`
}

// EventStore defines the interface for durable schedule storage. Save
// replaces the whole stored collection.
type EventStore interface {
	Load() ([]*Event, error)
	Save(events []*Event) error
}

// ScheduleService is the collaborator-facing contract of the scheduling
// core. Queries are pure and return fresh collections; mutating operations
// persist the full collection before returning.
type ScheduleService interface {
	Create(ctx context.Context, fields EventFields) (*Event, error)
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, upd EventUpdate) error
	Get(id string) (*Event, error)

	All() []*Event
	FindByName(substring string) []*Event
	FindByType(eventType string) []*Event
	FindByDate(date string) []*Event
	FindByStatus(status Status) []*Event
	Search(query string) []*Event
	Upcoming() []*Event
	Today() []*Event
	ByMonth(year int, month time.Month) []*Event
	Filter(field, value string) []*Event

	Summarize() Statistics
	ExportCSV(ctx context.Context, path string) error
	ExportICS(ctx context.Context, path string) error
}
