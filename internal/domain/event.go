package domain

import (
	"strings"
	"time"
)

// Date and time layouts used across the schedule. The venue's legacy data
// uses day-first dates, so these are the canonical wire formats.
const (
	DateLayout = "02/01/2006"
	TimeLayout = "15:04"
)

// DefaultVenueCapacity is the seat count of the venue and the upper bound
// for an event's capacity unless configured otherwise.
const DefaultVenueCapacity = 99354

// occupancyFactor is the assumed share of capacity actually sold when
// estimating revenue. Fixed by design, not configurable.
const occupancyFactor = 0.8

// Status is the lifecycle state of an event.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
	StatusCancelled  Status = "cancelled"
)

// Valid reports whether s is one of the recognized lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

// EventTypes and Locations are the vocabularies offered by application
// surfaces. The engine only requires non-empty strings; both lists are
// extensible without code changes elsewhere.
var (
	EventTypes = []string{
		"Official Match",
		"Friendly Match",
		"Concert",
		"Training",
		"Charity Gala",
		"Museum Tour",
		"Construction Works",
		"Maintenance",
	}
	Locations = []string{
		"Main Stand",
		"North Stand",
		"South Stand",
		"East Stand",
		"Pitch",
		"Museum",
		"VIP Boxes",
		"Press Room",
	}
)

// Event represents one scheduled occurrence at the venue.
type Event struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	DurationHours float64   `json:"duration_hours"`
	EventType     string    `json:"event_type"`
	Location      string    `json:"location"`
	Description   string    `json:"description"`
	Capacity      int       `json:"capacity"`
	Status        Status    `json:"status"`
	BasePrice     float64   `json:"base_price"`
	Organizer     string    `json:"organizer"`
	CreatedAt     time.Time `json:"created_at"`
}

// DeriveID builds the event identifier from its name, date and start time:
// the lower-cased name with non-alphanumerics stripped, truncated to ten
// bytes, followed by the date and time digits. Two events sharing name, date
// and start time collide deterministically; callers must treat that as a
// duplicate, the id is never re-randomized.
func DeriveID(name, date, startTime string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	slug := b.String()
	if len(slug) > 10 {
		slug = slug[:10]
	}
	return slug + digitsOf(date) + digitsOf(startTime)
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NewEvent returns a new Event built from f with defaults applied and the id
// derived. It does not validate; see EventFields.Validate.
func NewEvent(f EventFields, now time.Time) *Event {
	status := f.Status
	if status == "" {
		status = StatusScheduled
	}
	organizer := f.Organizer
	if organizer == "" {
		organizer = "unknown"
	}
	return &Event{
		ID:            DeriveID(f.Name, f.Date, f.StartTime),
		Name:          f.Name,
		Date:          f.Date,
		StartTime:     f.StartTime,
		DurationHours: f.DurationHours,
		EventType:     f.EventType,
		Location:      f.Location,
		Description:   f.Description,
		Capacity:      f.Capacity,
		Status:        status,
		BasePrice:     f.BasePrice,
		Organizer:     organizer,
		// Second precision in UTC so the JSON round trip is loss-free.
		CreatedAt: now.UTC().Truncate(time.Second),
	}
}

// StartDateTime combines Date and StartTime into a single instant. The
// second result is false when either part fails to parse.
func (e *Event) StartDateTime() (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, e.Date+" "+e.StartTime, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// EndDateTime is the start instant advanced by the duration. Crossing
// midnight is handled by full date+time arithmetic.
func (e *Event) EndDateTime() (time.Time, bool) {
	start, ok := e.StartDateTime()
	if !ok {
		return time.Time{}, false
	}
	return start.Add(time.Duration(e.DurationHours * float64(time.Hour))), true
}

// EndTime is the clock time of the end instant in HH:MM, empty when the
// event's date or start time is unparsable.
func (e *Event) EndTime() string {
	end, ok := e.EndDateTime()
	if !ok {
		return ""
	}
	return end.Format(TimeLayout)
}

// Window returns the half-open occupancy interval [start, end).
func (e *Event) Window() (start, end time.Time, ok bool) {
	start, ok = e.StartDateTime()
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end = start.Add(time.Duration(e.DurationHours * float64(time.Hour)))
	return start, end, true
}

// Overlaps reports whether the two events' half-open windows intersect.
// Touching endpoints do not overlap. An event with an unparsable window
// never conflicts with anything.
func (e *Event) Overlaps(other *Event) bool {
	aStart, aEnd, ok := e.Window()
	if !ok {
		return false
	}
	bStart, bEnd, ok := other.Window()
	if !ok {
		return false
	}
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// IsUpcoming reports whether the event starts strictly within the next 48
// hours from now.
func (e *Event) IsUpcoming(now time.Time) bool {
	start, ok := e.StartDateTime()
	if !ok {
		return false
	}
	until := start.Sub(now)
	return until > 0 && until <= 48*time.Hour
}

// IsToday reports calendar-day equality with now, not elapsed time.
func (e *Event) IsToday(now time.Time) bool {
	start, ok := e.StartDateTime()
	if !ok {
		return false
	}
	y1, m1, d1 := start.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// EstimatedRevenue assumes 80% occupancy at the base price.
func (e *Event) EstimatedRevenue() float64 {
	return float64(e.Capacity) * occupancyFactor * e.BasePrice
}

// ChangeStatus moves the event to s, rejecting unrecognized states.
func (e *Event) ChangeStatus(s Status) error {
	if !s.Valid() {
		return ErrInvalidStatus
	}
	e.Status = s
	return nil
}

// UpdateCapacity sets the capacity, rejecting negative values. The venue
// upper bound is enforced at the service layer where it is configured.
func (e *Event) UpdateCapacity(n int) error {
	if n < 0 {
		return ErrValidation
	}
	e.Capacity = n
	return nil
}

// Clone returns an independent copy of the event.
func (e *Event) Clone() *Event {
	c := *e
	return &c
}
