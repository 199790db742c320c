package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"
)

// csvHeader is the fixed export column order.
var csvHeader = []string{
	"ID", "Name", "Date", "Time", "Duration", "Type", "Location",
	"Capacity", "Status", "Base Price", "Organizer", "Created At",
}

// ExportCSV writes the full collection as a delimited row table. It is a
// read-side projection: a failure never touches the in-memory collection or
// the durable store.
func (s *scheduleService) ExportCSV(_ context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}
	for _, ev := range s.events {
		row := []string{
			ev.ID,
			ev.Name,
			ev.Date,
			ev.StartTime,
			strconv.FormatFloat(ev.DurationHours, 'f', -1, 64),
			ev.EventType,
			ev.Location,
			strconv.Itoa(ev.Capacity),
			string(ev.Status),
			strconv.FormatFloat(ev.BasePrice, 'f', 2, 64),
			ev.Organizer,
			ev.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write export row %s: %w", ev.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export %s: %w", path, err)
	}
	return nil
}

// ExportICS writes the schedule as an iCalendar file, one VEVENT per event.
// Events whose window cannot be parsed are skipped, matching their exemption
// from conflict checking.
func (s *scheduleService) ExportICS(_ context.Context, path string) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//stadiumevents//schedule//EN")

	for _, ev := range s.events {
		start, end, ok := ev.Window()
		if !ok {
			s.logger.Warn("skipping event with unparsable window in ics export", "id", ev.ID)
			continue
		}
		ve := cal.AddEvent(ev.ID)
		ve.SetCreatedTime(ev.CreatedAt)
		ve.SetStartAt(start)
		ve.SetEndAt(end)
		ve.SetSummary(ev.Name)
		ve.SetLocation(ev.Location)
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
	}

	if err := os.WriteFile(path, []byte(cal.Serialize()), 0o644); err != nil {
		return fmt.Errorf("write ics export %s: %w", path, err)
	}
	return nil
}
