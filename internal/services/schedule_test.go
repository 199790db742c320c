package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stadiumevents/internal/domain"
)

// fakeStore is an in-memory EventStore for tests. loadErr and saveErr force
// failures; saves counts successful writes.
type fakeStore struct {
	events  []*domain.Event
	saves   int
	loadErr error
	saveErr error
}

func (f *fakeStore) Load() ([]*domain.Event, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.events, nil
}

func (f *fakeStore) Save(events []*domain.Event) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.events = append([]*domain.Event(nil), events...)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, store *fakeStore) *scheduleService {
	t.Helper()
	svc, err := NewScheduleService(store, testLogger(), domain.DefaultVenueCapacity)
	require.NoError(t, err)
	s, ok := svc.(*scheduleService)
	require.True(t, ok)
	return s
}

func ligaMatchFields() domain.EventFields {
	return domain.EventFields{
		Name:          "Liga Match",
		Date:          "15/12/2024",
		StartTime:     "21:00",
		DurationHours: 2,
		EventType:     "Official Match",
		Location:      "Main Stand",
		Capacity:      50000,
		BasePrice:     45,
	}
}

func TestScheduleService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		seed    []domain.EventFields
		fields  domain.EventFields
		wantErr error
		assert  func(t *testing.T, store *fakeStore, ev *domain.Event)
	}{
		{
			name:   "success",
			fields: ligaMatchFields(),
			assert: func(t *testing.T, store *fakeStore, ev *domain.Event) {
				assert.Equal(t, "ligamatch151220242100", ev.ID)
				assert.Equal(t, "23:00", ev.EndTime())
				assert.Equal(t, domain.StatusScheduled, ev.Status)
				assert.Equal(t, "unknown", ev.Organizer)
				assert.False(t, ev.CreatedAt.IsZero())
				require.Equal(t, 1, store.saves)
				require.Len(t, store.events, 1)
				assert.Equal(t, ev.ID, store.events[0].ID)
			},
		},
		{
			name: "overlapping window rejected",
			seed: []domain.EventFields{ligaMatchFields()},
			fields: func() domain.EventFields {
				f := ligaMatchFields()
				f.Name = "Late Concert"
				f.EventType = "Concert"
				f.StartTime = "22:30"
				f.DurationHours = 1
				return f
			}(),
			wantErr: domain.ErrConflict,
		},
		{
			name: "touching windows accepted",
			seed: []domain.EventFields{ligaMatchFields()},
			fields: func() domain.EventFields {
				f := ligaMatchFields()
				f.Name = "Cleanup"
				f.EventType = "Maintenance"
				f.StartTime = "23:00"
				f.DurationHours = 1
				return f
			}(),
			assert: func(t *testing.T, store *fakeStore, ev *domain.Event) {
				require.Len(t, store.events, 2)
			},
		},
		{
			name: "one minute of overlap rejected",
			seed: []domain.EventFields{func() domain.EventFields {
				f := ligaMatchFields()
				f.StartTime = "20:00" // occupies 20:00-22:00
				return f
			}()},
			fields: func() domain.EventFields {
				f := ligaMatchFields()
				f.Name = "Late Show"
				f.StartTime = "21:59"
				f.DurationHours = 1
				return f
			}(),
			wantErr: domain.ErrConflict,
		},
		{
			name: "duplicate identity rejected",
			seed: []domain.EventFields{ligaMatchFields()},
			fields: func() domain.EventFields {
				f := ligaMatchFields()
				f.Capacity = 100 // same name, date and start time: same id
				return f
			}(),
			wantErr: domain.ErrConflict,
		},
		{
			name: "validation failure",
			fields: func() domain.EventFields {
				f := ligaMatchFields()
				f.DurationHours = 0
				return f
			}(),
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			svc := newTestService(t, store)
			for _, f := range tt.seed {
				_, err := svc.Create(ctx, f)
				require.NoError(t, err)
			}
			savesBefore := store.saves

			ev, err := svc.Create(ctx, tt.fields)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, ev)
				assert.Equal(t, savesBefore, store.saves, "rejected create must not persist")
				assert.Len(t, svc.All(), len(tt.seed))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, ev)
			tt.assert(t, store, ev)
		})
	}
}

func TestScheduleService_Create_PersistFailureKeepsEvent(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store)
	store.saveErr = errors.New("disk full")

	ev, err := svc.Create(context.Background(), ligaMatchFields())
	require.ErrorIs(t, err, domain.ErrPersistence)
	require.NotNil(t, ev, "the created event is returned alongside the persistence error")

	// The in-memory mutation is not rolled back.
	got, getErr := svc.Get(ev.ID)
	require.NoError(t, getErr)
	assert.Equal(t, ev.ID, got.ID)
}

func TestScheduleService_NoOverlapInvariant(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &fakeStore{})

	fields := []domain.EventFields{
		{Name: "Morning Tour", Date: "15/12/2024", StartTime: "10:00", DurationHours: 1.5, EventType: "Museum Tour", Location: "Museum", Capacity: 200},
		{Name: "Training", Date: "15/12/2024", StartTime: "11:30", DurationHours: 2, EventType: "Training", Location: "Pitch", Capacity: 0},
		{Name: "Liga Match", Date: "15/12/2024", StartTime: "21:00", DurationHours: 2, EventType: "Official Match", Location: "Main Stand", Capacity: 50000},
		{Name: "Overlapping Gala", Date: "15/12/2024", StartTime: "12:00", DurationHours: 1, EventType: "Charity Gala", Location: "VIP Boxes", Capacity: 100},
	}
	for _, f := range fields {
		// The overlapping gala is expected to be rejected.
		_, _ = svc.Create(ctx, f)
	}

	all := svc.All()
	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			aStart, aEnd, ok := a.Window()
			require.True(t, ok)
			bStart, bEnd, ok := b.Window()
			require.True(t, ok)
			overlap := aStart.Before(bEnd) && aEnd.After(bStart)
			assert.False(t, overlap, "events %q and %q overlap", a.Name, b.Name)
		}
	}
}

func TestScheduleService_Delete(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	svc := newTestService(t, store)

	ev, err := svc.Create(ctx, ligaMatchFields())
	require.NoError(t, err)
	savesBefore := store.saves

	t.Run("nonexistent id leaves everything untouched", func(t *testing.T) {
		err := svc.Delete(ctx, "no-such-id")
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, savesBefore, store.saves)
		assert.Len(t, svc.All(), 1)
	})

	t.Run("existing id is removed and persisted", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, ev.ID))
		assert.Empty(t, svc.All())
		assert.Empty(t, store.events)
		assert.Equal(t, savesBefore+1, store.saves)

		_, err := svc.Get(ev.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func intPtr(n int) *int { return &n }

func statusPtr(s domain.Status) *domain.Status { return &s }

func TestScheduleService_Update(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		upd     domain.EventUpdate
		wantErr error
		assert  func(t *testing.T, svc *scheduleService)
	}{
		{
			name: "updates provided fields only",
			upd: domain.EventUpdate{
				Description: strPtr("Sold out"),
				Capacity:    intPtr(45000),
			},
			assert: func(t *testing.T, svc *scheduleService) {
				ev, err := svc.Get("ligamatch151220242100")
				require.NoError(t, err)
				assert.Equal(t, "Sold out", ev.Description)
				assert.Equal(t, 45000, ev.Capacity)
				assert.Equal(t, "Liga Match", ev.Name)
				assert.Equal(t, "21:00", ev.StartTime)
			},
		},
		{
			name: "id and created-at survive a rename",
			upd:  domain.EventUpdate{Name: strPtr("Renamed Match")},
			assert: func(t *testing.T, svc *scheduleService) {
				ev, err := svc.Get("ligamatch151220242100")
				require.NoError(t, err)
				assert.Equal(t, "Renamed Match", ev.Name)
				assert.False(t, ev.CreatedAt.IsZero())
			},
		},
		{
			name:    "window moved onto another event is rejected",
			upd:     domain.EventUpdate{StartTime: strPtr("10:30")},
			wantErr: domain.ErrConflict,
			assert: func(t *testing.T, svc *scheduleService) {
				ev, err := svc.Get("ligamatch151220242100")
				require.NoError(t, err)
				assert.Equal(t, "21:00", ev.StartTime, "rejected update must not apply")
			},
		},
		{
			name: "window moved to a free slot",
			upd:  domain.EventUpdate{StartTime: strPtr("17:00")},
			assert: func(t *testing.T, svc *scheduleService) {
				ev, err := svc.Get("ligamatch151220242100")
				require.NoError(t, err)
				assert.Equal(t, "17:00", ev.StartTime)
			},
		},
		{
			name:    "invalid status",
			upd:     domain.EventUpdate{Status: statusPtr("paused")},
			wantErr: domain.ErrInvalidStatus,
		},
		{
			name:    "capacity above venue maximum",
			upd:     domain.EventUpdate{Capacity: intPtr(domain.DefaultVenueCapacity + 1)},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "nonpositive duration",
			upd:     domain.EventUpdate{DurationHours: floatPtr(0)},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown id",
			id:      "no-such-id",
			upd:     domain.EventUpdate{Name: strPtr("x")},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			svc := newTestService(t, store)
			_, err := svc.Create(ctx, ligaMatchFields())
			require.NoError(t, err)
			_, err = svc.Create(ctx, domain.EventFields{
				Name: "Morning Tour", Date: "15/12/2024", StartTime: "10:00",
				DurationHours: 1, EventType: "Museum Tour", Location: "Museum", Capacity: 200,
			})
			require.NoError(t, err)

			id := tt.id
			if id == "" {
				id = "ligamatch151220242100"
			}
			err = svc.Update(ctx, id, tt.upd)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			if tt.assert != nil {
				tt.assert(t, svc)
			}
		})
	}
}

func TestNewScheduleService_CorruptStore(t *testing.T) {
	store := &fakeStore{loadErr: domain.ErrPersistence}

	svc, err := NewScheduleService(store, testLogger(), domain.DefaultVenueCapacity)
	require.ErrorIs(t, err, domain.ErrPersistence)
	require.NotNil(t, svc, "a corrupt store yields a usable empty service")
	assert.Empty(t, svc.All())

	ev, err := svc.Create(context.Background(), ligaMatchFields())
	require.NoError(t, err)
	assert.NotNil(t, ev)
}

func TestNewScheduleService_SkipsDuplicateStoredIDs(t *testing.T) {
	ev := domain.NewEvent(ligaMatchFields(), time.Now())
	dup := ev.Clone()
	store := &fakeStore{events: []*domain.Event{ev, dup}}

	svc, err := NewScheduleService(store, testLogger(), domain.DefaultVenueCapacity)
	require.NoError(t, err)
	assert.Len(t, svc.All(), 1)
}
