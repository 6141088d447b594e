package availability

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/feastline/feastline-backend/pkg/db/models"
	"github.com/feastline/feastline-backend/pkg/logger"
	"github.com/feastline/feastline-backend/pkg/types"
)

type stubSweepStore struct {
	restaurants []models.Restaurant
	updates     map[uuid.UUID]bool
	updateErr   error
}

func (s *stubSweepStore) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	return s.restaurants, nil
}

func (s *stubSweepStore) UpdateScheduleTimeout(ctx context.Context, id uuid.UUID, timedOut bool) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	if s.updates == nil {
		s.updates = make(map[uuid.UUID]bool)
	}
	s.updates[id] = timedOut
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestSweepFlipsOnlyChangedFlags(t *testing.T) {
	openHours := types.WeeklyHours{
		"monday": {Opening: "09:00", Closing: "17:00"},
	}
	insideID := uuid.New()
	outsideID := uuid.New()
	steadyID := uuid.New()
	store := &stubSweepStore{
		restaurants: []models.Restaurant{
			// Inside hours but flagged closed: must flip open.
			{ID: insideID, OpeningHours: openHours, ScheduleTimeout: true},
			// No schedule and flagged open: must flip closed.
			{ID: outsideID, ScheduleTimeout: false},
			// Inside hours and already open: untouched.
			{ID: steadyID, OpeningHours: openHours, ScheduleTimeout: false},
		},
	}
	now := func() time.Time {
		return time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	}

	job, err := NewSweepJob(testLogger(), store, now)
	if err != nil {
		t.Fatalf("job constructor failed: %v", err)
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("expected success got %v", err)
	}

	if timedOut, ok := store.updates[insideID]; !ok || timedOut {
		t.Fatalf("expected %s flipped open, updates %+v", insideID, store.updates)
	}
	if timedOut, ok := store.updates[outsideID]; !ok || !timedOut {
		t.Fatalf("expected %s flipped closed, updates %+v", outsideID, store.updates)
	}
	if _, ok := store.updates[steadyID]; ok {
		t.Fatal("unchanged restaurant should not be written")
	}
}

func TestSweepAggregatesFailures(t *testing.T) {
	store := &stubSweepStore{
		restaurants: []models.Restaurant{
			{ID: uuid.New(), ScheduleTimeout: false},
			{ID: uuid.New(), ScheduleTimeout: false},
		},
		updateErr: errors.New("write failed"),
	}
	now := func() time.Time {
		return time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	}

	job, _ := NewSweepJob(testLogger(), store, now)
	err := job.Run(context.Background())
	if err == nil {
		t.Fatal("expected aggregated error")
	}
}
