package restaurants

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feastline/feastline-backend/pkg/db/models"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
	"github.com/feastline/feastline-backend/pkg/types"
)

type stubRestaurantsRepo struct {
	restaurant   *models.Restaurant
	closedWrite  *bool
	hoursWrite   *types.WeeklyHours
	timeoutWrite *bool
}

func (s *stubRestaurantsRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRestaurantsRepo) FindRestaurant(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	if s.restaurant == nil || s.restaurant.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.restaurant, nil
}

func (s *stubRestaurantsRepo) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	panic("not implemented")
}

func (s *stubRestaurantsRepo) UpdateManuallyClosed(ctx context.Context, id uuid.UUID, closed bool) error {
	s.closedWrite = &closed
	return nil
}

func (s *stubRestaurantsRepo) UpdateOpeningHours(ctx context.Context, id uuid.UUID, hours types.WeeklyHours) error {
	s.hoursWrite = &hours
	return nil
}

func (s *stubRestaurantsRepo) UpdateScheduleTimeout(ctx context.Context, id uuid.UUID, timedOut bool) error {
	s.timeoutWrite = &timedOut
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func mondayNoon() time.Time {
	return time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
}

func TestToggleClosedFlips(t *testing.T) {
	restaurantID := uuid.New()
	repo := &stubRestaurantsRepo{
		restaurant: &models.Restaurant{ID: restaurantID, ManuallyClosed: false},
	}
	svc, err := NewService(repo, stubTxRunner{}, mondayNoon)
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}

	updated, err := svc.ToggleClosed(context.Background(), restaurantID)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if !updated.ManuallyClosed {
		t.Fatal("expected closure enabled")
	}
	if repo.closedWrite == nil || !*repo.closedWrite {
		t.Fatal("closure flag was not persisted")
	}

	updated, err = svc.ToggleClosed(context.Background(), restaurantID)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if updated.ManuallyClosed {
		t.Fatal("expected closure lifted on second toggle")
	}
}

func TestToggleClosedUnknownRestaurant(t *testing.T) {
	svc, _ := NewService(&stubRestaurantsRepo{}, stubTxRunner{}, mondayNoon)

	_, err := svc.ToggleClosed(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestUpdateHoursRecomputesTimeout(t *testing.T) {
	restaurantID := uuid.New()
	repo := &stubRestaurantsRepo{
		restaurant: &models.Restaurant{ID: restaurantID, ScheduleTimeout: true},
	}
	svc, _ := NewService(repo, stubTxRunner{}, mondayNoon)

	hours := types.WeeklyHours{
		"monday": {Opening: "09:00", Closing: "17:00"},
	}
	updated, err := svc.UpdateHours(context.Background(), restaurantID, hours)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if updated.ScheduleTimeout {
		t.Fatal("noon inside the new window should clear the timeout")
	}
	if repo.hoursWrite == nil {
		t.Fatal("hours were not persisted")
	}
	if repo.timeoutWrite == nil || *repo.timeoutWrite {
		t.Fatal("timeout flag was not recomputed")
	}
}

func TestUpdateHoursOutsideWindowTimesOut(t *testing.T) {
	restaurantID := uuid.New()
	repo := &stubRestaurantsRepo{
		restaurant: &models.Restaurant{ID: restaurantID, ScheduleTimeout: false},
	}
	svc, _ := NewService(repo, stubTxRunner{}, mondayNoon)

	hours := types.WeeklyHours{
		"monday": {Opening: "18:00", Closing: "23:00"},
	}
	updated, err := svc.UpdateHours(context.Background(), restaurantID, hours)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if !updated.ScheduleTimeout {
		t.Fatal("noon outside the new window should set the timeout")
	}
}

func TestUpdateHoursRejectsInvalidSchedule(t *testing.T) {
	restaurantID := uuid.New()
	repo := &stubRestaurantsRepo{
		restaurant: &models.Restaurant{ID: restaurantID},
	}
	svc, _ := NewService(repo, stubTxRunner{}, mondayNoon)

	hours := types.WeeklyHours{
		"monday": {Opening: "22:00", Closing: "02:00"},
	}
	_, err := svc.UpdateHours(context.Background(), restaurantID, hours)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error %v", err)
	}
	if repo.hoursWrite != nil {
		t.Fatal("invalid hours must not be persisted")
	}
}
