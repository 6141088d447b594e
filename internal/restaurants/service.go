package restaurants

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feastline/feastline-backend/internal/availability"
	"github.com/feastline/feastline-backend/pkg/db/models"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
	"github.com/feastline/feastline-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
	now  func() time.Time
}

// NewService builds a restaurants service with the required dependencies.
func NewService(repo Repository, tx txRunner, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("restaurants repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, tx: tx, now: now}, nil
}

func (s *service) GetRestaurant(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id required")
	}
	restaurant, err := s.repo.FindRestaurant(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}
	return restaurant, nil
}

// ToggleClosed flips the manual closure switch and returns the updated record.
func (s *service) ToggleClosed(ctx context.Context, restaurantID uuid.UUID) (*models.Restaurant, error) {
	if restaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id required")
	}

	var updated *models.Restaurant
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		restaurant, err := repo.FindRestaurant(ctx, restaurantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
		}

		next := !restaurant.ManuallyClosed
		if err := repo.UpdateManuallyClosed(ctx, restaurant.ID, next); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update manual closure")
		}
		restaurant.ManuallyClosed = next
		updated = restaurant
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateHours replaces the weekly schedule and recomputes the timeout flag
// immediately instead of waiting for the next sweep.
func (s *service) UpdateHours(ctx context.Context, restaurantID uuid.UUID, hours types.WeeklyHours) (*models.Restaurant, error) {
	if restaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id required")
	}
	if err := availability.ValidateWeeklyHours(hours); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid weekly hours")
	}

	var updated *models.Restaurant
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		restaurant, err := repo.FindRestaurant(ctx, restaurantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
		}

		if err := repo.UpdateOpeningHours(ctx, restaurant.ID, hours); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update opening hours")
		}

		timedOut := availability.EvaluateTimeout(hours, s.now())
		if err := repo.UpdateScheduleTimeout(ctx, restaurant.ID, timedOut); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update schedule timeout")
		}

		restaurant.OpeningHours = hours
		restaurant.ScheduleTimeout = timedOut
		updated = restaurant
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
