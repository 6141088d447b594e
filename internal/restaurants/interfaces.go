package restaurants

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feastline/feastline-backend/pkg/db/models"
	"github.com/feastline/feastline-backend/pkg/types"
)

// Repository defines persistence operations for restaurant records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindRestaurant(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	UpdateManuallyClosed(ctx context.Context, id uuid.UUID, closed bool) error
	UpdateOpeningHours(ctx context.Context, id uuid.UUID, hours types.WeeklyHours) error
	UpdateScheduleTimeout(ctx context.Context, id uuid.UUID, timedOut bool) error
}

// Service exposes the restaurant admin operations for availability control.
type Service interface {
	GetRestaurant(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	ToggleClosed(ctx context.Context, restaurantID uuid.UUID) (*models.Restaurant, error)
	UpdateHours(ctx context.Context, restaurantID uuid.UUID, hours types.WeeklyHours) (*models.Restaurant, error)
}
