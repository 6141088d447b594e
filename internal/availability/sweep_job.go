package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/feastline/feastline-backend/pkg/db/models"
	"github.com/feastline/feastline-backend/pkg/logger"
)

// SweepStore is the persistence surface the sweep needs.
type SweepStore interface {
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	UpdateScheduleTimeout(ctx context.Context, id uuid.UUID, timedOut bool) error
}

// SweepJob reconciles every restaurant's schedule-timeout flag against its
// weekly hours. It runs once per cron cycle.
type SweepJob struct {
	logg  *logger.Logger
	store SweepStore
	now   func() time.Time
}

// NewSweepJob builds the availability sweep job.
func NewSweepJob(logg *logger.Logger, store SweepStore, now func() time.Time) (*SweepJob, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if store == nil {
		return nil, fmt.Errorf("store required")
	}
	if now == nil {
		now = time.Now
	}
	return &SweepJob{logg: logg, store: store, now: now}, nil
}

// Name identifies the job in logs and metrics.
func (j *SweepJob) Name() string { return "availability-sweep" }

// Run evaluates each restaurant and persists flag flips. A failure on one
// restaurant does not stop the sweep; errors are aggregated.
func (j *SweepJob) Run(ctx context.Context) error {
	restaurants, err := j.store.ListRestaurants(ctx)
	if err != nil {
		return fmt.Errorf("list restaurants: %w", err)
	}

	now := j.now()
	var errs error
	flipped := 0
	for _, restaurant := range restaurants {
		want := EvaluateTimeout(restaurant.OpeningHours, now)
		if want == restaurant.ScheduleTimeout {
			continue
		}
		if err := j.store.UpdateScheduleTimeout(ctx, restaurant.ID, want); err != nil {
			rctx := j.logg.WithRestaurantID(ctx, restaurant.ID.String())
			j.logg.Error(rctx, "failed to update schedule timeout", err)
			errs = multierr.Append(errs, fmt.Errorf("restaurant %s: %w", restaurant.ID, err))
			continue
		}
		flipped++
	}

	if flipped > 0 {
		j.logg.Info(j.logg.WithField(ctx, "flipped", flipped), "availability sweep updated restaurants")
	}
	return errs
}
