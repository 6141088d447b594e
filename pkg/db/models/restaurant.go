package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/feastline/feastline-backend/pkg/types"
)

// Restaurant is the restaurant-admin side of the marketplace. Availability
// combines the owner-toggled ManuallyClosed flag with the schedule-derived
// ScheduleTimeout flag refreshed by the availability sweep.
type Restaurant struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string            `gorm:"column:name;type:text;not null"`
	Cuisines        pq.StringArray    `gorm:"column:cuisines;type:text[]"`
	IsPublished     bool              `gorm:"column:is_published;not null;default:false"`
	IsOnSale        bool              `gorm:"column:is_on_sale;not null;default:false"`
	SalePercentage  int               `gorm:"column:sale_percentage;not null;default:0"`
	ManuallyClosed  bool              `gorm:"column:manually_closed;not null;default:false"`
	ScheduleTimeout bool              `gorm:"column:schedule_timeout;not null;default:true"`
	OpeningHours    types.WeeklyHours `gorm:"column:opening_hours;type:jsonb;serializer:json"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// IsOpen reports effective availability for accepting new orders.
func (r Restaurant) IsOpen() bool {
	return !r.ManuallyClosed && !r.ScheduleTimeout
}
