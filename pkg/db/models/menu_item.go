package models

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem is a purchasable dish. Cart lines snapshot PriceCents at
// add-time; the live price is never re-read after that.
type MenuItem struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RestaurantID uuid.UUID `gorm:"column:restaurant_id;type:uuid;not null"`
	Name         string    `gorm:"column:name;type:text;not null"`
	Description  *string   `gorm:"column:description;type:text"`
	PriceCents   int64     `gorm:"column:price_cents;not null"`
	IsOutOfStock bool      `gorm:"column:is_out_of_stock;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
