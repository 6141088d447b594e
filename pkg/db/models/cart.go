package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is the pre-checkout mutable line collection. At most one cart
// exists per (user, restaurant) pair; a cart never persists with zero
// lines — removing the last line deletes the cart, and checkout retires
// it entirely.
type Cart struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_carts_user_restaurant"`
	RestaurantID uuid.UUID  `gorm:"column:restaurant_id;type:uuid;not null;uniqueIndex:idx_carts_user_restaurant"`
	Lines        []CartLine `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
