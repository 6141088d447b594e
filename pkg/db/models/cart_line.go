package models

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one item entry within a cart. UnitPriceCents is snapshotted
// from the menu item when the line is created and acts as a price lock;
// it is never re-read from the live item.
type CartLine struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID         uuid.UUID `gorm:"column:cart_id;type:uuid;not null;uniqueIndex:idx_cart_lines_cart_item"`
	ItemID         uuid.UUID `gorm:"column:item_id;type:uuid;not null;uniqueIndex:idx_cart_lines_cart_item"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	UnitPriceCents int64     `gorm:"column:unit_price_cents;not null"`
	Quantity       int       `gorm:"column:quantity;not null;default:1"`
	Note           *string   `gorm:"column:note;type:text"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
