package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderLine is the immutable copy of a cart line taken at checkout. It
// carries the item name and unit price of that moment so later menu edits
// never rewrite order history.
type OrderLine struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	ItemID         uuid.UUID `gorm:"column:item_id;type:uuid;not null"`
	Name           string    `gorm:"column:name;type:text;not null"`
	UnitPriceCents int64     `gorm:"column:unit_price_cents;not null"`
	Quantity       int       `gorm:"column:quantity;not null"`
	Note           *string   `gorm:"column:note;type:text"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
