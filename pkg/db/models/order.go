package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/feastline/feastline-backend/pkg/enums"
)

// Order is created once at checkout from a cart snapshot. Lines and
// TotalPriceCents are immutable after creation; only Status changes, and
// orders are never deleted.
type Order struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID            `gorm:"column:user_id;type:uuid;not null"`
	RestaurantID    uuid.UUID            `gorm:"column:restaurant_id;type:uuid;not null"`
	OrderNumber     int64                `gorm:"column:order_number;not null"`
	CheckoutMethod  enums.CheckoutMethod `gorm:"column:checkout_method;type:text;not null"`
	Status          enums.OrderStatus    `gorm:"column:status;type:text;not null;default:'pending'"`
	TotalPriceCents int64                `gorm:"column:total_price_cents;not null"`
	Lines           []OrderLine          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Restaurant      *Restaurant          `gorm:"foreignKey:RestaurantID"`
	User            *User                `gorm:"foreignKey:UserID"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
