package cart

import (
	"github.com/google/uuid"
)

// ToggleResult reports whether the toggle added or removed the item.
type ToggleResult struct {
	Added        bool      `json:"added"`
	CartID       uuid.UUID `json:"cartId"`
	RestaurantID uuid.UUID `json:"restaurantId"`
}

// LineDetail is a cart line joined with its menu item snapshot.
type LineDetail struct {
	ID             uuid.UUID `json:"id"`
	ItemID         uuid.UUID `json:"itemId"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	Quantity       int       `json:"quantity"`
	Note           *string   `json:"note,omitempty"`
}

// RestaurantMeta carries the availability snapshot alongside the cart so the
// client can gate checkout without a second request.
type RestaurantMeta struct {
	Name            string `json:"name"`
	ManuallyClosed  bool   `json:"manuallyClosed"`
	ScheduleTimeout bool   `json:"scheduleTimeout"`
	Open            bool   `json:"open"`
}

// Detail is the full view of one cart, stale lines already pruned.
type Detail struct {
	CartID        uuid.UUID      `json:"cartId"`
	RestaurantID  uuid.UUID      `json:"restaurantId"`
	Restaurant    RestaurantMeta `json:"restaurant"`
	Lines         []LineDetail   `json:"lines"`
	SubtotalCents int64          `json:"subtotalCents"`
}

// Summary is the per-restaurant cart overview for the cart listing.
type Summary struct {
	CartID       uuid.UUID `json:"cartId"`
	RestaurantID uuid.UUID `json:"restaurantId"`
	LineCount    int       `json:"lineCount"`
}
