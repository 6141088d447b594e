package realtime

import (
	"encoding/json"

	"github.com/google/uuid"
)

// EventNewOrder is emitted to a restaurant's subscribers after checkout.
const EventNewOrder = "new-order"

// Event is the wire envelope pushed to websocket subscribers.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data"`
}

// NewOrderPayload announces a freshly placed order to the restaurant.
type NewOrderPayload struct {
	Username     string    `json:"username"`
	RestaurantID uuid.UUID `json:"restaurantId"`
	OrderID      uuid.UUID `json:"orderId"`
	OrderNumber  int64     `json:"orderNumber"`
}

// Encode marshals the event to its wire form.
func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}
