package enums

import "fmt"

// OrderStatus is the lifecycle state of an order. Statuses advance one
// step at a time and never move backward.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusAccepted   OrderStatus = "accepted"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusDelivering OrderStatus = "delivering"
	OrderStatusDelivered  OrderStatus = "delivered"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusAccepted,
	OrderStatusReady,
	OrderStatusDelivering,
	OrderStatusDelivered,
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// Rank returns the position of the status in the lifecycle, starting at 0
// for pending. Unknown statuses rank below pending.
func (o OrderStatus) Rank() int {
	for i, candidate := range validOrderStatuses {
		if candidate == o {
			return i
		}
	}
	return -1
}

// IsTerminal reports whether the status ends the lifecycle.
func (o OrderStatus) IsTerminal() bool {
	return o == OrderStatusDelivered
}

// IsActive reports whether the order still needs restaurant attention.
func (o OrderStatus) IsActive() bool {
	return o.IsValid() && !o.IsTerminal()
}

// ParseOrderStatus converts the raw string to OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
