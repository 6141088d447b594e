package orders

import (
	"github.com/google/uuid"

	"github.com/feastline/feastline-backend/pkg/db/models"
	"github.com/feastline/feastline-backend/pkg/enums"
)

// Actor identifies who is asking for an order.
type Actor struct {
	ID   uuid.UUID
	Role enums.ActorRole
}

// ListScope partitions a customer's orders into in-flight and completed.
type ListScope string

const (
	// ScopeActive covers every order that has not reached delivered.
	ScopeActive ListScope = "active"
	// ScopeHistory covers delivered orders only.
	ScopeHistory ListScope = "history"
)

// IsValid reports whether the scope is a known partition.
func (s ListScope) IsValid() bool {
	return s == ScopeActive || s == ScopeHistory
}

// UserOrderList is one cursor page of a customer's orders.
type UserOrderList struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"nextCursor,omitempty"`
	HasMore    bool           `json:"hasMore"`
}

// Dashboard is the restaurant admin view: in-flight orders bucketed by
// status plus per-status counts (delivered included in counts only).
type Dashboard struct {
	Pending    []models.Order              `json:"pending"`
	Accepted   []models.Order              `json:"accepted"`
	Ready      []models.Order              `json:"ready"`
	Delivering []models.Order              `json:"delivering"`
	Counts     map[enums.OrderStatus]int64 `json:"counts"`
}
