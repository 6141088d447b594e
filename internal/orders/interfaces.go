package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feastline/feastline-backend/pkg/db/models"
	"github.com/feastline/feastline-backend/pkg/enums"
	"github.com/feastline/feastline-backend/pkg/pagination"
)

// Repository defines persistence operations for orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	NextOrderNumber(ctx context.Context) (int64, error)
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderLines(ctx context.Context, lines []models.OrderLine) error
	FindOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
	ListUserOrders(ctx context.Context, userID uuid.UUID, delivered bool, params pagination.Params) (*UserOrderList, error)
	ListRestaurantActiveOrders(ctx context.Context, restaurantID uuid.UUID) ([]models.Order, error)
	CountRestaurantOrdersByStatus(ctx context.Context, restaurantID uuid.UUID) (map[enums.OrderStatus]int64, error)
}

// Service exposes order reads and lifecycle transitions.
type Service interface {
	GetOrder(ctx context.Context, actor Actor, orderID uuid.UUID) (*models.Order, error)
	Advance(ctx context.Context, restaurantID, orderID uuid.UUID) (*models.Order, error)
	MarkDelivering(ctx context.Context, restaurantID, orderID uuid.UUID) (*models.Order, error)
	MarkDelivered(ctx context.Context, restaurantID, orderID uuid.UUID) (*models.Order, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID, scope ListScope, params pagination.Params) (*UserOrderList, error)
	RestaurantDashboard(ctx context.Context, restaurantID uuid.UUID) (*Dashboard, error)
}
