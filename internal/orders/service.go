package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feastline/feastline-backend/pkg/db/models"
	"github.com/feastline/feastline-backend/pkg/enums"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
	"github.com/feastline/feastline-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) GetOrder(ctx context.Context, actor Actor, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if actor.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor identity missing")
	}

	order, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	switch actor.Role {
	case enums.ActorRoleCustomer:
		if order.UserID != actor.ID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to user")
		}
	case enums.ActorRoleRestaurant:
		if order.RestaurantID != actor.ID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to restaurant")
		}
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "unknown actor role")
	}
	return order, nil
}

// Advance moves a pending order to accepted, or an accepted order to ready.
// Orders already at ready or beyond are left untouched.
func (s *service) Advance(ctx context.Context, restaurantID, orderID uuid.UUID) (*models.Order, error) {
	return s.transition(ctx, restaurantID, orderID, func(current enums.OrderStatus) (enums.OrderStatus, error) {
		switch current {
		case enums.OrderStatusPending:
			return enums.OrderStatusAccepted, nil
		case enums.OrderStatusAccepted:
			return enums.OrderStatusReady, nil
		default:
			return current, nil
		}
	})
}

// MarkDelivering moves a ready order into delivery.
func (s *service) MarkDelivering(ctx context.Context, restaurantID, orderID uuid.UUID) (*models.Order, error) {
	return s.transition(ctx, restaurantID, orderID, func(current enums.OrderStatus) (enums.OrderStatus, error) {
		if current != enums.OrderStatusReady {
			return "", pkgerrors.New(pkgerrors.CodeStateConflict, "order is not ready for delivery")
		}
		return enums.OrderStatusDelivering, nil
	})
}

// MarkDelivered completes a delivering order.
func (s *service) MarkDelivered(ctx context.Context, restaurantID, orderID uuid.UUID) (*models.Order, error) {
	return s.transition(ctx, restaurantID, orderID, func(current enums.OrderStatus) (enums.OrderStatus, error) {
		if current != enums.OrderStatusDelivering {
			return "", pkgerrors.New(pkgerrors.CodeStateConflict, "order is not out for delivery")
		}
		return enums.OrderStatusDelivered, nil
	})
}

func (s *service) transition(
	ctx context.Context,
	restaurantID, orderID uuid.UUID,
	next func(enums.OrderStatus) (enums.OrderStatus, error),
) (*models.Order, error) {
	if restaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "restaurant identity missing")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.RestaurantID != restaurantID {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "order does not belong to restaurant")
		}

		target, err := next(order.Status)
		if err != nil {
			return err
		}
		if target == order.Status {
			updated = order
			return nil
		}

		if err := repo.UpdateOrderStatus(ctx, order.ID, target); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		order.Status = target
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) ListUserOrders(ctx context.Context, userID uuid.UUID, scope ListScope, params pagination.Params) (*UserOrderList, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if !scope.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "scope must be active or history")
	}

	list, err := s.repo.ListUserOrders(ctx, userID, scope == ScopeHistory, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list user orders")
	}
	return list, nil
}

func (s *service) RestaurantDashboard(ctx context.Context, restaurantID uuid.UUID) (*Dashboard, error) {
	if restaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "restaurant identity missing")
	}

	active, err := s.repo.ListRestaurantActiveOrders(ctx, restaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active orders")
	}
	counts, err := s.repo.CountRestaurantOrdersByStatus(ctx, restaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}

	dashboard := &Dashboard{
		Pending:    []models.Order{},
		Accepted:   []models.Order{},
		Ready:      []models.Order{},
		Delivering: []models.Order{},
		Counts:     counts,
	}
	for _, order := range active {
		switch order.Status {
		case enums.OrderStatusPending:
			dashboard.Pending = append(dashboard.Pending, order)
		case enums.OrderStatusAccepted:
			dashboard.Accepted = append(dashboard.Accepted, order)
		case enums.OrderStatusReady:
			dashboard.Ready = append(dashboard.Ready, order)
		case enums.OrderStatusDelivering:
			dashboard.Delivering = append(dashboard.Delivering, order)
		}
	}
	return dashboard, nil
}
