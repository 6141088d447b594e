package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/feastline/feastline-backend/internal/cart"
	"github.com/feastline/feastline-backend/internal/menu"
	"github.com/feastline/feastline-backend/internal/orders"
	"github.com/feastline/feastline-backend/internal/realtime"
	"github.com/feastline/feastline-backend/internal/restaurants"
	"github.com/feastline/feastline-backend/internal/users"
	"github.com/feastline/feastline-backend/pkg/db/models"
	"github.com/feastline/feastline-backend/pkg/enums"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
	"github.com/feastline/feastline-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type eventPublisher interface {
	Publish(ctx context.Context, restaurantID uuid.UUID, event realtime.Event) error
}

// Input carries everything the checkout transaction needs.
type Input struct {
	UserID             uuid.UUID
	RestaurantID       uuid.UUID
	Method             enums.CheckoutMethod
	ExpectedTotalCents int64
}

// Service converts a cart into a pending order.
type Service interface {
	Checkout(ctx context.Context, input Input) (*models.Order, error)
}

type service struct {
	carts       cart.Repository
	orders      orders.Repository
	restaurants restaurants.Repository
	menu        menu.Repository
	users       users.Repository
	tx          txRunner
	events      eventPublisher
	logg        *logger.Logger
}

// ServiceParams configure the checkout service.
type ServiceParams struct {
	Carts       cart.Repository
	Orders      orders.Repository
	Restaurants restaurants.Repository
	Menu        menu.Repository
	Users       users.Repository
	Tx          txRunner
	Events      eventPublisher
	Logger      *logger.Logger
}

// NewService builds a checkout service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Restaurants == nil {
		return nil, fmt.Errorf("restaurants repository required")
	}
	if params.Menu == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Events == nil {
		return nil, fmt.Errorf("event publisher required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		carts:       params.Carts,
		orders:      params.Orders,
		restaurants: params.Restaurants,
		menu:        params.Menu,
		users:       params.Users,
		tx:          params.Tx,
		events:      params.Events,
		logg:        params.Logger,
	}, nil
}

// Checkout places an order from the user's cart for the restaurant. The order
// is created before the cart is deleted, inside one transaction; the cart
// delete doubles as the claim, so a concurrent checkout of the same cart
// rolls back with a conflict.
func (s *service) Checkout(ctx context.Context, input Input) (*models.Order, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.RestaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id required")
	}
	if !input.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid checkout method")
	}

	var placed *models.Order
	var user *models.User
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.carts.WithTx(tx)
		orderRepo := s.orders.WithTx(tx)
		restaurantRepo := s.restaurants.WithTx(tx)
		menuRepo := s.menu.WithTx(tx)
		userRepo := s.users.WithTx(tx)

		restaurant, err := restaurantRepo.FindRestaurant(ctx, input.RestaurantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
		}
		if !restaurant.IsOpen() {
			return pkgerrors.New(pkgerrors.CodeConflict, "restaurant is closed")
		}

		user, err = userRepo.FindUser(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
		}

		userCart, err := cartRepo.FindCart(ctx, input.UserID, input.RestaurantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
		if len(userCart.Lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "cart is empty")
		}

		items, err := s.loadItems(ctx, menuRepo, userCart.Lines)
		if err != nil {
			return err
		}

		total := computeTotalCents(userCart.Lines, restaurant)
		if input.ExpectedTotalCents != total {
			return pkgerrors.New(pkgerrors.CodeValidation, "total price mismatch").
				WithDetails(map[string]any{
					"expectedTotalCents": input.ExpectedTotalCents,
					"computedTotalCents": total,
				})
		}

		number, err := orderRepo.NextOrderNumber(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "allocate order number")
		}

		order := &models.Order{
			UserID:          input.UserID,
			RestaurantID:    input.RestaurantID,
			OrderNumber:     number,
			CheckoutMethod:  input.Method,
			Status:          enums.OrderStatusPending,
			TotalPriceCents: total,
		}
		if _, err := orderRepo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		lines := make([]models.OrderLine, 0, len(userCart.Lines))
		for _, line := range userCart.Lines {
			lines = append(lines, models.OrderLine{
				OrderID:        order.ID,
				ItemID:         line.ItemID,
				Name:           items[line.ItemID].Name,
				UnitPriceCents: line.UnitPriceCents,
				Quantity:       line.Quantity,
				Note:           line.Note,
			})
		}
		if err := orderRepo.CreateOrderLines(ctx, lines); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order lines")
		}

		claimed, err := cartRepo.DeleteCart(ctx, userCart.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim cart")
		}
		if claimed == 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "cart already checked out")
		}

		order.Lines = lines
		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	event := realtime.Event{
		Name: realtime.EventNewOrder,
		Data: realtime.NewOrderPayload{
			Username:     user.Name,
			RestaurantID: placed.RestaurantID,
			OrderID:      placed.ID,
			OrderNumber:  placed.OrderNumber,
		},
	}
	if err := s.events.Publish(ctx, placed.RestaurantID, event); err != nil {
		// The order is already committed; a notification failure is not fatal.
		octx := s.logg.WithField(ctx, "order_id", placed.ID.String())
		s.logg.Error(octx, "failed to publish new-order event", err)
	}
	return placed, nil
}

// loadItems resolves every cart line's menu item and rejects lines whose item
// disappeared or went out of stock.
func (s *service) loadItems(ctx context.Context, menuRepo menu.Repository, lines []models.CartLine) (map[uuid.UUID]models.MenuItem, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ItemID)
	}
	items, err := menuRepo.FindItemsByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load menu items")
	}

	byID := make(map[uuid.UUID]models.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	var unavailable []uuid.UUID
	for _, line := range lines {
		item, ok := byID[line.ItemID]
		if !ok || item.IsOutOfStock {
			unavailable = append(unavailable, line.ItemID)
		}
	}
	if len(unavailable) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "cart contains unavailable items").
			WithDetails(map[string]any{"itemIds": unavailable})
	}
	return byID, nil
}

// computeTotalCents prices the cart from its snapshotted line prices and
// applies the restaurant's active sale percentage, rounding half up to the
// nearest cent.
func computeTotalCents(lines []models.CartLine, restaurant *models.Restaurant) int64 {
	var subtotal int64
	for _, line := range lines {
		subtotal += line.UnitPriceCents * int64(line.Quantity)
	}
	if !restaurant.IsOnSale || restaurant.SalePercentage <= 0 || restaurant.SalePercentage >= 100 {
		return subtotal
	}

	factor := decimal.NewFromInt(int64(100 - restaurant.SalePercentage)).
		Div(decimal.NewFromInt(100))
	return decimal.NewFromInt(subtotal).Mul(factor).Round(0).IntPart()
}
