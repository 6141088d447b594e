package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feastline/feastline-backend/internal/menu"
	"github.com/feastline/feastline-backend/internal/restaurants"
	"github.com/feastline/feastline-backend/pkg/db/models"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo        Repository
	menu        menu.Repository
	restaurants restaurants.Repository
	tx          txRunner
}

// NewService builds a cart service with the required dependencies.
func NewService(repo Repository, menuRepo menu.Repository, restaurantRepo restaurants.Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if menuRepo == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	if restaurantRepo == nil {
		return nil, fmt.Errorf("restaurants repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, menu: menuRepo, restaurants: restaurantRepo, tx: tx}, nil
}

// ToggleItem adds the item to the user's cart for that restaurant, or removes
// it when already present. Removing the last line deletes the cart itself.
func (s *service) ToggleItem(ctx context.Context, userID, itemID uuid.UUID) (*ToggleResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}

	var result *ToggleResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		menuRepo := s.menu.WithTx(tx)

		item, err := menuRepo.FindItem(ctx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load menu item")
		}

		cart, err := repo.FindCart(ctx, userID, item.RestaurantID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}

		if cart != nil {
			line, err := repo.FindLine(ctx, cart.ID, item.ID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
			}
			if line != nil {
				if err := repo.DeleteLine(ctx, line.ID); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart line")
				}
				remaining, err := repo.CountLines(ctx, cart.ID)
				if err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count cart lines")
				}
				if remaining == 0 {
					if _, err := repo.DeleteCart(ctx, cart.ID); err != nil {
						return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete empty cart")
					}
				}
				result = &ToggleResult{Added: false, CartID: cart.ID, RestaurantID: item.RestaurantID}
				return nil
			}
		}

		if item.IsOutOfStock {
			return pkgerrors.New(pkgerrors.CodeConflict, "menu item is out of stock")
		}

		if cart == nil {
			cart, err = repo.CreateCart(ctx, &models.Cart{
				UserID:       userID,
				RestaurantID: item.RestaurantID,
			})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
			}
		}

		line := &models.CartLine{
			CartID:         cart.ID,
			ItemID:         item.ID,
			UserID:         userID,
			UnitPriceCents: item.PriceCents,
			Quantity:       1,
		}
		if _, err := repo.CreateLine(ctx, line); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart line")
		}
		result = &ToggleResult{Added: true, CartID: cart.ID, RestaurantID: item.RestaurantID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetQuantity updates the line quantity for the item. Quantities at or below
// zero are ignored; removal goes through ToggleItem.
func (s *service) SetQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if itemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if quantity <= 0 {
		return nil
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		menuRepo := s.menu.WithTx(tx)

		item, err := menuRepo.FindItem(ctx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load menu item")
		}

		cart, err := repo.FindCart(ctx, userID, item.RestaurantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}

		line, err := repo.FindLine(ctx, cart.ID, item.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "item is not in the cart")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
		}

		if err := repo.UpdateLineQuantity(ctx, line.ID, quantity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update quantity")
		}
		return nil
	})
}

// SetLineNote attaches or clears the free-form note on a cart line.
func (s *service) SetLineNote(ctx context.Context, userID, lineID uuid.UUID, note *string) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if lineID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "line id required")
	}

	line, err := s.repo.FindLineByID(ctx, lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
	}
	if line.UserID != userID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "cart line does not belong to user")
	}

	if err := s.repo.UpdateLineNote(ctx, line.ID, note); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update note")
	}
	return nil
}

// GetCartItems returns the cart for the restaurant with stale lines pruned,
// plus the restaurant's availability snapshot. Lines whose menu item
// disappeared or went out of stock are deleted; when pruning empties the
// cart, the cart row is removed and the cart is reported as missing.
func (s *service) GetCartItems(ctx context.Context, userID, restaurantID uuid.UUID) (*Detail, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if restaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id required")
	}

	var detail *Detail
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		menuRepo := s.menu.WithTx(tx)
		restaurantRepo := s.restaurants.WithTx(tx)

		cart, err := repo.FindCart(ctx, userID, restaurantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}

		restaurant, err := restaurantRepo.FindRestaurant(ctx, restaurantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
		}

		itemIDs := make([]uuid.UUID, 0, len(cart.Lines))
		for _, line := range cart.Lines {
			itemIDs = append(itemIDs, line.ItemID)
		}
		items, err := menuRepo.FindItemsByIDs(ctx, itemIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load menu items")
		}
		available := make(map[uuid.UUID]models.MenuItem, len(items))
		for _, item := range items {
			if !item.IsOutOfStock {
				available[item.ID] = item
			}
		}

		var stale []uuid.UUID
		var lines []LineDetail
		var subtotal int64
		for _, line := range cart.Lines {
			item, ok := available[line.ItemID]
			if !ok {
				stale = append(stale, line.ID)
				continue
			}
			lines = append(lines, LineDetail{
				ID:             line.ID,
				ItemID:         line.ItemID,
				Name:           item.Name,
				UnitPriceCents: line.UnitPriceCents,
				Quantity:       line.Quantity,
				Note:           line.Note,
			})
			subtotal += line.UnitPriceCents * int64(line.Quantity)
		}

		if err := repo.DeleteLines(ctx, stale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "prune stale lines")
		}
		if len(lines) == 0 {
			if _, err := repo.DeleteCart(ctx, cart.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete empty cart")
			}
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart is empty")
		}

		detail = &Detail{
			CartID:       cart.ID,
			RestaurantID: cart.RestaurantID,
			Restaurant: RestaurantMeta{
				Name:            restaurant.Name,
				ManuallyClosed:  restaurant.ManuallyClosed,
				ScheduleTimeout: restaurant.ScheduleTimeout,
				Open:            restaurant.IsOpen(),
			},
			Lines:         lines,
			SubtotalCents: subtotal,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// ListCarts returns a summary per restaurant cart for the user.
func (s *service) ListCarts(ctx context.Context, userID uuid.UUID) ([]Summary, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	carts, err := s.repo.ListCarts(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list carts")
	}

	summaries := make([]Summary, 0, len(carts))
	for _, cart := range carts {
		summaries = append(summaries, Summary{
			CartID:       cart.ID,
			RestaurantID: cart.RestaurantID,
			LineCount:    len(cart.Lines),
		})
	}
	return summaries, nil
}
