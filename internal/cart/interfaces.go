package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feastline/feastline-backend/pkg/db/models"
)

// Repository defines persistence operations for carts and their lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindCart(ctx context.Context, userID, restaurantID uuid.UUID) (*models.Cart, error)
	ListCarts(ctx context.Context, userID uuid.UUID) ([]models.Cart, error)
	CreateCart(ctx context.Context, cart *models.Cart) (*models.Cart, error)
	DeleteCart(ctx context.Context, cartID uuid.UUID) (int64, error)
	FindLine(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartLine, error)
	FindLineByID(ctx context.Context, lineID uuid.UUID) (*models.CartLine, error)
	CreateLine(ctx context.Context, line *models.CartLine) (*models.CartLine, error)
	UpdateLineQuantity(ctx context.Context, lineID uuid.UUID, quantity int) error
	UpdateLineNote(ctx context.Context, lineID uuid.UUID, note *string) error
	DeleteLine(ctx context.Context, lineID uuid.UUID) error
	DeleteLines(ctx context.Context, lineIDs []uuid.UUID) error
	CountLines(ctx context.Context, cartID uuid.UUID) (int64, error)
}

// Service exposes cart mutation and read operations for customers.
type Service interface {
	ToggleItem(ctx context.Context, userID, itemID uuid.UUID) (*ToggleResult, error)
	SetQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error
	SetLineNote(ctx context.Context, userID, lineID uuid.UUID, note *string) error
	GetCartItems(ctx context.Context, userID, restaurantID uuid.UUID) (*Detail, error)
	ListCarts(ctx context.Context, userID uuid.UUID) ([]Summary, error)
}
