package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/feastline/feastline-backend/api/responses"
	"github.com/feastline/feastline-backend/api/validators"
	checkoutsvc "github.com/feastline/feastline-backend/internal/checkout"
	"github.com/feastline/feastline-backend/pkg/enums"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
	"github.com/feastline/feastline-backend/pkg/logger"
)

type checkoutRequest struct {
	RestaurantID    uuid.UUID `json:"restaurantId" validate:"required"`
	Method          string    `json:"method" validate:"required"`
	TotalPriceCents int64     `json:"totalPriceCents" validate:"required,min=1"`
}

// Checkout places an order from the customer's cart for the restaurant.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParseCheckoutMethod(payload.Method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid checkout method"))
			return
		}

		order, err := svc.Checkout(r.Context(), checkoutsvc.Input{
			UserID:             userID,
			RestaurantID:       payload.RestaurantID,
			Method:             method,
			ExpectedTotalCents: payload.TotalPriceCents,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
