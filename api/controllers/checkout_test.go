package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	checkoutsvc "github.com/feastline/feastline-backend/internal/checkout"
	"github.com/feastline/feastline-backend/pkg/db/models"
	"github.com/feastline/feastline-backend/pkg/enums"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
)

type testCheckoutService struct {
	checkoutFn func(ctx context.Context, input checkoutsvc.Input) (*models.Order, error)
}

func (s *testCheckoutService) Checkout(ctx context.Context, input checkoutsvc.Input) (*models.Order, error) {
	if s.checkoutFn != nil {
		return s.checkoutFn(ctx, input)
	}
	return &models.Order{}, nil
}

func TestCheckoutCreated(t *testing.T) {
	userID := uuid.New()
	restaurantID := uuid.New()
	svc := &testCheckoutService{
		checkoutFn: func(ctx context.Context, input checkoutsvc.Input) (*models.Order, error) {
			if input.UserID != userID || input.RestaurantID != restaurantID {
				t.Fatalf("unexpected input %+v", input)
			}
			if input.Method != enums.CheckoutMethodCashOnDelivery {
				t.Fatalf("unexpected method %s", input.Method)
			}
			if input.ExpectedTotalCents != 3200 {
				t.Fatalf("unexpected total %d", input.ExpectedTotalCents)
			}
			return &models.Order{ID: uuid.New(), OrderNumber: 42, Status: enums.OrderStatusPending}, nil
		},
	}

	body := `{"restaurantId":"` + restaurantID.String() + `","method":"cash-on-delivery","totalPriceCents":3200}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req = withCustomer(req, userID)
	resp := httptest.NewRecorder()

	Checkout(svc, testControllerLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	var envelope struct {
		Data models.Order `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.OrderNumber != 42 {
		t.Fatalf("unexpected order number %d", envelope.Data.OrderNumber)
	}
}

func TestCheckoutRejectsUnknownMethod(t *testing.T) {
	called := false
	svc := &testCheckoutService{
		checkoutFn: func(ctx context.Context, input checkoutsvc.Input) (*models.Order, error) {
			called = true
			return nil, nil
		},
	}

	body := `{"restaurantId":"` + uuid.NewString() + `","method":"barter","totalPriceCents":100}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req = withCustomer(req, uuid.New())
	resp := httptest.NewRecorder()

	Checkout(svc, testControllerLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if called {
		t.Fatal("service must not be called for an invalid method")
	}
}

func TestCheckoutClaimConflict(t *testing.T) {
	svc := &testCheckoutService{
		checkoutFn: func(ctx context.Context, input checkoutsvc.Input) (*models.Order, error) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "cart was already checked out")
		},
	}

	body := `{"restaurantId":"` + uuid.NewString() + `","method":"cash-on-delivery","totalPriceCents":100}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req = withCustomer(req, uuid.New())
	resp := httptest.NewRecorder()

	Checkout(svc, testControllerLogger())(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeConflict) {
		t.Fatalf("unexpected error code %s", envelope.Error.Code)
	}
}

func TestCheckoutMissingActor(t *testing.T) {
	body := `{"restaurantId":"` + uuid.NewString() + `","method":"cash-on-delivery","totalPriceCents":100}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	resp := httptest.NewRecorder()

	Checkout(&testCheckoutService{}, testControllerLogger())(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
