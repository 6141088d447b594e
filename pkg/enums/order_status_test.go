package enums

import "testing"

func TestOrderStatusRank(t *testing.T) {
	order := []OrderStatus{
		OrderStatusPending,
		OrderStatusAccepted,
		OrderStatusReady,
		OrderStatusDelivering,
		OrderStatusDelivered,
	}
	for i, status := range order {
		if status.Rank() != i {
			t.Fatalf("%s expected rank %d got %d", status, i, status.Rank())
		}
	}
	if OrderStatus("bogus").Rank() != -1 {
		t.Fatal("unknown status should rank -1")
	}
}

func TestOrderStatusPredicates(t *testing.T) {
	if !OrderStatusDelivered.IsTerminal() {
		t.Fatal("delivered is terminal")
	}
	if OrderStatusDelivering.IsTerminal() {
		t.Fatal("delivering is not terminal")
	}
	if !OrderStatusPending.IsActive() {
		t.Fatal("pending is active")
	}
	if OrderStatusDelivered.IsActive() {
		t.Fatal("delivered is not active")
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("ready")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if status != OrderStatusReady {
		t.Fatalf("unexpected status %s", status)
	}
	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestParseCheckoutMethod(t *testing.T) {
	method, err := ParseCheckoutMethod("cash-on-delivery")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if method != CheckoutMethodCashOnDelivery {
		t.Fatalf("unexpected method %s", method)
	}
	if _, err := ParseCheckoutMethod("barter"); err == nil {
		t.Fatal("expected error for unknown method")
	}
}

func TestParseActorRole(t *testing.T) {
	role, err := ParseActorRole("restaurant")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if role != ActorRoleRestaurant {
		t.Fatalf("unexpected role %s", role)
	}
	if _, err := ParseActorRole("admin"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}
