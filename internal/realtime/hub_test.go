package realtime

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/feastline/feastline-backend/pkg/config"
	"github.com/feastline/feastline-backend/pkg/logger"
)

func startHub(t *testing.T, cfg config.RealtimeConfig) (*Hub, context.CancelFunc, chan error) {
	t.Helper()

	hub, err := NewHub(cfg, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}), nil)
	if err != nil {
		t.Fatalf("hub constructor failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- hub.Run(ctx)
	}()
	return hub, cancel, done
}

func recvEvent(t *testing.T, sub *Subscription) []byte {
	t.Helper()

	select {
	case payload, ok := <-sub.C():
		if !ok {
			t.Fatal("subscription channel closed unexpectedly")
		}
		return payload
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestHubDeliversToRestaurantSubscribers(t *testing.T) {
	hub, cancel, _ := startHub(t, config.RealtimeConfig{SendBuffer: 8})
	defer cancel()

	restaurantID := uuid.New()
	otherID := uuid.New()

	subA, err := hub.Subscribe(context.Background(), restaurantID)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	subB, err := hub.Subscribe(context.Background(), restaurantID)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	other, err := hub.Subscribe(context.Background(), otherID)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	orderID := uuid.New()
	event := Event{
		Name: EventNewOrder,
		Data: NewOrderPayload{Username: "dana", RestaurantID: restaurantID, OrderID: orderID, OrderNumber: 7},
	}
	if err := hub.Publish(context.Background(), restaurantID, event); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	for _, sub := range []*Subscription{subA, subB} {
		payload := recvEvent(t, sub)
		var decoded struct {
			Event string          `json:"event"`
			Data  NewOrderPayload `json:"data"`
		}
		if err := json.Unmarshal(payload, &decoded); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if decoded.Event != EventNewOrder {
			t.Fatalf("unexpected event %s", decoded.Event)
		}
		if decoded.Data.OrderID != orderID || decoded.Data.OrderNumber != 7 {
			t.Fatalf("unexpected payload %+v", decoded.Data)
		}
	}

	if len(other.C()) != 0 {
		t.Fatal("event leaked to another restaurant's stream")
	}
}

func TestHubDropsEventsForSlowConsumer(t *testing.T) {
	hub, cancel, _ := startHub(t, config.RealtimeConfig{SendBuffer: 1})
	defer cancel()

	restaurantID := uuid.New()
	slow, err := hub.Subscribe(context.Background(), restaurantID)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	pacer, err := hub.Subscribe(context.Background(), restaurantID)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	// First event fills the slow consumer's buffer.
	if err := hub.Publish(context.Background(), restaurantID, Event{Name: "first"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	recvEvent(t, pacer)

	// Second event cannot fit and is dropped for the slow consumer. The
	// pacer's receive proves the hub finished fanning it out.
	if err := hub.Publish(context.Background(), restaurantID, Event{Name: "second"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	recvEvent(t, pacer)

	if len(slow.C()) != 1 {
		t.Fatalf("expected exactly one buffered event, got %d", len(slow.C()))
	}
}

func TestHubCloseDetachesSubscription(t *testing.T) {
	hub, cancel, _ := startHub(t, config.RealtimeConfig{SendBuffer: 4})
	defer cancel()

	sub, err := hub.Subscribe(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	sub.Close()

	select {
	case _, ok := <-sub.C():
		if ok {
			t.Fatal("expected closed channel, got event")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestHubShutdownClosesSubscribers(t *testing.T) {
	hub, cancel, done := startHub(t, config.RealtimeConfig{SendBuffer: 4})

	sub, err := hub.Subscribe(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}

	if _, ok := <-sub.C(); ok {
		t.Fatal("expected closed channel after shutdown")
	}
}
