package realtime

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/feastline/feastline-backend/pkg/config"
	"github.com/feastline/feastline-backend/pkg/logger"
	"github.com/feastline/feastline-backend/pkg/metrics"
)

// Subscription is one consumer of a restaurant's event stream. The channel
// closes when the subscription is removed from the hub.
type Subscription struct {
	restaurantID uuid.UUID
	ch           chan []byte
	hub          *Hub
}

// C is the stream of encoded events for this subscriber.
func (s *Subscription) C() <-chan []byte { return s.ch }

// RestaurantID identifies the stream this subscription is attached to.
func (s *Subscription) RestaurantID() uuid.UUID { return s.restaurantID }

// Close detaches the subscription from the hub.
func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}

type outbound struct {
	restaurantID uuid.UUID
	event        string
	payload      []byte
}

// Hub fans events out to websocket subscribers keyed by restaurant. All
// subscription state is owned by the Run goroutine; the exported methods
// communicate with it over channels only.
type Hub struct {
	cfg     config.RealtimeConfig
	logg    *logger.Logger
	metrics *metrics.RealtimeMetrics

	register   chan *Subscription
	unregister chan *Subscription
	broadcast  chan outbound

	subs map[uuid.UUID]map[*Subscription]struct{}
}

// NewHub builds a hub. Call Run before publishing.
func NewHub(cfg config.RealtimeConfig, logg *logger.Logger, m *metrics.RealtimeMetrics) (*Hub, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = 16
	}
	return &Hub{
		cfg:        cfg,
		logg:       logg,
		metrics:    m,
		register:   make(chan *Subscription),
		unregister: make(chan *Subscription),
		broadcast:  make(chan outbound, 64),
		subs:       make(map[uuid.UUID]map[*Subscription]struct{}),
	}, nil
}

// Run owns the subscriber table until the context is canceled. On shutdown
// every subscriber channel is closed.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			for _, set := range h.subs {
				for sub := range set {
					close(sub.ch)
				}
			}
			h.subs = make(map[uuid.UUID]map[*Subscription]struct{})
			return ctx.Err()

		case sub := <-h.register:
			set, ok := h.subs[sub.restaurantID]
			if !ok {
				set = make(map[*Subscription]struct{})
				h.subs[sub.restaurantID] = set
			}
			set[sub] = struct{}{}
			if h.metrics != nil {
				h.metrics.ConnOpened()
			}

		case sub := <-h.unregister:
			set, ok := h.subs[sub.restaurantID]
			if !ok {
				continue
			}
			if _, member := set[sub]; !member {
				continue
			}
			delete(set, sub)
			close(sub.ch)
			if len(set) == 0 {
				delete(h.subs, sub.restaurantID)
			}
			if h.metrics != nil {
				h.metrics.ConnClosed()
			}

		case msg := <-h.broadcast:
			for sub := range h.subs[msg.restaurantID] {
				select {
				case sub.ch <- msg.payload:
					if h.metrics != nil {
						h.metrics.IncDelivered(msg.event)
					}
				default:
					// Slow consumer: drop the event rather than stall the hub.
					if h.metrics != nil {
						h.metrics.IncDropped(msg.event)
					}
				}
			}
		}
	}
}

// Subscribe attaches a new consumer to the restaurant's stream.
func (h *Hub) Subscribe(ctx context.Context, restaurantID uuid.UUID) (*Subscription, error) {
	if restaurantID == uuid.Nil {
		return nil, fmt.Errorf("restaurant id required")
	}
	sub := &Subscription{
		restaurantID: restaurantID,
		ch:           make(chan []byte, h.cfg.SendBuffer),
		hub:          h,
	}
	select {
	case h.register <- sub:
		return sub, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (h *Hub) unsubscribe(sub *Subscription) {
	select {
	case h.unregister <- sub:
	default:
		// Hub already stopped; Run closed the channel on shutdown.
	}
}

// Publish hands an event to the hub without blocking the caller. Events are
// dropped when the hub backlog is full or the hub is not running.
func (h *Hub) Publish(ctx context.Context, restaurantID uuid.UUID, event Event) error {
	payload, err := event.Encode()
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if h.metrics != nil {
		h.metrics.IncPublished(event.Name)
	}
	select {
	case h.broadcast <- outbound{restaurantID: restaurantID, event: event.Name, payload: payload}:
		return nil
	default:
		if h.metrics != nil {
			h.metrics.IncDropped(event.Name)
		}
		h.logg.Warn(h.logg.WithField(ctx, "event", event.Name), "realtime backlog full, event dropped")
		return nil
	}
}
