package controllers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/feastline/feastline-backend/api/responses"
	"github.com/feastline/feastline-backend/internal/realtime"
	"github.com/feastline/feastline-backend/pkg/config"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
	"github.com/feastline/feastline-backend/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin enforcement happens in the CORS layer; the websocket endpoint
	// is authenticated by the bearer token instead.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// OrderStream upgrades the connection and pushes the restaurant's order
// events. The stream key is taken from the authenticated token, never from
// the client.
func OrderStream(hub *realtime.Hub, cfg config.RealtimeConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if hub == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "realtime hub unavailable"))
			return
		}

		restaurantID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sub, err := hub.Subscribe(r.Context(), restaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "subscribe to order stream"))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			sub.Close()
			// Upgrade already wrote the handshake failure response.
			logg.Error(r.Context(), "websocket upgrade failed", err)
			return
		}

		ctx := logg.WithRestaurantID(r.Context(), restaurantID.String())
		logg.Info(ctx, "order stream connected")

		done := make(chan struct{})
		go func() {
			defer close(done)
			// Drain control frames; any read error means the peer is gone.
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		writeTimeout := cfg.WriteTimeout
		if writeTimeout <= 0 {
			writeTimeout = 10 * time.Second
		}
		pingInterval := cfg.PingInterval
		if pingInterval <= 0 {
			pingInterval = 30 * time.Second
		}
		pinger := time.NewTicker(pingInterval)

		defer func() {
			pinger.Stop()
			sub.Close()
			conn.Close()
			logg.Info(ctx, "order stream disconnected")
		}()

		for {
			select {
			case <-done:
				return
			case payload, ok := <-sub.C():
				if !ok {
					return
				}
				conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					return
				}
			case <-pinger.C:
				conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}
}
