package handler

import (
	"context"

	"restaurant_pos/constants"
	"restaurant_pos/middleware"
	"restaurant_pos/model"
	"restaurant_pos/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrdersSocketUpgrade lets only websocket upgrades through, and only when
// the redis broker is configured.
func (h *Handler) OrdersSocketUpgrade(c *fiber.Ctx) error {
	if h.Broker == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, constants.REALTIME_NOT_CONFIGURED)
	}
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// OrdersSocket forwards the restaurant's order events to one board client
// until either side goes away.
func (h *Handler) OrdersSocket(conn *websocket.Conn) {
	claims, _ := conn.Locals(middleware.ClaimsKey).(model.TokenClaim)
	log := h.log.With(zap.String("restaurant_id", claims.RestaurantID.String()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubsub := h.Broker.Subscribe(ctx, claims.RestaurantID)
	defer pubsub.Close()
	if _, err := pubsub.Receive(ctx); err != nil {
		log.Warn("order board subscribe failed", zap.Error(err))
		return
	}
	log.Debug("order board connected")

	// Clients never send anything useful; reading detects the close.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			log.Debug("order board disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Debug("order board write failed", zap.Error(err))
				return
			}
		}
	}
}
