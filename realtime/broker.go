package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"restaurant_pos/config"
	"restaurant_pos/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func ChannelName(restaurantID uuid.UUID) string {
	return fmt.Sprintf("restaurant:%s:orders", restaurantID)
}

// Broker fans order events out through redis pub/sub so every API
// instance can feed its own websocket clients.
type Broker struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewBroker(cfg config.Redis, log *zap.Logger) *Broker {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Broker{rdb: rdb, log: log.With(zap.String("component", "realtime"))}
}

func (b *Broker) Ping(ctx context.Context) error {
	return b.rdb.Ping(ctx).Err()
}

func (b *Broker) PublishOrderEvent(ctx context.Context, restaurantID uuid.UUID, ev model.OrderEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := b.rdb.Publish(ctx, ChannelName(restaurantID), payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Subscribe listens on the restaurant's channel. The caller closes the
// returned PubSub.
func (b *Broker) Subscribe(ctx context.Context, restaurantID uuid.UUID) *redis.PubSub {
	return b.rdb.Subscribe(ctx, ChannelName(restaurantID))
}

func (b *Broker) Close() error { return b.rdb.Close() }
