package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const EventOrderStatusChanged = "order.status_changed"

type StatusEvent struct {
	Event        string    `json:"event"`
	OrderID      string    `json:"order_id"`
	OrderNumber  int       `json:"order_number"`
	RestaurantID string    `json:"restaurant_id"`
	OldStatus    string    `json:"old_status"`
	NewStatus    string    `json:"new_status"`
	Timestamp    time.Time `json:"timestamp"`
}

// Automation posts order events to an external automation platform.
type Automation struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

func NewAutomation(url string, client *http.Client, log *zap.Logger) *Automation {
	return &Automation{url: url, client: client, log: log.With(zap.String("component", "automation"))}
}

func (a *Automation) OrderStatusChanged(ctx context.Context, ev StatusEvent) (Result, error) {
	if a.url == "" {
		return Skipped("automation webhook not configured"), nil
	}
	if ev.Event == "" {
		ev.Event = EventOrderStatusChanged
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return Result{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("automation webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("automation webhook: status %d", resp.StatusCode)
	}
	a.log.Info("status change delivered", zap.String("order_id", ev.OrderID), zap.String("new_status", ev.NewStatus))
	return Sent(), nil
}
