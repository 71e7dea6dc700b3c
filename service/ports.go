package service

import (
	"context"

	"restaurant_pos/model"
	"restaurant_pos/notify"
	"restaurant_pos/utils"

	"github.com/google/uuid"
)

// Messenger delivers WhatsApp messages to customers.
type Messenger interface {
	SendText(ctx context.Context, phone, text string) (notify.Result, error)
	SendMenu(ctx context.Context, phone string, menu notify.Menu) (notify.Result, error)
	SendDocument(ctx context.Context, phone string, doc notify.Document) (notify.Result, error)
}

// StatusHook is told about every effective order status change.
type StatusHook interface {
	OrderStatusChanged(ctx context.Context, ev notify.StatusEvent) (notify.Result, error)
}

// EventPublisher feeds the live order board.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, restaurantID uuid.UUID, ev model.OrderEvent) error
}

type ReceiptRenderer interface {
	Render(data *model.PrintData) ([]byte, error)
}

type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string, files ...utils.Attachment) (notify.Result, error)
}

type StockConsumer interface {
	ConsumeForOrder(ctx context.Context, orderID uuid.UUID) error
}
