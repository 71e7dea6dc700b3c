package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Order struct {
	DTO
	RestaurantID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_restaurant_number" json:"restaurant_id"`
	Restaurant      *Restaurant     `json:"restaurant,omitempty"`
	OrderNumber     int             `gorm:"not null;uniqueIndex:idx_order_restaurant_number" json:"order_number"`
	CustomerID      *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id"`
	Customer        *Customer       `json:"customer,omitempty"`
	ComandaID       *uuid.UUID      `gorm:"type:uuid;index" json:"comanda_id"`
	TipoPedido      string          `gorm:"not null" json:"tipo_pedido"`
	Status          string          `gorm:"not null;index" json:"status"`
	PaymentStatus   string          `gorm:"not null" json:"payment_status"`
	PaymentMethodID *uuid.UUID      `gorm:"type:uuid" json:"payment_method_id"`
	PaymentMethod   *PaymentMethod  `json:"payment_method,omitempty"`
	Subtotal        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"subtotal"`
	DeliveryFee     decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"delivery_fee"`
	Discount        decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"discount"`
	Total           decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total"`
	Notes           string          `json:"notes"`
	DeliveryAddress string          `json:"delivery_address"`
	CancelledAt     *time.Time      `json:"cancelled_at"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

type OrderItem struct {
	DTO
	OrderID     uuid.UUID       `gorm:"type:uuid;index;not null" json:"order_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	LineTotal   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"line_total"`
	Notes       string          `json:"notes"`
	// Addons is a JSON snapshot of []OrderItemAddon taken at order time.
	Addons datatypes.JSON `json:"addons"`
}

type OrderItemAddon struct {
	AddonID  uuid.UUID       `json:"addon_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type OrderAddonInput struct {
	AddonID  uuid.UUID `validate:"required" json:"addon_id"`
	Quantity int       `validate:"omitempty,gt=0" json:"quantity"`
}

type OrderItemInput struct {
	ProductID uuid.UUID         `validate:"required" json:"product_id"`
	Quantity  int               `validate:"required,gt=0" json:"quantity"`
	Notes     string            `json:"notes"`
	Addons    []OrderAddonInput `validate:"dive" json:"addons"`
}

type CreateOrderInput struct {
	TipoPedido      string           `validate:"required,oneof=BALCAO RETIRADA ENTREGA COMANDA" json:"tipo_pedido"`
	Items           []OrderItemInput `validate:"required,min=1,dive" json:"items"`
	CustomerID      *uuid.UUID       `json:"customer_id"`
	CustomerPhone   string           `json:"customer_phone"`
	CustomerName    string           `json:"customer_name"`
	ComandaID       *uuid.UUID       `json:"comanda_id"`
	PaymentMethodID *uuid.UUID       `json:"payment_method_id"`
	DeliveryFee     *decimal.Decimal `json:"delivery_fee"`
	Discount        decimal.Decimal  `json:"discount"`
	DeliveryAddress string           `json:"delivery_address"`
	Notes           string           `json:"notes"`
}

type UpdateOrderStatusInput struct {
	OrderID      string `validate:"required" json:"orderId"`
	NewStatus    string `validate:"required" json:"newStatus"`
	RestaurantID string `json:"restaurantId"`
}

type CancelOrderInput struct {
	RestaurantID  string `json:"restaurant_id"`
	OrderID       string `json:"order_id"`
	OrderNumber   int    `json:"order_number"`
	CustomerPhone string `json:"customer_phone"`
}

type CancelOrderResult struct {
	Order          *Order `json:"order"`
	PreviousStatus string `json:"previous_status"`
	Status         string `json:"status"`
}

type FilterOrder struct {
	Pagination
	Status     string `query:"status" json:"status"`
	TipoPedido string `query:"tipo_pedido" json:"tipo_pedido"`
	From       string `query:"from" json:"from"`
	To         string `query:"to" json:"to"`
	CustomerID string `query:"customer_id" json:"customer_id"`
}
