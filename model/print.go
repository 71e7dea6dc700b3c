package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PrintData is everything a receipt needs, already resolved.
type PrintData struct {
	OrderID       string          `json:"order_id"`
	OrderNumber   int             `json:"order_number"`
	CreatedAt     time.Time       `json:"created_at"`
	TipoPedido    string          `json:"tipo_pedido"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Restaurant    PrintRestaurant `json:"restaurant"`
	Customer      *PrintCustomer  `json:"customer,omitempty"`
	Items         []PrintItem     `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DeliveryFee   decimal.Decimal `json:"delivery_fee"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	Notes         string          `json:"notes,omitempty"`
	QRPayload     string          `json:"qr_payload,omitempty"`
}

type PrintRestaurant struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type PrintCustomer struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Neighborhood string `json:"neighborhood"`
}

type PrintItem struct {
	Name      string           `json:"name"`
	Quantity  int              `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	LineTotal decimal.Decimal  `json:"line_total"`
	Notes     string           `json:"notes,omitempty"`
	Addons    []OrderItemAddon `json:"addons,omitempty"`
}
