package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Comanda struct {
	DTO
	RestaurantID    uuid.UUID       `gorm:"type:uuid;index;not null" json:"restaurant_id"`
	Label           string          `gorm:"not null" json:"label"`
	TableNumber     string          `json:"table"`
	Status          string          `gorm:"not null;index" json:"status"`
	PaymentMethodID *uuid.UUID      `gorm:"type:uuid" json:"payment_method_id"`
	PaymentMethod   *PaymentMethod  `json:"payment_method,omitempty"`
	Total           decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"total"`
	OpenedAt        time.Time       `json:"opened_at"`
	ClosedAt        *time.Time      `json:"closed_at"`
	Orders          []Order         `gorm:"foreignKey:ComandaID" json:"orders,omitempty"`
}

type OpenComandaInput struct {
	Label string `validate:"required" json:"label"`
	Table string `json:"table"`
}

type CloseComandaInput struct {
	PaymentMethodID uuid.UUID `validate:"required" json:"payment_method_id"`
}
