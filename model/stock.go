package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type StockItem struct {
	DTO
	RestaurantID uuid.UUID       `gorm:"type:uuid;index;not null" json:"restaurant_id"`
	Name         string          `gorm:"not null" json:"name"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `gorm:"type:numeric(12,3);not null;default:0" json:"quantity"`
	MinQuantity  decimal.Decimal `gorm:"type:numeric(12,3);not null;default:0" json:"min_quantity"`
}

type StockItemInput struct {
	Name        string          `validate:"required" json:"name"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
}

type UpdateStockItemInput struct {
	Name        *string          `validate:"omitempty,min=1" json:"name"`
	Unit        *string          `json:"unit"`
	Quantity    *decimal.Decimal `json:"quantity"`
	MinQuantity *decimal.Decimal `json:"min_quantity"`
}

type StockAdjustInput struct {
	Delta  decimal.Decimal `json:"delta"`
	Reason string          `json:"reason"`
}
