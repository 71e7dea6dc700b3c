package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DeliveryRule struct {
	DTO
	RestaurantID uuid.UUID       `gorm:"type:uuid;index;not null" json:"restaurant_id"`
	Neighborhood string          `gorm:"not null" json:"neighborhood"`
	Fee          decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"fee"`
}

type DeliveryRuleInput struct {
	Neighborhood string          `validate:"required" json:"neighborhood"`
	Fee          decimal.Decimal `json:"fee"`
}

// NeighborhoodMatch is one result of the fuzzy neighborhood search.
type NeighborhoodMatch struct {
	DeliveryRule
	Similarity float64 `json:"similarity"`
}

type DeliveryFeeInput struct {
	CepOrigem  string `validate:"required" json:"cep_origem"`
	CepDestino string `validate:"required" json:"cep_destino"`
}

type DeliveryFeeQuote struct {
	Success    bool            `json:"success"`
	Fee        decimal.Decimal `json:"fee"`
	DistanceKm float64         `json:"distance_km"`
	Manual     bool            `json:"manual,omitempty"`
	Message    string          `json:"message,omitempty"`
}
