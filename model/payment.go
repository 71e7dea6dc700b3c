package model

import "github.com/google/uuid"

type PaymentMethod struct {
	DTO
	RestaurantID uuid.UUID `gorm:"type:uuid;index;not null" json:"restaurant_id"`
	Name         string    `gorm:"not null" json:"name"`
	Active       bool      `json:"active"`
}

type PaymentMethodInput struct {
	Name   string `validate:"required" json:"name"`
	Active *bool  `json:"active"`
}

type UpdatePaymentMethodInput struct {
	Name   *string `validate:"omitempty,min=1" json:"name"`
	Active *bool   `json:"active"`
}
