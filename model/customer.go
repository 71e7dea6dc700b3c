package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Customer struct {
	DTO
	RestaurantID       uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_customer_restaurant_phone" json:"restaurant_id"`
	Name               string           `json:"name"`
	Phone              string           `gorm:"not null;uniqueIndex:idx_customer_restaurant_phone" json:"phone"`
	Email              *string          `json:"email"`
	Address            string           `json:"address"`
	Neighborhood       string           `json:"neighborhood"`
	Cep                string           `json:"cep"`
	DeliveryFeeDefault *decimal.Decimal `gorm:"type:numeric(10,2)" json:"delivery_fee_default"`
	DeliveryAvailable  bool             `json:"delivery_available"`
}

type CreateCustomerInput struct {
	Name               string           `validate:"required" json:"name"`
	Phone              string           `validate:"required" json:"phone"`
	Email              *string          `validate:"omitempty,email" json:"email"`
	Address            string           `json:"address"`
	Neighborhood       string           `json:"neighborhood"`
	Cep                string           `json:"cep"`
	DeliveryFeeDefault *decimal.Decimal `json:"delivery_fee_default"`
}

type EditCustomerInput struct {
	Name               *string          `validate:"omitempty,min=1" json:"name"`
	Phone              *string          `json:"phone"`
	Email              *string          `validate:"omitempty,email" json:"email"`
	Address            *string          `json:"address"`
	Neighborhood       *string          `json:"neighborhood"`
	Cep                *string          `json:"cep"`
	DeliveryFeeDefault *decimal.Decimal `json:"delivery_fee_default"`
	DeliveryAvailable  *bool            `json:"delivery_available"`
}

type FilterCustomer struct {
	Pagination
	Search string `query:"search"`
	Phone  string `query:"phone"`
}
