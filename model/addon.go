package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Addon struct {
	DTO
	RestaurantID uuid.UUID       `gorm:"type:uuid;index;not null" json:"restaurant_id"`
	Name         string          `gorm:"not null" json:"name"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	// Category is the legacy single-category field, always equal to the first
	// entry of Categories.
	Category   string          `json:"category"`
	Categories []AddonCategory `gorm:"foreignKey:AddonID;constraint:OnDelete:CASCADE" json:"categories"`
	Active     bool            `json:"active"`
}

type AddonCategory struct {
	DTO
	AddonID  uuid.UUID `gorm:"type:uuid;index;not null" json:"addon_id"`
	Category string    `gorm:"not null;index" json:"category"`
}

type CreateAddonInput struct {
	Name       string          `validate:"required" json:"name"`
	Price      decimal.Decimal `json:"price"`
	Category   string          `json:"category"`
	Categories []string        `json:"categories"`
	Active     *bool           `json:"active"`
}

type UpdateAddonInput struct {
	Name       *string          `validate:"omitempty,min=1" json:"name"`
	Price      *decimal.Decimal `json:"price"`
	Category   *string          `json:"category"`
	Categories *[]string        `json:"categories"`
	Active     *bool            `json:"active"`
}
