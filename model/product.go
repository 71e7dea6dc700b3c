package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	DTO
	RestaurantID uuid.UUID       `gorm:"type:uuid;index;not null" json:"restaurant_id"`
	Name         string          `gorm:"not null" json:"name"`
	Description  string          `json:"description"`
	Category     string          `gorm:"index" json:"category"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Type         string          `gorm:"not null;default:UNIDADE" json:"type"`
	ImageUrl     *string         `json:"image_url"`
	Available    bool            `json:"available"`
	ComboItems   []ComboItem     `gorm:"foreignKey:ComboID;constraint:OnDelete:CASCADE" json:"combo_items,omitempty"`
	RecipeItems  []RecipeItem    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"recipe_items,omitempty"`
}

// ComboItem is one line of a combo's composition, kept in Position order.
type ComboItem struct {
	DTO
	ComboID   uuid.UUID `gorm:"type:uuid;index;not null" json:"combo_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Position  int       `json:"position"`
}

// RecipeItem says how much of a stock item one unit of a product consumes.
type RecipeItem struct {
	DTO
	ProductID   uuid.UUID       `gorm:"type:uuid;index;not null" json:"product_id"`
	StockItemID uuid.UUID       `gorm:"type:uuid;not null" json:"stock_item_id"`
	StockItem   *StockItem      `gorm:"foreignKey:StockItemID" json:"stock_item,omitempty"`
	Quantity    decimal.Decimal `gorm:"type:numeric(12,3);not null" json:"quantity"`
}

type ComboItemInput struct {
	ProductID uuid.UUID `validate:"required" json:"product_id"`
	Quantity  int       `validate:"required,gt=0" json:"quantity"`
}

type RecipeItemInput struct {
	StockItemID uuid.UUID       `validate:"required" json:"stock_item_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

type CreateProductInput struct {
	Name        string           `validate:"required" json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Price       decimal.Decimal  `json:"price"`
	Type        string           `validate:"omitempty,oneof=UNIDADE COMBO" json:"type"`
	ImageUrl    *string          `validate:"omitempty,url" json:"image_url"`
	Available   *bool            `json:"available"`
	ComboItems  []ComboItemInput `validate:"dive" json:"combo_items"`
	Force       bool             `json:"force"`
}

type UpdateProductInput struct {
	Name        *string           `validate:"omitempty,min=1" json:"name"`
	Description *string           `json:"description"`
	Category    *string           `json:"category"`
	Price       *decimal.Decimal  `json:"price"`
	ImageUrl    *string           `validate:"omitempty,url" json:"image_url"`
	Available   *bool             `json:"available"`
	ComboItems  *[]ComboItemInput `json:"combo_items"`
	Force       bool              `json:"force"`
}

type SaveRecipeInput struct {
	Items []RecipeItemInput `validate:"dive" json:"items"`
}

type FilterProduct struct {
	Pagination
	Category string `query:"category"`
	Type     string `query:"type"`
	Search   string `query:"search"`
}
