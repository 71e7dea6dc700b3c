package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Money is rendered as a JSON number (12.5), not a quoted string.
	decimal.MarshalJSONWithoutQuotes = true
}

type DTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *DTO) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

type ResponseCustom struct {
	Rows       any   `json:"rows"`
	Limit      int   `json:"limit"`
	Page       int   `json:"page"`
	TotalCount int64 `json:"total_count"`
}

type Pagination struct {
	Limit int `query:"limit" json:"limit"`
	Page  int `query:"page" json:"page"`
}

// Normalize applies the list defaults used by every listing endpoint.
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 200 {
		p.Limit = 200
	}
}

func (p Pagination) Offset() int { return (p.Page - 1) * p.Limit }

// TokenClaim is what the JWT carries for an authenticated staff user.
type TokenClaim struct {
	UserID       uuid.UUID `json:"user_id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
}

func AllModels() []any {
	return []any{
		&Restaurant{},
		&User{},
		&PaymentMethod{},
		&StockItem{},
		&Product{},
		&ComboItem{},
		&RecipeItem{},
		&Addon{},
		&AddonCategory{},
		&Customer{},
		&DeliveryRule{},
		&Comanda{},
		&Order{},
		&OrderItem{},
		&ActivityLog{},
		&ApiLog{},
	}
}
