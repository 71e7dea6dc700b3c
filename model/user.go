package model

import "github.com/google/uuid"

type User struct {
	DTO
	RestaurantID uuid.UUID   `gorm:"type:uuid;index;not null" json:"restaurant_id"`
	Restaurant   *Restaurant `json:"restaurant,omitempty"`
	Username     string      `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string      `gorm:"not null" json:"-"`
	Role         string      `gorm:"not null" json:"role"`
	Active       bool        `json:"active"`
}

type CreateUserInput struct {
	RestaurantID uuid.UUID `validate:"required" json:"restaurant_id"`
	Username     string    `validate:"required,min=3" json:"username"`
	Password     string    `validate:"required,min=6" json:"password"`
	Role         string    `validate:"required,oneof=ADMIN ATENDENTE" json:"role"`
}

type LoginInput struct {
	Username string `validate:"required" json:"username"`
	Password string `validate:"required" json:"password"`
}

type TokenData struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	User        *User  `json:"user"`
}
