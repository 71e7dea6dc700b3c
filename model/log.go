package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ActivityLog struct {
	DTO
	RestaurantID uuid.UUID      `gorm:"type:uuid;index;not null" json:"restaurant_id"`
	UserID       *uuid.UUID     `gorm:"type:uuid" json:"user_id"`
	Action       string         `gorm:"not null" json:"action"`
	Entity       string         `gorm:"not null" json:"entity"`
	EntityID     string         `json:"entity_id"`
	Details      datatypes.JSON `json:"details"`
}

type ApiLog struct {
	DTO
	RestaurantID *uuid.UUID `gorm:"type:uuid;index" json:"restaurant_id"`
	Method       string     `json:"method"`
	Path         string     `json:"path"`
	StatusCode   int        `json:"status_code"`
	DurationMs   int64      `json:"duration_ms"`
	RequestBody  string     `json:"request_body"`
	ResponseBody string     `json:"response_body"`
}
