package helper

import (
	"restaurant_pos/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckByPhoneNumberCustomer reports whether another customer of the
// restaurant already uses phone. excludeID skips the row being edited.
func CheckByPhoneNumberCustomer(db *gorm.DB, restaurantID uuid.UUID, phone string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := db.Model(&model.Customer{}).Where("restaurant_id = ? AND phone = ?", restaurantID, phone)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
