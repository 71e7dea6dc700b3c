package helper

import (
	"fmt"

	"restaurant_pos/model"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func GenerateUniqueRestaurantSlug(tx *gorm.DB, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "restaurante"
	}
	result := base
	i := 2

	for {
		var count int64
		if err := tx.Model(&model.Restaurant{}).
			Where("slug = ?", result).
			Count(&count).Error; err != nil {
			return "", err
		}

		if count == 0 {
			break
		}
		result = fmt.Sprintf("%s-%d", base, i)
		i++
	}

	return result, nil
}
