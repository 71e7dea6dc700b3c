package database

import (
	"restaurant_pos/config"
	"restaurant_pos/constants"
	"restaurant_pos/model"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	seedRestaurantName = "Restaurante Demo"
	seedAdminUsername  = "admin"
)

// SeedData creates a demo restaurant and its admin user on an empty
// database. SEED_ADMIN_PASSWORD must be set for the admin to be created.
func SeedData(db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := cfg.SeedAdminPassword
	if password == "" {
		log.Warn("no users and SEED_ADMIN_PASSWORD unset, skipping admin seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		restaurant := model.Restaurant{
			Name:   seedRestaurantName,
			Slug:   slug.Make(seedRestaurantName),
			Active: true,
		}
		err := tx.Where(model.Restaurant{Slug: restaurant.Slug}).FirstOrCreate(&restaurant).Error
		if err != nil {
			return err
		}

		admin := model.User{
			RestaurantID: restaurant.ID,
			Username:     seedAdminUsername,
			PasswordHash: string(hash),
			Role:         constants.ROLE_ADMIN,
			Active:       true,
		}
		if err := tx.Create(&admin).Error; err != nil && !IsDuplicate(err) {
			return err
		}
		log.Info("seeded admin user", zap.String("username", admin.Username), zap.String("restaurant", restaurant.Slug))
		return nil
	})
}
