package service

import (
	"context"

	"restaurant_pos/constants"
	"restaurant_pos/database"
	"restaurant_pos/helper"
	"restaurant_pos/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	db       *gorm.DB
	log      *zap.Logger
	activity *ActivityLogService
}

func NewUserService(db *gorm.DB, log *zap.Logger, activity *ActivityLogService) *UserService {
	return &UserService{db: db, log: log.With(zap.String("component", "user")), activity: activity}
}

func (s *UserService) Create(ctx context.Context, input model.CreateUserInput) (*model.User, error) {
	db := s.db.WithContext(ctx)

	var restaurant model.Restaurant
	if err := db.First(&restaurant, "id = ?", input.RestaurantID).Error; err != nil {
		return nil, notFound(err, "restaurant")
	}

	var count int64
	if err := db.Model(&model.User{}).Where("username = ?", input.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, conflict("username %q already taken", input.Username)
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := model.User{
		RestaurantID: input.RestaurantID,
		Username:     input.Username,
		PasswordHash: hash,
		Role:         input.Role,
		Active:       true,
	}
	if err := db.Create(&user).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, conflict("username %q already taken", input.Username)
		}
		return nil, err
	}

	s.activity.Record(ctx, input.RestaurantID, constants.ACTION_CREATE, "user", user.ID.String(), map[string]string{"username": user.Username})
	return &user, nil
}
