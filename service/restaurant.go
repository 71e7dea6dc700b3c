package service

import (
	"context"
	"fmt"

	"restaurant_pos/constants"
	"restaurant_pos/helper"
	"restaurant_pos/model"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RestaurantService struct {
	db       *gorm.DB
	log      *zap.Logger
	activity *ActivityLogService
}

func NewRestaurantService(db *gorm.DB, log *zap.Logger, activity *ActivityLogService) *RestaurantService {
	return &RestaurantService{db: db, log: log.With(zap.String("component", "restaurant")), activity: activity}
}

func (s *RestaurantService) Create(ctx context.Context, input model.CreateRestaurantInput) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := copier.Copy(&restaurant, &input); err != nil {
		return nil, fmt.Errorf("copy restaurant input: %w", err)
	}
	restaurant.LogoUrl = nil
	if input.LogoUrl != "" {
		restaurant.LogoUrl = &input.LogoUrl
	}
	restaurant.Active = true

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slug, err := helper.GenerateUniqueRestaurantSlug(tx, input.Name)
		if err != nil {
			return err
		}
		restaurant.Slug = slug
		return tx.Create(&restaurant).Error
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, restaurant.ID, constants.ACTION_CREATE, "restaurant", restaurant.ID.String(), nil)
	return &restaurant, nil
}

func (s *RestaurantService) Get(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := s.db.WithContext(ctx).First(&restaurant, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "restaurant")
	}
	return &restaurant, nil
}

func (s *RestaurantService) Update(ctx context.Context, id uuid.UUID, input model.UpdateRestaurantInput) (*model.Restaurant, error) {
	restaurant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.Cep != nil {
		updates["cep"] = *input.Cep
	}
	if input.LogoUrl != nil {
		updates["logo_url"] = *input.LogoUrl
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}
	if len(updates) == 0 {
		return restaurant, nil
	}

	if err := s.db.WithContext(ctx).Model(restaurant).Updates(updates).Error; err != nil {
		return nil, err
	}
	s.activity.Record(ctx, id, constants.ACTION_UPDATE, "restaurant", id.String(), updates)
	return s.Get(ctx, id)
}

func (s *RestaurantService) SetMenuDocument(ctx context.Context, id uuid.UUID, url string) (*model.Restaurant, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&model.Restaurant{}).Where("id = ?", id).Update("menu_document_url", url).Error; err != nil {
		return nil, err
	}
	s.activity.Record(ctx, id, constants.ACTION_UPDATE, "restaurant", id.String(), map[string]string{"menu_document_url": url})
	return s.Get(ctx, id)
}
