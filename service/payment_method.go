package service

import (
	"context"
	"strings"

	"restaurant_pos/constants"
	"restaurant_pos/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentMethodService struct {
	db       *gorm.DB
	log      *zap.Logger
	activity *ActivityLogService
}

func NewPaymentMethodService(db *gorm.DB, log *zap.Logger, activity *ActivityLogService) *PaymentMethodService {
	return &PaymentMethodService{db: db, log: log.With(zap.String("component", "payment_method")), activity: activity}
}

func (s *PaymentMethodService) List(ctx context.Context, restaurantID uuid.UUID, onlyActive bool) ([]model.PaymentMethod, error) {
	query := s.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID)
	if onlyActive {
		query = query.Where("active = ?", true)
	}
	var methods []model.PaymentMethod
	err := query.Order("name").Find(&methods).Error
	return methods, err
}

func (s *PaymentMethodService) Get(ctx context.Context, restaurantID, id uuid.UUID) (*model.PaymentMethod, error) {
	var method model.PaymentMethod
	if err := s.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).First(&method, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "payment method")
	}
	return &method, nil
}

func (s *PaymentMethodService) Create(ctx context.Context, restaurantID uuid.UUID, input model.PaymentMethodInput) (*model.PaymentMethod, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	method := model.PaymentMethod{RestaurantID: restaurantID, Name: name, Active: true}
	if input.Active != nil {
		method.Active = *input.Active
	}
	if err := s.db.WithContext(ctx).Create(&method).Error; err != nil {
		return nil, err
	}
	s.activity.Record(ctx, restaurantID, constants.ACTION_CREATE, "payment_method", method.ID.String(), input)
	return &method, nil
}

func (s *PaymentMethodService) Update(ctx context.Context, restaurantID, id uuid.UUID, input model.UpdatePaymentMethodInput) (*model.PaymentMethod, error) {
	if _, err := s.Get(ctx, restaurantID, id); err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&model.PaymentMethod{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
		s.activity.Record(ctx, restaurantID, constants.ACTION_UPDATE, "payment_method", id.String(), updates)
	}
	return s.Get(ctx, restaurantID, id)
}

// Delete refuses while orders or comandas still reference the method.
func (s *PaymentMethodService) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	if _, err := s.Get(ctx, restaurantID, id); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)
	var orders, comandas int64
	if err := db.Model(&model.Order{}).Where("payment_method_id = ?", id).Count(&orders).Error; err != nil {
		return err
	}
	if err := db.Model(&model.Comanda{}).Where("payment_method_id = ?", id).Count(&comandas).Error; err != nil {
		return err
	}
	if orders+comandas > 0 {
		return conflict("payment method in use, deactivate it instead")
	}

	if err := db.Delete(&model.PaymentMethod{}, "id = ?", id).Error; err != nil {
		return err
	}
	s.activity.Record(ctx, restaurantID, constants.ACTION_DELETE, "payment_method", id.String(), nil)
	return nil
}
