package service

import (
	"context"
	"strings"

	"restaurant_pos/constants"
	"restaurant_pos/database"
	"restaurant_pos/helper"
	"restaurant_pos/model"
	"restaurant_pos/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CustomerService struct {
	db       *gorm.DB
	log      *zap.Logger
	activity *ActivityLogService
	rules    *DeliveryRuleService
}

func NewCustomerService(db *gorm.DB, log *zap.Logger, activity *ActivityLogService, rules *DeliveryRuleService) *CustomerService {
	return &CustomerService{db: db, log: log.With(zap.String("component", "customer")), activity: activity, rules: rules}
}

func (s *CustomerService) List(ctx context.Context, restaurantID uuid.UUID, filter model.FilterCustomer) (*model.ResponseCustom, error) {
	filter.Normalize()
	query := s.db.WithContext(ctx).Model(&model.Customer{}).Where("restaurant_id = ?", restaurantID)
	if q := strings.TrimSpace(filter.Search); q != "" {
		pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
		query = query.Where("(LOWER(name) LIKE ? ESCAPE '\\' OR phone LIKE ? ESCAPE '\\')", pattern, pattern)
	}
	if filter.Phone != "" {
		phone, err := helper.NormalizePhone(filter.Phone)
		if err != nil {
			return nil, invalid("phone: %v", err)
		}
		query = query.Where("phone = ?", phone)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}
	var customers []model.Customer
	if err := utils.ApplyPagination(query.Order("name"), filter.Pagination).Find(&customers).Error; err != nil {
		return nil, err
	}
	return &model.ResponseCustom{Rows: customers, Limit: filter.Limit, Page: filter.Page, TotalCount: total}, nil
}

func (s *CustomerService) Get(ctx context.Context, restaurantID, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := s.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).First(&customer, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "customer")
	}
	return &customer, nil
}

func (s *CustomerService) GetByPhone(ctx context.Context, restaurantID uuid.UUID, raw string) (*model.Customer, error) {
	phone, err := helper.NormalizePhone(raw)
	if err != nil {
		return nil, invalid("phone: %v", err)
	}
	var customer model.Customer
	if err := s.db.WithContext(ctx).Where("restaurant_id = ? AND phone = ?", restaurantID, phone).First(&customer).Error; err != nil {
		return nil, notFound(err, "customer")
	}
	return &customer, nil
}

// Create inserts a customer after the per-restaurant phone check. Without
// an explicit fee, the matching delivery rule pre-fills it.
func (s *CustomerService) Create(ctx context.Context, restaurantID uuid.UUID, input model.CreateCustomerInput) (*model.Customer, error) {
	phone, err := helper.NormalizePhone(input.Phone)
	if err != nil {
		return nil, invalid("phone: %v", err)
	}

	exists, err := helper.CheckByPhoneNumberCustomer(s.db.WithContext(ctx), restaurantID, phone, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, conflict("phone %s already registered", phone)
	}

	customer := model.Customer{
		RestaurantID:       restaurantID,
		Name:               strings.TrimSpace(input.Name),
		Phone:              phone,
		Email:              input.Email,
		Address:            input.Address,
		Neighborhood:       strings.TrimSpace(input.Neighborhood),
		Cep:                input.Cep,
		DeliveryFeeDefault: input.DeliveryFeeDefault,
	}
	if customer.DeliveryFeeDefault != nil && customer.DeliveryFeeDefault.IsNegative() {
		return nil, invalid("delivery_fee_default must not be negative")
	}
	if customer.DeliveryFeeDefault != nil && customer.DeliveryFeeDefault.IsPositive() {
		customer.DeliveryAvailable = true
	} else {
		s.prefillFee(ctx, &customer)
	}

	if err := s.db.WithContext(ctx).Create(&customer).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, conflict("phone %s already registered", phone)
		}
		return nil, err
	}

	s.activity.Record(ctx, restaurantID, constants.ACTION_CREATE, "customer", customer.ID.String(), map[string]string{"phone": phone})
	return &customer, nil
}

func (s *CustomerService) Update(ctx context.Context, restaurantID, id uuid.UUID, input model.EditCustomerInput) (*model.Customer, error) {
	if _, err := s.Get(ctx, restaurantID, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Phone != nil {
		phone, err := helper.NormalizePhone(*input.Phone)
		if err != nil {
			return nil, invalid("phone: %v", err)
		}
		exists, err := helper.CheckByPhoneNumberCustomer(s.db.WithContext(ctx), restaurantID, phone, &id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, conflict("phone %s already registered", phone)
		}
		updates["phone"] = phone
	}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.Neighborhood != nil {
		updates["neighborhood"] = strings.TrimSpace(*input.Neighborhood)
	}
	if input.Cep != nil {
		updates["cep"] = *input.Cep
	}
	if input.DeliveryFeeDefault != nil {
		if input.DeliveryFeeDefault.IsNegative() {
			return nil, invalid("delivery_fee_default must not be negative")
		}
		updates["delivery_fee_default"] = *input.DeliveryFeeDefault
	}
	if input.DeliveryAvailable != nil {
		updates["delivery_available"] = *input.DeliveryAvailable
	}

	if len(updates) > 0 {
		err := s.db.WithContext(ctx).Model(&model.Customer{}).Where("id = ?", id).Updates(updates).Error
		if database.IsDuplicate(err) {
			return nil, conflict("phone already registered")
		}
		if err != nil {
			return nil, err
		}
		s.activity.Record(ctx, restaurantID, constants.ACTION_UPDATE, "customer", id.String(), updates)
	}
	return s.Get(ctx, restaurantID, id)
}

func (s *CustomerService) prefillFee(ctx context.Context, customer *model.Customer) {
	if s.rules == nil || customer.Neighborhood == "" {
		return
	}
	rule, err := s.rules.RuleForNeighborhood(ctx, customer.RestaurantID, customer.Neighborhood)
	if err != nil {
		s.log.Warn("delivery rule lookup failed", zap.Error(err), zap.String("neighborhood", customer.Neighborhood))
		return
	}
	if rule == nil {
		return
	}
	fee := rule.Fee
	customer.DeliveryFeeDefault = &fee
	customer.DeliveryAvailable = true
}
