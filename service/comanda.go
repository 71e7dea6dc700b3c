package service

import (
	"context"
	"strings"
	"time"

	"restaurant_pos/constants"
	"restaurant_pos/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ComandaService struct {
	db       *gorm.DB
	log      *zap.Logger
	activity *ActivityLogService
	now      func() time.Time
}

func NewComandaService(db *gorm.DB, log *zap.Logger, activity *ActivityLogService) *ComandaService {
	return &ComandaService{
		db:       db,
		log:      log.With(zap.String("component", "comanda")),
		activity: activity,
		now:      time.Now,
	}
}

func (s *ComandaService) List(ctx context.Context, restaurantID uuid.UUID, status string) ([]model.Comanda, error) {
	query := s.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID)
	if status != "" {
		if status != constants.COMANDA_ABERTA && status != constants.COMANDA_FECHADA {
			return nil, invalid("unknown comanda status %q", status)
		}
		query = query.Where("status = ?", status)
	}
	var comandas []model.Comanda
	err := query.Order("opened_at DESC").Find(&comandas).Error
	return comandas, err
}

func (s *ComandaService) Get(ctx context.Context, restaurantID, id uuid.UUID) (*model.Comanda, error) {
	var comanda model.Comanda
	err := s.db.WithContext(ctx).
		Preload("Orders", func(db *gorm.DB) *gorm.DB { return db.Order("order_number") }).
		Preload("Orders.Items").
		Preload("PaymentMethod").
		Where("restaurant_id = ?", restaurantID).
		First(&comanda, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "comanda")
	}
	return &comanda, nil
}

// Open starts a tab. Only one open tab may carry a given label.
func (s *ComandaService) Open(ctx context.Context, restaurantID uuid.UUID, input model.OpenComandaInput) (*model.Comanda, error) {
	label := strings.TrimSpace(input.Label)
	if label == "" {
		return nil, invalid("label is required")
	}

	var open int64
	err := s.db.WithContext(ctx).Model(&model.Comanda{}).
		Where("restaurant_id = ? AND label = ? AND status = ?", restaurantID, label, constants.COMANDA_ABERTA).
		Count(&open).Error
	if err != nil {
		return nil, err
	}
	if open > 0 {
		return nil, conflict("comanda %q is already open", label)
	}

	comanda := model.Comanda{
		RestaurantID: restaurantID,
		Label:        label,
		TableNumber:  input.Table,
		Status:       constants.COMANDA_ABERTA,
		Total:        decimal.Zero,
		OpenedAt:     s.now(),
	}
	if err := s.db.WithContext(ctx).Omit("Orders", "PaymentMethod").Create(&comanda).Error; err != nil {
		return nil, err
	}
	s.activity.Record(ctx, restaurantID, constants.ACTION_CREATE, "comanda", comanda.ID.String(), input)
	return &comanda, nil
}

// Close settles the tab: the non-cancelled orders are summed into the
// total and marked paid and finished, all in one transaction.
func (s *ComandaService) Close(ctx context.Context, restaurantID, id uuid.UUID, input model.CloseComandaInput) (*model.Comanda, error) {
	if input.PaymentMethodID == uuid.Nil {
		return nil, invalid("payment_method_id is required")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comanda model.Comanda
		if err := tx.Where("restaurant_id = ?", restaurantID).First(&comanda, "id = ?", id).Error; err != nil {
			return notFound(err, "comanda")
		}
		if comanda.Status != constants.COMANDA_ABERTA {
			return conflict("comanda is not open")
		}

		var method model.PaymentMethod
		if err := tx.Where("restaurant_id = ?", restaurantID).First(&method, "id = ?", input.PaymentMethodID).Error; err != nil {
			return notFound(err, "payment method")
		}

		var orders []model.Order
		if err := tx.Where("comanda_id = ? AND status <> ?", id, constants.ORDER_CANCELADO).Find(&orders).Error; err != nil {
			return err
		}
		total := decimal.Zero
		for _, o := range orders {
			total = total.Add(o.Total)
		}

		if len(orders) > 0 {
			err := tx.Model(&model.Order{}).
				Where("comanda_id = ? AND status <> ?", id, constants.ORDER_CANCELADO).
				Updates(map[string]any{
					"payment_status":    constants.PAYMENT_PAGO,
					"status":            constants.ORDER_FINALIZADO,
					"payment_method_id": input.PaymentMethodID,
				}).Error
			if err != nil {
				return err
			}
		}

		closedAt := s.now()
		return tx.Model(&model.Comanda{}).Where("id = ?", id).Updates(map[string]any{
			"status":            constants.COMANDA_FECHADA,
			"total":             total,
			"payment_method_id": input.PaymentMethodID,
			"closed_at":         closedAt,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, restaurantID, constants.ACTION_CLOSE, "comanda", id.String(), input)
	return s.Get(ctx, restaurantID, id)
}
