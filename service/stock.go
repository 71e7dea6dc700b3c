package service

import (
	"context"
	"strings"

	"restaurant_pos/constants"
	"restaurant_pos/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type StockService struct {
	db       *gorm.DB
	log      *zap.Logger
	activity *ActivityLogService
}

func NewStockService(db *gorm.DB, log *zap.Logger, activity *ActivityLogService) *StockService {
	return &StockService{db: db, log: log.With(zap.String("component", "stock")), activity: activity}
}

func (s *StockService) List(ctx context.Context, restaurantID uuid.UUID) ([]model.StockItem, error) {
	var items []model.StockItem
	err := s.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).Order("name").Find(&items).Error
	return items, err
}

// Low lists items at or under their minimum.
func (s *StockService) Low(ctx context.Context, restaurantID uuid.UUID) ([]model.StockItem, error) {
	var items []model.StockItem
	err := s.db.WithContext(ctx).
		Where("restaurant_id = ? AND quantity <= min_quantity", restaurantID).
		Order("name").
		Find(&items).Error
	return items, err
}

func (s *StockService) Get(ctx context.Context, restaurantID, id uuid.UUID) (*model.StockItem, error) {
	var item model.StockItem
	if err := s.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).First(&item, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "stock item")
	}
	return &item, nil
}

func (s *StockService) Create(ctx context.Context, restaurantID uuid.UUID, input model.StockItemInput) (*model.StockItem, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if input.MinQuantity.IsNegative() {
		return nil, invalid("min_quantity must not be negative")
	}
	item := model.StockItem{
		RestaurantID: restaurantID,
		Name:         name,
		Unit:         input.Unit,
		Quantity:     input.Quantity,
		MinQuantity:  input.MinQuantity,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	s.activity.Record(ctx, restaurantID, constants.ACTION_CREATE, "stock_item", item.ID.String(), input)
	return &item, nil
}

func (s *StockService) Update(ctx context.Context, restaurantID, id uuid.UUID, input model.UpdateStockItemInput) (*model.StockItem, error) {
	if _, err := s.Get(ctx, restaurantID, id); err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Unit != nil {
		updates["unit"] = *input.Unit
	}
	if input.Quantity != nil {
		updates["quantity"] = *input.Quantity
	}
	if input.MinQuantity != nil {
		if input.MinQuantity.IsNegative() {
			return nil, invalid("min_quantity must not be negative")
		}
		updates["min_quantity"] = *input.MinQuantity
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&model.StockItem{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
		s.activity.Record(ctx, restaurantID, constants.ACTION_UPDATE, "stock_item", id.String(), updates)
	}
	return s.Get(ctx, restaurantID, id)
}

// Adjust moves the quantity by delta (negative for losses).
func (s *StockService) Adjust(ctx context.Context, restaurantID, id uuid.UUID, input model.StockAdjustInput) (*model.StockItem, error) {
	if input.Delta.IsZero() {
		return nil, invalid("delta must not be zero")
	}
	if _, err := s.Get(ctx, restaurantID, id); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Model(&model.StockItem{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", input.Delta)).Error
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, restaurantID, constants.ACTION_UPDATE, "stock_item", id.String(), input)
	return s.Get(ctx, restaurantID, id)
}

// ConsumeForOrder deducts the recipe ingredients of every item of the
// order. Combos are expanded into their components first.
func (s *StockService) ConsumeForOrder(ctx context.Context, orderID uuid.UUID) error {
	var order model.Order
	if err := s.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		return notFound(err, "order")
	}

	units := map[uuid.UUID]int{}
	productIDs := make([]uuid.UUID, 0, len(order.Items))
	for _, it := range order.Items {
		units[it.ProductID] += it.Quantity
		productIDs = append(productIDs, it.ProductID)
	}
	if len(productIDs) == 0 {
		return nil
	}

	var comboItems []model.ComboItem
	if err := s.db.WithContext(ctx).Where("combo_id IN ?", productIDs).Find(&comboItems).Error; err != nil {
		return err
	}
	for _, ci := range comboItems {
		units[ci.ProductID] += units[ci.ComboID] * ci.Quantity
	}

	ids := make([]uuid.UUID, 0, len(units))
	for id := range units {
		ids = append(ids, id)
	}
	var recipe []model.RecipeItem
	if err := s.db.WithContext(ctx).Where("product_id IN ?", ids).Find(&recipe).Error; err != nil {
		return err
	}
	if len(recipe) == 0 {
		return nil
	}

	usage := map[uuid.UUID]decimal.Decimal{}
	for _, r := range recipe {
		n := units[r.ProductID]
		if n == 0 {
			continue
		}
		usage[r.StockItemID] = usage[r.StockItemID].Add(r.Quantity.Mul(decimal.NewFromInt(int64(n))))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for stockID, qty := range usage {
			err := tx.Model(&model.StockItem{}).
				Where("id = ? AND restaurant_id = ?", stockID, order.RestaurantID).
				Update("quantity", gorm.Expr("quantity - ?", qty)).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("stock consumed", zap.String("order_id", orderID.String()), zap.Int("stock_items", len(usage)))
	return nil
}

// SyncAvailability flags products with an exhausted ingredient as
// unavailable and brings back those whose ingredients are all in stock.
func (s *StockService) SyncAvailability(ctx context.Context) (disabled, enabled int64, err error) {
	db := s.db.WithContext(ctx)
	exhausted := db.Model(&model.RecipeItem{}).
		Select("recipe_items.product_id").
		Joins("JOIN stock_items ON stock_items.id = recipe_items.stock_item_id").
		Where("stock_items.quantity <= 0")
	withRecipe := db.Model(&model.RecipeItem{}).Select("product_id")

	res := db.Model(&model.Product{}).
		Where("available = ? AND id IN (?)", true, exhausted).
		Update("available", false)
	if res.Error != nil {
		return 0, 0, res.Error
	}
	disabled = res.RowsAffected

	res = db.Model(&model.Product{}).
		Where("available = ? AND id IN (?) AND id NOT IN (?)", false, withRecipe, exhausted).
		Update("available", true)
	if res.Error != nil {
		return disabled, 0, res.Error
	}
	enabled = res.RowsAffected

	if disabled > 0 || enabled > 0 {
		s.log.Info("product availability synced", zap.Int64("disabled", disabled), zap.Int64("enabled", enabled))
	}
	return disabled, enabled, nil
}
