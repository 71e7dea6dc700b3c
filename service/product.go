package service

import (
	"context"
	"strings"

	"restaurant_pos/constants"
	"restaurant_pos/model"
	"restaurant_pos/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProductService struct {
	db       *gorm.DB
	log      *zap.Logger
	activity *ActivityLogService
}

func NewProductService(db *gorm.DB, log *zap.Logger, activity *ActivityLogService) *ProductService {
	return &ProductService{db: db, log: log.With(zap.String("component", "product")), activity: activity}
}

func (s *ProductService) List(ctx context.Context, restaurantID uuid.UUID, filter model.FilterProduct) (*model.ResponseCustom, error) {
	filter.Normalize()
	query := s.db.WithContext(ctx).Model(&model.Product{}).Where("restaurant_id = ?", restaurantID)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if q := strings.TrimSpace(filter.Search); q != "" {
		query = query.Where("LOWER(name) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(q))+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}
	var products []model.Product
	err := utils.ApplyPagination(query, filter.Pagination).
		Preload("ComboItems", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("category, name").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return &model.ResponseCustom{Rows: products, Limit: filter.Limit, Page: filter.Page, TotalCount: total}, nil
}

func (s *ProductService) Get(ctx context.Context, restaurantID, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).
		Preload("ComboItems", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("ComboItems.Product").
		Preload("RecipeItems.StockItem").
		Where("restaurant_id = ?", restaurantID).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "product")
	}
	return &product, nil
}

func (s *ProductService) Create(ctx context.Context, restaurantID uuid.UUID, input model.CreateProductInput) (*model.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if input.Price.IsNegative() {
		return nil, invalid("price must not be negative")
	}
	productType := input.Type
	if productType == "" {
		productType = constants.PRODUCT_UNIDADE
	}
	if productType == constants.PRODUCT_COMBO && len(input.ComboItems) == 0 {
		return nil, invalid("a combo needs at least one item")
	}
	if productType != constants.PRODUCT_COMBO && len(input.ComboItems) > 0 {
		return nil, invalid("only combos have combo_items")
	}

	if !input.Force {
		if err := s.checkDuplicateName(ctx, restaurantID, name, nil); err != nil {
			return nil, err
		}
	}

	product := model.Product{
		RestaurantID: restaurantID,
		Name:         name,
		Description:  input.Description,
		Category:     input.Category,
		Price:        input.Price,
		Type:         productType,
		ImageUrl:     input.ImageUrl,
		Available:    true,
	}
	if input.Available != nil {
		product.Available = *input.Available
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("ComboItems", "RecipeItems").Create(&product).Error; err != nil {
			return err
		}
		if productType == constants.PRODUCT_COMBO {
			return replaceComboItems(tx, restaurantID, product.ID, input.ComboItems)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, restaurantID, constants.ACTION_CREATE, "product", product.ID.String(), map[string]string{"name": product.Name})
	return s.Get(ctx, restaurantID, product.ID)
}

func (s *ProductService) Update(ctx context.Context, restaurantID, id uuid.UUID, input model.UpdateProductInput) (*model.Product, error) {
	product, err := s.Get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, invalid("name is required")
		}
		if !input.Force && !strings.EqualFold(name, product.Name) {
			if err := s.checkDuplicateName(ctx, restaurantID, name, &id); err != nil {
				return nil, err
			}
		}
		updates["name"] = name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, invalid("price must not be negative")
		}
		updates["price"] = *input.Price
	}
	if input.ImageUrl != nil {
		updates["image_url"] = *input.ImageUrl
	}
	if input.Available != nil {
		updates["available"] = *input.Available
	}
	if input.ComboItems != nil && product.Type != constants.PRODUCT_COMBO {
		return nil, invalid("only combos have combo_items")
	}
	if input.ComboItems != nil && len(*input.ComboItems) == 0 {
		return nil, invalid("a combo needs at least one item")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&model.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}
		if input.ComboItems != nil {
			return replaceComboItems(tx, restaurantID, id, *input.ComboItems)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, restaurantID, constants.ACTION_UPDATE, "product", id.String(), updates)
	return s.Get(ctx, restaurantID, id)
}

// Delete refuses while the product is still part of some combo.
func (s *ProductService) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	if _, err := s.Get(ctx, restaurantID, id); err != nil {
		return err
	}

	var used int64
	if err := s.db.WithContext(ctx).Model(&model.ComboItem{}).Where("product_id = ?", id).Count(&used).Error; err != nil {
		return err
	}
	if used > 0 {
		return conflict("product is part of %d combo(s)", used)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("combo_id = ?", id).Delete(&model.ComboItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&model.RecipeItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Product{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	s.activity.Record(ctx, restaurantID, constants.ACTION_DELETE, "product", id.String(), nil)
	return nil
}

// SaveRecipe replaces the product's ingredient list as a whole.
func (s *ProductService) SaveRecipe(ctx context.Context, restaurantID, id uuid.UUID, input model.SaveRecipeInput) (*model.Product, error) {
	if _, err := s.Get(ctx, restaurantID, id); err != nil {
		return nil, err
	}

	seen := map[uuid.UUID]bool{}
	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, it := range input.Items {
		if !it.Quantity.IsPositive() {
			return nil, invalid("ingredient quantity must be positive")
		}
		if seen[it.StockItemID] {
			return nil, invalid("stock item %s listed twice", it.StockItemID)
		}
		seen[it.StockItemID] = true
		ids = append(ids, it.StockItemID)
	}

	if len(ids) > 0 {
		var count int64
		err := s.db.WithContext(ctx).Model(&model.StockItem{}).
			Where("restaurant_id = ? AND id IN ?", restaurantID, ids).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if int(count) != len(ids) {
			return nil, invalid("unknown stock item in recipe")
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.RecipeItem{}).Error; err != nil {
			return err
		}
		for _, it := range input.Items {
			row := model.RecipeItem{ProductID: id, StockItemID: it.StockItemID, Quantity: it.Quantity}
			if err := tx.Omit("StockItem").Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, restaurantID, constants.ACTION_UPDATE, "recipe", id.String(), input.Items)
	return s.Get(ctx, restaurantID, id)
}

func (s *ProductService) SetImage(ctx context.Context, restaurantID, id uuid.UUID, url string) (*model.Product, error) {
	if _, err := s.Get(ctx, restaurantID, id); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Update("image_url", url).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, restaurantID, id)
}

func (s *ProductService) checkDuplicateName(ctx context.Context, restaurantID uuid.UUID, name string, excludeID *uuid.UUID) error {
	query := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("restaurant_id = ? AND LOWER(name) = ?", restaurantID, strings.ToLower(name))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return conflict("a product named %q already exists", name)
	}
	return nil
}

// replaceComboItems swaps the combo composition. Components must be plain
// products of the same restaurant and never the combo itself.
func replaceComboItems(tx *gorm.DB, restaurantID, comboID uuid.UUID, items []model.ComboItemInput) error {
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		if it.ProductID == comboID {
			return invalid("a combo cannot contain itself")
		}
		if it.Quantity <= 0 {
			return invalid("combo item quantity must be positive")
		}
		ids = append(ids, it.ProductID)
	}

	var components []model.Product
	if err := tx.Where("restaurant_id = ? AND id IN ?", restaurantID, ids).Find(&components).Error; err != nil {
		return err
	}
	byID := make(map[uuid.UUID]model.Product, len(components))
	for _, p := range components {
		byID[p.ID] = p
	}
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return invalid("unknown product %s in combo", id)
		}
		if p.Type == constants.PRODUCT_COMBO {
			return invalid("a combo cannot contain another combo")
		}
	}

	if err := tx.Where("combo_id = ?", comboID).Delete(&model.ComboItem{}).Error; err != nil {
		return err
	}
	for i, it := range items {
		row := model.ComboItem{ComboID: comboID, ProductID: it.ProductID, Quantity: it.Quantity, Position: i}
		if err := tx.Omit("Product").Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
