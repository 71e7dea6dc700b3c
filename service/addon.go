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

type AddonService struct {
	db       *gorm.DB
	log      *zap.Logger
	activity *ActivityLogService
}

func NewAddonService(db *gorm.DB, log *zap.Logger, activity *ActivityLogService) *AddonService {
	return &AddonService{db: db, log: log.With(zap.String("component", "addon")), activity: activity}
}

// List returns the restaurant's addons, optionally those tagged with
// category either through the join table or the legacy column.
func (s *AddonService) List(ctx context.Context, restaurantID uuid.UUID, category string) ([]model.Addon, error) {
	query := s.db.WithContext(ctx).Preload("Categories").Where("restaurant_id = ?", restaurantID)
	if category = strings.TrimSpace(category); category != "" {
		tagged := s.db.Model(&model.AddonCategory{}).Select("addon_id").Where("category = ?", category)
		query = query.Where("(id IN (?) OR category = ?)", tagged, category)
	}

	var addons []model.Addon
	if err := query.Order("name").Find(&addons).Error; err != nil {
		return nil, err
	}
	return addons, nil
}

func (s *AddonService) Get(ctx context.Context, restaurantID, id uuid.UUID) (*model.Addon, error) {
	var addon model.Addon
	err := s.db.WithContext(ctx).Preload("Categories").
		Where("restaurant_id = ?", restaurantID).
		First(&addon, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "addon")
	}
	return &addon, nil
}

func (s *AddonService) Create(ctx context.Context, restaurantID uuid.UUID, input model.CreateAddonInput) (*model.Addon, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if input.Price.IsNegative() {
		return nil, invalid("price must not be negative")
	}
	categories := syncCategories(input.Category, input.Categories)

	addon := model.Addon{
		RestaurantID: restaurantID,
		Name:         name,
		Price:        input.Price,
		Category:     firstOrEmpty(categories),
		Active:       true,
	}
	if input.Active != nil {
		addon.Active = *input.Active
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories").Create(&addon).Error; err != nil {
			return err
		}
		return replaceAddonCategories(tx, addon.ID, categories)
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, restaurantID, constants.ACTION_CREATE, "addon", addon.ID.String(), map[string]any{"name": name, "categories": categories})
	return s.Get(ctx, restaurantID, addon.ID)
}

func (s *AddonService) Update(ctx context.Context, restaurantID, id uuid.UUID, input model.UpdateAddonInput) (*model.Addon, error) {
	addon, err := s.Get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, invalid("name is required")
		}
		updates["name"] = name
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, invalid("price must not be negative")
		}
		updates["price"] = *input.Price
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}

	var categories []string
	touchCategories := input.Category != nil || input.Categories != nil
	if touchCategories {
		legacy := addon.Category
		if input.Category != nil {
			legacy = *input.Category
		}
		var list []string
		if input.Categories != nil {
			list = *input.Categories
		}
		categories = syncCategories(legacy, list)
		updates["category"] = firstOrEmpty(categories)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&model.Addon{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}
		if touchCategories {
			return replaceAddonCategories(tx, id, categories)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, restaurantID, constants.ACTION_UPDATE, "addon", id.String(), updates)
	return s.Get(ctx, restaurantID, id)
}

func (s *AddonService) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	if _, err := s.Get(ctx, restaurantID, id); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("addon_id = ?", id).Delete(&model.AddonCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Addon{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}
	s.activity.Record(ctx, restaurantID, constants.ACTION_DELETE, "addon", id.String(), nil)
	return nil
}

// syncCategories merges the legacy single category with the list form.
// The list wins when present; the legacy value alone becomes a one-entry
// list. Blanks and duplicates are dropped, order is kept.
func syncCategories(legacy string, list []string) []string {
	source := list
	if len(source) == 0 && strings.TrimSpace(legacy) != "" {
		source = []string{legacy}
	}

	seen := map[string]bool{}
	out := make([]string, 0, len(source))
	for _, c := range source {
		c = strings.TrimSpace(c)
		if c == "" || seen[strings.ToLower(c)] {
			continue
		}
		seen[strings.ToLower(c)] = true
		out = append(out, c)
	}
	return out
}

func replaceAddonCategories(tx *gorm.DB, addonID uuid.UUID, categories []string) error {
	if err := tx.Where("addon_id = ?", addonID).Delete(&model.AddonCategory{}).Error; err != nil {
		return err
	}
	for _, c := range categories {
		if err := tx.Create(&model.AddonCategory{AddonID: addonID, Category: c}).Error; err != nil {
			return err
		}
	}
	return nil
}

func firstOrEmpty(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[0]
}
