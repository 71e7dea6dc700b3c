package service

import (
	"context"
	"sort"
	"strings"

	"restaurant_pos/constants"
	"restaurant_pos/helper"
	"restaurant_pos/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// RuleWriteResult reports a rule write together with its fee cascade.
// A failed cascade never fails the write; it is reported in CascadeError.
type RuleWriteResult struct {
	Rule             *model.DeliveryRule `json:"rule"`
	CustomersUpdated int64               `json:"customers_updated"`
	CascadeError     string              `json:"cascade_error,omitempty"`
}

type DeliveryRuleService struct {
	db       *gorm.DB
	log      *zap.Logger
	activity *ActivityLogService
}

func NewDeliveryRuleService(db *gorm.DB, log *zap.Logger, activity *ActivityLogService) *DeliveryRuleService {
	return &DeliveryRuleService{db: db, log: log.With(zap.String("component", "delivery_rule")), activity: activity}
}

func (s *DeliveryRuleService) List(ctx context.Context, restaurantID uuid.UUID) ([]model.DeliveryRule, error) {
	var rules []model.DeliveryRule
	err := s.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).Order("neighborhood").Find(&rules).Error
	return rules, err
}

func (s *DeliveryRuleService) Create(ctx context.Context, restaurantID uuid.UUID, input model.DeliveryRuleInput) (*RuleWriteResult, error) {
	neighborhood := strings.TrimSpace(input.Neighborhood)
	if neighborhood == "" {
		return nil, invalid("neighborhood is required")
	}
	if input.Fee.IsNegative() {
		return nil, invalid("fee must not be negative")
	}

	rule := model.DeliveryRule{RestaurantID: restaurantID, Neighborhood: neighborhood, Fee: input.Fee}
	if err := s.db.WithContext(ctx).Create(&rule).Error; err != nil {
		return nil, err
	}
	s.activity.Record(ctx, restaurantID, constants.ACTION_CREATE, "delivery_rule", rule.ID.String(), input)

	return s.afterWrite(ctx, &rule), nil
}

func (s *DeliveryRuleService) Update(ctx context.Context, restaurantID, id uuid.UUID, input model.DeliveryRuleInput) (*RuleWriteResult, error) {
	neighborhood := strings.TrimSpace(input.Neighborhood)
	if neighborhood == "" {
		return nil, invalid("neighborhood is required")
	}
	if input.Fee.IsNegative() {
		return nil, invalid("fee must not be negative")
	}

	var rule model.DeliveryRule
	if err := s.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).First(&rule, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "delivery rule")
	}
	rule.Neighborhood = neighborhood
	rule.Fee = input.Fee
	if err := s.db.WithContext(ctx).Save(&rule).Error; err != nil {
		return nil, err
	}
	s.activity.Record(ctx, restaurantID, constants.ACTION_UPDATE, "delivery_rule", rule.ID.String(), input)

	return s.afterWrite(ctx, &rule), nil
}

func (s *DeliveryRuleService) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("restaurant_id = ? AND id = ?", restaurantID, id).Delete(&model.DeliveryRule{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return missing("delivery rule")
	}
	s.activity.Record(ctx, restaurantID, constants.ACTION_DELETE, "delivery_rule", id.String(), nil)
	return nil
}

func (s *DeliveryRuleService) afterWrite(ctx context.Context, rule *model.DeliveryRule) *RuleWriteResult {
	result := &RuleWriteResult{Rule: rule}
	n, err := s.CascadeFee(ctx, rule.RestaurantID, rule.Neighborhood, rule.Fee)
	if err != nil {
		s.log.Error("delivery fee cascade failed",
			zap.Error(err),
			zap.String("rule_id", rule.ID.String()),
			zap.String("neighborhood", rule.Neighborhood))
		result.CascadeError = err.Error()
		return result
	}
	result.CustomersUpdated = n
	return result
}

// CascadeFee backfills the fee on every customer of the restaurant whose
// neighborhood contains the given one (any case) and who has no fee yet.
func (s *DeliveryRuleService) CascadeFee(ctx context.Context, restaurantID uuid.UUID, neighborhood string, fee decimal.Decimal) (int64, error) {
	neighborhood = strings.TrimSpace(neighborhood)
	if neighborhood == "" {
		return 0, nil
	}
	pattern := "%" + escapeLike(strings.ToLower(neighborhood)) + "%"

	res := s.db.WithContext(ctx).Model(&model.Customer{}).
		Where("restaurant_id = ?", restaurantID).
		Where("LOWER(neighborhood) LIKE ? ESCAPE '\\'", pattern).
		Where("(delivery_fee_default IS NULL OR delivery_fee_default = 0)").
		Updates(map[string]any{
			"delivery_fee_default": fee,
			"delivery_available":   true,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		s.log.Info("delivery fee cascaded",
			zap.String("neighborhood", neighborhood),
			zap.String("fee", fee.StringFixed(2)),
			zap.Int64("customers", res.RowsAffected))
	}
	return res.RowsAffected, nil
}

// Search ranks the restaurant's rules by similarity to q. Rules under
// minSimilarity are dropped; at most limit results are returned.
func (s *DeliveryRuleService) Search(ctx context.Context, restaurantID uuid.UUID, q string, limit int, minSimilarity float64) ([]model.NeighborhoodMatch, error) {
	if strings.TrimSpace(q) == "" {
		return nil, invalid("q is required")
	}
	if minSimilarity < 0 || minSimilarity > 1 {
		return nil, invalid("minSimilarity must be between 0 and 1")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	rules, err := s.List(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	matches := make([]model.NeighborhoodMatch, 0, len(rules))
	for _, r := range rules {
		sim := helper.Similarity(q, r.Neighborhood)
		if sim < minSimilarity {
			continue
		}
		matches = append(matches, model.NeighborhoodMatch{DeliveryRule: r, Similarity: sim})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// RuleForNeighborhood finds the rule a customer in neighborhood falls
// under, using the same containment test as the cascade. The longest
// matching rule wins.
func (s *DeliveryRuleService) RuleForNeighborhood(ctx context.Context, restaurantID uuid.UUID, neighborhood string) (*model.DeliveryRule, error) {
	target := strings.ToLower(strings.TrimSpace(neighborhood))
	if target == "" {
		return nil, nil
	}
	rules, err := s.List(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	var best *model.DeliveryRule
	bestLen := 0
	for i := range rules {
		n := strings.ToLower(strings.TrimSpace(rules[i].Neighborhood))
		if n == "" || !strings.Contains(target, n) {
			continue
		}
		if len(n) > bestLen {
			best, bestLen = &rules[i], len(n)
		}
	}
	return best, nil
}
