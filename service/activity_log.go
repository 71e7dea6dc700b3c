package service

import (
	"context"
	"encoding/json"
	"time"

	"restaurant_pos/model"
	"restaurant_pos/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityLogService keeps the audit trail. Writes are best-effort: a
// failing insert is logged and never reaches the caller.
type ActivityLogService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewActivityLogService(db *gorm.DB, log *zap.Logger) *ActivityLogService {
	return &ActivityLogService{db: db, log: log.With(zap.String("component", "activity_log"))}
}

func (s *ActivityLogService) Record(ctx context.Context, restaurantID uuid.UUID, action, entity, entityID string, details any) {
	entry := model.ActivityLog{
		RestaurantID: restaurantID,
		Action:       action,
		Entity:       entity,
		EntityID:     entityID,
	}
	if uid, ok := UserIDFromContext(ctx); ok {
		entry.UserID = &uid
	}
	if details != nil {
		raw, err := json.Marshal(details)
		if err == nil {
			entry.Details = datatypes.JSON(raw)
		}
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.log.Warn("activity log write failed",
			zap.Error(err),
			zap.String("action", action),
			zap.String("entity", entity),
			zap.String("entity_id", entityID))
	}
}

func (s *ActivityLogService) List(ctx context.Context, restaurantID uuid.UUID, p model.Pagination) (*model.ResponseCustom, error) {
	p.Normalize()
	query := s.db.WithContext(ctx).Model(&model.ActivityLog{}).Where("restaurant_id = ?", restaurantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}
	var rows []model.ActivityLog
	if err := utils.ApplyPagination(query.Order("created_at DESC"), p).Find(&rows).Error; err != nil {
		return nil, err
	}
	return &model.ResponseCustom{Rows: rows, Limit: p.Limit, Page: p.Page, TotalCount: total}, nil
}

// Purge deletes audit entries created before cutoff.
func (s *ActivityLogService) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.ActivityLog{})
	return res.RowsAffected, res.Error
}
