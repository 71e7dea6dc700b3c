package service

import (
	"context"
	"time"
	"unicode/utf8"

	"restaurant_pos/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const apiLogBodyLimit = 2048

type ApiLogService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewApiLogService(db *gorm.DB, log *zap.Logger) *ApiLogService {
	return &ApiLogService{db: db, log: log.With(zap.String("component", "api_log"))}
}

// Record stores one external API call. Bodies are cut to a short excerpt.
func (s *ApiLogService) Record(ctx context.Context, entry model.ApiLog) {
	entry.RequestBody = excerpt(entry.RequestBody)
	entry.ResponseBody = excerpt(entry.ResponseBody)
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.log.Warn("api log write failed", zap.Error(err), zap.String("path", entry.Path))
	}
}

func (s *ApiLogService) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.ApiLog{})
	return res.RowsAffected, res.Error
}

func excerpt(s string) string {
	if len(s) <= apiLogBodyLimit {
		return s
	}
	cut := apiLogBodyLimit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
