package database

import (
	"errors"
	"fmt"

	"restaurant_pos/config"
	"restaurant_pos/model"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the postgres pool, migrates the schema and seeds the
// bootstrap admin.
func Connect(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsDev() {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Info("connection opened to database", zap.String("host", cfg.DB.Host), zap.String("name", cfg.DB.Name))

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info("database migrated")

	if err := SeedData(db, cfg, log); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// IsDuplicate reports whether err is a unique constraint violation, as
// translated by gorm when TranslateError is on.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
