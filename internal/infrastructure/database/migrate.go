package database

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"deskchat-server/internal/infrastructure/database/entities"
)

// AutoMigrate applies the message table schema. Safe to run at every boot.
func AutoMigrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	if err := db.WithContext(ctx).AutoMigrate(&entities.Message{}); err != nil {
		return err
	}

	var count int64
	if err := db.Model(&entities.Message{}).Count(&count).Error; err != nil {
		return err
	}
	log.Debug().Int64("rows", count).Msg("messages table ready")

	return nil
}
