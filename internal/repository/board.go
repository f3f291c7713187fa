// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"menuboard/internal/models"

	"gorm.io/gorm"
)

// ConfigRepository defines the interface for the singleton board config.
type ConfigRepository interface {
	Get(ctx context.Context) (*models.Config, error)
	Update(ctx context.Context, title string, dateLocation *string, autoDate bool) error
}

type configRepository struct {
	db *gorm.DB
}

// NewConfigRepository creates a new config repository
func NewConfigRepository(db *gorm.DB) ConfigRepository {
	return &configRepository{db: db}
}

func (r *configRepository) Get(ctx context.Context) (*models.Config, error) {
	var cfg models.Config
	if err := r.db.WithContext(ctx).First(&cfg, 1).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *configRepository) Update(ctx context.Context, title string, dateLocation *string, autoDate bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Config{}).
		Where("id = ?", 1).
		Updates(map[string]interface{}{
			"title":         title,
			"date_location": dateLocation,
			"auto_date":     autoDate,
		}).Error
}
