package repository

import (
	"context"

	"gorm.io/gorm"

	"devs-society/backend/internal/model"
)

// SettingsRepository system settings row access
type SettingsRepository interface {
	Get(ctx context.Context) (*model.Settings, error)
	Save(ctx context.Context, settings *model.Settings) error
}

type settingsRepo struct {
	db *gorm.DB
}

// NewSettingsRepo creates a SettingsRepository
func NewSettingsRepo(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Get(ctx context.Context) (*model.Settings, error) {
	var settings model.Settings
	err := r.db.WithContext(ctx).First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save upserts the single row
func (r *settingsRepo) Save(ctx context.Context, settings *model.Settings) error {
	settings.Singleton = true
	return r.db.WithContext(ctx).Save(settings).Error
}
