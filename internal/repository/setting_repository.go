package repository

import (
	"github.com/dawahnet/outreach-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingRepository is a GORM implementation of SettingRepository
type GormSettingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new SettingRepository
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &GormSettingRepository{db: db}
}

// Upsert writes a setting; last write wins.
func (r *GormSettingRepository) Upsert(key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error
}

func (r *GormSettingRepository) List() ([]models.Setting, error) {
	var settings []models.Setting
	if err := r.db.Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
