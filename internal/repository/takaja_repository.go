package repository

import (
	"github.com/dawahnet/outreach-api/internal/models"
	"gorm.io/gorm"
)

// GormTakajaRepository is a GORM implementation of TakajaRepository
type GormTakajaRepository struct {
	db *gorm.DB
}

// NewTakajaRepository creates a new TakajaRepository
func NewTakajaRepository(db *gorm.DB) TakajaRepository {
	return &GormTakajaRepository{db: db}
}

func (r *GormTakajaRepository) Create(takaja *models.Takaja) error {
	return r.db.Create(takaja).Error
}

func (r *GormTakajaRepository) FindByID(id uint64, preload ...string) (*models.Takaja, error) {
	var takaja models.Takaja
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&takaja, id).Error; err != nil {
		return nil, err
	}
	return &takaja, nil
}

func (r *GormTakajaRepository) ListByHalqa(halqaID uint64) ([]models.Takaja, error) {
	var takajas []models.Takaja
	err := r.db.Preload("Assignee").
		Where("halqa_id = ?", halqaID).
		Order("created_at DESC").
		Find(&takajas).Error
	if err != nil {
		return nil, err
	}
	return takajas, nil
}

func (r *GormTakajaRepository) Update(takaja *models.Takaja) error {
	return r.db.Save(takaja).Error
}

func (r *GormTakajaRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Takaja{}, id).Error
}

func (r *GormTakajaRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Takaja{}).Count(&count).Error
	return count, err
}
