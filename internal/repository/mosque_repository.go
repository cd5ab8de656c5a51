package repository

import (
	"github.com/dawahnet/outreach-api/internal/models"
	"gorm.io/gorm"
)

// GormMosqueRepository is a GORM implementation of MosqueRepository
type GormMosqueRepository struct {
	db *gorm.DB
}

// NewMosqueRepository creates a new MosqueRepository
func NewMosqueRepository(db *gorm.DB) MosqueRepository {
	return &GormMosqueRepository{db: db}
}

func (r *GormMosqueRepository) Create(mosque *models.Mosque) error {
	return r.db.Create(mosque).Error
}

func (r *GormMosqueRepository) FindByID(id uint64, preload ...string) (*models.Mosque, error) {
	var mosque models.Mosque
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&mosque, id).Error; err != nil {
		return nil, err
	}
	return &mosque, nil
}

func (r *GormMosqueRepository) List(filter MosqueFilter) ([]models.Mosque, error) {
	query := r.db.Model(&models.Mosque{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR address LIKE ?", pattern, pattern)
	}
	if filter.ThanaID != nil {
		query = query.Where("thana_id = ?", *filter.ThanaID)
	}
	if filter.UnionID != nil {
		query = query.Where("union_id = ?", *filter.UnionID)
	}
	if filter.HalqaID != nil {
		query = query.Where("halqa_id = ?", *filter.HalqaID)
	}

	var mosques []models.Mosque
	if err := query.Order("name ASC").Find(&mosques).Error; err != nil {
		return nil, err
	}
	return mosques, nil
}

func (r *GormMosqueRepository) Update(mosque *models.Mosque) error {
	return r.db.Save(mosque).Error
}

// Delete hard-deletes a mosque. Members keep their mosque_id; readers must
// treat a failed lookup as "no link".
func (r *GormMosqueRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Mosque{}, id).Error
}

func (r *GormMosqueRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Mosque{}).Count(&count).Error
	return count, err
}
