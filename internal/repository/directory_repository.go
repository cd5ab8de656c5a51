package repository

import (
	"github.com/dawahnet/outreach-api/internal/models"
	"gorm.io/gorm"
)

// GormDirectoryRepository is a GORM implementation of DirectoryRepository
type GormDirectoryRepository struct {
	db *gorm.DB
}

// NewDirectoryRepository creates a new DirectoryRepository
func NewDirectoryRepository(db *gorm.DB) DirectoryRepository {
	return &GormDirectoryRepository{db: db}
}

func (r *GormDirectoryRepository) ListThanas() ([]models.Thana, error) {
	var thanas []models.Thana
	if err := r.db.Order("name ASC").Find(&thanas).Error; err != nil {
		return nil, err
	}
	return thanas, nil
}

func (r *GormDirectoryRepository) ListUnions(thanaID uint64) ([]models.Union, error) {
	query := r.db.Order("name ASC")
	if thanaID != 0 {
		query = query.Where("thana_id = ?", thanaID)
	}

	var unions []models.Union
	if err := query.Find(&unions).Error; err != nil {
		return nil, err
	}
	return unions, nil
}

func (r *GormDirectoryRepository) FindThana(id uint64) (*models.Thana, error) {
	var thana models.Thana
	if err := r.db.First(&thana, id).Error; err != nil {
		return nil, err
	}
	return &thana, nil
}

func (r *GormDirectoryRepository) FindUnion(id uint64) (*models.Union, error) {
	var union models.Union
	if err := r.db.First(&union, id).Error; err != nil {
		return nil, err
	}
	return &union, nil
}
