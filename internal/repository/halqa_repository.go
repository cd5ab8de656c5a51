package repository

import (
	"github.com/dawahnet/outreach-api/internal/models"
	"gorm.io/gorm"
)

// GormHalqaRepository is a GORM implementation of HalqaRepository
type GormHalqaRepository struct {
	db *gorm.DB
}

// NewHalqaRepository creates a new HalqaRepository
func NewHalqaRepository(db *gorm.DB) HalqaRepository {
	return &GormHalqaRepository{db: db}
}

func (r *GormHalqaRepository) Create(halqa *models.Halqa) error {
	return r.db.Create(halqa).Error
}

func (r *GormHalqaRepository) FindByID(id uint64) (*models.Halqa, error) {
	var halqa models.Halqa
	if err := r.db.First(&halqa, id).Error; err != nil {
		return nil, err
	}
	return &halqa, nil
}

func (r *GormHalqaRepository) List(filter HalqaFilter) ([]models.Halqa, error) {
	query := r.db.Model(&models.Halqa{})

	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.ThanaID != nil {
		query = query.Where("thana_id = ?", *filter.ThanaID)
	}
	if filter.UnionID != nil {
		query = query.Where("union_id = ?", *filter.UnionID)
	}

	var halqas []models.Halqa
	if err := query.Order("name ASC").Find(&halqas).Error; err != nil {
		return nil, err
	}
	return halqas, nil
}

func (r *GormHalqaRepository) Update(halqa *models.Halqa) error {
	return r.db.Save(halqa).Error
}

// Delete removes a halqa and its takajas in one transaction. Member and
// mosque halqa_id links are left as they are.
func (r *GormHalqaRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("halqa_id = ?", id).Delete(&models.Takaja{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Halqa{}, id).Error
	})
}

func (r *GormHalqaRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Halqa{}).Count(&count).Error
	return count, err
}
