package repository

import (
	"github.com/dawahnet/outreach-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID with optional preloading
func (r *GormUserRepository) FindByID(id uint64, preload ...string) (*models.User, error) {
	var user models.User
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByPhone finds a user by the normalized login phone number
func (r *GormUserRepository) FindByPhone(phone string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users matching the filter
func (r *GormUserRepository) List(filter MemberFilter) ([]models.User, error) {
	query := r.db.Model(&models.User{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ?", pattern, pattern)
	}
	if filter.ThanaID != nil {
		query = query.Where("thana_id = ?", *filter.ThanaID)
	}
	if filter.UnionID != nil {
		query = query.Where("union_id = ?", *filter.UnionID)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}

	var users []models.User
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update persists changes to a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete hard-deletes a user. When the user was placed in a halqa the
// cached member count is decremented, and any takajas assigned to the
// user are unassigned, in the same transaction.
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		if user.HalqaID != nil {
			if err := decrementHalqaCount(tx, *user.HalqaID); err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Takaja{}).
			Where("assigned_to = ?", id).
			Update("assigned_to", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
}

// Count returns the total number of users
func (r *GormUserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
