package repository

import (
	"github.com/dawahnet/outreach-api/internal/models"
	"gorm.io/gorm"
)

// GormMembershipRepository is a GORM implementation of MembershipRepository
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &GormMembershipRepository{db: db}
}

// SetMemberHalqa links (or unlinks, with nil) a member to a halqa and keeps
// halqas.members_count in step, all inside one transaction.
func (r *GormMembershipRepository) SetMemberHalqa(userID uint64, halqaID *uint64) (*models.User, error) {
	var user models.User

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}

		if err := adjustHalqaCounts(tx, user.HalqaID, halqaID); err != nil {
			return err
		}

		if err := tx.Model(&user).Update("halqa_id", halqaID).Error; err != nil {
			return err
		}

		user.HalqaID = halqaID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetMemberMosque updates a member's mosque link and final halqa value in
// one transaction. The caller decides the halqa: the mosque's own halqa when
// assigning (the reassignment cascade), or the member's current halqa when
// only the mosque link is being cleared.
func (r *GormMembershipRepository) SetMemberMosque(userID uint64, mosqueID *uint64, halqaID *uint64) (*models.User, error) {
	var user models.User

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}

		if err := adjustHalqaCounts(tx, user.HalqaID, halqaID); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"mosque_id": mosqueID,
			"halqa_id":  halqaID,
		}
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return err
		}

		user.MosqueID = mosqueID
		user.HalqaID = halqaID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetMosqueHalqa links (or unlinks, with nil) a mosque to a halqa.
func (r *GormMembershipRepository) SetMosqueHalqa(mosqueID uint64, halqaID *uint64) (*models.Mosque, error) {
	var mosque models.Mosque
	if err := r.db.First(&mosque, mosqueID).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&mosque).Update("halqa_id", halqaID).Error; err != nil {
		return nil, err
	}

	mosque.HalqaID = halqaID
	return &mosque, nil
}

// CandidateMembers lists unaffiliated members of the given location.
func (r *GormMembershipRepository) CandidateMembers(thanaID, unionID uint64) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Where("role = ?", models.RoleMember).
		Where("halqa_id IS NULL AND mosque_id IS NULL").
		Where("thana_id = ? AND union_id = ?", thanaID, unionID).
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// CandidateMosques lists mosques of the given location with no halqa link.
func (r *GormMembershipRepository) CandidateMosques(thanaID, unionID uint64) ([]models.Mosque, error) {
	var mosques []models.Mosque
	err := r.db.
		Where("halqa_id IS NULL").
		Where("thana_id = ? AND union_id = ?", thanaID, unionID).
		Order("name ASC").
		Find(&mosques).Error
	if err != nil {
		return nil, err
	}
	return mosques, nil
}

// adjustHalqaCounts applies the member-count delta for a halqa change.
// A no-op when the link does not actually move.
func adjustHalqaCounts(tx *gorm.DB, oldID, newID *uint64) error {
	if equalID(oldID, newID) {
		return nil
	}
	if oldID != nil {
		if err := decrementHalqaCount(tx, *oldID); err != nil {
			return err
		}
	}
	if newID != nil {
		if err := tx.Model(&models.Halqa{}).Where("id = ?", *newID).
			UpdateColumn("members_count", gorm.Expr("members_count + 1")).Error; err != nil {
			return err
		}
	}
	return nil
}

// decrementHalqaCount lowers a halqa's cached member count, never below zero.
// The halqa row may already be gone (dangling member link); that is fine.
func decrementHalqaCount(tx *gorm.DB, halqaID uint64) error {
	return tx.Model(&models.Halqa{}).
		Where("id = ? AND members_count > 0", halqaID).
		UpdateColumn("members_count", gorm.Expr("members_count - 1")).Error
}

func equalID(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
