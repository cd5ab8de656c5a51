package models

import "time"

// Halqa is an organizational circle of members within one thana/union.
// MembersCount is denormalized; every membership write adjusts it in the
// same transaction (see repository.MembershipRepository).
type Halqa struct {
	ID           uint64 `gorm:"primarykey" json:"id"`
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	ThanaID      uint64 `gorm:"not null;index" json:"thana_id"`
	UnionID      uint64 `gorm:"not null;index" json:"union_id"`
	MembersCount int    `gorm:"not null;default:0" json:"members_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Thana *Thana `gorm:"foreignKey:ThanaID" json:"thana,omitempty"`
	Union *Union `gorm:"foreignKey:UnionID" json:"union,omitempty"`
}
