package models

import (
	"time"

	"gorm.io/datatypes"
)

type UserRole string

const (
	RoleSuperAdmin UserRole = "super_admin"
	RoleManager    UserRole = "manager"
	RoleMember     UserRole = "member"
)

// User is any actor in the system. Phone is the login identity.
// MosqueID/HalqaID may dangle after the referenced row is deleted; readers
// must treat a failed lookup as "no link".
type User struct {
	ID           uint64                      `gorm:"primarykey" json:"id"`
	Name         string                      `gorm:"type:varchar(255);not null" json:"name"`
	Phone        string                      `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	PasswordHash string                      `gorm:"type:varchar(255);not null" json:"-"`
	Email        string                      `gorm:"type:varchar(255)" json:"email"`
	Role         UserRole                    `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	ThanaID      *uint64                     `gorm:"index" json:"thana_id"`
	UnionID      *uint64                     `gorm:"index" json:"union_id"`
	MosqueID     *uint64                     `gorm:"index" json:"mosque_id"`
	HalqaID      *uint64                     `gorm:"index" json:"halqa_id"`
	Activities   datatypes.JSONSlice[string] `json:"activities"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Thana  *Thana  `gorm:"foreignKey:ThanaID" json:"thana,omitempty"`
	Union  *Union  `gorm:"foreignKey:UnionID" json:"union,omitempty"`
	Mosque *Mosque `gorm:"foreignKey:MosqueID" json:"mosque,omitempty"`
	Halqa  *Halqa  `gorm:"foreignKey:HalqaID" json:"halqa,omitempty"`
}
