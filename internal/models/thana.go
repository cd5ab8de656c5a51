package models

// Thana is a top-level administrative subdivision. Seeded once, read-only.
type Thana struct {
	ID     uint64 `gorm:"primarykey" json:"id"`
	Name   string `gorm:"type:varchar(100);not null" json:"name"`
	BnName string `gorm:"type:varchar(100);not null" json:"bn_name"`

	// Relations
	Unions []Union `gorm:"foreignKey:ThanaID;constraint:OnDelete:CASCADE" json:"unions,omitempty"`
}
