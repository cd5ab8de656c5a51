package models

// Union is a subdivision within a Thana. Seeded once, read-only.
type Union struct {
	ID      uint64 `gorm:"primarykey" json:"id"`
	ThanaID uint64 `gorm:"not null;index" json:"thana_id"`
	Name    string `gorm:"type:varchar(100);not null" json:"name"`
	BnName  string `gorm:"type:varchar(100);not null" json:"bn_name"`

	// Relations
	Thana *Thana `gorm:"foreignKey:ThanaID" json:"thana,omitempty"`
}
