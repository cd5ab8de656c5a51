package models

import "time"

// AmalSchedule describes a mosque's recurring program: the five amals with
// their time/day text. Stored embedded on the mosque row.
type AmalSchedule struct {
	Active           bool   `json:"active"`
	Mashwara         bool   `json:"mashwara"`
	MashwaraTime     string `gorm:"type:varchar(100)" json:"mashwara_time"`
	Taleem           bool   `json:"taleem"`
	TaleemTime       string `gorm:"type:varchar(100)" json:"taleem_time"`
	Gasht            bool   `json:"gasht"`
	GashtTime        string `gorm:"type:varchar(100)" json:"gasht_time"`
	Jaula            bool   `json:"jaula"`
	JaulaDay         string `gorm:"type:varchar(100)" json:"jaula_day"`
	ThreeDay         bool   `json:"three_day"`
	ThreeDaySchedule string `gorm:"type:varchar(100)" json:"three_day_schedule"`
}

// Mosque is a physical venue tied to a thana/union, optionally linked to a halqa.
type Mosque struct {
	ID       uint64       `gorm:"primarykey" json:"id"`
	Name     string       `gorm:"type:varchar(255);not null" json:"name"`
	Address  string       `gorm:"type:varchar(255)" json:"address"`
	Phone    string       `gorm:"type:varchar(20)" json:"phone"`
	AltPhone string       `gorm:"type:varchar(20)" json:"alt_phone"`
	ThanaID  uint64       `gorm:"not null;index" json:"thana_id"`
	UnionID  uint64       `gorm:"not null;index" json:"union_id"`
	HalqaID  *uint64      `gorm:"index" json:"halqa_id"`
	Schedule AmalSchedule `gorm:"embedded;embeddedPrefix:schedule_" json:"schedule"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Thana *Thana `gorm:"foreignKey:ThanaID" json:"thana,omitempty"`
	Union *Union `gorm:"foreignKey:UnionID" json:"union,omitempty"`
	Halqa *Halqa `gorm:"foreignKey:HalqaID" json:"halqa,omitempty"`
}
