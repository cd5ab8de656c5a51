package models

import "time"

// Setting is a global key-value configuration row (site title, logo URL,
// theme schedule). Versionless, last write wins.
type Setting struct {
	Key       string    `gorm:"primarykey;type:varchar(100)" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
