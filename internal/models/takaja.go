package models

import "time"

type TakajaStatus string

const (
	TakajaStatusPending    TakajaStatus = "pending"
	TakajaStatusInProgress TakajaStatus = "in_progress"
	TakajaStatusCompleted  TakajaStatus = "completed"
)

type TakajaPriority string

const (
	TakajaPriorityLow    TakajaPriority = "low"
	TakajaPriorityNormal TakajaPriority = "normal"
	TakajaPriorityHigh   TakajaPriority = "high"
	TakajaPriorityUrgent TakajaPriority = "urgent"
)

// Takaja is a unit of outreach work scoped to one halqa, optionally assigned
// to a member of that halqa.
type Takaja struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	HalqaID     uint64         `gorm:"not null;index" json:"halqa_id"`
	AssignedTo  *uint64        `gorm:"index" json:"assigned_to"`
	Status      TakajaStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Priority    TakajaPriority `gorm:"type:varchar(20);not null;default:'normal'" json:"priority"`
	DueDate     *time.Time     `json:"due_date"`
	CompletedAt *time.Time     `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Halqa    *Halqa `gorm:"foreignKey:HalqaID" json:"halqa,omitempty"`
	Assignee *User  `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
}
