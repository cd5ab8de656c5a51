package dto

import (
	"time"

	"github.com/dawahnet/outreach-api/internal/models"
)

// AssigneeDTO is the member summary embedded in takaja responses.
type AssigneeDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// TakajaDTO represents a takaja in API responses.
type TakajaDTO struct {
	ID          uint64                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	HalqaID     uint64                `json:"halqa_id"`
	AssignedTo  *uint64               `json:"assigned_to"`
	Status      models.TakajaStatus   `json:"status"`
	Priority    models.TakajaPriority `json:"priority"`
	DueDate     *time.Time            `json:"due_date"`
	CompletedAt *time.Time            `json:"completed_at"`
	CreatedAt   time.Time             `json:"created_at"`

	Assignee *AssigneeDTO `json:"assignee,omitempty"`
}

// ToTakajaDTO converts a Takaja model to TakajaDTO.
func ToTakajaDTO(takaja models.Takaja) TakajaDTO {
	dto := TakajaDTO{
		ID:          takaja.ID,
		Title:       takaja.Title,
		Description: takaja.Description,
		HalqaID:     takaja.HalqaID,
		AssignedTo:  takaja.AssignedTo,
		Status:      takaja.Status,
		Priority:    takaja.Priority,
		DueDate:     takaja.DueDate,
		CompletedAt: takaja.CompletedAt,
		CreatedAt:   takaja.CreatedAt,
	}

	if takaja.Assignee != nil {
		dto.Assignee = &AssigneeDTO{
			ID:    takaja.Assignee.ID,
			Name:  takaja.Assignee.Name,
			Phone: takaja.Assignee.Phone,
		}
	}

	return dto
}

// ToTakajaListDTO converts a slice of takajas.
func ToTakajaListDTO(takajas []models.Takaja) []TakajaDTO {
	dtos := make([]TakajaDTO, len(takajas))
	for i, takaja := range takajas {
		dtos[i] = ToTakajaDTO(takaja)
	}
	return dtos
}
