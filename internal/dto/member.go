package dto

import (
	"time"

	"github.com/dawahnet/outreach-api/internal/models"
)

// RefDTO is a minimal reference to a named entity.
type RefDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// MemberDTO represents a member in API responses. The password hash never
// leaves the model, but the DTO also controls which relations appear.
type MemberDTO struct {
	ID         uint64          `json:"id"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Email      string          `json:"email,omitempty"`
	Role       models.UserRole `json:"role"`
	ThanaID    *uint64         `json:"thana_id"`
	UnionID    *uint64         `json:"union_id"`
	MosqueID   *uint64         `json:"mosque_id"`
	HalqaID    *uint64         `json:"halqa_id"`
	Activities []string        `json:"activities"`
	CreatedAt  time.Time       `json:"created_at"`

	Thana  *RefDTO `json:"thana,omitempty"`
	Union  *RefDTO `json:"union,omitempty"`
	Mosque *RefDTO `json:"mosque,omitempty"`
	Halqa  *RefDTO `json:"halqa,omitempty"`
}

// ToMemberDTO converts a User model to MemberDTO.
func ToMemberDTO(user models.User) MemberDTO {
	dto := MemberDTO{
		ID:         user.ID,
		Name:       user.Name,
		Phone:      user.Phone,
		Email:      user.Email,
		Role:       user.Role,
		ThanaID:    user.ThanaID,
		UnionID:    user.UnionID,
		MosqueID:   user.MosqueID,
		HalqaID:    user.HalqaID,
		Activities: []string(user.Activities),
		CreatedAt:  user.CreatedAt,
	}
	if dto.Activities == nil {
		dto.Activities = []string{}
	}

	if user.Thana != nil {
		dto.Thana = &RefDTO{ID: user.Thana.ID, Name: user.Thana.Name}
	}
	if user.Union != nil {
		dto.Union = &RefDTO{ID: user.Union.ID, Name: user.Union.Name}
	}
	if user.Mosque != nil {
		dto.Mosque = &RefDTO{ID: user.Mosque.ID, Name: user.Mosque.Name}
	}
	if user.Halqa != nil {
		dto.Halqa = &RefDTO{ID: user.Halqa.ID, Name: user.Halqa.Name}
	}

	return dto
}

// ToMemberListDTO converts a slice of users.
func ToMemberListDTO(users []models.User) []MemberDTO {
	dtos := make([]MemberDTO, len(users))
	for i, user := range users {
		dtos[i] = ToMemberDTO(user)
	}
	return dtos
}
