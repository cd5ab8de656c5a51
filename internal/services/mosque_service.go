package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dawahnet/outreach-api/internal/models"
	"github.com/dawahnet/outreach-api/internal/repository"
	"gorm.io/gorm"
)

// MosqueService handles mosque CRUD with location validation. Halqa linking
// goes through MembershipService.
type MosqueService struct {
	mosqueRepo    repository.MosqueRepository
	halqaRepo     repository.HalqaRepository
	directoryRepo repository.DirectoryRepository
}

// NewMosqueService creates a new MosqueService.
func NewMosqueService(
	mosqueRepo repository.MosqueRepository,
	halqaRepo repository.HalqaRepository,
	directoryRepo repository.DirectoryRepository,
) *MosqueService {
	return &MosqueService{
		mosqueRepo:    mosqueRepo,
		halqaRepo:     halqaRepo,
		directoryRepo: directoryRepo,
	}
}

// List returns mosques matching the filter.
func (s *MosqueService) List(filter repository.MosqueFilter) ([]models.Mosque, error) {
	mosques, err := s.mosqueRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list mosques: %w", err)
	}
	return mosques, nil
}

// Get returns one mosque with location and halqa preloaded.
func (s *MosqueService) Get(id uint64) (*models.Mosque, error) {
	mosque, err := s.mosqueRepo.FindByID(id, "Thana", "Union", "Halqa")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMosqueNotFound
		}
		return nil, fmt.Errorf("failed to find mosque: %w", err)
	}
	return mosque, nil
}

// CreateMosqueInput represents input for creating a mosque.
type CreateMosqueInput struct {
	Name     string
	Address  string
	Phone    string
	AltPhone string
	ThanaID  uint64
	UnionID  uint64
	HalqaID  *uint64
	Schedule *models.AmalSchedule
}

// Create creates a mosque. An initial halqa link, when given, must share
// the mosque's thana and union.
func (s *MosqueService) Create(input CreateMosqueInput) (*models.Mosque, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if err := RequireLocation(s.directoryRepo, input.ThanaID, input.UnionID); err != nil {
		return nil, err
	}

	if input.HalqaID != nil {
		halqa, err := s.halqaRepo.FindByID(*input.HalqaID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrHalqaNotFound
			}
			return nil, fmt.Errorf("failed to find halqa: %w", err)
		}
		if halqa.ThanaID != input.ThanaID || halqa.UnionID != input.UnionID {
			return nil, ErrForeignRegion
		}
	}

	mosque := &models.Mosque{
		Name:     name,
		Address:  strings.TrimSpace(input.Address),
		Phone:    input.Phone,
		AltPhone: input.AltPhone,
		ThanaID:  input.ThanaID,
		UnionID:  input.UnionID,
		HalqaID:  input.HalqaID,
	}
	if input.Schedule != nil {
		mosque.Schedule = *input.Schedule
	}

	if err := s.mosqueRepo.Create(mosque); err != nil {
		return nil, fmt.Errorf("failed to create mosque: %w", err)
	}
	return mosque, nil
}

// UpdateMosqueInput represents a partial mosque update.
type UpdateMosqueInput struct {
	Name     *string
	Address  *string
	Phone    *string
	AltPhone *string
	ThanaID  *uint64
	UnionID  *uint64
	Schedule *models.AmalSchedule
}

// Update applies a partial update. Changing the location does not migrate
// the halqa link or dependent members; future candidate lists simply use
// the new location.
func (s *MosqueService) Update(id uint64, input UpdateMosqueInput) (*models.Mosque, error) {
	mosque, err := s.mosqueRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMosqueNotFound
		}
		return nil, fmt.Errorf("failed to find mosque: %w", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		mosque.Name = name
	}
	if input.Address != nil {
		mosque.Address = strings.TrimSpace(*input.Address)
	}
	if input.Phone != nil {
		mosque.Phone = *input.Phone
	}
	if input.AltPhone != nil {
		mosque.AltPhone = *input.AltPhone
	}
	if input.Schedule != nil {
		mosque.Schedule = *input.Schedule
	}

	if input.ThanaID != nil || input.UnionID != nil {
		thanaID := mosque.ThanaID
		unionID := mosque.UnionID
		if input.ThanaID != nil {
			thanaID = *input.ThanaID
		}
		if input.UnionID != nil {
			unionID = *input.UnionID
		}
		if err := RequireLocation(s.directoryRepo, thanaID, unionID); err != nil {
			return nil, err
		}
		mosque.ThanaID = thanaID
		mosque.UnionID = unionID
	}

	if err := s.mosqueRepo.Update(mosque); err != nil {
		return nil, fmt.Errorf("failed to update mosque: %w", err)
	}
	return mosque, nil
}

// Delete hard-deletes a mosque. Members keep their now-dangling mosque link.
func (s *MosqueService) Delete(id uint64) error {
	if _, err := s.mosqueRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMosqueNotFound
		}
		return fmt.Errorf("failed to find mosque: %w", err)
	}
	if err := s.mosqueRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete mosque: %w", err)
	}
	return nil
}
