package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dawahnet/outreach-api/internal/models"
	"github.com/dawahnet/outreach-api/internal/repository"
	"gorm.io/gorm"
)

// HalqaService handles halqa CRUD with location validation.
type HalqaService struct {
	halqaRepo     repository.HalqaRepository
	directoryRepo repository.DirectoryRepository
}

// NewHalqaService creates a new HalqaService.
func NewHalqaService(halqaRepo repository.HalqaRepository, directoryRepo repository.DirectoryRepository) *HalqaService {
	return &HalqaService{
		halqaRepo:     halqaRepo,
		directoryRepo: directoryRepo,
	}
}

// List returns halqas matching the filter.
func (s *HalqaService) List(filter repository.HalqaFilter) ([]models.Halqa, error) {
	halqas, err := s.halqaRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list halqas: %w", err)
	}
	return halqas, nil
}

// Get returns one halqa.
func (s *HalqaService) Get(id uint64) (*models.Halqa, error) {
	halqa, err := s.halqaRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHalqaNotFound
		}
		return nil, fmt.Errorf("failed to find halqa: %w", err)
	}
	return halqa, nil
}

// CreateHalqaInput represents input for creating a halqa.
type CreateHalqaInput struct {
	Name    string
	ThanaID uint64
	UnionID uint64
}

// Create creates a halqa with an empty membership.
func (s *HalqaService) Create(input CreateHalqaInput) (*models.Halqa, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if err := RequireLocation(s.directoryRepo, input.ThanaID, input.UnionID); err != nil {
		return nil, err
	}

	halqa := &models.Halqa{
		Name:    name,
		ThanaID: input.ThanaID,
		UnionID: input.UnionID,
	}
	if err := s.halqaRepo.Create(halqa); err != nil {
		return nil, fmt.Errorf("failed to create halqa: %w", err)
	}
	return halqa, nil
}

// UpdateHalqaInput represents a partial halqa update.
type UpdateHalqaInput struct {
	Name    *string
	ThanaID *uint64
	UnionID *uint64
}

// Update applies a partial update. Changing the location does not migrate
// linked mosques or members; only future candidate lists see the change.
func (s *HalqaService) Update(id uint64, input UpdateHalqaInput) (*models.Halqa, error) {
	halqa, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		halqa.Name = name
	}

	if input.ThanaID != nil || input.UnionID != nil {
		thanaID := halqa.ThanaID
		unionID := halqa.UnionID
		if input.ThanaID != nil {
			thanaID = *input.ThanaID
		}
		if input.UnionID != nil {
			unionID = *input.UnionID
		}
		if err := RequireLocation(s.directoryRepo, thanaID, unionID); err != nil {
			return nil, err
		}
		halqa.ThanaID = thanaID
		halqa.UnionID = unionID
	}

	if err := s.halqaRepo.Update(halqa); err != nil {
		return nil, fmt.Errorf("failed to update halqa: %w", err)
	}
	return halqa, nil
}

// Delete hard-deletes a halqa and its takajas. Members and mosques keep
// their now-dangling halqa links.
func (s *HalqaService) Delete(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.halqaRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete halqa: %w", err)
	}
	return nil
}
