package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dawahnet/outreach-api/internal/models"
	"github.com/dawahnet/outreach-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTakajaNotFound   = errors.New("takaja not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrAssigneeNotFound = errors.New("assignee not found")

	// ErrMemberNotInHalqa rejects assigning a takaja to someone outside its
	// halqa.
	ErrMemberNotInHalqa = errors.New("assignee does not belong to the takaja's halqa")

	// ErrTakajaCompleted blocks any transition out of completed.
	ErrTakajaCompleted = errors.New("takaja is already completed")
)

// TakajaService owns the takaja state machine:
// pending → in_progress → completed, completed terminal.
type TakajaService struct {
	takajaRepo repository.TakajaRepository
	halqaRepo  repository.HalqaRepository
	userRepo   repository.UserRepository
}

// NewTakajaService creates a new TakajaService.
func NewTakajaService(
	takajaRepo repository.TakajaRepository,
	halqaRepo repository.HalqaRepository,
	userRepo repository.UserRepository,
) *TakajaService {
	return &TakajaService{
		takajaRepo: takajaRepo,
		halqaRepo:  halqaRepo,
		userRepo:   userRepo,
	}
}

// CreateTakajaInput represents input for creating a takaja.
type CreateTakajaInput struct {
	Title       string
	Description string
	HalqaID     uint64
	AssignedTo  *uint64
	Priority    models.TakajaPriority
	DueDate     *time.Time
}

// ListByHalqa returns the takajas of one halqa, newest first.
func (s *TakajaService) ListByHalqa(halqaID uint64) ([]models.Takaja, error) {
	if _, err := s.halqaRepo.FindByID(halqaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHalqaNotFound
		}
		return nil, fmt.Errorf("failed to find halqa: %w", err)
	}

	takajas, err := s.takajaRepo.ListByHalqa(halqaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list takajas: %w", err)
	}
	return takajas, nil
}

// Get returns a takaja with its assignee.
func (s *TakajaService) Get(id uint64) (*models.Takaja, error) {
	return s.find(id, "Assignee", "Halqa")
}

// Create creates a takaja. Supplying an assignee at creation means the work
// has started: the initial status becomes in_progress instead of pending.
func (s *TakajaService) Create(input CreateTakajaInput) (*models.Takaja, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if _, err := s.halqaRepo.FindByID(input.HalqaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHalqaNotFound
		}
		return nil, fmt.Errorf("failed to find halqa: %w", err)
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TakajaPriorityNormal
	}
	switch priority {
	case models.TakajaPriorityLow, models.TakajaPriorityNormal,
		models.TakajaPriorityHigh, models.TakajaPriorityUrgent:
	default:
		return nil, ErrInvalidPriority
	}

	status := models.TakajaStatusPending
	if input.AssignedTo != nil {
		if err := s.checkAssignee(*input.AssignedTo, input.HalqaID); err != nil {
			return nil, err
		}
		status = models.TakajaStatusInProgress
	}

	takaja := &models.Takaja{
		Title:       title,
		Description: input.Description,
		HalqaID:     input.HalqaID,
		AssignedTo:  input.AssignedTo,
		Status:      status,
		Priority:    priority,
		DueDate:     input.DueDate,
	}

	if err := s.takajaRepo.Create(takaja); err != nil {
		return nil, fmt.Errorf("failed to create takaja: %w", err)
	}

	return s.takajaRepo.FindByID(takaja.ID, "Assignee")
}

// Assign sets (or clears, with nil) the assignee. Unlike creation, assigning
// later never changes the status. Completed takajas cannot be reassigned.
func (s *TakajaService) Assign(takajaID uint64, userID *uint64) (*models.Takaja, error) {
	takaja, err := s.find(takajaID)
	if err != nil {
		return nil, err
	}
	if takaja.Status == models.TakajaStatusCompleted {
		return nil, ErrTakajaCompleted
	}

	if userID != nil {
		if err := s.checkAssignee(*userID, takaja.HalqaID); err != nil {
			return nil, err
		}
	}

	takaja.AssignedTo = userID
	if err := s.takajaRepo.Update(takaja); err != nil {
		return nil, fmt.Errorf("failed to assign takaja: %w", err)
	}

	return s.takajaRepo.FindByID(takajaID, "Assignee")
}

// Complete marks the takaja completed with a server-side timestamp.
// Re-completing is allowed and only refreshes the timestamp.
func (s *TakajaService) Complete(takajaID uint64) (*models.Takaja, error) {
	takaja, err := s.find(takajaID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	takaja.Status = models.TakajaStatusCompleted
	takaja.CompletedAt = &now

	if err := s.takajaRepo.Update(takaja); err != nil {
		return nil, fmt.Errorf("failed to complete takaja: %w", err)
	}

	return s.takajaRepo.FindByID(takajaID, "Assignee")
}

// Delete hard-deletes a takaja in any state.
func (s *TakajaService) Delete(takajaID uint64) error {
	if _, err := s.find(takajaID); err != nil {
		return err
	}

	if err := s.takajaRepo.Delete(takajaID); err != nil {
		return fmt.Errorf("failed to delete takaja: %w", err)
	}
	return nil
}

func (s *TakajaService) find(id uint64, preload ...string) (*models.Takaja, error) {
	takaja, err := s.takajaRepo.FindByID(id, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTakajaNotFound
		}
		return nil, fmt.Errorf("failed to find takaja: %w", err)
	}
	return takaja, nil
}

func (s *TakajaService) checkAssignee(userID, halqaID uint64) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotFound
		}
		return fmt.Errorf("failed to find assignee: %w", err)
	}

	if user.HalqaID == nil || *user.HalqaID != halqaID {
		return ErrMemberNotInHalqa
	}
	return nil
}
