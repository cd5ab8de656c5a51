package services

import (
	"errors"
	"fmt"

	"github.com/dawahnet/outreach-api/internal/models"
	"github.com/dawahnet/outreach-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrMosqueNotFound = errors.New("mosque not found")
	ErrHalqaNotFound  = errors.New("halqa not found")

	// ErrForeignRegion rejects cross-region assignments. The data layer does
	// not enforce this, so the rule lives here, in front of every
	// association write.
	ErrForeignRegion = errors.New("member, mosque and halqa must share the same thana and union")

	// ErrNotPlainMember rejects halqa/mosque placement for managers and admins.
	ErrNotPlainMember = errors.New("only rank-and-file members can be placed in a halqa or mosque")

	ErrMemberLocationUnset = errors.New("member has no thana/union set")
)

// MembershipService owns the association rules between members, mosques and
// halqas: who may be linked where, and which side effects a relink carries.
type MembershipService struct {
	userRepo       repository.UserRepository
	mosqueRepo     repository.MosqueRepository
	halqaRepo      repository.HalqaRepository
	membershipRepo repository.MembershipRepository
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(
	userRepo repository.UserRepository,
	mosqueRepo repository.MosqueRepository,
	halqaRepo repository.HalqaRepository,
	membershipRepo repository.MembershipRepository,
) *MembershipService {
	return &MembershipService{
		userRepo:       userRepo,
		mosqueRepo:     mosqueRepo,
		halqaRepo:      halqaRepo,
		membershipRepo: membershipRepo,
	}
}

// AssignMemberToHalqa links a member to a halqa, or unlinks with nil.
// Unlinking is idempotent. The member's mosque link is not touched.
func (s *MembershipService) AssignMemberToHalqa(memberID uint64, halqaID *uint64) (*models.User, error) {
	user, err := s.findMember(memberID)
	if err != nil {
		return nil, err
	}

	if halqaID == nil {
		return s.membershipRepo.SetMemberHalqa(memberID, nil)
	}

	if user.Role != models.RoleMember {
		return nil, ErrNotPlainMember
	}

	halqa, err := s.findHalqa(*halqaID)
	if err != nil {
		return nil, err
	}
	if err := s.checkSameRegion(user, halqa.ThanaID, halqa.UnionID); err != nil {
		return nil, err
	}

	return s.membershipRepo.SetMemberHalqa(memberID, halqaID)
}

// ReassignMemberMosque links a member to a mosque AND sets the member's
// halqa to the mosque's halqa — the placement follows the worship venue.
// This cascade is deliberate; callers relying on independent halqa
// membership must use AssignMemberToHalqa afterwards. Passing nil clears
// the mosque link only.
func (s *MembershipService) ReassignMemberMosque(memberID uint64, mosqueID *uint64) (*models.User, error) {
	user, err := s.findMember(memberID)
	if err != nil {
		return nil, err
	}

	if mosqueID == nil {
		// Halqa membership survives leaving the mosque.
		return s.membershipRepo.SetMemberMosque(memberID, nil, user.HalqaID)
	}

	if user.Role != models.RoleMember {
		return nil, ErrNotPlainMember
	}

	mosque, err := s.findMosque(*mosqueID)
	if err != nil {
		return nil, err
	}
	if err := s.checkSameRegion(user, mosque.ThanaID, mosque.UnionID); err != nil {
		return nil, err
	}

	return s.membershipRepo.SetMemberMosque(memberID, mosqueID, mosque.HalqaID)
}

// AssignMosqueToHalqa links a mosque to a halqa, or unlinks with nil.
func (s *MembershipService) AssignMosqueToHalqa(mosqueID uint64, halqaID *uint64) (*models.Mosque, error) {
	mosque, err := s.findMosque(mosqueID)
	if err != nil {
		return nil, err
	}

	if halqaID == nil {
		return s.membershipRepo.SetMosqueHalqa(mosqueID, nil)
	}

	halqa, err := s.findHalqa(*halqaID)
	if err != nil {
		return nil, err
	}
	if mosque.ThanaID != halqa.ThanaID || mosque.UnionID != halqa.UnionID {
		return nil, ErrForeignRegion
	}

	return s.membershipRepo.SetMosqueHalqa(mosqueID, halqaID)
}

// CandidateMembers lists members eligible for placement in the halqa:
// role member, unaffiliated, same thana and union.
func (s *MembershipService) CandidateMembers(halqaID uint64) ([]models.User, error) {
	halqa, err := s.findHalqa(halqaID)
	if err != nil {
		return nil, err
	}
	return s.membershipRepo.CandidateMembers(halqa.ThanaID, halqa.UnionID)
}

// CandidateMosques lists mosques eligible for the halqa: no halqa link,
// same thana and union.
func (s *MembershipService) CandidateMosques(halqaID uint64) ([]models.Mosque, error) {
	halqa, err := s.findHalqa(halqaID)
	if err != nil {
		return nil, err
	}
	return s.membershipRepo.CandidateMosques(halqa.ThanaID, halqa.UnionID)
}

func (s *MembershipService) checkSameRegion(user *models.User, thanaID, unionID uint64) error {
	if user.ThanaID == nil || user.UnionID == nil {
		return ErrMemberLocationUnset
	}
	if *user.ThanaID != thanaID || *user.UnionID != unionID {
		return ErrForeignRegion
	}
	return nil
}

func (s *MembershipService) findMember(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	return user, nil
}

func (s *MembershipService) findMosque(id uint64) (*models.Mosque, error) {
	mosque, err := s.mosqueRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMosqueNotFound
		}
		return nil, fmt.Errorf("failed to find mosque: %w", err)
	}
	return mosque, nil
}

func (s *MembershipService) findHalqa(id uint64) (*models.Halqa, error) {
	halqa, err := s.halqaRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHalqaNotFound
		}
		return nil, fmt.Errorf("failed to find halqa: %w", err)
	}
	return halqa, nil
}
