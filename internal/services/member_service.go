package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dawahnet/outreach-api/internal/constants"
	"github.com/dawahnet/outreach-api/internal/models"
	"github.com/dawahnet/outreach-api/internal/repository"
	"github.com/dawahnet/outreach-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrManagerListRestricted   = errors.New("only a super admin can list managers")
	ErrManagerManageRestricted = errors.New("only a super admin can create or modify managers")
	ErrSelfEditOnly            = errors.New("members can only edit their own profile")
	ErrProfileFieldsOnly       = errors.New("members may only update their own name, email and activities")
	ErrRoleChangeRestricted    = errors.New("only a super admin can change roles")
	ErrInvalidRole             = errors.New("invalid role")
)

// MemberService handles member listing and account administration. The
// association operations (halqa/mosque placement) live in MembershipService.
type MemberService struct {
	userRepo      repository.UserRepository
	directoryRepo repository.DirectoryRepository
}

// NewMemberService creates a new MemberService.
func NewMemberService(userRepo repository.UserRepository, directoryRepo repository.DirectoryRepository) *MemberService {
	return &MemberService{
		userRepo:      userRepo,
		directoryRepo: directoryRepo,
	}
}

// List returns members matching the filter. The role filter defaults to
// "member"; listing managers (or admins) is a super-admin capability.
func (s *MemberService) List(filter repository.MemberFilter, actorRole models.UserRole) ([]models.User, error) {
	if filter.Role == "" {
		filter.Role = models.RoleMember
	}
	if filter.Role != models.RoleMember && actorRole != models.RoleSuperAdmin {
		return nil, ErrManagerListRestricted
	}

	users, err := s.userRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return users, nil
}

// Get returns one member with location and placement preloaded.
func (s *MemberService) Get(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id, "Thana", "Union", "Mosque", "Halqa")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	return user, nil
}

// CreateMemberInput represents input for admin-side member creation.
type CreateMemberInput struct {
	Name       string
	Phone      string
	Password   string
	Email      string
	Role       models.UserRole
	ThanaID    *uint64
	UnionID    *uint64
	Activities []string
}

// Create adds a member (or, for a super admin, a manager) directly.
func (s *MemberService) Create(input CreateMemberInput, actorRole models.UserRole) (*models.User, error) {
	role := input.Role
	if role == "" {
		role = models.RoleMember
	}
	switch role {
	case models.RoleMember:
	case models.RoleManager:
		if actorRole != models.RoleSuperAdmin {
			return nil, ErrManagerManageRestricted
		}
	default:
		return nil, ErrInvalidRole
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	phone := utils.NormalizePhone(input.Phone)
	if !utils.IsValidPhone(phone) {
		return nil, ErrInvalidPhone
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if err := ValidateLocation(s.directoryRepo, input.ThanaID, input.UnionID); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByPhone(phone); err == nil {
		return nil, ErrPhoneTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check phone: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:         name,
		Phone:        phone,
		PasswordHash: string(hashedPassword),
		Email:        strings.TrimSpace(input.Email),
		Role:         role,
		ThanaID:      input.ThanaID,
		UnionID:      input.UnionID,
		Activities:   datatypes.NewJSONSlice(input.Activities),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	return user, nil
}

// UpdateMemberInput represents a partial member update. Nil fields are left
// unchanged.
type UpdateMemberInput struct {
	Name       *string
	Email      *string
	Activities *[]string
	Password   *string
	Phone      *string
	ThanaID    *uint64
	UnionID    *uint64
	Role       *models.UserRole
}

// Update applies a partial update under the role rules: a member may edit
// only their own name, email, activities and password; a manager may edit
// plain members; role changes are super-admin only.
func (s *MemberService) Update(id uint64, input UpdateMemberInput, actorID uint64, actorRole models.UserRole) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	isSelf := actorID == id

	switch actorRole {
	case models.RoleMember:
		if !isSelf {
			return nil, ErrSelfEditOnly
		}
		if input.Phone != nil || input.ThanaID != nil || input.UnionID != nil || input.Role != nil {
			return nil, ErrProfileFieldsOnly
		}
	case models.RoleManager:
		if user.Role != models.RoleMember && !isSelf {
			return nil, ErrManagerManageRestricted
		}
		if input.Role != nil {
			return nil, ErrRoleChangeRestricted
		}
	case models.RoleSuperAdmin:
		// Full rights; role validated below.
	default:
		return nil, ErrInvalidRole
	}

	if input.Role != nil {
		switch *input.Role {
		case models.RoleMember, models.RoleManager:
			user.Role = *input.Role
		default:
			return nil, ErrInvalidRole
		}
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		user.Name = name
	}
	if input.Email != nil {
		user.Email = strings.TrimSpace(*input.Email)
	}
	if input.Activities != nil {
		user.Activities = datatypes.NewJSONSlice(*input.Activities)
	}
	if input.Password != nil {
		if len(*input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hashed)
	}

	if input.Phone != nil {
		phone := utils.NormalizePhone(*input.Phone)
		if !utils.IsValidPhone(phone) {
			return nil, ErrInvalidPhone
		}
		if phone != user.Phone {
			if _, err := s.userRepo.FindByPhone(phone); err == nil {
				return nil, ErrPhoneTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check phone: %w", err)
			}
			user.Phone = phone
		}
	}

	if input.ThanaID != nil || input.UnionID != nil {
		thanaID := user.ThanaID
		unionID := user.UnionID
		if input.ThanaID != nil {
			thanaID = input.ThanaID
		}
		if input.UnionID != nil {
			unionID = input.UnionID
		}
		if err := ValidateLocation(s.directoryRepo, thanaID, unionID); err != nil {
			return nil, err
		}
		// Existing halqa/mosque links are not migrated on a location change.
		user.ThanaID = thanaID
		user.UnionID = unionID
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	return s.Get(id)
}

// Delete hard-deletes a member. Route-level access control restricts this
// to super admins.
func (s *MemberService) Delete(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}
