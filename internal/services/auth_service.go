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
	"gorm.io/gorm"
)

var (
	ErrPhoneTaken           = errors.New("phone number already registered")
	ErrInvalidPhone         = errors.New("invalid phone number")
	ErrInvalidCredentials   = errors.New("invalid phone number or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("member not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration and login.
type AuthService struct {
	userRepo      repository.UserRepository
	directoryRepo repository.DirectoryRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, directoryRepo repository.DirectoryRepository) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		directoryRepo: directoryRepo,
	}
}

// RegisterInput represents the required information to create a new member.
type RegisterInput struct {
	Name     string
	Phone    string
	Password string
	Email    string
	ThanaID  *uint64
	UnionID  *uint64
}

// Register creates a new rank-and-file member. The public endpoint never
// creates managers; those are created by a super admin through the members
// API.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
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
		Role:         models.RoleMember,
		ThanaID:      input.ThanaID,
		UnionID:      input.UnionID,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Phone    string
	Password string
}

// Login verifies credentials and returns the authenticated member.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	phone := utils.NormalizePhone(input.Phone)

	user, err := s.userRepo.FindByPhone(phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a member by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id, "Thana", "Union", "Mosque", "Halqa")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	return user, nil
}
