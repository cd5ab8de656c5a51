package services

import (
	"errors"
	"fmt"

	"github.com/dawahnet/outreach-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNameRequired      = errors.New("name is required")
	ErrThanaNotFound     = errors.New("thana not found")
	ErrUnionNotFound     = errors.New("union not found")
	ErrUnionOutsideThana = errors.New("union does not belong to the selected thana")
	ErrLocationRequired  = errors.New("thana and union are required")
)

// ValidateLocation checks an optional thana/union pair: either both are
// unset, or both resolve and the union belongs to the thana.
func ValidateLocation(repo repository.DirectoryRepository, thanaID, unionID *uint64) error {
	if thanaID == nil && unionID == nil {
		return nil
	}
	if thanaID == nil || unionID == nil {
		return ErrLocationRequired
	}
	return RequireLocation(repo, *thanaID, *unionID)
}

// RequireLocation checks a mandatory thana/union pair.
func RequireLocation(repo repository.DirectoryRepository, thanaID, unionID uint64) error {
	if thanaID == 0 || unionID == 0 {
		return ErrLocationRequired
	}

	if _, err := repo.FindThana(thanaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrThanaNotFound
		}
		return fmt.Errorf("failed to find thana: %w", err)
	}

	union, err := repo.FindUnion(unionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnionNotFound
		}
		return fmt.Errorf("failed to find union: %w", err)
	}
	if union.ThanaID != thanaID {
		return ErrUnionOutsideThana
	}

	return nil
}
