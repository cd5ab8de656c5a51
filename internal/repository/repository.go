package repository

import (
	"github.com/dawahnet/outreach-api/internal/models"
)

// MemberFilter holds filtering options for listing members
type MemberFilter struct {
	Search  string
	ThanaID *uint64
	UnionID *uint64
	Role    models.UserRole
}

// MosqueFilter holds filtering options for listing mosques
type MosqueFilter struct {
	Search  string
	ThanaID *uint64
	UnionID *uint64
	HalqaID *uint64
}

// HalqaFilter holds filtering options for listing halqas
type HalqaFilter struct {
	Search  string
	ThanaID *uint64
	UnionID *uint64
}

// UserRepository defines the interface for member data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.User, error)

	// FindByPhone finds a user by the normalized login phone number
	FindByPhone(phone string) (*models.User, error)

	// List retrieves users matching the filter
	List(filter MemberFilter) ([]models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// Delete hard-deletes a user, adjusting the linked halqa's member count
	Delete(id uint64) error

	// Count returns the total number of users
	Count() (int64, error)
}

// MosqueRepository defines the interface for mosque data access
type MosqueRepository interface {
	Create(mosque *models.Mosque) error
	FindByID(id uint64, preload ...string) (*models.Mosque, error)
	List(filter MosqueFilter) ([]models.Mosque, error)
	Update(mosque *models.Mosque) error
	Delete(id uint64) error
	Count() (int64, error)
}

// HalqaRepository defines the interface for halqa data access
type HalqaRepository interface {
	Create(halqa *models.Halqa) error
	FindByID(id uint64) (*models.Halqa, error)
	List(filter HalqaFilter) ([]models.Halqa, error)
	Update(halqa *models.Halqa) error

	// Delete hard-deletes a halqa together with its takajas. Member and
	// mosque links are left dangling on purpose.
	Delete(id uint64) error
	Count() (int64, error)
}

// TakajaRepository defines the interface for takaja data access
type TakajaRepository interface {
	Create(takaja *models.Takaja) error
	FindByID(id uint64, preload ...string) (*models.Takaja, error)

	// ListByHalqa lists the takajas scoped to one halqa, newest first
	ListByHalqa(halqaID uint64) ([]models.Takaja, error)
	Update(takaja *models.Takaja) error
	Delete(id uint64) error
	Count() (int64, error)
}

// DirectoryRepository provides read access to the seeded thana/union data
type DirectoryRepository interface {
	ListThanas() ([]models.Thana, error)

	// ListUnions lists unions, optionally scoped to one thana (0 = all)
	ListUnions(thanaID uint64) ([]models.Union, error)
	FindThana(id uint64) (*models.Thana, error)
	FindUnion(id uint64) (*models.Union, error)
}

// SettingRepository defines the interface for key-value settings
type SettingRepository interface {
	// Upsert writes a setting; last write wins
	Upsert(key, value string) error
	List() ([]models.Setting, error)
}

// MembershipRepository performs the association writes between members,
// mosques and halqas. Every method that moves a member between halqas runs
// in a single transaction that also maintains halqas.members_count.
type MembershipRepository interface {
	// SetMemberHalqa links (or unlinks, with nil) a member to a halqa
	SetMemberHalqa(userID uint64, halqaID *uint64) (*models.User, error)

	// SetMemberMosque links a member to a mosque and sets the member's
	// halqa to the given final value in the same transaction. Callers pass
	// the mosque's halqa when assigning (the reassignment cascade) or the
	// member's current halqa when only clearing the mosque link.
	SetMemberMosque(userID uint64, mosqueID *uint64, halqaID *uint64) (*models.User, error)

	// SetMosqueHalqa links (or unlinks, with nil) a mosque to a halqa
	SetMosqueHalqa(mosqueID uint64, halqaID *uint64) (*models.Mosque, error)

	// CandidateMembers lists unaffiliated members of the given location:
	// role member, no halqa, no mosque, matching thana and union
	CandidateMembers(thanaID, unionID uint64) ([]models.User, error)

	// CandidateMosques lists mosques of the given location with no halqa
	CandidateMosques(thanaID, unionID uint64) ([]models.Mosque, error)
}
