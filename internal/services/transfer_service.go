package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dawahnet/outreach-api/internal/constants"
	"github.com/dawahnet/outreach-api/internal/models"
	"github.com/dawahnet/outreach-api/internal/repository"
	"github.com/dawahnet/outreach-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrEmptyBackup = errors.New("backup document is empty")

// RowError points at one failing row of a bulk import. Row numbers are
// spreadsheet rows: 1-based with a header row, so array index + 2.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportSummary aggregates a bulk import. Partial success is normal: bad
// rows are reported individually and never abort the batch.
type ImportSummary struct {
	Success int        `json:"success"`
	Failed  int        `json:"failed"`
	Errors  []RowError `json:"errors"`
}

// MemberImportRow is one member in a bulk payload.
type MemberImportRow struct {
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	Password   string   `json:"password"`
	Email      string   `json:"email"`
	ThanaID    *uint64  `json:"thanaId"`
	UnionID    *uint64  `json:"unionId"`
	Activities []string `json:"activities"`
}

// MosqueImportRow is one mosque in a bulk payload.
type MosqueImportRow struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
	ThanaID *uint64 `json:"thanaId"`
	UnionID *uint64 `json:"unionId"`
}

// HalqaImportRow is one halqa in a bulk payload.
type HalqaImportRow struct {
	Name    string  `json:"name"`
	ThanaID *uint64 `json:"thanaId"`
	UnionID *uint64 `json:"unionId"`
}

// MemberBackup carries the password hash that models.User hides from JSON,
// so a restored database keeps working credentials.
type MemberBackup struct {
	models.User
	PasswordHash string `json:"password_hash"`
}

// BackupDocument is the whole database as one JSON document.
type BackupDocument struct {
	ExportedAt time.Time        `json:"exported_at"`
	Thanas     []models.Thana   `json:"thanas"`
	Unions     []models.Union   `json:"unions"`
	Halqas     []models.Halqa   `json:"halqas"`
	Mosques    []models.Mosque  `json:"mosques"`
	Members    []MemberBackup   `json:"members"`
	Takajas    []models.Takaja  `json:"takajas"`
	Settings   []models.Setting `json:"settings"`
}

// TransferService handles bulk import, export and restore. It works on the
// database handle directly: restore replaces whole tables in one
// transaction, which no per-entity repository exposes.
type TransferService struct {
	db            *gorm.DB
	directoryRepo repository.DirectoryRepository
}

// NewTransferService creates a new TransferService.
func NewTransferService(db *gorm.DB, directoryRepo repository.DirectoryRepository) *TransferService {
	return &TransferService{
		db:            db,
		directoryRepo: directoryRepo,
	}
}

// ImportMembers validates and inserts members row by row. A row without a
// password gets the phone number as its initial password.
func (s *TransferService) ImportMembers(rows []MemberImportRow) *ImportSummary {
	summary := &ImportSummary{Errors: []RowError{}}
	seenPhones := make(map[string]bool, len(rows))

	for i, row := range rows {
		rowNum := i + constants.ImportRowOffset

		if strings.TrimSpace(row.Name) == "" {
			summary.fail(rowNum, "name is required")
			continue
		}

		phone := utils.NormalizePhone(row.Phone)
		if !utils.IsValidPhone(phone) {
			summary.fail(rowNum, fmt.Sprintf("invalid phone number %q", row.Phone))
			continue
		}
		if seenPhones[phone] {
			summary.fail(rowNum, fmt.Sprintf("duplicate phone number %s in payload", phone))
			continue
		}

		var count int64
		if err := s.db.Model(&models.User{}).Where("phone = ?", phone).Count(&count).Error; err != nil {
			summary.fail(rowNum, "failed to check phone number")
			continue
		}
		if count > 0 {
			summary.fail(rowNum, fmt.Sprintf("phone number %s already registered", phone))
			continue
		}

		if err := ValidateLocation(s.directoryRepo, row.ThanaID, row.UnionID); err != nil {
			summary.fail(rowNum, err.Error())
			continue
		}

		password := row.Password
		if password == "" {
			password = phone
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			summary.fail(rowNum, "failed to hash password")
			continue
		}

		user := models.User{
			Name:         strings.TrimSpace(row.Name),
			Phone:        phone,
			PasswordHash: string(hashed),
			Email:        strings.TrimSpace(row.Email),
			Role:         models.RoleMember,
			ThanaID:      row.ThanaID,
			UnionID:      row.UnionID,
			Activities:   datatypes.NewJSONSlice(row.Activities),
		}
		if err := s.db.Create(&user).Error; err != nil {
			summary.fail(rowNum, "failed to save member")
			continue
		}

		seenPhones[phone] = true
		summary.Success++
	}

	return summary
}

// ImportMosques validates and inserts mosques row by row.
func (s *TransferService) ImportMosques(rows []MosqueImportRow) *ImportSummary {
	summary := &ImportSummary{Errors: []RowError{}}

	for i, row := range rows {
		rowNum := i + constants.ImportRowOffset

		if strings.TrimSpace(row.Name) == "" {
			summary.fail(rowNum, "name is required")
			continue
		}
		if row.ThanaID == nil || row.UnionID == nil {
			summary.fail(rowNum, ErrLocationRequired.Error())
			continue
		}
		if err := RequireLocation(s.directoryRepo, *row.ThanaID, *row.UnionID); err != nil {
			summary.fail(rowNum, err.Error())
			continue
		}

		mosque := models.Mosque{
			Name:    strings.TrimSpace(row.Name),
			Address: strings.TrimSpace(row.Address),
			Phone:   row.Phone,
			ThanaID: *row.ThanaID,
			UnionID: *row.UnionID,
		}
		if err := s.db.Create(&mosque).Error; err != nil {
			summary.fail(rowNum, "failed to save mosque")
			continue
		}
		summary.Success++
	}

	return summary
}

// ImportHalqas validates and inserts halqas row by row.
func (s *TransferService) ImportHalqas(rows []HalqaImportRow) *ImportSummary {
	summary := &ImportSummary{Errors: []RowError{}}

	for i, row := range rows {
		rowNum := i + constants.ImportRowOffset

		if strings.TrimSpace(row.Name) == "" {
			summary.fail(rowNum, "name is required")
			continue
		}
		if row.ThanaID == nil || row.UnionID == nil {
			summary.fail(rowNum, ErrLocationRequired.Error())
			continue
		}
		if err := RequireLocation(s.directoryRepo, *row.ThanaID, *row.UnionID); err != nil {
			summary.fail(rowNum, err.Error())
			continue
		}

		halqa := models.Halqa{
			Name:    strings.TrimSpace(row.Name),
			ThanaID: *row.ThanaID,
			UnionID: *row.UnionID,
		}
		if err := s.db.Create(&halqa).Error; err != nil {
			summary.fail(rowNum, "failed to save halqa")
			continue
		}
		summary.Success++
	}

	return summary
}

// Export collects every entity into one backup document.
func (s *TransferService) Export() (*BackupDocument, error) {
	doc := &BackupDocument{ExportedAt: time.Now()}

	if err := s.db.Order("id").Find(&doc.Thanas).Error; err != nil {
		return nil, fmt.Errorf("failed to export thanas: %w", err)
	}
	if err := s.db.Order("id").Find(&doc.Unions).Error; err != nil {
		return nil, fmt.Errorf("failed to export unions: %w", err)
	}
	if err := s.db.Order("id").Find(&doc.Halqas).Error; err != nil {
		return nil, fmt.Errorf("failed to export halqas: %w", err)
	}
	if err := s.db.Order("id").Find(&doc.Mosques).Error; err != nil {
		return nil, fmt.Errorf("failed to export mosques: %w", err)
	}

	var users []models.User
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to export members: %w", err)
	}
	doc.Members = make([]MemberBackup, len(users))
	for i, u := range users {
		doc.Members[i] = MemberBackup{User: u, PasswordHash: u.PasswordHash}
	}

	if err := s.db.Order("id").Find(&doc.Takajas).Error; err != nil {
		return nil, fmt.Errorf("failed to export takajas: %w", err)
	}
	if err := s.db.Find(&doc.Settings).Error; err != nil {
		return nil, fmt.Errorf("failed to export settings: %w", err)
	}

	return doc, nil
}

// Restore replaces halqas, mosques, members, takajas and settings with the
// document's contents, IDs included, inside one transaction. The seeded
// thana/union directory is not restored. All-or-nothing, unlike the
// row-by-row collection imports.
func (s *TransferService) Restore(doc *BackupDocument) error {
	if doc == nil {
		return ErrEmptyBackup
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Takaja{}, &models.User{}, &models.Mosque{}, &models.Halqa{}, &models.Setting{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear table: %w", err)
			}
		}

		if len(doc.Halqas) > 0 {
			if err := tx.Create(&doc.Halqas).Error; err != nil {
				return fmt.Errorf("failed to restore halqas: %w", err)
			}
		}
		if len(doc.Mosques) > 0 {
			if err := tx.Create(&doc.Mosques).Error; err != nil {
				return fmt.Errorf("failed to restore mosques: %w", err)
			}
		}
		for _, m := range doc.Members {
			user := m.User
			user.PasswordHash = m.PasswordHash
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("failed to restore member %s: %w", user.Phone, err)
			}
		}
		if len(doc.Takajas) > 0 {
			if err := tx.Create(&doc.Takajas).Error; err != nil {
				return fmt.Errorf("failed to restore takajas: %w", err)
			}
		}
		if len(doc.Settings) > 0 {
			if err := tx.Create(&doc.Settings).Error; err != nil {
				return fmt.Errorf("failed to restore settings: %w", err)
			}
		}

		return nil
	})
}

func (sum *ImportSummary) fail(row int, message string) {
	sum.Failed++
	sum.Errors = append(sum.Errors, RowError{Row: row, Message: message})
}
