package database

import (
	"fmt"

	"github.com/dawahnet/outreach-api/internal/models"
	"gorm.io/gorm"
)

type seedThana struct {
	name   string
	bnName string
	unions [][2]string
}

// Administrative directory for the network's district. Seeded once; the
// count check keeps restarts from duplicating rows.
var directory = []seedThana{
	{"Sadar", "সদর", [][2]string{
		{"Paurashava", "পৌরসভা"},
		{"Char Anandabas", "চর আনন্দবাস"},
		{"Mohanpur", "মোহনপুর"},
		{"Islampur", "ইসলামপুর"},
	}},
	{"Daulatpur", "দৌলতপুর", [][2]string{
		{"Adabaria", "আদাবাড়িয়া"},
		{"Hogalbaria", "হোগলবাড়িয়া"},
		{"Philipnagar", "ফিলিপনগর"},
	}},
	{"Bheramara", "ভেড়ামারা", [][2]string{
		{"Bahadurpur", "বাহাদুরপুর"},
		{"Chandgram", "চাঁদগ্রাম"},
		{"Juniadah", "জুনিয়াদহ"},
	}},
	{"Mirpur", "মিরপুর", [][2]string{
		{"Amla", "আমলা"},
		{"Sadarpur", "সদরপুর"},
		{"Chithalia", "চিথলিয়া"},
	}},
	{"Kumarkhali", "কুমারখালী", [][2]string{
		{"Kaya", "কয়া"},
		{"Shilaidaha", "শিলাইদহ"},
		{"Jaduboyra", "যদুবয়রা"},
	}},
}

// SeedDirectory inserts the thana/union reference data if the tables are empty.
func SeedDirectory(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Thana{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check thana count: %w", err)
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, t := range directory {
			thana := models.Thana{Name: t.name, BnName: t.bnName}
			if err := tx.Create(&thana).Error; err != nil {
				return fmt.Errorf("failed to seed thana %s: %w", t.name, err)
			}

			unions := make([]models.Union, len(t.unions))
			for i, u := range t.unions {
				unions[i] = models.Union{ThanaID: thana.ID, Name: u[0], BnName: u[1]}
			}
			if err := tx.Create(&unions).Error; err != nil {
				return fmt.Errorf("failed to seed unions for %s: %w", t.name, err)
			}
		}
		return nil
	})
}
