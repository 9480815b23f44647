package utils

import (
	"dailybuzz/internal/constants"
	"dailybuzz/internal/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func InitDatabase(dbPath string) (*gorm.DB, error) {
	if dbPath == "" {
		dbPath = "dailybuzz.db"
	}
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&models.Post{}, &models.Setting{})
	if err != nil {
		return nil, err
	}

	// FTS virtual table for the search page. Kept in sync by the service
	// layer on every write and delete rather than by triggers.
	ftsTableSQL := `
	CREATE VIRTUAL TABLE IF NOT EXISTS posts_fts USING fts5(
		title,
		content
	);`
	if err := db.Exec(ftsTableSQL).Error; err != nil {
		return nil, err
	}

	if err := seedSettings(db); err != nil {
		return nil, err
	}

	return db, nil
}

// seedSettings populates the database with default settings if they don't exist.
func seedSettings(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	defaultSettings := map[string]string{
		constants.SettingPasswordHash:    string(hash),
		constants.SettingSiteTitle:       "DailyBuzz",
		constants.SettingSiteDescription: "Your daily dose of news, inspiration, and creativity",
		constants.SettingSnapshotCron:    "",
	}

	for key, value := range defaultSettings {
		setting := models.Setting{Key: key}
		result := db.FirstOrCreate(&setting, models.Setting{Key: key})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			// Only set the value if the record was just created
			setting.Value = value
			db.Save(&setting)
		}
	}

	return nil
}
