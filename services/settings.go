package services

import (
	"errors"

	"beautysalon-backend/models"

	"gorm.io/gorm"
)

func DefaultSettings() models.Settings {
	return models.Settings{
		ID:                      1,
		SilverThreshold:         100,
		GoldThreshold:           250,
		PlatinumThreshold:       500,
		DefaultPointsPerService: 10,
		PointsPerCurrencyUnit:   1,
		InviteBonusPoints:       25,
		AutoUpdateTiers:         true,
		WorkingHoursStart:       9,
		WorkingHoursEnd:         19,
	}
}

// LoadSettings returns the singleton settings row, falling back to defaults
// when it has not been seeded yet.
func LoadSettings(db *gorm.DB) (models.Settings, error) {
	var s models.Settings
	if err := db.First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DefaultSettings(), nil
		}
		return models.Settings{}, err
	}
	return s, nil
}

// SeedSettings creates the settings row on first startup.
func SeedSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Settings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	s := DefaultSettings()
	return db.Create(&s).Error
}
