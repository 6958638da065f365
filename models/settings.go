package models

// Settings is a singleton configuration row. The scheduling and loyalty
// services only read it; admins update it through the settings endpoint.
type Settings struct {
	ID uint `gorm:"primaryKey"`

	// Tier thresholds, strictly ascending (Bronze is implicit at 0)
	SilverThreshold   int `gorm:"default:100"`
	GoldThreshold     int `gorm:"default:250"`
	PlatinumThreshold int `gorm:"default:500"`

	DefaultPointsPerService int     `gorm:"default:10"`
	PointsPerCurrencyUnit   float64 `gorm:"type:decimal(5,2);default:1.0"`
	InviteBonusPoints       int     `gorm:"default:25"`
	AutoUpdateTiers         bool    `gorm:"default:true"`

	// Operating hours gate for booking start times, whole hours local time;
	// start inclusive, end exclusive
	WorkingHoursStart int `gorm:"default:9"`
	WorkingHoursEnd   int `gorm:"default:19"`
}
