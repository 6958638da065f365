package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description string
	Price       float64 `gorm:"type:decimal(10,2);not null"`
	Duration    int     // in minutes
	// MaxConcurrent is how many bookings of this service may overlap
	// (e.g. two manicure stations); capacity for self-service booking.
	MaxConcurrent int    `gorm:"default:1"`
	Points        int    `gorm:"default:0"` // loyalty grant on completion, 0 = settings default
	Category      string `gorm:"default:'General'"`
	IsActive      bool   `gorm:"default:true"`

	gorm.Model
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
