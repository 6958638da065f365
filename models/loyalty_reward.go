package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LoyaltyReward struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Name        string    `gorm:"not null"`
	Description string
	PointsCost  int     `gorm:"not null"`
	Discount    float64 `gorm:"type:decimal(5,2);default:0.0"` // optional percentage
	IsActive    bool    `gorm:"default:true"`

	gorm.Model
}

func (r *LoyaltyReward) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
