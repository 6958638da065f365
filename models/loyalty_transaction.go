package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TxEarned      = "earned"
	TxRedeemed    = "redeemed"
	TxAdminAdjust = "admin_adjust"
	TxBonus       = "bonus"
)

// LoyaltyTransaction is an append-only ledger row. Points holds the delta
// actually applied to the balance (after the zero floor), so the ledger sum
// reconciles with User.LoyaltyPoints.
type LoyaltyTransaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Points      int       `gorm:"not null"` // signed delta
	Type        string    `gorm:"type:varchar(20);not null"`
	Description string

	AppointmentID *uuid.UUID `gorm:"type:uuid;index"`
	RewardID      *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time
}

func (t *LoyaltyTransaction) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
