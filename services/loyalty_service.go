package services

import (
	"errors"
	"fmt"

	"beautysalon-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoyaltyService is the only writer of loyalty points, tiers and ledger rows.
// Every mutation appends a transaction row atomically with the balance
// update.
type LoyaltyService struct {
	db *gorm.DB
}

func NewLoyaltyService(db *gorm.DB) *LoyaltyService {
	return &LoyaltyService{db: db}
}

// TierForPoints maps a balance to a tier name using the configured
// thresholds. Thresholds are ascending by configuration contract.
func TierForPoints(points int, s models.Settings) string {
	switch {
	case points >= s.PlatinumThreshold:
		return models.TierPlatinum
	case points >= s.GoldThreshold:
		return models.TierGold
	case points >= s.SilverThreshold:
		return models.TierSilver
	default:
		return models.TierBronze
	}
}

// Adjust applies a signed point delta to the user's balance, appends the
// ledger row and recalculates the tier, all in one transaction. Returns the
// new balance.
func (s *LoyaltyService) Adjust(userID uuid.UUID, delta int, txType, description string, appointmentID, rewardID *uuid.UUID) (int, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	newBalance, err := s.adjustTx(tx, userID, delta, txType, description, appointmentID, rewardID)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	if err := tx.Commit().Error; err != nil {
		return 0, err
	}
	return newBalance, nil
}

// adjustTx is the transaction-scoped core of Adjust, shared with the
// appointment lifecycle so completion side effects land in the same
// transaction as the appointment update.
//
// The stored balance never goes below zero. When the clamp fires, the ledger
// row records the delta actually applied, not the requested one, so the
// ledger sum stays reconcilable with the balance.
func (s *LoyaltyService) adjustTx(tx *gorm.DB, userID uuid.UUID, delta int, txType, description string, appointmentID, rewardID *uuid.UUID) (int, error) {
	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return 0, err
	}

	applied := delta
	newBalance := user.LoyaltyPoints + delta
	if newBalance < 0 {
		applied = -user.LoyaltyPoints
		newBalance = 0
	}

	if err := tx.Model(&user).Update("loyalty_points", newBalance).Error; err != nil {
		return 0, err
	}

	entry := models.LoyaltyTransaction{
		UserID:        user.ID,
		Points:        applied,
		Type:          txType,
		Description:   description,
		AppointmentID: appointmentID,
		RewardID:      rewardID,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return 0, err
	}

	settings, err := LoadSettings(tx)
	if err != nil {
		return 0, err
	}
	if settings.AutoUpdateTiers {
		tier := TierForPoints(newBalance, settings)
		if tier != user.LoyaltyTier {
			if err := tx.Model(&user).Update("loyalty_tier", tier).Error; err != nil {
				return 0, err
			}
		}
	}

	return newBalance, nil
}

// Redeem exchanges points for a reward. Fails without writing anything when
// the user holds fewer points than the reward costs.
func (s *LoyaltyService) Redeem(userID, rewardID uuid.UUID) (int, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var reward models.LoyaltyReward
	if err := tx.Where("id = ? AND is_active = ?", rewardID, true).First(&reward).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: reward %s", ErrNotFound, rewardID)
		}
		return 0, err
	}

	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return 0, err
	}

	if user.LoyaltyPoints < reward.PointsCost {
		tx.Rollback()
		return 0, fmt.Errorf("%w: have %d, need %d", ErrInsufficientPoints, user.LoyaltyPoints, reward.PointsCost)
	}

	newBalance, err := s.adjustTx(tx, userID, -reward.PointsCost, models.TxRedeemed,
		"Redeemed reward: "+reward.Name, nil, &reward.ID)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	if err := tx.Commit().Error; err != nil {
		return 0, err
	}
	return newBalance, nil
}
