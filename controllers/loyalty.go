// controllers/loyalty.go
package controllers

import (
	"errors"
	"net/http"

	"beautysalon-backend/config"
	"beautysalon-backend/models"
	"beautysalon-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdjustPointsInput defines the expected JSON structure for an admin point adjustment
type AdjustPointsInput struct {
	UserID      uuid.UUID `json:"userId" binding:"required"`
	Points      int       `json:"points" binding:"required"` // signed delta
	Description string    `json:"description" binding:"required"`
	Type        string    `json:"type"`
}

// CreateRewardInput defines the expected JSON structure for creating a reward
type CreateRewardInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	PointsCost  int     `json:"pointsCost" binding:"required,min=1"`
	Discount    float64 `json:"discount" binding:"min=0"`
}

// UpdateRewardInput defines the expected JSON structure for updating a reward
type UpdateRewardInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	PointsCost  *int     `json:"pointsCost"`
	Discount    *float64 `json:"discount"`
	IsActive    *bool    `json:"isActive"`
}

// GetRewards retrieves all active rewards
func GetRewards(c *gin.Context) {
	var rewards []models.LoyaltyReward
	if err := config.DB.Where("is_active = ?", true).Find(&rewards).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve rewards")
		return
	}

	c.JSON(http.StatusOK, rewards)
}

// RedeemReward exchanges the logged-in user's points for a reward
func RedeemReward(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	rewardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	newBalance, err := loyaltyService.Redeem(userID, rewardID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Reward redeemed",
		"newBalance": newBalance,
	})
}

// GetMyTransactions retrieves the logged-in user's loyalty ledger
func GetMyTransactions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var transactions []models.LoyaltyTransaction
	if err := config.DB.Where("user_id = ?", userID).
		Order("created_at desc").Find(&transactions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// AdjustPoints applies an admin point adjustment through the ledger
func AdjustPoints(c *gin.Context) {
	var input AdjustPointsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	txType := input.Type
	if txType == "" {
		txType = models.TxAdminAdjust
	}
	if txType != models.TxAdminAdjust && txType != models.TxBonus {
		utils.RespondWithError(c, http.StatusBadRequest, "Type must be admin_adjust or bonus")
		return
	}

	newBalance, err := loyaltyService.Adjust(input.UserID, input.Points, txType, input.Description, nil, nil)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Points adjusted",
		"newBalance": newBalance,
	})
}

// CreateReward creates a new loyalty reward (admin)
func CreateReward(c *gin.Context) {
	var input CreateRewardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	reward := models.LoyaltyReward{
		Name:        input.Name,
		Description: input.Description,
		PointsCost:  input.PointsCost,
		Discount:    input.Discount,
		IsActive:    true,
	}

	if err := config.DB.Create(&reward).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create reward")
		return
	}

	c.JSON(http.StatusCreated, reward)
}

// UpdateReward updates an existing reward (admin)
func UpdateReward(c *gin.Context) {
	rewardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateRewardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var reward models.LoyaltyReward
	if err := config.DB.First(&reward, "id = ?", rewardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Reward not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		reward.Name = *input.Name
	}
	if input.Description != nil {
		reward.Description = *input.Description
	}
	if input.PointsCost != nil {
		reward.PointsCost = *input.PointsCost
	}
	if input.Discount != nil {
		reward.Discount = *input.Discount
	}
	if input.IsActive != nil {
		reward.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&reward).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update reward")
		return
	}

	c.JSON(http.StatusOK, reward)
}

// DeleteReward soft deletes a reward (admin)
func DeleteReward(c *gin.Context) {
	rewardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := config.DB.Where("id = ?", rewardID).Delete(&models.LoyaltyReward{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete reward")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Reward not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reward deleted successfully"})
}
