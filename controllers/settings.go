// controllers/settings.go
package controllers

import (
	"net/http"

	"beautysalon-backend/config"
	"beautysalon-backend/services"
	"beautysalon-backend/utils"

	"github.com/gin-gonic/gin"
)

// UpdateSettingsInput defines the expected JSON structure for updating settings
type UpdateSettingsInput struct {
	SilverThreshold         *int     `json:"silverThreshold"`
	GoldThreshold           *int     `json:"goldThreshold"`
	PlatinumThreshold       *int     `json:"platinumThreshold"`
	DefaultPointsPerService *int     `json:"defaultPointsPerService"`
	PointsPerCurrencyUnit   *float64 `json:"pointsPerCurrencyUnit"`
	InviteBonusPoints       *int     `json:"inviteBonusPoints"`
	AutoUpdateTiers         *bool    `json:"autoUpdateTiers"`
	WorkingHoursStart       *int     `json:"workingHoursStart"`
	WorkingHoursEnd         *int     `json:"workingHoursEnd"`
}

// GetSettings returns the singleton settings row
func GetSettings(c *gin.Context) {
	settings, err := services.LoadSettings(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings applies partial updates to the settings row (admin)
func UpdateSettings(c *gin.Context) {
	var input UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	settings, err := services.LoadSettings(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	if input.SilverThreshold != nil {
		settings.SilverThreshold = *input.SilverThreshold
	}
	if input.GoldThreshold != nil {
		settings.GoldThreshold = *input.GoldThreshold
	}
	if input.PlatinumThreshold != nil {
		settings.PlatinumThreshold = *input.PlatinumThreshold
	}
	if input.DefaultPointsPerService != nil {
		settings.DefaultPointsPerService = *input.DefaultPointsPerService
	}
	if input.PointsPerCurrencyUnit != nil {
		settings.PointsPerCurrencyUnit = *input.PointsPerCurrencyUnit
	}
	if input.InviteBonusPoints != nil {
		settings.InviteBonusPoints = *input.InviteBonusPoints
	}
	if input.AutoUpdateTiers != nil {
		settings.AutoUpdateTiers = *input.AutoUpdateTiers
	}
	if input.WorkingHoursStart != nil {
		settings.WorkingHoursStart = *input.WorkingHoursStart
	}
	if input.WorkingHoursEnd != nil {
		settings.WorkingHoursEnd = *input.WorkingHoursEnd
	}

	if settings.WorkingHoursStart >= settings.WorkingHoursEnd {
		utils.RespondWithError(c, http.StatusBadRequest, "Working hours start must be before end")
		return
	}
	if settings.SilverThreshold > settings.GoldThreshold ||
		settings.GoldThreshold > settings.PlatinumThreshold {
		utils.RespondWithError(c, http.StatusBadRequest, "Tier thresholds must be ascending")
		return
	}

	if err := config.DB.Save(&settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}
