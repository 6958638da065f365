// controllers/user.go
package controllers

import (
	"errors"
	"net/http"

	"beautysalon-backend/config"
	"beautysalon-backend/models"
	"beautysalon-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetUsers retrieves all customer accounts (admin)
func GetUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Where("role = ?", models.RoleCustomer).
		Order("created_at desc").Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUser retrieves a specific user with their loyalty ledger (admin)
func GetUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.Preload("Transactions", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at desc")
	}).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, user)
}
