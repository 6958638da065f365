package controllers

import (
	"errors"
	"net/http"

	"beautysalon-backend/services"
	"beautysalon-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	appointmentService *services.AppointmentService
	loyaltyService     *services.LoyaltyService
	cashService        *services.CashService
)

// Init wires the domain services. Call once after the database connects.
func Init(db *gorm.DB) {
	catalog := services.NewDBCatalog(db)
	loyaltyService = services.NewLoyaltyService(db)
	appointmentService = services.NewAppointmentService(db, catalog, loyaltyService)
	cashService = services.NewCashService(db, catalog)
}

// respondServiceError maps the service error taxonomy to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var capErr *services.CapacityError
	switch {
	case errors.As(err, &capErr):
		utils.RespondWithError(c, http.StatusConflict, capErr.Error())
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInsufficientPoints):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrEmployeeUnavailable),
		errors.Is(err, services.ErrState):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return id, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
