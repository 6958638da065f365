package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"beautysalon-backend/config"
	"beautysalon-backend/controllers"
	"beautysalon-backend/models"
	"beautysalon-backend/routes"
	"beautysalon-backend/services"
	"beautysalon-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Service{},
		&models.Appointment{},
		&models.LoyaltyTransaction{},
		&models.LoyaltyReward{},
		&models.Settings{},
		&models.ReminderLog{},
	))
	require.NoError(t, services.SeedSettings(db))
	require.NoError(t, services.SeedCatalog(db))

	config.DB = db
	controllers.Init(db)
	return routes.SetupRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var phoneSeq int

// registerCustomer registers through the real endpoint and returns the token
// and user ID.
func registerCustomer(t *testing.T, r *gin.Engine, email string) (string, string) {
	t.Helper()
	phoneSeq++
	w := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email":    email,
		"phone":    fmt.Sprintf("+38591123%04d", phoneSeq),
		"name":     "Test Customer",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token, resp.User.ID
}

func adminToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := utils.GenerateToken(userID, models.RoleAdmin)
	require.NoError(t, err)
	return token
}

// futureSlot returns a date safely beyond the cancellation window, inside
// working hours.
func futureSlot(hour int) time.Time {
	d := time.Now().AddDate(0, 0, 3)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.Local)
}

func TestRegisterLoginAndMe(t *testing.T) {
	r := setupAPI(t)
	token, _ := registerCustomer(t, r, "me@example.com")

	w := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"identifier": "me@example.com",
		"password":   "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User struct {
			LoyaltyTier   string `json:"loyaltyTier"`
			LoyaltyPoints int    `json:"loyaltyPoints"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, models.TierBronze, resp.User.LoyaltyTier)
	require.Equal(t, 0, resp.User.LoyaltyPoints)
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupAPI(t)
	registerCustomer(t, r, "wp@example.com")

	w := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"identifier": "wp@example.com",
		"password":   "not-the-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookAppointmentEndToEnd(t *testing.T) {
	r := setupAPI(t)
	token, _ := registerCustomer(t, r, "bk@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/appointments", token, gin.H{
		"service": "Manikura",
		"date":    futureSlot(10),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var appt models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &appt))
	require.Equal(t, "Manikura", appt.Service)
	require.Equal(t, 45, appt.DurationMinutes)

	w = doJSON(t, r, http.MethodGet, "/api/appointments", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
}

func TestBookAppointmentPastDate(t *testing.T) {
	r := setupAPI(t)
	token, _ := registerCustomer(t, r, "pd@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/appointments", token, gin.H{
		"service": "Manikura",
		"date":    time.Now().Add(-48 * time.Hour),
	})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestBookAppointmentCapacityConflict(t *testing.T) {
	r := setupAPI(t)
	token, _ := registerCustomer(t, r, "cp@example.com")
	slot := futureSlot(10)

	// Gel nokti runs a single station
	w := doJSON(t, r, http.MethodPost, "/api/appointments", token, gin.H{
		"service": "Gel nokti",
		"date":    slot,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/appointments", token, gin.H{
		"service": "Gel nokti",
		"date":    slot.Add(30 * time.Minute),
	})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestBookAppointmentRequiresAuth(t *testing.T) {
	r := setupAPI(t)
	w := doJSON(t, r, http.MethodPost, "/api/appointments", "", gin.H{
		"service": "Manikura",
		"date":    futureSlot(10),
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCancelAppointment(t *testing.T) {
	r := setupAPI(t)
	token, _ := registerCustomer(t, r, "cn@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/appointments", token, gin.H{
		"service": "Manikura",
		"date":    futureSlot(10),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var appt models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &appt))

	w = doJSON(t, r, http.MethodDelete, "/api/appointments/"+appt.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Cancelling someone else's appointment reads as not found
	otherToken, _ := registerCustomer(t, r, "cx@example.com")
	w = doJSON(t, r, http.MethodPost, "/api/appointments", token, gin.H{
		"service": "Manikura",
		"date":    futureSlot(11),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &appt))

	w = doJSON(t, r, http.MethodDelete, "/api/appointments/"+appt.ID.String(), otherToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRoutesRejectCustomers(t *testing.T) {
	r := setupAPI(t)
	token, _ := registerCustomer(t, r, "nc@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/admin/appointments", token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminCompleteAndDiscountFlow(t *testing.T) {
	r := setupAPI(t)
	custToken, custID := registerCustomer(t, r, "fl@example.com")
	admin := adminToken(t, custID) // role claim is what matters

	// Customer books, admin completes, points land on the account
	w := doJSON(t, r, http.MethodPost, "/api/appointments", custToken, gin.H{
		"service": "Gel nokti",
		"date":    futureSlot(10),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var appt models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &appt))

	w = doJSON(t, r, http.MethodPost, "/api/admin/appointments/"+appt.ID.String()+"/complete", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var fresh models.User
	require.NoError(t, config.DB.First(&fresh, "id = ?", custID).Error)
	require.Equal(t, 15, fresh.LoyaltyPoints)
	require.Equal(t, 1, fresh.TotalVisits)

	// Discount 20% of the 35 EUR Gel nokti price
	w = doJSON(t, r, http.MethodPost, "/api/admin/appointments/"+appt.ID.String()+"/discount", admin, gin.H{
		"discountPercent": 20,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		DiscountAmount float64 `json:"discountAmount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.InDelta(t, 7, resp.DiscountAmount, 1e-9)

	// Completing twice conflicts
	w = doJSON(t, r, http.MethodPost, "/api/admin/appointments/"+appt.ID.String()+"/complete", admin, nil)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAdminWalkInBooking(t *testing.T) {
	r := setupAPI(t)
	_, custID := registerCustomer(t, r, "wi@example.com")
	admin := adminToken(t, custID)

	w := doJSON(t, r, http.MethodPost, "/api/admin/appointments", admin, gin.H{
		"service":           "Šišanje",
		"date":              futureSlot(12),
		"unregisteredName":  "Marija",
		"unregisteredPhone": "+385921111111",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var appt models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &appt))
	require.Nil(t, appt.UserID)
	require.Equal(t, "Marija", appt.UnregisteredName)

	// Walk-ins never earn points
	w = doJSON(t, r, http.MethodPost, "/api/admin/appointments/"+appt.ID.String()+"/complete", admin, nil)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRedeemRewardInsufficientPoints(t *testing.T) {
	r := setupAPI(t)
	token, _ := registerCustomer(t, r, "rd@example.com")

	reward := models.LoyaltyReward{Name: "Free Manikura", PointsCost: 100, IsActive: true}
	require.NoError(t, config.DB.Create(&reward).Error)

	w := doJSON(t, r, http.MethodPost, "/api/rewards/"+reward.ID.String()+"/redeem", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestAdminAdjustPoints(t *testing.T) {
	r := setupAPI(t)
	custToken, custID := registerCustomer(t, r, "aj@example.com")
	admin := adminToken(t, custID)

	w := doJSON(t, r, http.MethodPost, "/api/admin/loyalty/adjust", admin, gin.H{
		"userId":      custID,
		"points":      120,
		"description": "Compensation",
		"type":        "bonus",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Tier recalculated through the ledger path
	w = doJSON(t, r, http.MethodGet, "/auth/me", custToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		User struct {
			LoyaltyPoints int    `json:"loyaltyPoints"`
			LoyaltyTier   string `json:"loyaltyTier"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 120, resp.User.LoyaltyPoints)
	require.Equal(t, models.TierSilver, resp.User.LoyaltyTier)

	// Unknown types are rejected at the boundary
	w = doJSON(t, r, http.MethodPost, "/api/admin/loyalty/adjust", admin, gin.H{
		"userId":      custID,
		"points":      10,
		"description": "nope",
		"type":        "earned",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
