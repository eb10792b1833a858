package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/glowslot/salon-scheduler/internal/models"
)

func newHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Salon{}, &models.Service{}, &models.Stylist{}))
	return db
}

func TestGuestBookingHoldWithoutStylistRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := newHandlerTestDB(t)
	require.NoError(t, db.Create(&models.Salon{
		Name:        "Glow Salon",
		Slug:        "glow-salon",
		OpenMinute:  600,
		CloseMinute: 1080,
	}).Error)

	h := NewPublicHandler(db, nil, nil, nil)

	r := gin.New()
	r.POST("/api/public/:slug/bookings", h.CreateBooking)

	body := `{
		"customer_name": "Priya",
		"customer_phone": "9999",
		"service_ids": [1],
		"date": "2027-03-10",
		"time": "11:00",
		"hold_token": "some-token"
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/public/glow-salon/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "stylist_required")
}
