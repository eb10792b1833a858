package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowslot/salon-scheduler/internal/audit"
	"github.com/glowslot/salon-scheduler/internal/httperr"
	"github.com/glowslot/salon-scheduler/internal/middleware"
	"github.com/glowslot/salon-scheduler/internal/models"
)

// ======================================================
// SALON HOLIDAYS
// ======================================================

type HolidayHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewHolidayHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *HolidayHandler {
	return &HolidayHandler{db: db, audit: auditDispatcher}
}

type CreateHolidayRequest struct {
	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Label string `json:"label"`
}

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func (h *HolidayHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var holidays []models.SalonHoliday
	if err := h.db.
		Where("salon_id = ?", salonID).
		Order("date ASC").
		Find(&holidays).Error; err != nil {
		httperr.Internal(c, "failed_to_list_holidays", "Failed to list holidays.")
		return
	}

	c.JSON(http.StatusOK, holidays)
}

func (h *HolidayHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil || !validDate(req.Date) {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	var count int64
	h.db.Model(&models.SalonHoliday{}).
		Where("salon_id = ? AND date = ?", salonID, req.Date).
		Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "holiday_exists", "A holiday already exists for this date.")
		return
	}

	holiday := models.SalonHoliday{
		SalonID: salonID,
		Date:    req.Date,
		Label:   req.Label,
	}

	if err := h.db.Create(&holiday).Error; err != nil {
		httperr.Internal(c, "failed_to_create_holiday", "Failed to create holiday.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "salon_holiday_created",
		Entity:   "salon_holiday",
		EntityID: &holiday.ID,
	})

	c.JSON(http.StatusCreated, holiday)
}

func (h *HolidayHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("id")

	var holiday models.SalonHoliday
	if err := h.db.Where("id = ? AND salon_id = ?", id, salonID).First(&holiday).Error; err != nil {
		httperr.NotFound(c, "holiday_not_found", "Holiday not found.")
		return
	}

	if err := h.db.Delete(&holiday).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_holiday", "Failed to delete holiday.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "salon_holiday_deleted",
		Entity:   "salon_holiday",
		EntityID: &holiday.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
