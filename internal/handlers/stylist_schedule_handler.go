package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowslot/salon-scheduler/internal/audit"
	domain "github.com/glowslot/salon-scheduler/internal/domain/booking"
	"github.com/glowslot/salon-scheduler/internal/httperr"
	"github.com/glowslot/salon-scheduler/internal/middleware"
	"github.com/glowslot/salon-scheduler/internal/models"
)

// ======================================================
// STYLIST HOLIDAYS + BLOCKED SLOTS
// ======================================================
//
// A stylist holds either a full-day holiday or partial blocked ranges for
// a date, never both. Creating one side fails while the other exists;
// the clear endpoints switch sides.

type StylistScheduleHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewStylistScheduleHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *StylistScheduleHandler {
	return &StylistScheduleHandler{db: db, audit: auditDispatcher}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateStylistHolidayRequest struct {
	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Label string `json:"label"`
}

type BlockedRangeConfig struct {
	StartTime string `json:"start_time" binding:"required"` // HH:mm
	EndTime   string `json:"end_time" binding:"required"`   // HH:mm
}

type SetBlockedSlotsRequest struct {
	Date   string               `json:"date" binding:"required"`
	Ranges []BlockedRangeConfig `json:"ranges" binding:"required,min=1"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *StylistScheduleHandler) stylistForSalon(c *gin.Context) (*models.Stylist, bool) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("id")

	var stylist models.Stylist
	if err := h.db.Where("id = ? AND salon_id = ?", id, salonID).First(&stylist).Error; err != nil {
		httperr.NotFound(c, "stylist_not_found", "Stylist not found.")
		return nil, false
	}
	return &stylist, true
}

// ======================================================
// HOLIDAYS
// ======================================================

func (h *StylistScheduleHandler) ListHolidays(c *gin.Context) {
	stylist, ok := h.stylistForSalon(c)
	if !ok {
		return
	}

	var holidays []models.StylistHoliday
	if err := h.db.
		Where("stylist_id = ?", stylist.ID).
		Order("date ASC").
		Find(&holidays).Error; err != nil {
		httperr.Internal(c, "failed_to_list_holidays", "Failed to list stylist holidays.")
		return
	}

	c.JSON(http.StatusOK, holidays)
}

func (h *StylistScheduleHandler) CreateHoliday(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	stylist, ok := h.stylistForSalon(c)
	if !ok {
		return
	}

	var req CreateStylistHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil || !validDate(req.Date) {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	var count int64
	h.db.Model(&models.StylistBlockedSlot{}).
		Where("stylist_id = ? AND date = ?", stylist.ID, req.Date).
		Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "blocked_slots_exist", "Clear the blocked ranges for this date first.")
		return
	}

	h.db.Model(&models.StylistHoliday{}).
		Where("stylist_id = ? AND date = ?", stylist.ID, req.Date).
		Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "holiday_exists", "A holiday already exists for this date.")
		return
	}

	holiday := models.StylistHoliday{
		StylistID: stylist.ID,
		Date:      req.Date,
		Label:     req.Label,
	}

	if err := h.db.Create(&holiday).Error; err != nil {
		httperr.Internal(c, "failed_to_create_holiday", "Failed to create stylist holiday.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "stylist_holiday_created",
		Entity:   "stylist_holiday",
		EntityID: &holiday.ID,
	})

	c.JSON(http.StatusCreated, holiday)
}

func (h *StylistScheduleHandler) DeleteHoliday(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	stylist, ok := h.stylistForSalon(c)
	if !ok {
		return
	}

	holidayID, err := strconv.ParseUint(c.Param("holidayId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_holiday_id", "Invalid holiday id.")
		return
	}

	var holiday models.StylistHoliday
	if err := h.db.
		Where("id = ? AND stylist_id = ?", holidayID, stylist.ID).
		First(&holiday).Error; err != nil {
		httperr.NotFound(c, "holiday_not_found", "Stylist holiday not found.")
		return
	}

	if err := h.db.Delete(&holiday).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_holiday", "Failed to delete stylist holiday.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "stylist_holiday_deleted",
		Entity:   "stylist_holiday",
		EntityID: &holiday.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// BLOCKED SLOTS
// ======================================================

func (h *StylistScheduleHandler) ListBlockedSlots(c *gin.Context) {
	stylist, ok := h.stylistForSalon(c)
	if !ok {
		return
	}

	q := h.db.Where("stylist_id = ?", stylist.ID)
	if date := c.Query("date"); date != "" {
		q = q.Where("date = ?", date)
	}

	var blocked []models.StylistBlockedSlot
	if err := q.Order("date ASC, start_minute ASC").Find(&blocked).Error; err != nil {
		httperr.Internal(c, "failed_to_list_blocked_slots", "Failed to list blocked ranges.")
		return
	}

	c.JSON(http.StatusOK, blocked)
}

// SetBlockedSlots replaces all blocked ranges for the given date.
func (h *StylistScheduleHandler) SetBlockedSlots(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	stylist, ok := h.stylistForSalon(c)
	if !ok {
		return
	}

	var req SetBlockedSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil || !validDate(req.Date) {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	var count int64
	h.db.Model(&models.StylistHoliday{}).
		Where("stylist_id = ? AND date = ?", stylist.ID, req.Date).
		Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "holiday_exists", "Clear the holiday for this date first.")
		return
	}

	var toCreate []models.StylistBlockedSlot
	for _, r := range req.Ranges {
		start, err := domain.ParseMinute(r.StartTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_time", "Invalid blocked range start.")
			return
		}
		end, err := domain.ParseMinute(r.EndTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_time", "Invalid blocked range end.")
			return
		}
		if end <= start {
			httperr.BadRequest(c, "invalid_range", "Blocked range end must be after start.")
			return
		}

		toCreate = append(toCreate, models.StylistBlockedSlot{
			StylistID:   stylist.ID,
			Date:        req.Date,
			StartMinute: start,
			EndMinute:   end,
		})
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("stylist_id = ? AND date = ?", stylist.ID, req.Date).
			Delete(&models.StylistBlockedSlot{}).Error; err != nil {
			return err
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_blocked_slots", "Failed to save blocked ranges.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID: salonID,
		UserID:  &userID,
		Action:  "blocked_slots_set",
		Entity:  "stylist_blocked_slot",
		Metadata: map[string]any{
			"stylist_id": stylist.ID,
			"date":       req.Date,
			"ranges":     len(toCreate),
		},
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ClearBlockedSlots removes every blocked range for the given date.
func (h *StylistScheduleHandler) ClearBlockedSlots(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	stylist, ok := h.stylistForSalon(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if !validDate(date) {
		httperr.BadRequest(c, "invalid_date", "Date is required.")
		return
	}

	if err := h.db.
		Where("stylist_id = ? AND date = ?", stylist.ID, date).
		Delete(&models.StylistBlockedSlot{}).Error; err != nil {
		httperr.Internal(c, "failed_to_clear_blocked_slots", "Failed to clear blocked ranges.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID: salonID,
		UserID:  &userID,
		Action:  "blocked_slots_cleared",
		Entity:  "stylist_blocked_slot",
		Metadata: map[string]any{
			"stylist_id": stylist.ID,
			"date":       date,
		},
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
