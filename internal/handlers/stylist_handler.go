package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowslot/salon-scheduler/internal/audit"
	"github.com/glowslot/salon-scheduler/internal/httperr"
	"github.com/glowslot/salon-scheduler/internal/middleware"
	"github.com/glowslot/salon-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type StylistHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewStylistHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *StylistHandler {
	return &StylistHandler{db: db, audit: auditDispatcher}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateStylistRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

type UpdateStylistRequest struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Active *bool   `json:"active"`
}

// ======================================================
// CRUD
// ======================================================

func (h *StylistHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var stylists []models.Stylist
	if err := h.db.
		Where("salon_id = ?", salonID).
		Order("id ASC").
		Find(&stylists).Error; err != nil {
		httperr.Internal(c, "failed_to_list_stylists", "Failed to list stylists.")
		return
	}

	c.JSON(http.StatusOK, stylists)
}

func (h *StylistHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateStylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	stylist := models.Stylist{
		SalonID: salonID,
		Name:    req.Name,
		Phone:   req.Phone,
		Active:  true,
	}

	if err := h.db.Create(&stylist).Error; err != nil {
		httperr.Internal(c, "failed_to_create_stylist", "Failed to create stylist.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "stylist_created",
		Entity:   "stylist",
		EntityID: &stylist.ID,
	})

	c.JSON(http.StatusCreated, stylist)
}

func (h *StylistHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("id")

	var stylist models.Stylist
	if err := h.db.Where("id = ? AND salon_id = ?", id, salonID).First(&stylist).Error; err != nil {
		httperr.NotFound(c, "stylist_not_found", "Stylist not found.")
		return
	}

	var req UpdateStylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	if req.Name != nil {
		stylist.Name = *req.Name
	}
	if req.Phone != nil {
		stylist.Phone = *req.Phone
	}
	if req.Active != nil {
		stylist.Active = *req.Active
	}

	if err := h.db.Save(&stylist).Error; err != nil {
		httperr.Internal(c, "failed_to_update_stylist", "Failed to update stylist.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "stylist_updated",
		Entity:   "stylist",
		EntityID: &stylist.ID,
	})

	c.JSON(http.StatusOK, stylist)
}

// Delete removes the stylist row for good; historical bookings keep the
// stylist_id FK only. Per-stylist calendars go with the row.
func (h *StylistHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("id")

	var stylist models.Stylist
	if err := h.db.Where("id = ? AND salon_id = ?", id, salonID).First(&stylist).Error; err != nil {
		httperr.NotFound(c, "stylist_not_found", "Stylist not found.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("stylist_id = ?", stylist.ID).Delete(&models.StylistHoliday{}).Error; err != nil {
			return err
		}
		if err := tx.Where("stylist_id = ?", stylist.ID).Delete(&models.StylistBlockedSlot{}).Error; err != nil {
			return err
		}
		return tx.Delete(&stylist).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_stylist", "Failed to delete stylist.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "stylist_deleted",
		Entity:   "stylist",
		EntityID: &stylist.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
