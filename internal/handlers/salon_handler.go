package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/glowslot/salon-scheduler/internal/domain/booking"
	"github.com/glowslot/salon-scheduler/internal/httperr"
	"github.com/glowslot/salon-scheduler/internal/middleware"
	"github.com/glowslot/salon-scheduler/internal/models"
	"github.com/glowslot/salon-scheduler/internal/timezone"
)

type SalonHandler struct {
	db *gorm.DB
}

func NewSalonHandler(db *gorm.DB) *SalonHandler {
	return &SalonHandler{db: db}
}

type UpdateSalonRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	City    *string `json:"city"`

	Timezone *string `json:"timezone"`

	OpenTime  *string `json:"open_time"`  // HH:mm
	CloseTime *string `json:"close_time"` // HH:mm

	MinAdvanceMinutes *int `json:"min_advance_minutes"`
}

func (h *SalonHandler) GetMeSalon(c *gin.Context) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "salon_not_found", "Salon not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_salon", "Failed to load salon.")
		return
	}

	c.JSON(http.StatusOK, salon)
}

func (h *SalonHandler) UpdateMeSalon(c *gin.Context) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "salon_not_found", "Salon not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_salon", "Failed to load salon.")
		return
	}

	var req UpdateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	if req.Name != nil {
		salon.Name = *req.Name
	}
	if req.Phone != nil {
		salon.Phone = *req.Phone
	}
	if req.Address != nil {
		salon.Address = *req.Address
	}
	if req.City != nil {
		salon.City = *req.City
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		salon.Timezone = *req.Timezone
	}

	open := salon.OpenMinute
	closeM := salon.CloseMinute

	if req.OpenTime != nil {
		m, err := domain.ParseMinute(*req.OpenTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_time", "Invalid open time.")
			return
		}
		open = m
	}
	if req.CloseTime != nil {
		m, err := domain.ParseMinute(*req.CloseTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_time", "Invalid close time.")
			return
		}
		closeM = m
	}

	// No overnight hours: closing must stay after opening on the same day.
	if closeM <= open {
		httperr.BadRequest(c, "invalid_hours", "Close time must be after open time.")
		return
	}
	salon.OpenMinute = open
	salon.CloseMinute = closeM

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Minimum advance must be zero or positive minutes.")
			return
		}
		salon.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Failed to save salon settings.")
		return
	}

	c.JSON(http.StatusOK, salon)
}
