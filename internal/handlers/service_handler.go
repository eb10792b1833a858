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

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: auditDispatcher}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"gte=0"`
	Gender      string  `json:"gender" binding:"omitempty,oneof=any male female"`
	Category    string  `json:"category"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	DurationMin *int     `json:"duration_min"`
	Price       *float64 `json:"price"`
	Gender      *string  `json:"gender"`
	Category    *string  `json:"category"`
	Active      *bool    `json:"active"`
}

// ======================================================
// CRUD
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var services []models.Service
	if err := h.db.
		Where("salon_id = ?", salonID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Failed to list services.")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	gender := req.Gender
	if gender == "" {
		gender = "any"
	}

	service := models.Service{
		SalonID:     salonID,
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Gender:      gender,
		Category:    req.Category,
		Active:      true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Failed to create service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("id")

	var service models.Service
	if err := h.db.Where("id = ? AND salon_id = ?", id, salonID).First(&service).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			httperr.BadRequest(c, "invalid_duration", "Duration must be positive minutes.")
			return
		}
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		if *req.Price < 0 {
			httperr.BadRequest(c, "invalid_price", "Price must be zero or positive.")
			return
		}
		service.Price = *req.Price
	}
	if req.Gender != nil {
		switch *req.Gender {
		case "any", "male", "female":
			service.Gender = *req.Gender
		default:
			httperr.BadRequest(c, "invalid_gender", "Gender must be any, male or female.")
			return
		}
	}
	if req.Category != nil {
		service.Category = *req.Category
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Failed to update service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusOK, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("id")

	var service models.Service
	if err := h.db.Where("id = ? AND salon_id = ?", id, salonID).First(&service).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	// Soft-disable instead of hard delete: booking lines snapshot the
	// service anyway, but keeping the row preserves catalog history.
	service.Active = false
	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Failed to delete service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "service_deactivated",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
