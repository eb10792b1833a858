package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowslot/salon-scheduler/internal/httperr"
	"github.com/glowslot/salon-scheduler/internal/httpresp"
	"github.com/glowslot/salon-scheduler/internal/middleware"
	"github.com/glowslot/salon-scheduler/internal/models"
)

// ======================================================
// CUSTOMERS
// ======================================================

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

func (h *CustomerHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	q := h.db.Where("salon_id = ?", salonID)
	if search := c.Query("q"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ?", like, "%"+search+"%")
	}

	var customers []models.Customer
	if err := q.Order("name ASC").Limit(200).Find(&customers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_customers", "Failed to list customers.")
		return
	}

	httpresp.List(c, customers)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("id")

	var customer models.Customer
	if err := h.db.Where("id = ? AND salon_id = ?", id, salonID).First(&customer).Error; err != nil {
		httperr.NotFound(c, "customer_not_found", "Customer not found.")
		return
	}

	var bookings []models.Booking
	if err := h.db.
		Preload("Services").
		Where("customer_id = ? AND salon_id = ?", customer.ID, salonID).
		Order("date DESC, start_minute DESC").
		Limit(50).
		Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_load_customer", "Failed to load customer history.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer": customer,
		"bookings": bookings,
	})
}
