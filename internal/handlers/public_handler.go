package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/glowslot/salon-scheduler/internal/domain/booking"
	"github.com/glowslot/salon-scheduler/internal/httperr"
	"github.com/glowslot/salon-scheduler/internal/httpresp"
	"github.com/glowslot/salon-scheduler/internal/lock"
	"github.com/glowslot/salon-scheduler/internal/models"
	ucBooking "github.com/glowslot/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// PUBLIC (customer-facing) HANDLER
// ======================================================
//
// Everything here is keyed by salon slug and needs no authentication.
// Guest checkout flow: availability -> hold -> booking, with the hold
// forwarded into the booking request so it is released either way.

type PublicHandler struct {
	db             *gorm.DB
	locks          *lock.Coordinator
	availabilityUC *ucBooking.GetAvailability
	createUC       *ucBooking.CreateBooking
}

func NewPublicHandler(
	db *gorm.DB,
	locks *lock.Coordinator,
	availabilityUC *ucBooking.GetAvailability,
	createUC *ucBooking.CreateBooking,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		locks:          locks,
		availabilityUC: availabilityUC,
		createUC:       createUC,
	}
}

// ======================================================
// QUERY HELPERS
// ======================================================

// parseAvailabilityQuery reads stylist_id, service_ids and date from the
// query string. SalonID is left for the caller to fill in.
func parseAvailabilityQuery(c *gin.Context) (ucBooking.AvailabilityInput, bool) {
	var in ucBooking.AvailabilityInput

	in.Date = c.Query("date")
	if !validDate(in.Date) {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return in, false
	}

	if s := c.Query("stylist_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_stylist_id", "Invalid stylist id.")
			return in, false
		}
		in.StylistID = uint(id)
	}

	raw := c.Query("service_ids")
	if raw == "" {
		httperr.BadRequest(c, "missing_service_ids", "At least one service is required.")
		return in, false
	}
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_service_ids", "Service ids must be a comma-separated list.")
			return in, false
		}
		in.ServiceIDs = append(in.ServiceIDs, uint(id))
	}

	return in, true
}

func (h *PublicHandler) salonBySlug(c *gin.Context) (*models.Salon, bool) {
	var salon models.Salon
	if err := h.db.Where("slug = ?", c.Param("slug")).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return nil, false
	}
	return &salon, true
}

// ======================================================
// DISCOVERY
// ======================================================

func (h *PublicHandler) SearchSalons(c *gin.Context) {
	q := h.db.Model(&models.Salon{})

	if name := c.Query("q"); name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if city := c.Query("city"); city != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(city))
	}

	var salons []models.Salon
	if err := q.Order("name ASC").Limit(50).Find(&salons).Error; err != nil {
		httperr.Internal(c, "failed_to_search_salons", "Failed to search salons.")
		return
	}

	httpresp.List(c, salons)
}

func (h *PublicHandler) GetSalon(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, salon)
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	q := h.db.Where("salon_id = ? AND active = ?", salon.ID, true)
	if gender := c.Query("gender"); gender != "" {
		q = q.Where("gender IN ?", []string{"any", gender})
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var services []models.Service
	if err := q.Order("category ASC, name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Failed to list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *PublicHandler) ListStylists(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var stylists []models.Stylist
	if err := h.db.
		Where("salon_id = ? AND active = ?", salon.ID, true).
		Order("id ASC").
		Find(&stylists).Error; err != nil {
		httperr.Internal(c, "failed_to_list_stylists", "Failed to list stylists.")
		return
	}

	httpresp.List(c, stylists)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	in, ok := parseAvailabilityQuery(c)
	if !ok {
		return
	}
	in.SalonID = salon.ID

	result, err := h.availabilityUC.Execute(c.Request.Context(), in)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ======================================================
// HOLDS
// ======================================================

type CreateHoldRequest struct {
	StylistID  uint   `json:"stylist_id" binding:"required"`
	ServiceIDs []uint `json:"service_ids" binding:"required,min=1"`
	Date       string `json:"date" binding:"required"` // YYYY-MM-DD
	Time       string `json:"time" binding:"required"` // HH:mm
}

type HoldResponse struct {
	Token       string `json:"token"`
	StylistID   uint   `json:"stylist_id"`
	Date        string `json:"date"`
	StartMinute int    `json:"start_minute"`
	DurationMin int    `json:"duration_min"`
	ExpiresIn   int    `json:"expires_in_seconds"`
}

type ReleaseHoldRequest struct {
	Token       string `json:"token" binding:"required"`
	StylistID   uint   `json:"stylist_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	StartMinute int    `json:"start_minute"`
	DurationMin int    `json:"duration_min" binding:"required"`
}

func (h *PublicHandler) serviceDuration(salonID uint, serviceIDs []uint) (int, bool) {
	var services []models.Service
	if err := h.db.
		Where("salon_id = ? AND active = ? AND id IN ?", salonID, true, serviceIDs).
		Find(&services).Error; err != nil {
		return 0, false
	}
	if len(services) != len(serviceIDs) {
		return 0, false
	}

	total := 0
	for _, s := range services {
		total += s.DurationMin
	}
	return total, true
}

// CreateHold claims the checkout slot before the customer fills in their
// details. Expired or released holds free the slot for everyone else.
func (h *PublicHandler) CreateHold(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var req CreateHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil || !validDate(req.Date) {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	start, err := domain.ParseMinute(req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_time", "Time must be HH:mm.")
		return
	}

	var stylist models.Stylist
	if err := h.db.
		Where("id = ? AND salon_id = ? AND active = ?", req.StylistID, salon.ID, true).
		First(&stylist).Error; err != nil {
		httperr.BadRequest(c, "stylist_not_found", "Stylist not found.")
		return
	}

	duration, ok := h.serviceDuration(salon.ID, req.ServiceIDs)
	if !ok || duration <= 0 {
		httperr.BadRequest(c, "service_not_found", "Service not found.")
		return
	}

	hold, err := h.locks.Acquire(
		c.Request.Context(),
		stylist.ID,
		req.Date,
		start,
		duration,
		ucBooking.Granularity(salon),
	)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, HoldResponse{
		Token:       hold.Token,
		StylistID:   hold.StylistID,
		Date:        hold.Date,
		StartMinute: hold.StartMinute,
		DurationMin: hold.DurationMin,
		ExpiresIn:   int(h.locks.TTL().Seconds()),
	})
}

func (h *PublicHandler) ReleaseHold(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var req ReleaseHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	hold := &lock.Hold{
		Token:       req.Token,
		StylistID:   req.StylistID,
		Date:        req.Date,
		StartMinute: req.StartMinute,
		DurationMin: req.DurationMin,
		Granularity: ucBooking.Granularity(salon),
	}

	if err := h.locks.Release(c.Request.Context(), hold); err != nil {
		httperr.Internal(c, "failed_to_release_hold", "Failed to release hold.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// GUEST BOOKING
// ======================================================

type GuestBookingRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`

	StylistID  uint   `json:"stylist_id"` // 0 = any available stylist
	ServiceIDs []uint `json:"service_ids" binding:"required,min=1"`

	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Notes string `json:"notes"`

	// HoldToken ties the booking to an earlier slot hold. The hold is
	// consumed by this request whether the booking succeeds or not.
	HoldToken string `json:"hold_token"`
}

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var req GuestBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	// A hold is always tied to a concrete stylist; accepting it without
	// one would strand the held cells until TTL.
	if req.HoldToken != "" && req.StylistID == 0 {
		httperr.BadRequest(c, "stylist_required", "A held slot needs the stylist_id the hold was taken for.")
		return
	}

	in := ucBooking.CreateBookingInput{
		SalonID:       salon.ID,
		StylistID:     req.StylistID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		ServiceIDs:    req.ServiceIDs,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
	}

	if req.HoldToken != "" {
		start, err := domain.ParseMinute(req.Time)
		if err != nil {
			httperr.BadRequest(c, "invalid_time", "Time must be HH:mm.")
			return
		}
		duration, ok := h.serviceDuration(salon.ID, req.ServiceIDs)
		if !ok {
			httperr.BadRequest(c, "service_not_found", "Service not found.")
			return
		}
		in.Hold = &lock.Hold{
			Token:       req.HoldToken,
			StylistID:   req.StylistID,
			Date:        req.Date,
			StartMinute: start,
			DurationMin: duration,
			Granularity: ucBooking.Granularity(salon),
		}
	}

	b, err := h.createUC.Execute(c.Request.Context(), in)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}
