package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/glowslot/salon-scheduler/internal/httperr"
	"github.com/glowslot/salon-scheduler/internal/middleware"
	ucBooking "github.com/glowslot/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC         *ucBooking.CreateBooking
	cancelUC         *ucBooking.CancelBooking
	completeUC       *ucBooking.CompleteBooking
	collectPaymentUC *ucBooking.CollectPayment
	listByDateUC     *ucBooking.ListBookingsByDate
	listByMonthUC    *ucBooking.ListBookingsByMonth
	availabilityUC   *ucBooking.GetAvailability
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	cancelUC *ucBooking.CancelBooking,
	completeUC *ucBooking.CompleteBooking,
	collectPaymentUC *ucBooking.CollectPayment,
	listByDateUC *ucBooking.ListBookingsByDate,
	listByMonthUC *ucBooking.ListBookingsByMonth,
	availabilityUC *ucBooking.GetAvailability,
) *BookingHandler {
	return &BookingHandler{
		createUC:         createUC,
		cancelUC:         cancelUC,
		completeUC:       completeUC,
		collectPaymentUC: collectPaymentUC,
		listByDateUC:     listByDateUC,
		listByMonthUC:    listByMonthUC,
		availabilityUC:   availabilityUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`

	StylistID  uint   `json:"stylist_id"` // 0 = any available stylist
	ServiceIDs []uint `json:"service_ids" binding:"required,min=1"`

	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Time  string `json:"time" binding:"required"` // HH:mm
	Notes string `json:"notes"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

// mapBookingErrors translates use-case business errors into responses.
// Availability conflicts and lock failures share the same client
// contract: refresh availability, pick again.
func mapBookingErrors(c *gin.Context, err error) {
	switch httperr.BusinessCode(err) {
	case "invalid_date", "invalid_time", "invalid_duration":
		httperr.BadRequest(c, httperr.BusinessCode(err), "Invalid date or time.")
	case "service_not_found":
		httperr.BadRequest(c, "service_not_found", "Service not found.")
	case "stylist_not_found":
		httperr.BadRequest(c, "stylist_not_found", "Stylist not found.")
	case "too_soon":
		httperr.BadRequest(c, "too_soon", "This slot is no longer within the booking window.")
	case "outside_hours":
		httperr.BadRequest(c, "outside_hours", "Outside salon operating hours.")
	case "salon_holiday", "stylist_holiday", "blocked", "time_conflict":
		httperr.Conflict(c, httperr.BusinessCode(err), "This slot is no longer available. Please pick another.")
	case "slot_held":
		httperr.Conflict(c, "slot_held", "Another customer is checking out this slot. Please pick another.")
	case "booking_not_found":
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
	case "payment_not_found":
		httperr.NotFound(c, "payment_not_found", "Payment not found.")
	case "invalid_state":
		httperr.BadRequest(c, "invalid_state", "The booking state does not allow this action.")
	case "already_paid":
		httperr.BadRequest(c, "already_paid", "Payment has already been collected.")
	default:
		httperr.Internal(c, "booking_failed", "The booking operation failed.")
	}
}

// ======================================================
// CREATE (walk-in)
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		SalonID:       salonID,
		StylistID:     req.StylistID,
		ActorID:       &userID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		ServiceIDs:    req.ServiceIDs,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
	})
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(201, b)
}

// ======================================================
// AVAILABILITY (merchant calendar)
// ======================================================

func (h *BookingHandler) Availability(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	in, ok := parseAvailabilityQuery(c)
	if !ok {
		return
	}
	in.SalonID = salonID

	result, err := h.availabilityUC.Execute(c.Request.Context(), in)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(200, result)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	var stylistID uint
	if s := c.Query("stylist_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_stylist_id", "Invalid stylist id.")
			return
		}
		stylistID = uint(id)
	}

	bookings, err := h.listByDateUC.Execute(c.Request.Context(), salonID, date, stylistID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Failed to list bookings.")
		return
	}

	c.JSON(200, bookings)
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Year and month are required.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	bookings, err := h.listByMonthUC.Execute(c.Request.Context(), salonID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Failed to list bookings.")
		return
	}

	c.JSON(200, gin.H{
		"year":     year,
		"month":    month,
		"bookings": bookings,
	})
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	b, err := h.cancelUC.Execute(c.Request.Context(), salonID, &userID, uint(bookingID))
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(200, b)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	b, err := h.completeUC.Execute(c.Request.Context(), salonID, &userID, uint(bookingID))
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(200, b)
}

func (h *BookingHandler) CollectPayment(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	b, err := h.collectPaymentUC.Execute(c.Request.Context(), salonID, &userID, uint(bookingID))
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(200, b)
}
