package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/glowslot/salon-scheduler/internal/audit"
	domain "github.com/glowslot/salon-scheduler/internal/domain/booking"
	"github.com/glowslot/salon-scheduler/internal/httperr"
	"github.com/glowslot/salon-scheduler/internal/lock"
	"github.com/glowslot/salon-scheduler/internal/models"
	"github.com/glowslot/salon-scheduler/internal/notify"
	"github.com/glowslot/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	SalonID   uint
	StylistID uint // 0 = auto-assign any available stylist
	ActorID   *uint

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	ServiceIDs []uint

	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	Notes string

	// Hold is the checkout-time slot lock, when the caller acquired one.
	// It is released on every exit path: a consumed hold must never
	// outlive the booking attempt.
	Hold *lock.Hold
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   domain.Repository
	locks  *lock.Coordinator
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	locks *lock.Coordinator,
	auditDispatcher *audit.Dispatcher,
	notifyDispatcher *notify.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		locks:  locks,
		audit:  auditDispatcher,
		notify: notifyDispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	if in.Hold != nil {
		defer uc.locks.Release(ctx, in.Hold)
	}

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	if _, err := time.ParseInLocation("2006-01-02", in.Date, timezone.Location(salon.Timezone)); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	startMinute, err := domain.ParseMinute(in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	services, err := uc.repo.GetServicesByIDs(ctx, in.SalonID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	durationMin := domain.TotalDuration(services)
	if durationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	endMinute := startMinute + durationMin

	if startMinute < salon.OpenMinute || endMinute > salon.CloseMinute {
		return nil, httperr.ErrBusiness("outside_hours")
	}

	if cutoff := CutoffMinute(salon, in.Date); cutoff >= 0 && startMinute < cutoff {
		return nil, httperr.ErrBusiness("too_soon")
	}

	stylistID, err := uc.resolveStylist(ctx, salon, in, durationMin, startMinute)
	if err != nil {
		return nil, err
	}

	customer, err := uc.repo.GetOrCreateCustomer(
		ctx,
		in.SalonID,
		in.CustomerName,
		in.CustomerPhone,
		in.CustomerEmail,
	)
	if err != nil {
		return nil, err
	}

	lines := make([]models.BookingService, 0, len(services))
	for _, s := range services {
		lines = append(lines, models.BookingService{
			ServiceID:   s.ID,
			Name:        s.Name,
			DurationMin: s.DurationMin,
			Price:       s.Price,
		})
	}

	b := &models.Booking{
		Reference:     uuid.NewString(),
		SalonID:       in.SalonID,
		StylistID:     stylistID,
		CustomerID:    customer.ID,
		Date:          in.Date,
		StartMinute:   startMinute,
		EndMinute:     endMinute,
		Status:        string(domain.InitialStatus()),
		PaymentStatus: string(domain.PaymentPending),
		Services:      lines,
		Notes:         in.Notes,
	}

	payment := &models.Payment{
		Method: "cash",
		Amount: domain.TotalPrice(services),
		Status: string(domain.PaymentPending),
	}

	if err := uc.repo.CreateBooking(ctx, b, payment); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   in.ActorID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	uc.notify.Dispatch(notify.Message{
		SalonID:    in.SalonID,
		CustomerID: &customer.ID,
		Title:      "Booking confirmed",
		Body: "Your appointment on " + in.Date + " at " +
			domain.FormatMinute12h(startMinute) + " is confirmed.",
		Data: map[string]any{"booking_id": b.ID, "reference": b.Reference},
	})

	return b, nil
}

// resolveStylist validates an explicit stylist choice or auto-assigns the
// lowest-ID stylist free for the requested interval.
func (uc *CreateBooking) resolveStylist(
	ctx context.Context,
	salon *models.Salon,
	in CreateBookingInput,
	durationMin int,
	startMinute int,
) (uint, error) {

	if in.StylistID != 0 {
		stylist, err := uc.repo.GetStylistForSalon(ctx, in.SalonID, in.StylistID)
		if err != nil {
			return 0, httperr.ErrBusiness("stylist_not_found")
		}
		if !stylist.Active {
			return 0, httperr.ErrBusiness("stylist_not_found")
		}
		return stylist.ID, nil
	}

	availability := NewGetAvailability(uc.repo)
	day, err := availability.loadDaySchedule(ctx, salon, in.Date, 0)
	if err != nil {
		return 0, err
	}

	slots := domain.Evaluate(*day, durationMin, CutoffMinute(salon, in.Date))
	stylistID, ok := domain.PickStylist(slots, startMinute)
	if !ok {
		return 0, httperr.ErrBusiness("time_conflict")
	}

	return stylistID, nil
}
