package booking

import (
	"context"

	"github.com/glowslot/salon-scheduler/internal/audit"
	domain "github.com/glowslot/salon-scheduler/internal/domain/booking"
	"github.com/glowslot/salon-scheduler/internal/httperr"
	"github.com/glowslot/salon-scheduler/internal/models"
	"github.com/glowslot/salon-scheduler/internal/notify"
	"github.com/glowslot/salon-scheduler/internal/timezone"
)

type CancelBooking struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	notifyDispatcher *notify.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:   repo,
		audit:  auditDispatcher,
		notify: notifyDispatcher,
	}
}

// Execute cancels a booking. Cancelling an already-cancelled booking is a
// no-op success: nothing is written, audited or notified twice.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	salonID uint,
	actorID *uint,
	bookingID uint,
) (*models.Booking, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBookingForSalon(ctx, bookingID, salonID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	now := timezone.NowIn(salon.Timezone)
	changed, err := domain.Cancel(b, now)
	if err != nil {
		return nil, err
	}
	if !changed {
		return b, nil
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   actorID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	uc.notify.Dispatch(notify.Message{
		SalonID:    salonID,
		CustomerID: &b.CustomerID,
		Title:      "Booking cancelled",
		Body: "Your appointment on " + b.Date + " at " +
			domain.FormatMinute12h(b.StartMinute) + " was cancelled.",
		Data: map[string]any{"booking_id": b.ID, "reference": b.Reference},
	})

	return b, nil
}
