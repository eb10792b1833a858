package booking

import (
	"context"

	"github.com/glowslot/salon-scheduler/internal/audit"
	domain "github.com/glowslot/salon-scheduler/internal/domain/booking"
	"github.com/glowslot/salon-scheduler/internal/httperr"
	"github.com/glowslot/salon-scheduler/internal/models"
	"github.com/glowslot/salon-scheduler/internal/timezone"
)

type CollectPayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCollectPayment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *CollectPayment {
	return &CollectPayment{
		repo:  repo,
		audit: auditDispatcher,
	}
}

// Execute marks the booking's cash payment as received. Booking and
// payment rows change together or not at all.
func (uc *CollectPayment) Execute(
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

	p, err := uc.repo.GetPaymentForBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("payment_not_found")
	}

	now := timezone.NowIn(salon.Timezone)
	if err := domain.CollectPayment(b, p, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBookingAndPayment(ctx, b, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   actorID,
		Action:   "payment_collected",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
