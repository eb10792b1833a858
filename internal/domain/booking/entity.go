package booking

import (
	"time"

	"github.com/glowslot/salon-scheduler/internal/httperr"
	"github.com/glowslot/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel transitions a booking to cancelled. Cancelling an already
// cancelled booking reports changed=false and no error.
func Cancel(b *models.Booking, now time.Time) (changed bool, err error) {
	if Status(b.Status) == StatusCancelled {
		return false, nil
	}
	if err := CanCancel(Status(b.Status)); err != nil {
		return false, err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return true, nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

// CollectPayment marks the cash as received.
func CollectPayment(b *models.Booking, p *models.Payment, now time.Time) error {
	if Status(b.Status) == StatusCancelled {
		return httperr.ErrBusiness("invalid_state")
	}
	if PaymentStatus(p.Status) == PaymentCompleted {
		return httperr.ErrBusiness("already_paid")
	}

	p.Status = string(PaymentCompleted)
	p.CollectedAt = &now
	b.PaymentStatus = string(PaymentCompleted)
	return nil
}

// TotalDuration sums the snapshotted service lines.
func TotalDuration(services []models.Service) int {
	total := 0
	for _, s := range services {
		total += s.DurationMin
	}
	return total
}

func TotalPrice(services []models.Service) float64 {
	total := 0.0
	for _, s := range services {
		total += s.Price
	}
	return total
}
