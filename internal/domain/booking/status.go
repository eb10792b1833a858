package booking

import "github.com/glowslot/salon-scheduler/internal/httperr"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

// Cash bookings skip the pending stage entirely.
func InitialStatus() Status {
	return StatusConfirmed
}

// OccupyingStatuses lists the statuses under which a booking keeps its
// interval occupied on the stylist calendar. Only cancellation frees the
// slot; a completed booking still blocks its time.
func OccupyingStatuses() []string {
	return []string{
		string(StatusPending),
		string(StatusConfirmed),
		string(StatusCompleted),
	}
}

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel permits pending and confirmed. Cancelled is handled by the
// caller as an idempotent no-op, so only completed reaches the error here.
func CanCancel(current Status) error {
	if current == StatusCompleted {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
