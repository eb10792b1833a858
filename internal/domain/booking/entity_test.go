package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/glowslot/salon-scheduler/internal/httperr"
	"github.com/glowslot/salon-scheduler/internal/models"
)

func TestCancelIdempotent(t *testing.T) {
	now := time.Now()
	b := &models.Booking{Status: string(StatusConfirmed)}

	changed, err := Cancel(b, now)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, string(StatusCancelled), b.Status)
	require.NotNil(t, b.CancelledAt)

	first := *b.CancelledAt

	changed, err = Cancel(b, now.Add(time.Hour))
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, first, *b.CancelledAt)
}

func TestCancelCompletedRejected(t *testing.T) {
	b := &models.Booking{Status: string(StatusCompleted)}

	changed, err := Cancel(b, time.Now())
	require.False(t, changed)
	require.Equal(t, "invalid_state", httperr.BusinessCode(err))
}

func TestCompleteOnlyFromConfirmed(t *testing.T) {
	now := time.Now()

	b := &models.Booking{Status: string(StatusConfirmed)}
	require.NoError(t, Complete(b, now))
	require.Equal(t, string(StatusCompleted), b.Status)
	require.NotNil(t, b.CompletedAt)

	for _, status := range []Status{StatusPending, StatusCancelled, StatusCompleted} {
		b := &models.Booking{Status: string(status)}
		err := Complete(b, now)
		require.Equal(t, "invalid_state", httperr.BusinessCode(err), status)
	}
}

func TestCollectPayment(t *testing.T) {
	now := time.Now()
	b := &models.Booking{Status: string(StatusConfirmed), PaymentStatus: string(PaymentPending)}
	p := &models.Payment{Status: string(PaymentPending)}

	require.NoError(t, CollectPayment(b, p, now))
	require.Equal(t, string(PaymentCompleted), p.Status)
	require.Equal(t, string(PaymentCompleted), b.PaymentStatus)
	require.NotNil(t, p.CollectedAt)

	err := CollectPayment(b, p, now)
	require.Equal(t, "already_paid", httperr.BusinessCode(err))
}

func TestCollectPaymentCancelledBooking(t *testing.T) {
	b := &models.Booking{Status: string(StatusCancelled)}
	p := &models.Payment{Status: string(PaymentPending)}

	err := CollectPayment(b, p, time.Now())
	require.Equal(t, "invalid_state", httperr.BusinessCode(err))
}

func TestOccupyingStatuses(t *testing.T) {
	statuses := OccupyingStatuses()

	// Completing a booking must not free its interval; only cancellation
	// releases the slot.
	require.Contains(t, statuses, string(StatusPending))
	require.Contains(t, statuses, string(StatusConfirmed))
	require.Contains(t, statuses, string(StatusCompleted))
	require.NotContains(t, statuses, string(StatusCancelled))
}

func TestTotals(t *testing.T) {
	services := []models.Service{
		{DurationMin: 30, Price: 250},
		{DurationMin: 45, Price: 400},
	}

	require.Equal(t, 75, TotalDuration(services))
	require.InDelta(t, 650.0, TotalPrice(services), 0.001)
}
