package booking

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	domain "github.com/glowslot/salon-scheduler/internal/domain/booking"
	"github.com/glowslot/salon-scheduler/internal/httperr"
	"github.com/glowslot/salon-scheduler/internal/lock"
	"github.com/glowslot/salon-scheduler/internal/models"
)

func catalogRepo() *fakeRepo {
	repo := newFakeRepo()
	repo.services = []models.Service{
		{ID: 5, SalonID: 1, Name: "Haircut", DurationMin: 30, Price: 250, Active: true},
		{ID: 6, SalonID: 1, Name: "Beard Trim", DurationMin: 30, Price: 150, Active: true},
	}
	repo.stylists = []models.Stylist{
		{ID: 1, SalonID: 1, Name: "Asha", Active: true},
		{ID: 2, SalonID: 1, Name: "Meera", Active: true},
	}
	return repo
}

func TestCreateBookingExplicitStylist(t *testing.T) {
	repo := catalogRepo()
	uc := NewCreateBooking(repo, nil, nil, nil)

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		SalonID:       1,
		StylistID:     2,
		CustomerName:  "Priya",
		CustomerPhone: "9999",
		ServiceIDs:    []uint{5, 6},
		Date:          futureDate,
		Time:          "11:00",
	})
	require.NoError(t, err)

	require.Equal(t, uint(2), b.StylistID)
	require.Equal(t, 660, b.StartMinute)
	require.Equal(t, 720, b.EndMinute)
	require.Equal(t, string(domain.StatusConfirmed), b.Status)
	require.Equal(t, string(domain.PaymentPending), b.PaymentStatus)
	require.NotEmpty(t, b.Reference)

	require.Len(t, b.Services, 2)
	require.Equal(t, "Haircut", b.Services[0].Name)
	require.Equal(t, uint(5), b.Services[0].ServiceID)

	require.NotNil(t, repo.createdPayment)
	require.Equal(t, "cash", repo.createdPayment.Method)
	require.InDelta(t, 400.0, repo.createdPayment.Amount, 0.001)
}

func TestCreateBookingAutoAssign(t *testing.T) {
	repo := catalogRepo()
	repo.booked[1] = []domain.Range{{Start: 660, End: 720}}

	uc := NewCreateBooking(repo, nil, nil, nil)

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		SalonID:       1,
		CustomerName:  "Priya",
		CustomerPhone: "9999",
		ServiceIDs:    []uint{5},
		Date:          futureDate,
		Time:          "11:00",
	})
	require.NoError(t, err)
	require.Equal(t, uint(2), b.StylistID)
}

func TestCreateBookingAutoAssignNobodyFree(t *testing.T) {
	repo := catalogRepo()
	repo.booked[1] = []domain.Range{{Start: 660, End: 720}}
	repo.booked[2] = []domain.Range{{Start: 630, End: 690}}

	uc := NewCreateBooking(repo, nil, nil, nil)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		SalonID:       1,
		CustomerName:  "Priya",
		CustomerPhone: "9999",
		ServiceIDs:    []uint{5},
		Date:          futureDate,
		Time:          "11:00",
	})
	require.Equal(t, "time_conflict", httperr.BusinessCode(err))
}

func TestCreateBookingRejectsBadRequests(t *testing.T) {
	repo := catalogRepo()
	repo.stylists[1].Active = false

	uc := NewCreateBooking(repo, nil, nil, nil)

	cases := []struct {
		name string
		in   CreateBookingInput
		code string
	}{
		{
			"bad date",
			CreateBookingInput{SalonID: 1, ServiceIDs: []uint{5}, Date: "soon", Time: "11:00"},
			"invalid_date",
		},
		{
			"bad time",
			CreateBookingInput{SalonID: 1, ServiceIDs: []uint{5}, Date: futureDate, Time: "25:00"},
			"invalid_time",
		},
		{
			"before opening",
			CreateBookingInput{SalonID: 1, ServiceIDs: []uint{5}, Date: futureDate, Time: "09:00"},
			"outside_hours",
		},
		{
			"runs past close",
			CreateBookingInput{SalonID: 1, ServiceIDs: []uint{5, 6}, Date: futureDate, Time: "17:45"},
			"outside_hours",
		},
		{
			"inactive stylist",
			CreateBookingInput{SalonID: 1, StylistID: 2, ServiceIDs: []uint{5}, Date: futureDate, Time: "11:00"},
			"stylist_not_found",
		},
		{
			"unknown service",
			CreateBookingInput{SalonID: 1, ServiceIDs: []uint{99}, Date: futureDate, Time: "11:00"},
			"service_not_found",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.CustomerName = "Priya"
			tc.in.CustomerPhone = "9999"
			_, err := uc.Execute(context.Background(), tc.in)
			require.Equal(t, tc.code, httperr.BusinessCode(err))
		})
	}
}

func TestCreateBookingReleasesHold(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	locks := lock.NewCoordinator(client, time.Minute, zerolog.Nop())
	ctx := context.Background()

	hold, err := locks.Acquire(ctx, 1, futureDate, 660, 30, 30)
	require.NoError(t, err)

	repo := catalogRepo()
	uc := NewCreateBooking(repo, locks, nil, nil)

	// The attempt fails validation, but the hold must still be released.
	_, err = uc.Execute(ctx, CreateBookingInput{
		SalonID:       1,
		StylistID:     1,
		CustomerName:  "Priya",
		CustomerPhone: "9999",
		ServiceIDs:    []uint{5},
		Date:          futureDate,
		Time:          "25:00",
		Hold:          hold,
	})
	require.Error(t, err)

	_, err = locks.Acquire(ctx, 1, futureDate, 660, 30, 30)
	require.NoError(t, err)
}
