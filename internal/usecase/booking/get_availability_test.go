package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/glowslot/salon-scheduler/internal/domain/booking"
	"github.com/glowslot/salon-scheduler/internal/httperr"
	"github.com/glowslot/salon-scheduler/internal/models"
)

const futureDate = "2027-03-10"

func slotByMinute(t *testing.T, slots []domain.Slot, minute int) domain.Slot {
	t.Helper()
	for _, s := range slots {
		if s.StartMinute == minute {
			return s
		}
	}
	t.Fatalf("no slot at minute %d", minute)
	return domain.Slot{}
}

func TestGetAvailabilityBookedMorning(t *testing.T) {
	repo := newFakeRepo()
	repo.services = []models.Service{{ID: 5, SalonID: 1, Name: "Haircut", DurationMin: 60, Price: 300, Active: true}}
	repo.stylists = []models.Stylist{{ID: 1, SalonID: 1, Name: "Asha", Active: true}}
	repo.booked[1] = []domain.Range{{Start: 600, End: 660}}

	uc := NewGetAvailability(repo)
	res, err := uc.Execute(context.Background(), AvailabilityInput{
		SalonID:    1,
		ServiceIDs: []uint{5},
		Date:       futureDate,
	})
	require.NoError(t, err)
	require.Equal(t, 60, res.DurationMin)
	require.Len(t, res.Slots, 16)

	require.False(t, slotByMinute(t, res.Slots, 600).Available)
	require.False(t, slotByMinute(t, res.Slots, 630).Available)
	require.True(t, slotByMinute(t, res.Slots, 660).Available)

	// A 60-minute booking cannot start on the last grid cell.
	last := slotByMinute(t, res.Slots, 1050)
	require.False(t, last.Available)
	require.Equal(t, domain.ReasonOutsideHours, last.Stylists[0].ConflictReason)
}

func TestGetAvailabilityStylistFilter(t *testing.T) {
	repo := newFakeRepo()
	repo.services = []models.Service{{ID: 5, SalonID: 1, Name: "Haircut", DurationMin: 30, Price: 300, Active: true}}
	repo.stylists = []models.Stylist{
		{ID: 1, SalonID: 1, Name: "Asha", Active: true},
		{ID: 2, SalonID: 1, Name: "Meera", Active: true},
	}
	repo.stylistHolidays[1] = true

	uc := NewGetAvailability(repo)

	res, err := uc.Execute(context.Background(), AvailabilityInput{
		SalonID:    1,
		StylistID:  1,
		ServiceIDs: []uint{5},
		Date:       futureDate,
	})
	require.NoError(t, err)
	for _, s := range res.Slots {
		require.Len(t, s.Stylists, 1)
		require.False(t, s.Available)
		require.Equal(t, domain.ReasonStylistHoliday, s.Stylists[0].ConflictReason)
	}

	_, err = uc.Execute(context.Background(), AvailabilityInput{
		SalonID:    1,
		StylistID:  99,
		ServiceIDs: []uint{5},
		Date:       futureDate,
	})
	require.Equal(t, "stylist_not_found", httperr.BusinessCode(err))
}

func TestGetAvailabilitySalonHoliday(t *testing.T) {
	repo := newFakeRepo()
	repo.services = []models.Service{{ID: 5, SalonID: 1, Name: "Haircut", DurationMin: 30, Price: 300, Active: true}}
	repo.stylists = []models.Stylist{{ID: 1, SalonID: 1, Name: "Asha", Active: true}}
	repo.salonHoliday = true

	uc := NewGetAvailability(repo)
	res, err := uc.Execute(context.Background(), AvailabilityInput{
		SalonID:    1,
		ServiceIDs: []uint{5},
		Date:       futureDate,
	})
	require.NoError(t, err)
	for _, s := range res.Slots {
		require.False(t, s.Available)
		require.Equal(t, domain.ReasonSalonHoliday, s.ConflictReason)
	}
}

func TestGetAvailabilityBadInput(t *testing.T) {
	repo := newFakeRepo()
	repo.services = []models.Service{{ID: 5, SalonID: 1, Name: "Haircut", DurationMin: 30, Price: 300, Active: true}}

	uc := NewGetAvailability(repo)

	_, err := uc.Execute(context.Background(), AvailabilityInput{
		SalonID:    1,
		ServiceIDs: []uint{5},
		Date:       "10-03-2027",
	})
	require.Equal(t, "invalid_date", httperr.BusinessCode(err))

	_, err = uc.Execute(context.Background(), AvailabilityInput{
		SalonID:    1,
		ServiceIDs: []uint{99},
		Date:       futureDate,
	})
	require.Equal(t, "service_not_found", httperr.BusinessCode(err))
}
