package booking

import (
	"context"
	"time"

	domain "github.com/glowslot/salon-scheduler/internal/domain/booking"
	"github.com/glowslot/salon-scheduler/internal/httperr"
	"github.com/glowslot/salon-scheduler/internal/models"
	"github.com/glowslot/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type AvailabilityInput struct {
	SalonID    uint
	StylistID  uint // 0 = any stylist
	ServiceIDs []uint
	Date       string // YYYY-MM-DD
}

type AvailabilityResult struct {
	Date        string        `json:"date"`
	DurationMin int           `json:"duration_min"`
	Slots       []domain.Slot `json:"slots"`
}

// ======================================================
// USE CASE
// ======================================================

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*AvailabilityResult, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	if _, err := time.ParseInLocation("2006-01-02", in.Date, timezone.Location(salon.Timezone)); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	services, err := uc.repo.GetServicesByIDs(ctx, in.SalonID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	durationMin := domain.TotalDuration(services)
	if durationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	day, err := uc.loadDaySchedule(ctx, salon, in.Date, in.StylistID)
	if err != nil {
		return nil, err
	}

	cutoff := CutoffMinute(salon, in.Date)

	return &AvailabilityResult{
		Date:        in.Date,
		DurationMin: durationMin,
		Slots:       domain.Evaluate(*day, durationMin, cutoff),
	}, nil
}

// loadDaySchedule assembles the evaluator snapshot in a handful of bulk
// queries, one per constraint table.
func (uc *GetAvailability) loadDaySchedule(
	ctx context.Context,
	salon *models.Salon,
	date string,
	stylistID uint,
) (*domain.DaySchedule, error) {

	stylists, err := uc.repo.ListActiveStylists(ctx, salon.ID)
	if err != nil {
		return nil, err
	}

	if stylistID != 0 {
		filtered := stylists[:0]
		for _, st := range stylists {
			if st.ID == stylistID {
				filtered = append(filtered, st)
			}
		}
		if len(filtered) == 0 {
			return nil, httperr.ErrBusiness("stylist_not_found")
		}
		stylists = filtered
	}

	day := &domain.DaySchedule{
		OpenMinute:     salon.OpenMinute,
		CloseMinute:    salon.CloseMinute,
		GranularityMin: Granularity(salon),
	}

	day.SalonHoliday, err = uc.repo.SalonHolidayExists(ctx, salon.ID, date)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(stylists))
	for _, st := range stylists {
		ids = append(ids, st.ID)
	}

	if len(ids) == 0 {
		return day, nil
	}

	holidays, err := uc.repo.StylistHolidaysOn(ctx, ids, date)
	if err != nil {
		return nil, err
	}

	blocked, err := uc.repo.BlockedRangesOn(ctx, ids, date)
	if err != nil {
		return nil, err
	}

	booked, err := uc.repo.BookedRangesOn(ctx, ids, date)
	if err != nil {
		return nil, err
	}

	for _, st := range stylists {
		day.Stylists = append(day.Stylists, domain.StylistDay{
			StylistID: st.ID,
			Name:      st.Name,
			Holiday:   holidays[st.ID],
			Blocked:   blocked[st.ID],
			Booked:    booked[st.ID],
		})
	}

	return day, nil
}

// ======================================================
// HELPERS (shared with booking creation)
// ======================================================

// CutoffMinute returns the earliest bookable start minute when date is
// today in the salon timezone, -1 otherwise.
func CutoffMinute(salon *models.Salon, date string) int {
	now := timezone.NowIn(salon.Timezone)
	if now.Format("2006-01-02") != date {
		return -1
	}

	buffer := salon.MinAdvanceMinutes
	if buffer <= 0 {
		buffer = domain.DefaultBufferMinutes
	}

	return domain.MinuteOfDay(now) + buffer
}

func Granularity(salon *models.Salon) int {
	if salon.SlotGranularityMin > 0 {
		return salon.SlotGranularityMin
	}
	return domain.DefaultGranularityMin
}
