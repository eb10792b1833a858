package booking

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func openDay(stylists ...StylistDay) DaySchedule {
	return DaySchedule{
		OpenMinute:     600,  // 10:00
		CloseMinute:    1080, // 18:00
		GranularityMin: 30,
		Stylists:       stylists,
	}
}

func slotAt(t *testing.T, slots []Slot, startMinute int) Slot {
	t.Helper()
	for _, s := range slots {
		if s.StartMinute == startMinute {
			return s
		}
	}
	t.Fatalf("no slot at minute %d", startMinute)
	return Slot{}
}

func TestEvaluateBookedHidesCoveredStarts(t *testing.T) {
	// One stylist booked 10:00 to 11:00. A 60-minute service cannot start
	// at 10:00 or 10:30, can start at 11:00.
	day := openDay(StylistDay{
		StylistID: 1,
		Name:      "Asha",
		Booked:    []Range{{Start: 600, End: 660}},
	})

	slots := Evaluate(day, 60, -1)

	require.False(t, slotAt(t, slots, 600).Available)
	require.Equal(t, ReasonBooked, slotAt(t, slots, 600).Stylists[0].ConflictReason)
	require.False(t, slotAt(t, slots, 630).Available)
	require.True(t, slotAt(t, slots, 660).Available)
}

func TestEvaluateOutsideHours(t *testing.T) {
	// A 90-minute service cannot start at 17:00; it would run past close.
	day := openDay(StylistDay{StylistID: 1, Name: "Asha"})

	slots := Evaluate(day, 90, -1)

	last := slotAt(t, slots, 1020)
	require.False(t, last.Available)
	require.Equal(t, ReasonOutsideHours, last.Stylists[0].ConflictReason)

	require.True(t, slotAt(t, slots, 990).Available)
}

func TestEvaluateSalonHolidayWinsOverEverything(t *testing.T) {
	day := openDay(StylistDay{
		StylistID: 1,
		Name:      "Asha",
		Holiday:   true,
		Booked:    []Range{{Start: 600, End: 660}},
	})
	day.SalonHoliday = true

	slots := Evaluate(day, 30, -1)

	for _, s := range slots {
		require.False(t, s.Available)
		require.Equal(t, ReasonSalonHoliday, s.ConflictReason)
		for _, st := range s.Stylists {
			require.Equal(t, ReasonSalonHoliday, st.ConflictReason)
		}
	}
}

func TestEvaluateStylistHolidayBeatsBlockedAndBooked(t *testing.T) {
	day := openDay(StylistDay{
		StylistID: 1,
		Name:      "Asha",
		Holiday:   true,
		Blocked:   []Range{{Start: 600, End: 720}},
		Booked:    []Range{{Start: 720, End: 780}},
	})

	slots := Evaluate(day, 30, -1)

	for _, s := range slots {
		require.Equal(t, ReasonStylistHoliday, s.Stylists[0].ConflictReason)
	}
}

func TestEvaluateBlockedBeatsBooked(t *testing.T) {
	day := openDay(StylistDay{
		StylistID: 1,
		Name:      "Asha",
		Blocked:   []Range{{Start: 600, End: 660}},
		Booked:    []Range{{Start: 600, End: 660}},
	})

	slots := Evaluate(day, 30, -1)
	require.Equal(t, ReasonBlocked, slotAt(t, slots, 600).Stylists[0].ConflictReason)
}

func TestEvaluateCutoff(t *testing.T) {
	// Cutoff at 12:10: starts before it are too soon, 12:30 onward fine.
	day := openDay(StylistDay{StylistID: 1, Name: "Asha"})

	slots := Evaluate(day, 30, 730)

	require.Equal(t, ReasonTooSoon, slotAt(t, slots, 600).Stylists[0].ConflictReason)
	require.Equal(t, ReasonTooSoon, slotAt(t, slots, 720).Stylists[0].ConflictReason)
	require.True(t, slotAt(t, slots, 750).Available)
}

func TestEvaluateNoStylists(t *testing.T) {
	slots := Evaluate(openDay(), 30, -1)

	require.NotEmpty(t, slots)
	for _, s := range slots {
		require.False(t, s.Available)
		require.Equal(t, ReasonNoStylists, s.ConflictReason)
		require.Empty(t, s.Stylists)
	}
}

func TestEvaluateAnyStylistNeedsOneFree(t *testing.T) {
	day := openDay(
		StylistDay{StylistID: 1, Name: "Asha", Booked: []Range{{Start: 600, End: 660}}},
		StylistDay{StylistID: 2, Name: "Meera"},
	)

	slots := Evaluate(day, 60, -1)

	s := slotAt(t, slots, 600)
	require.True(t, s.Available)
	require.False(t, s.Stylists[0].Available)
	require.True(t, s.Stylists[1].Available)
}

func TestEvaluateDurationMonotonicity(t *testing.T) {
	// Any start bookable for 90 minutes must be bookable for 30.
	day := openDay(
		StylistDay{
			StylistID: 1,
			Name:      "Asha",
			Booked:    []Range{{Start: 660, End: 720}, {Start: 900, End: 990}},
			Blocked:   []Range{{Start: 780, End: 810}},
		},
	)

	long := Evaluate(day, 90, -1)
	short := Evaluate(day, 30, -1)

	for i := range long {
		if long[i].Available {
			require.True(t, short[i].Available, "start %d", long[i].StartMinute)
		}
	}
}

func TestPickStylistLowestID(t *testing.T) {
	day := openDay(
		StylistDay{StylistID: 3, Name: "Asha"},
		StylistDay{StylistID: 7, Name: "Meera"},
	)

	slots := Evaluate(day, 30, -1)

	id, ok := PickStylist(slots, 600)
	require.True(t, ok)
	require.Equal(t, uint(3), id)

	_, ok = PickStylist(slots, 601)
	require.False(t, ok)
}

func TestPickStylistSkipsBusy(t *testing.T) {
	day := openDay(
		StylistDay{StylistID: 3, Name: "Asha", Booked: []Range{{Start: 600, End: 630}}},
		StylistDay{StylistID: 7, Name: "Meera"},
	)

	slots := Evaluate(day, 30, -1)

	id, ok := PickStylist(slots, 600)
	require.True(t, ok)
	require.Equal(t, uint(7), id)
}
