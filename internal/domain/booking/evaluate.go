package booking

// Conflict reasons reported per (slot, stylist) pair.
const (
	ReasonSalonHoliday   = "salon_holiday"
	ReasonStylistHoliday = "stylist_holiday"
	ReasonBlocked        = "blocked"
	ReasonBooked         = "booked"
	ReasonOutsideHours   = "outside_hours"
	ReasonTooSoon        = "too_soon"
	ReasonNoStylists     = "no_stylists"
)

// StylistDay is one stylist's constraints for a single date.
type StylistDay struct {
	StylistID uint
	Name      string
	Holiday   bool
	Blocked   []Range
	Booked    []Range
}

// DaySchedule is the full snapshot the evaluator works from. Stylists must
// be in ascending ID order so any-stylist results are deterministic.
type DaySchedule struct {
	OpenMinute     int
	CloseMinute    int
	GranularityMin int
	SalonHoliday   bool
	Stylists       []StylistDay
}

type StylistSlot struct {
	StylistID      uint   `json:"stylist_id"`
	StylistName    string `json:"stylist_name"`
	Available      bool   `json:"is_available"`
	ConflictReason string `json:"conflict_reason,omitempty"`
}

type Slot struct {
	StartMinute    int           `json:"start_minute"`
	Time           string        `json:"time"`
	Available      bool          `json:"is_available"`
	ConflictReason string        `json:"conflict_reason,omitempty"`
	Stylists       []StylistSlot `json:"stylists"`
}

// Evaluate marks every (candidate start, stylist) pair bookable or not for
// a booking of durationMin minutes. cutoffMinute is the earliest allowed
// start on the requested date (now + buffer when the date is today in the
// salon timezone); pass a negative value for future dates.
//
// Evaluate is a pure function of its inputs and safe for concurrent use.
func Evaluate(day DaySchedule, durationMin int, cutoffMinute int) []Slot {
	starts := SlotStarts(day.OpenMinute, day.CloseMinute, day.GranularityMin)

	slots := make([]Slot, 0, len(starts))
	for _, start := range starts {
		slot := Slot{
			StartMinute: start,
			Time:        FormatMinute(start),
		}

		if len(day.Stylists) == 0 {
			slot.ConflictReason = ReasonNoStylists
			slots = append(slots, slot)
			continue
		}

		want := Range{Start: start, End: start + durationMin}

		for _, st := range day.Stylists {
			ss := StylistSlot{
				StylistID:   st.StylistID,
				StylistName: st.Name,
			}

			switch {
			case day.SalonHoliday:
				ss.ConflictReason = ReasonSalonHoliday
			case st.Holiday:
				ss.ConflictReason = ReasonStylistHoliday
			case want.End > day.CloseMinute:
				ss.ConflictReason = ReasonOutsideHours
			case cutoffMinute >= 0 && start < cutoffMinute:
				ss.ConflictReason = ReasonTooSoon
			case overlapsAny(want, st.Blocked):
				ss.ConflictReason = ReasonBlocked
			case overlapsAny(want, st.Booked):
				ss.ConflictReason = ReasonBooked
			default:
				ss.Available = true
			}

			slot.Stylists = append(slot.Stylists, ss)
			if ss.Available {
				slot.Available = true
			}
		}

		if !slot.Available && day.SalonHoliday {
			slot.ConflictReason = ReasonSalonHoliday
		}

		slots = append(slots, slot)
	}

	return slots
}

// PickStylist returns the lowest-ID stylist available at the given start,
// for any-stylist auto-assignment. ok is false when none is free.
func PickStylist(slots []Slot, startMinute int) (uint, bool) {
	for _, slot := range slots {
		if slot.StartMinute != startMinute {
			continue
		}
		for _, st := range slot.Stylists {
			if st.Available {
				return st.StylistID, true
			}
		}
		return 0, false
	}
	return 0, false
}

func overlapsAny(want Range, busy []Range) bool {
	for _, b := range busy {
		if want.Overlaps(b) {
			return true
		}
	}
	return false
}
