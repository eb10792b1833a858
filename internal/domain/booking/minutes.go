package booking

import (
	"fmt"
	"time"

	"github.com/glowslot/salon-scheduler/internal/httperr"
)

// Times of day are integer minutes since midnight everywhere past the HTTP
// boundary. "HH:mm" strings exist only in requests, responses and
// notification copy.

const MinutesPerDay = 24 * 60

func ParseMinute(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_time")
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// FormatMinute12h renders "05:30 PM" style strings for customer-facing copy.
func FormatMinute12h(m int) string {
	h := m / 60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h12, m%60, suffix)
}

func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
