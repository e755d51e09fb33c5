package domain

import "time"

// Business hours for consultation slots. The hourly grid offered in the
// wizard and the bound applied to manual entry and retime replies.
const (
	BusinessOpenHour  = 8
	BusinessCloseHour = 19
)

// Booking id sequence seed. Kept well above zero so booking ids are never
// confused with Telegram message or callback ids in logs.
const BookingSeqStart = 1001

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ProfilePlaceholder is rendered for any missing profile field
const ProfilePlaceholder = "-"

// HourlySlots returns the fixed grid of offered start times,
// 08:00 .. 19:00 inclusive.
func HourlySlots() []string {
	slots := make([]string, 0, BusinessCloseHour-BusinessOpenHour+1)
	for h := BusinessOpenHour; h <= BusinessCloseHour; h++ {
		slots = append(slots, time.Date(0, 1, 1, h, 0, 0, 0, time.UTC).Format(TimeFormat))
	}
	return slots
}

// WithinBusinessHours reports whether a canonical "HH:MM" value falls in
// the bookable window, 08:00-19:00 inclusive.
func WithinBusinessHours(hhmm string) bool {
	t, err := time.Parse(TimeFormat, hhmm)
	if err != nil {
		return false
	}
	h, m := t.Hour(), t.Minute()
	if h < BusinessOpenHour || h > BusinessCloseHour {
		return false
	}
	if h == BusinessCloseHour && m > 0 {
		return false
	}
	return true
}

// DaysInMonth returns the number of days in the given month, leap years
// accounted for.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ValidRevenueBand validates a revenue band value coming from a callback
func ValidRevenueBand(v string) (RevenueBand, bool) {
	switch RevenueBand(v) {
	case RevenueLow, RevenueMid, RevenueHigh:
		return RevenueBand(v), true
	}
	return "", false
}
