package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHourlySlots(t *testing.T) {
	slots := HourlySlots()

	assert.Len(t, slots, 12)
	assert.Equal(t, "08:00", slots[0])
	assert.Equal(t, "19:00", slots[len(slots)-1])
}

func TestWithinBusinessHours(t *testing.T) {
	tests := []struct {
		hhmm string
		want bool
	}{
		{"08:00", true},
		{"12:30", true},
		{"19:00", true},
		{"07:59", false},
		{"19:01", false},
		{"20:00", false},
		{"00:00", false},
		{"garbage", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, WithinBusinessHours(tt.hhmm), "time %s", tt.hhmm)
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2025, 1))
	assert.Equal(t, 28, DaysInMonth(2025, 2))
	assert.Equal(t, 29, DaysInMonth(2024, 2))
	assert.Equal(t, 30, DaysInMonth(2025, 4))
}

func TestValidRevenueBand(t *testing.T) {
	for _, v := range []string{"low", "mid", "high"} {
		band, ok := ValidRevenueBand(v)
		assert.True(t, ok)
		assert.Equal(t, RevenueBand(v), band)
	}

	_, ok := ValidRevenueBand("huge")
	assert.False(t, ok)
}

func TestSameSlot(t *testing.T) {
	b := &Booking{Year: 2025, Month: 7, Day: 15, Time: "14:00"}

	assert.True(t, b.SameSlot(2025, 7, 15, "14:00"))
	assert.False(t, b.SameSlot(2025, 7, 15, "15:00"))
	assert.False(t, b.SameSlot(2025, 7, 16, "14:00"))
}
