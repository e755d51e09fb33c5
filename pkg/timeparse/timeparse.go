// Package timeparse normalizes free-form human time input into the
// canonical "HH:MM" 24-hour representation. It is purely lexical: business
// rules (working hours, slot availability) belong to the caller.
package timeparse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidTime возвращается, когда ввод не распознаётся как время суток
var ErrInvalidTime = errors.New("timeparse: not a valid time of day")

// Hour 0-23, optional minute 00-59, optional am/pm, separators ":", ".",
// space or none.
var timeRx = regexp.MustCompile(`^\s*([01]?\d|2[0-3])(?::|\.|\s)?([0-5]\d)?\s*([ap]m)?\s*$`)

// Parse converts inputs like "9", "9:30", "9.30", "9 30", "930", "9am",
// "12 AM", "21:00" into canonical "HH:MM". Returns ErrInvalidTime when the
// hour or minute is out of range or the shape is unrecognized.
func Parse(text string) (string, error) {
	m := timeRx.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return "", ErrInvalidTime
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return "", ErrInvalidTime
	}

	minute := 0
	if m[2] != "" {
		minute, err = strconv.Atoi(m[2])
		if err != nil {
			return "", ErrInvalidTime
		}
	}

	switch m[3] {
	case "am":
		if hour > 12 {
			return "", ErrInvalidTime
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour > 12 {
			return "", ErrInvalidTime
		}
		if hour < 12 {
			hour += 12
		}
	}

	return Format(hour, minute), nil
}

// Format renders an (hour, minute) pair as canonical "HH:MM"
func Format(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
