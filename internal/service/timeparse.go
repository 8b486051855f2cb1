package service

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDeparture converts a timing-board time string to minutes since
// midnight. Boards mix 24-hour ("18:45"), zero-padded ("06:30") and
// 12-hour ("6:30 PM", "6 PM") notations.
func ParseDeparture(s string) (int, error) {
	raw := strings.ToUpper(strings.TrimSpace(s))
	if raw == "" {
		return 0, fmt.Errorf("empty time")
	}

	isPM := strings.Contains(raw, "PM")
	isAM := strings.Contains(raw, "AM")
	cleaned := strings.NewReplacer("AM", "", "PM", "", " ", "", ".", ":").Replace(raw)
	if cleaned == "" {
		return 0, fmt.Errorf("no digits in time %q", s)
	}

	hourStr, minuteStr, hasMinute := strings.Cut(cleaned, ":")
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, fmt.Errorf("hour in %q: %w", s, err)
	}
	minute := 0
	if hasMinute && minuteStr != "" {
		minute, err = strconv.Atoi(minuteStr)
		if err != nil {
			return 0, fmt.Errorf("minute in %q: %w", s, err)
		}
	}

	if isPM && hour != 12 {
		hour += 12
	} else if isAM && hour == 12 {
		hour = 0
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return hour*60 + minute, nil
}

// FormatMinute renders minutes since midnight as HH:MM.
func FormatMinute(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
