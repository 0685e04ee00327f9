package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseUTCOffset reads a UTC offset in hours. Both decimal hours ("-4", "5.5")
// and clock notation ("+05:30", "-03:00") are accepted.
func ParseUTCOffset(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	if !strings.Contains(s, ":") {
		hours, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(hours) || math.IsInf(hours, 0) {
			return 0, fmt.Errorf("invalid utc offset %q", raw)
		}
		return hours, nil
	}

	sign := 1.0
	switch s[0] {
	case '-':
		sign = -1
		s = s[1:]
	case '+':
		s = s[1:]
	}
	hh, mm, _ := strings.Cut(s, ":")
	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("invalid utc offset %q", raw)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid utc offset %q", raw)
	}
	return sign * (float64(hours) + float64(minutes)/60), nil
}
