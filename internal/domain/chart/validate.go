package chart

import (
	"fmt"

	apperrors "github.com/valentinromain/astrosiderale/pkg/errors"
)

// Validate rejects requests the engine must never see.
func Validate(req Request) error {
	switch {
	case req.Year < -5000 || req.Year > 5000:
		return invalidField("year must be between -5000 and 5000, got %d", req.Year)
	case req.Month < 1 || req.Month > 12:
		return invalidField("month must be between 1 and 12, got %d", req.Month)
	case req.Day < 1 || req.Day > DaysInMonth(req.Year, req.Month):
		return invalidField("day %d is not valid for %04d-%02d", req.Day, req.Year, req.Month)
	case req.Hours < 0 || req.Hours > 23:
		return invalidField("hours must be between 0 and 23, got %d", req.Hours)
	case req.Minutes < 0 || req.Minutes > 59:
		return invalidField("minutes must be between 0 and 59, got %d", req.Minutes)
	case req.Seconds < 0 || req.Seconds > 59:
		return invalidField("seconds must be between 0 and 59, got %d", req.Seconds)
	case req.Latitude < -90 || req.Latitude > 90:
		return invalidField("latitude must be between -90 and 90, got %g", req.Latitude)
	case req.Longitude < -180 || req.Longitude > 180:
		return invalidField("longitude must be between -180 and 180, got %g", req.Longitude)
	case req.Timezone < -14 || req.Timezone > 14:
		return invalidField("timezone must be between -14 and 14 hours, got %g", req.Timezone)
	}
	return nil
}

// DaysInMonth applies Gregorian leap year rules.
func DaysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	}
	return 0
}

func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func invalidField(format string, args ...any) error {
	return apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf(format, args...), nil)
}
