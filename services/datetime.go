package services

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"RoboScan360/util"
)

const (
	DateLayout = "2006-01-02"

	instantLayout = "2006-01-02 15:04:05"
)

var (
	clock12h     = regexp.MustCompile(`^(0[0-9]|1[0-2]):([0-5][0-9]) ?([AaPp][Mm])$`)
	calendarDate = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

var (
	errTimeFormat = errors.New(util.INVALID_TIME_FORMAT)
	errDateFormat = errors.New(util.INVALID_DATE_FORMAT)
)

func IsClock12h(value string) bool {
	return clock12h.MatchString(value)
}

/*
* Parse "hh:mm AM|PM"
* 12 AM becomes 00, 12 PM stays 12, other PM hours add 12
* Return "HH:MM:00"
 */
func ConvertTo24Hour(time12h string) (string, error) {
	parts := clock12h.FindStringSubmatch(time12h)
	if parts == nil {
		return "", errTimeFormat
	}
	hours, _ := strconv.Atoi(parts[1])
	if hours == 0 {
		return "", errTimeFormat
	}
	isPM := strings.EqualFold(parts[3], "PM")
	switch {
	case hours == 12 && !isPM:
		hours = 0
	case hours != 12 && isPM:
		hours += 12
	}
	return fmt.Sprintf("%02d:%s:00", hours, parts[2]), nil
}

// IsCalendarDateValid checks month length with the Gregorian leap rule.
func IsCalendarDateValid(year, month, day int) bool {
	if year < 1 || month < 1 || month > 12 || day < 1 {
		return false
	}
	days := [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	limit := days[month-1]
	if month == 2 && isLeapYear(year) {
		limit = 29
	}
	return day <= limit
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// ParseCalendarDate accepts YYYY-MM-DD and rejects impossible dates.
func ParseCalendarDate(date string) (year, month, day int, err error) {
	parts := calendarDate.FindStringSubmatch(date)
	if parts == nil {
		return 0, 0, 0, errDateFormat
	}
	year, _ = strconv.Atoi(parts[1])
	month, _ = strconv.Atoi(parts[2])
	day, _ = strconv.Atoi(parts[3])
	if !IsCalendarDateValid(year, month, day) {
		return 0, 0, 0, errDateFormat
	}
	return year, month, day, nil
}

// AppointmentInstant combines an appointment date and 12-hour time into an
// instant in loc.
func AppointmentInstant(date, time12h string, loc *time.Location) (time.Time, error) {
	if _, _, _, err := ParseCalendarDate(date); err != nil {
		return time.Time{}, err
	}
	clock, err := ConvertTo24Hour(time12h)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(instantLayout, date+" "+clock, loc)
}

// IsFutureDateTime reports whether date+time is strictly after now.
func IsFutureDateTime(date, time12h string, now time.Time, loc *time.Location) (bool, error) {
	instant, err := AppointmentInstant(date, time12h, loc)
	if err != nil {
		return false, err
	}
	return instant.After(now), nil
}
