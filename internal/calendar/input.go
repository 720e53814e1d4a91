// Package calendar turns request-level birth data into saju charts.
//
// It sits between the transports (HTTP, MCP, CLI) and the generic engine in
// internal/saju: it parses loosely formatted date and time strings, fills in
// configured defaults, converts lunar birth dates, and picks the date backend.
package calendar

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidInput is returned for malformed or missing request fields.
var ErrInvalidInput = errors.New("invalid input")

// Calendar systems accepted for the birth date.
const (
	CalendarSolar = "solar"
	CalendarLunar = "lunar"
)

// BirthInput is the transport-neutral shape of a chart request.
// Empty fields are filled from the service defaults.
type BirthInput struct {
	Date           string   `json:"date" yaml:"date" jsonschema:"birth date as YYYY-MM-DD"`
	Time           string   `json:"time" yaml:"time" jsonschema:"local clock time as HH:MM or HH:MM:SS"`
	Timezone       string   `json:"timezone,omitempty" yaml:"timezone,omitempty" jsonschema:"IANA zone name such as Asia/Seoul"`
	Longitude      *float64 `json:"longitude,omitempty" yaml:"longitude,omitempty" jsonschema:"birthplace longitude in degrees east"`
	Gender         string   `json:"gender" yaml:"gender" jsonschema:"male or female"`
	Preset         string   `json:"preset,omitempty" yaml:"preset,omitempty" jsonschema:"standard or traditional"`
	Calendar       string   `json:"calendar,omitempty" yaml:"calendar,omitempty" jsonschema:"solar (default) or lunar"`
	LeapMonth      bool     `json:"leap_month,omitempty" yaml:"leap_month,omitempty" jsonschema:"lunar date falls in the leap month"`
	TzOffsetHours  *float64 `json:"tz_offset_hours,omitempty" yaml:"tz_offset_hours,omitempty" jsonschema:"overrides the zone offset in hours"`
	CurrentYear    int      `json:"current_year,omitempty" yaml:"current_year,omitempty" jsonschema:"year used to pick the current luck period"`
	YearlyLuckFrom *int     `json:"yearly_luck_from,omitempty" yaml:"yearly_luck_from,omitempty" jsonschema:"first year of the yearly luck list"`
	YearlyLuckTo   *int     `json:"yearly_luck_to,omitempty" yaml:"yearly_luck_to,omitempty" jsonschema:"last year of the yearly luck list"`
}

var (
	datePattern  = regexp.MustCompile(`^(\d{4})[-./](\d{1,2})[-./](\d{1,2})$`)
	clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
)

// ParseDate splits a YYYY-MM-DD string into its parts without checking that
// the day exists, so it serves lunar dates too. Dots and slashes are accepted
// as separators.
func ParseDate(s string) (year, month, day int, err error) {
	matches := datePattern.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return 0, 0, 0, fmt.Errorf("%w: date %q must look like YYYY-MM-DD", ErrInvalidInput, s)
	}

	year, _ = strconv.Atoi(matches[1])
	month, _ = strconv.Atoi(matches[2])
	day, _ = strconv.Atoi(matches[3])

	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("%w: month %d out of range", ErrInvalidInput, month)
	}
	if day < 1 || day > 31 {
		return 0, 0, 0, fmt.Errorf("%w: day %d out of range", ErrInvalidInput, day)
	}
	return year, month, day, nil
}

// ParseSolarDate is ParseDate plus a check that the Gregorian day exists.
func ParseSolarDate(s string) (year, month, day int, err error) {
	year, month, day, err = ParseDate(s)
	if err != nil {
		return 0, 0, 0, err
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return 0, 0, 0, fmt.Errorf("%w: %04d-%02d-%02d does not exist", ErrInvalidInput, year, month, day)
	}
	return year, month, day, nil
}

// ParseClock parses HH:MM or HH:MM:SS on a 24-hour clock.
func ParseClock(s string) (hour, minute, second int, err error) {
	matches := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return 0, 0, 0, fmt.Errorf("%w: time %q must look like HH:MM", ErrInvalidInput, s)
	}

	hour, _ = strconv.Atoi(matches[1])
	minute, _ = strconv.Atoi(matches[2])
	if matches[3] != "" {
		second, _ = strconv.Atoi(matches[3])
	}

	if hour > 23 || minute > 59 || second > 59 {
		return 0, 0, 0, fmt.Errorf("%w: time %q out of range", ErrInvalidInput, s)
	}
	return hour, minute, second, nil
}
