// Package dateadapter abstracts the calendar library used by the saju engine.
//
// The engine never touches a concrete date type. It is handed an Adapter[T]
// and an opaque T, and asks the adapter for wall-clock fields, arithmetic and
// epoch conversions. Two backends are provided:
//
//   - std:    backed by time.Time and the IANA database in the standard library
//   - carbon: backed by github.com/golang-module/carbon/v2
//
// Both backends must agree on every field for the same instant and zone.
package dateadapter

import (
	"errors"
	"fmt"
	"strings"
)

// Adapter exposes calendar operations over an opaque date value T.
//
// Field getters report the local wall clock in the zone attached to the
// value, never the process zone. Months are 1-based.
type Adapter[T any] interface {
	Year(T) int
	Month(T) int
	Day(T) int
	Hour(T) int
	Minute(T) int
	Second(T) int
	ZoneName(T) string

	PlusMinutes(T, int) T
	PlusDays(T, int) T
	MinusDays(T, int) T

	ToUTC(T) T
	SetZone(T, string) (T, error)
	ToMillis(T) int64
	FromMillis(ms int64, zone string) (T, error)

	CreateUTC(year, month, day, hour, minute, second int) T
	Create(year, month, day, hour, minute, second int, zone string) (T, error)

	IsGreaterThanOrEqual(a, b T) bool
	ToISO(T) string
}

// Backend names a calendar implementation.
type Backend string

const (
	BackendStd    Backend = "std"
	BackendCarbon Backend = "carbon"
)

// ErrInvalidZone is returned when a zone name cannot be resolved.
var ErrInvalidZone = errors.New("invalid time zone")

// ErrUnknownBackend is returned by ParseBackend for unrecognised names.
var ErrUnknownBackend = errors.New("unknown date backend")

// ParseBackend maps a configuration string to a Backend.
func ParseBackend(name string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "std", "stdlib", "time":
		return BackendStd, nil
	case "carbon":
		return BackendCarbon, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// OffsetHours reports the zone offset of v from UTC in hours, computed from
// the adapter alone: the local wall clock re-read as UTC minus the instant.
func OffsetHours[T any](a Adapter[T], v T) float64 {
	wall := a.CreateUTC(a.Year(v), a.Month(v), a.Day(v), a.Hour(v), a.Minute(v), a.Second(v))
	diff := a.ToMillis(wall) - a.ToMillis(v)
	// drop sub-second noise
	diff -= diff % 1000
	return float64(diff) / 3_600_000
}
