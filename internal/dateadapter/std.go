package dateadapter

import (
	"fmt"
	"sync"
	"time"
)

// Std implements Adapter over time.Time.
type Std struct {
	mu    sync.RWMutex
	zones map[string]*time.Location
}

// NewStd returns the time.Time backed adapter.
func NewStd() (*Std, error) {
	return &Std{zones: map[string]*time.Location{"UTC": time.UTC}}, nil
}

func (s *Std) location(name string) (*time.Location, error) {
	s.mu.RLock()
	loc, ok := s.zones[name]
	s.mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidZone, name, err)
	}

	s.mu.Lock()
	s.zones[name] = loc
	s.mu.Unlock()
	return loc, nil
}

func (s *Std) Year(t time.Time) int { return t.Year() }
func (s *Std) Month(t time.Time) int { return int(t.Month()) }
func (s *Std) Day(t time.Time) int { return t.Day() }
func (s *Std) Hour(t time.Time) int { return t.Hour() }
func (s *Std) Minute(t time.Time) int { return t.Minute() }
func (s *Std) Second(t time.Time) int { return t.Second() }

func (s *Std) ZoneName(t time.Time) string { return t.Location().String() }

func (s *Std) PlusMinutes(t time.Time, n int) time.Time {
	return t.Add(time.Duration(n) * time.Minute)
}

// PlusDays moves the calendar date, keeping the wall clock.
func (s *Std) PlusDays(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) }

func (s *Std) MinusDays(t time.Time, n int) time.Time { return t.AddDate(0, 0, -n) }

func (s *Std) ToUTC(t time.Time) time.Time { return t.UTC() }

func (s *Std) SetZone(t time.Time, zone string) (time.Time, error) {
	loc, err := s.location(zone)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

func (s *Std) ToMillis(t time.Time) int64 { return t.UnixMilli() }

func (s *Std) FromMillis(ms int64, zone string) (time.Time, error) {
	loc, err := s.location(zone)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms).In(loc), nil
}

func (s *Std) CreateUTC(year, month, day, hour, minute, second int) time.Time {
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
}

func (s *Std) Create(year, month, day, hour, minute, second int, zone string) (time.Time, error) {
	loc, err := s.location(zone)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, loc), nil
}

func (s *Std) IsGreaterThanOrEqual(a, b time.Time) bool { return !a.Before(b) }

func (s *Std) ToISO(t time.Time) string { return t.Format(time.RFC3339) }

var _ Adapter[time.Time] = (*Std)(nil)
