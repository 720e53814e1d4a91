package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zapponejosh/saju-api/internal/dateadapter"
	"github.com/zapponejosh/saju-api/internal/logger"
	"github.com/zapponejosh/saju-api/internal/saju"
)

// Request limits.
const (
	maxYearlyLuckYears = 200
	maxTzOffsetHours   = 14
)

// Defaults fill fields a request leaves empty.
type Defaults struct {
	Timezone  string
	Longitude float64
	Preset    string
}

// Service runs saju calculations on the configured date backend.
// It is safe for concurrent use.
type Service struct {
	backend  dateadapter.Backend
	std      *dateadapter.Std
	carbon   *dateadapter.Carbon
	defaults Defaults
	now      func() time.Time
}

// NewService creates a service bound to one date backend.
func NewService(backend dateadapter.Backend, defaults Defaults) (*Service, error) {
	s := &Service{backend: backend, defaults: defaults, now: time.Now}

	var err error
	switch backend {
	case dateadapter.BackendStd:
		s.std, err = dateadapter.NewStd()
	case dateadapter.BackendCarbon:
		s.carbon, err = dateadapter.NewCarbon()
	default:
		return nil, fmt.Errorf("%w: %q", dateadapter.ErrUnknownBackend, backend)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s adapter: %w", backend, err)
	}

	if _, err := saju.LookupPreset(defaults.Preset); err != nil {
		return nil, fmt.Errorf("default preset: %w", err)
	}
	return s, nil
}

// Backend reports which date backend the service uses.
func (s *Service) Backend() dateadapter.Backend { return s.backend }

// Birth is the normalised request echoed back with every chart.
type Birth struct {
	SolarDate string          `json:"solar_date" yaml:"solar_date"`
	LunarDate *saju.LunarDate `json:"lunar_input,omitempty" yaml:"lunar_input,omitempty"`
	Time      string          `json:"time" yaml:"time"`
	Timezone  string          `json:"timezone" yaml:"timezone"`
	Longitude float64         `json:"longitude" yaml:"longitude"`
	Gender    saju.Gender     `json:"gender" yaml:"gender"`
	Preset    string          `json:"preset" yaml:"preset"`
	Backend   string          `json:"backend" yaml:"backend"`
}

// Chart is a calculated chart together with the input it was built from.
type Chart struct {
	Birth  Birth        `json:"birth" yaml:"birth"`
	Result *saju.Result `json:"result" yaml:"result"`
}

// birthMoment is a fully resolved wall-clock birth.
type birthMoment struct {
	y, m, d, h, mi, s int
	zone              string
}

// Chart validates in, applies defaults, and runs the full analysis.
func (s *Service) Chart(ctx context.Context, in BirthInput) (*Chart, error) {
	birth, moment, opts, err := s.resolve(in)
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "calculating chart",
		"date", birth.SolarDate,
		"time", birth.Time,
		"timezone", birth.Timezone,
		"preset", birth.Preset,
		"backend", birth.Backend,
	)

	var res *saju.Result
	switch s.backend {
	case dateadapter.BackendCarbon:
		res, err = runChart(s.carbon, moment, opts)
	default:
		res, err = runChart(s.std, moment, opts)
	}
	if err != nil {
		return nil, err
	}

	return &Chart{Birth: birth, Result: res}, nil
}

func runChart[T any](a dateadapter.Adapter[T], b birthMoment, opts saju.Options) (*saju.Result, error) {
	v, err := a.Create(b.y, b.m, b.d, b.h, b.mi, b.s, b.zone)
	if err != nil {
		return nil, err
	}
	return saju.GetSaju(a, v, opts)
}

func (s *Service) resolve(in BirthInput) (Birth, birthMoment, saju.Options, error) {
	var (
		b  Birth
		bm birthMoment
	)

	if strings.TrimSpace(in.Date) == "" {
		return b, bm, saju.Options{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Time) == "" {
		return b, bm, saju.Options{}, fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	gender := saju.Gender(strings.ToLower(strings.TrimSpace(in.Gender)))
	if !gender.Valid() {
		return b, bm, saju.Options{}, fmt.Errorf("%w: %q", saju.ErrInvalidGender, in.Gender)
	}

	presetName := in.Preset
	if presetName == "" {
		presetName = s.defaults.Preset
	}
	preset, err := saju.LookupPreset(presetName)
	if err != nil {
		return b, bm, saju.Options{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	zone := in.Timezone
	if zone == "" {
		zone = s.defaults.Timezone
	}
	longitude := s.defaults.Longitude
	if in.Longitude != nil {
		longitude = *in.Longitude
	}
	if longitude < -180 || longitude > 180 {
		return b, bm, saju.Options{}, fmt.Errorf("%w: longitude %g out of range", ErrInvalidInput, longitude)
	}
	if off := in.TzOffsetHours; off != nil && (*off < -maxTzOffsetHours || *off > maxTzOffsetHours) {
		return b, bm, saju.Options{}, fmt.Errorf("%w: tz_offset_hours %g outside ±%d", ErrInvalidInput, *off, maxTzOffsetHours)
	}

	h, mi, sec, err := ParseClock(in.Time)
	if err != nil {
		return b, bm, saju.Options{}, err
	}

	var (
		y, m, d int
		lunar   *saju.LunarDate
	)
	switch strings.ToLower(in.Calendar) {
	case "", CalendarSolar:
		if y, m, d, err = ParseSolarDate(in.Date); err != nil {
			return b, bm, saju.Options{}, err
		}
	case CalendarLunar:
		ly, lm, ld, err := ParseDate(in.Date)
		if err != nil {
			return b, bm, saju.Options{}, err
		}
		lunar = &saju.LunarDate{Year: ly, Month: lm, Day: ld, IsLeapMonth: in.LeapMonth}
		if y, m, d, err = saju.ToSolar(*lunar); err != nil {
			return b, bm, saju.Options{}, err
		}
	default:
		return b, bm, saju.Options{}, fmt.Errorf("%w: calendar must be solar or lunar, got %q", ErrInvalidInput, in.Calendar)
	}

	currentYear := in.CurrentYear
	if currentYear == 0 {
		currentYear = s.now().Year()
	}

	opts := saju.Options{
		LongitudeDeg:  longitude,
		Gender:        gender,
		TzOffsetHours: in.TzOffsetHours,
		Preset:        &preset,
		CurrentYear:   currentYear,
	}
	if in.YearlyLuckFrom != nil || in.YearlyLuckTo != nil {
		span := saju.YearRange{From: currentYear, To: currentYear + 10}
		if in.YearlyLuckFrom != nil {
			span.From = *in.YearlyLuckFrom
		}
		if in.YearlyLuckTo != nil {
			span.To = *in.YearlyLuckTo
		}
		if !validYear(span.From) || !validYear(span.To) {
			return b, bm, saju.Options{}, fmt.Errorf("%w: yearly luck range %d..%d outside years 1..9999",
				ErrInvalidInput, span.From, span.To)
		}
		if span.To-span.From >= maxYearlyLuckYears {
			return b, bm, saju.Options{}, fmt.Errorf("%w: yearly luck range %d..%d exceeds %d years",
				ErrInvalidInput, span.From, span.To, maxYearlyLuckYears)
		}
		opts.YearlyLuckRange = &span
	}

	b = Birth{
		SolarDate: fmt.Sprintf("%04d-%02d-%02d", y, m, d),
		LunarDate: lunar,
		Time:      fmt.Sprintf("%02d:%02d:%02d", h, mi, sec),
		Timezone:  zone,
		Longitude: longitude,
		Gender:    gender,
		Preset:    preset.Name,
		Backend:   string(s.backend),
	}
	bm = birthMoment{y: y, m: m, d: d, h: h, mi: mi, s: sec, zone: zone}
	return b, bm, opts, nil
}

// LunarConversion pairs a Gregorian date with its lunar date.
type LunarConversion struct {
	Solar     string         `json:"solar" yaml:"solar"`
	Lunar     saju.LunarDate `json:"lunar" yaml:"lunar"`
	DayPillar saju.Pillar    `json:"day_pillar" yaml:"day_pillar"`
	Weekday   string         `json:"weekday" yaml:"weekday"`
}

func newConversion(y, m, d int, l saju.LunarDate) *LunarConversion {
	return &LunarConversion{
		Solar:     fmt.Sprintf("%04d-%02d-%02d", y, m, d),
		Lunar:     l,
		DayPillar: saju.DayPillar(y, m, d),
		Weekday:   time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC).Weekday().String(),
	}
}

// SolarToLunar converts a Gregorian YYYY-MM-DD date.
func (s *Service) SolarToLunar(ctx context.Context, date string) (*LunarConversion, error) {
	y, m, d, err := ParseSolarDate(date)
	if err != nil {
		return nil, err
	}
	l, err := saju.ToLunar(y, m, d)
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "solar to lunar", "solar", date, "lunar", l.String())
	return newConversion(y, m, d, l), nil
}

// LunarToSolar converts a lunar YYYY-MM-DD date; leap selects the
// intercalary month of that number.
func (s *Service) LunarToSolar(ctx context.Context, date string, leap bool) (*LunarConversion, error) {
	ly, lm, ld, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	l := saju.LunarDate{Year: ly, Month: lm, Day: ld, IsLeapMonth: leap}
	y, m, d, err := saju.ToSolar(l)
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "lunar to solar", "lunar", l.String(), "solar", fmt.Sprintf("%04d-%02d-%02d", y, m, d))
	return newConversion(y, m, d, l), nil
}

// TermEntry is one solar term with its local start time.
type TermEntry struct {
	saju.SolarTermEvent `yaml:",inline"`
	Local               string `json:"local" yaml:"local"`
}

// TermsTable lists the 24 solar terms of a civil year.
type TermsTable struct {
	Year     int         `json:"year" yaml:"year"`
	Timezone string      `json:"timezone" yaml:"timezone"`
	Terms    []TermEntry `json:"terms" yaml:"terms"`
}

// SolarTerms lists the terms of year with start times in zone.
// An empty zone uses the default.
func (s *Service) SolarTerms(ctx context.Context, year int, zone string) (*TermsTable, error) {
	if year < saju.LunarMinYear || year > saju.LunarMaxYear {
		return nil, fmt.Errorf("%w: year %d", saju.ErrDateOutOfRange, year)
	}
	if zone == "" {
		zone = s.defaults.Timezone
	}

	events := saju.SolarTermsForYear(year)

	var (
		terms []TermEntry
		err   error
	)
	switch s.backend {
	case dateadapter.BackendCarbon:
		terms, err = localTerms(s.carbon, events, zone)
	default:
		terms, err = localTerms(s.std, events, zone)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "solar terms", "year", year, "timezone", zone)
	return &TermsTable{Year: year, Timezone: zone, Terms: terms}, nil
}

func localTerms[T any](a dateadapter.Adapter[T], events []saju.SolarTermEvent, zone string) ([]TermEntry, error) {
	out := make([]TermEntry, 0, len(events))
	for _, ev := range events {
		v, err := a.FromMillis(ev.Millis, zone)
		if err != nil {
			return nil, err
		}
		out = append(out, TermEntry{SolarTermEvent: ev, Local: a.ToISO(v)})
	}
	return out, nil
}

func validYear(y int) bool { return y >= 1 && y <= 9999 }
