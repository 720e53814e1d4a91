package saju

import (
	"fmt"
	"math"
	"strings"

	"github.com/zapponejosh/saju-api/internal/dateadapter"
)

// DayBoundary decides when the day pillar rolls over.
type DayBoundary string

const (
	// BoundaryMidnight changes the day pillar at 00:00.
	BoundaryMidnight DayBoundary = "midnight"
	// BoundaryZi23 changes the day pillar at 23:00, the start of the 子 hour.
	BoundaryZi23 DayBoundary = "zi23"
)

// Preset is a historical convention for hour and day boundaries.
type Preset struct {
	Name                     string      `json:"name" yaml:"name"`
	DayBoundary              DayBoundary `json:"day_boundary" yaml:"day_boundary"`
	MeanSolarTimeForHour     bool        `json:"mean_solar_time_for_hour" yaml:"mean_solar_time_for_hour"`
	MeanSolarTimeForBoundary bool        `json:"mean_solar_time_for_boundary" yaml:"mean_solar_time_for_boundary"`
}

var (
	// StandardPreset uses civil clock time and a midnight day boundary.
	StandardPreset = Preset{
		Name:        "standard",
		DayBoundary: BoundaryMidnight,
	}

	// TraditionalPreset corrects to local mean solar time and starts the
	// day at 23:00.
	TraditionalPreset = Preset{
		Name:                     "traditional",
		DayBoundary:              BoundaryZi23,
		MeanSolarTimeForHour:     true,
		MeanSolarTimeForBoundary: true,
	}

	PresetA = StandardPreset
	PresetB = TraditionalPreset
)

// LookupPreset resolves a preset by name. The empty name means standard.
func LookupPreset(name string) (Preset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "standard", "a", "preseta":
		return StandardPreset, nil
	case "traditional", "b", "presetb":
		return TraditionalPreset, nil
	default:
		return Preset{}, fmt.Errorf("unknown preset %q", name)
	}
}

// FourPillars holds the year, month, day and hour pillars.
type FourPillars struct {
	Year  Pillar `json:"year" yaml:"year"`
	Month Pillar `json:"month" yaml:"month"`
	Day   Pillar `json:"day" yaml:"day"`
	Hour  Pillar `json:"hour" yaml:"hour"`
}

// Positions returns the pillars in year, month, day, hour order.
func (fp FourPillars) Positions() [4]Pillar {
	return [4]Pillar{fp.Year, fp.Month, fp.Day, fp.Hour}
}

func (fp FourPillars) String() string {
	return fmt.Sprintf("%s %s %s %s", fp.Year, fp.Month, fp.Day, fp.Hour)
}

// CivilDate is a plain calendar date.
type CivilDate struct {
	Y int `json:"y" yaml:"y"`
	M int `json:"m" yaml:"m"`
	D int `json:"d" yaml:"d"`
}

func (c CivilDate) String() string { return fmt.Sprintf("%04d-%02d-%02d", c.Y, c.M, c.D) }

// PillarMeta records the intermediate values behind a chart.
type PillarMeta struct {
	SolarYear         int       `json:"solar_year" yaml:"solar_year"`
	SunLongitude      float64   `json:"sun_longitude" yaml:"sun_longitude"`
	EffectiveDay      CivilDate `json:"effective_day" yaml:"effective_day"`
	AdjustedDtForHour string    `json:"adjusted_dt_for_hour" yaml:"adjusted_dt_for_hour"`
	TzOffsetHours     float64   `json:"tz_offset_hours" yaml:"tz_offset_hours"`
	CorrectionMinutes float64   `json:"correction_minutes" yaml:"correction_minutes"`
	Preset            string    `json:"preset" yaml:"preset"`
}

// PillarOptions tune GetFourPillars.
type PillarOptions struct {
	LongitudeDeg float64
	// TzOffsetHours overrides the offset derived from the value's zone.
	TzOffsetHours *float64
	// Preset defaults to StandardPreset when nil.
	Preset *Preset
}

// FourPillarsResult is the output of GetFourPillars.
type FourPillarsResult struct {
	Pillars FourPillars `json:"pillars" yaml:"pillars"`
	Lunar   LunarDate   `json:"lunar" yaml:"lunar"`
	Meta    PillarMeta  `json:"meta" yaml:"meta"`
	// Millis is the birth instant, kept for the term and luck analyzers.
	Millis int64 `json:"-" yaml:"-"`
}

// MeanSolarCorrectionMinutes is the offset between local mean solar time
// and civil time: four minutes per degree away from the zone meridian.
func MeanSolarCorrectionMinutes(longitudeDeg, tzOffsetHours float64) float64 {
	return (longitudeDeg - tzOffsetHours*15) * 4
}

// GetFourPillars computes the four pillars for the birth moment dt.
func GetFourPillars[T any](a dateadapter.Adapter[T], dt T, opts PillarOptions) (FourPillarsResult, error) {
	preset := StandardPreset
	if opts.Preset != nil {
		preset = *opts.Preset
	}

	tz := dateadapter.OffsetHours(a, dt)
	if opts.TzOffsetHours != nil {
		tz = *opts.TzOffsetHours
	}

	ms := a.ToMillis(dt)
	zone := a.ZoneName(dt)
	correction := MeanSolarCorrectionMinutes(opts.LongitudeDeg, tz)

	adjusted, err := a.FromMillis(ms+int64(math.Round(correction*60_000)), zone)
	if err != nil {
		return FourPillarsResult{}, fmt.Errorf("apply mean solar correction: %w", err)
	}

	hourDt := dt
	if preset.MeanSolarTimeForHour {
		hourDt = adjusted
	}
	boundaryDt := dt
	if preset.MeanSolarTimeForBoundary {
		boundaryDt = adjusted
	}

	effective := boundaryDt
	if preset.DayBoundary == BoundaryZi23 && a.Hour(boundaryDt) >= 23 {
		effective = a.PlusDays(boundaryDt, 1)
	}
	effDay := CivilDate{Y: a.Year(effective), M: a.Month(effective), D: a.Day(effective)}

	day := DayPillar(effDay.Y, effDay.M, effDay.D)
	hour := HourPillar(day.Stem, a.Hour(hourDt))

	sunLon := SunLongitude(ms)
	solarYear := a.Year(dt)
	lichun := SolarTermInstant(solarYear, SolarTerms[21])
	if ms < lichun {
		solarYear--
	}
	year := YearPillar(solarYear)
	month := MonthPillar(year.Stem, sunLon)

	lunar, err := ToLunar(a.Year(dt), a.Month(dt), a.Day(dt))
	if err != nil {
		return FourPillarsResult{}, err
	}

	return FourPillarsResult{
		Pillars: FourPillars{Year: year, Month: month, Day: day, Hour: hour},
		Lunar:   lunar,
		Meta: PillarMeta{
			SolarYear:         solarYear,
			SunLongitude:      sunLon,
			EffectiveDay:      effDay,
			AdjustedDtForHour: a.ToISO(hourDt),
			TzOffsetHours:     tz,
			CorrectionMinutes: correction,
			Preset:            preset.Name,
		},
		Millis: ms,
	}, nil
}

// YearPillar returns the pillar of a saju (立春-based) year. 1984 is 甲子.
func YearPillar(solarYear int) Pillar {
	return PillarFromIndex(solarYear - 4)
}

// MonthPillar derives the month from the sun's longitude; 寅 opens at 315°.
// The stem follows the five-tiger rule: 甲/己 years start at 丙寅.
func MonthPillar(yearStem Stem, sunLongitude float64) Pillar {
	sector := int(math.Floor(normalizeDegrees(sunLongitude-lichunLongitude)/30)) % 12
	first := (yearStem.norm()%5)*2 + 2
	return Pillar{
		Stem:   Stem(mod(first+sector, 10)),
		Branch: Branch(mod(int(BranchIn)+sector, 12)),
	}
}

// DayPillar returns the pillar of a Gregorian date. 2000-01-01 is 戊午.
func DayPillar(year, month, day int) Pillar {
	return PillarFromIndex(julianDayNumber(year, month, day) + 49)
}

// HourBranch maps a wall-clock hour to its two-hour branch; 23:00 is 子.
func HourBranch(hour int) Branch {
	return Branch(mod((hour+1)/2, 12))
}

// HourPillar applies the five-rat rule: 甲/己 days start at 甲子.
func HourPillar(dayStem Stem, hour int) Pillar {
	b := HourBranch(hour)
	return Pillar{
		Stem:   Stem(mod((dayStem.norm()%5)*2+int(b), 10)),
		Branch: b,
	}
}
