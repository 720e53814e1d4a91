package saju

import (
	"fmt"
	"time"

	"github.com/zapponejosh/saju-api/internal/dateadapter"
)

// Options tune GetSaju.
type Options struct {
	LongitudeDeg float64
	Gender       Gender
	// TzOffsetHours overrides the offset derived from the birth value's zone.
	TzOffsetHours *float64
	// Preset defaults to StandardPreset.
	Preset *Preset
	// CurrentYear defaults to the clock's year.
	CurrentYear int
	// YearlyLuckRange defaults to CurrentYear through CurrentYear+10.
	YearlyLuckRange *YearRange
}

// Result is the full analysis of one birth moment.
type Result struct {
	Pillars          FourPillars        `json:"pillars" yaml:"pillars"`
	Lunar            LunarDate          `json:"lunar" yaml:"lunar"`
	TenGods          FourPillarsTenGods `json:"ten_gods" yaml:"ten_gods"`
	Elements         ElementCounts      `json:"elements" yaml:"elements"`
	ElementsHidden   ElementCounts      `json:"elements_with_hidden" yaml:"elements_with_hidden"`
	Strength         StrengthResult     `json:"strength" yaml:"strength"`
	Relations        RelationsResult    `json:"relations" yaml:"relations"`
	YongShen         YongShenResult     `json:"yongshen" yaml:"yongshen"`
	SolarTerms       SolarTermInfo      `json:"solar_terms" yaml:"solar_terms"`
	MajorLuck        MajorLuck          `json:"major_luck" yaml:"major_luck"`
	CurrentMajorLuck *MajorLuckPillar   `json:"current_major_luck,omitempty" yaml:"current_major_luck,omitempty"`
	YearlyLuck       []YearlyLuckPillar `json:"yearly_luck" yaml:"yearly_luck"`
	Meta             PillarMeta         `json:"meta" yaml:"meta"`
}

// GetSaju runs every analyzer over the chart of birth.
func GetSaju[T any](a dateadapter.Adapter[T], birth T, opts Options) (*Result, error) {
	if !opts.Gender.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGender, opts.Gender)
	}

	fpr, err := GetFourPillars(a, birth, PillarOptions{
		LongitudeDeg:  opts.LongitudeDeg,
		TzOffsetHours: opts.TzOffsetHours,
		Preset:        opts.Preset,
	})
	if err != nil {
		return nil, fmt.Errorf("four pillars: %w", err)
	}
	fp := fpr.Pillars

	tenGods := AnalyzeTenGods(fp)
	strength := AnalyzeStrength(fp)

	birthYear := a.Year(birth)
	major, err := CalculateMajorLuck(fp, fpr.Millis, birthYear, opts.Gender)
	if err != nil {
		return nil, fmt.Errorf("major luck: %w", err)
	}

	currentYear := opts.CurrentYear
	if currentYear == 0 {
		currentYear = time.Now().Year()
	}
	span := YearRange{From: currentYear, To: currentYear + 10}
	if opts.YearlyLuckRange != nil {
		span = *opts.YearlyLuckRange
	}

	res := &Result{
		Pillars:        fp,
		Lunar:          fpr.Lunar,
		TenGods:        tenGods,
		Elements:       CountElements(tenGods),
		ElementsHidden: CountElementsWithHidden(tenGods),
		Strength:       strength,
		Relations:      AnalyzeRelations(fp),
		YongShen:       AnalyzeYongShen(fp, strength),
		SolarTerms:     AnalyzeSolarTerms(fpr.Millis),
		MajorLuck:      major,
		YearlyLuck:     CalculateYearlyLuck(birthYear, span.From, span.To, fp.Day.Stem),
		Meta:           fpr.Meta,
	}
	if cur, ok := major.Current(currentYear); ok {
		res.CurrentMajorLuck = &cur
	}
	return res, nil
}
