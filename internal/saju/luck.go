package saju

import "math"

// Gender selects the major luck direction together with the month pillar.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Valid reports whether g is male or female.
func (g Gender) Valid() bool { return g == Male || g == Female }

// LuckDirection is the way major luck steps through the sixty cycle.
type LuckDirection string

const (
	Forward  LuckDirection = "forward"  // 순행
	Backward LuckDirection = "backward" // 역행
)

// luckDirections is keyed by gender, then month pillar polarity.
var luckDirections = map[Gender]map[Polarity]LuckDirection{
	Male:   {Yang: Forward, Yin: Backward},
	Female: {Yang: Backward, Yin: Forward},
}

// MajorLuckDirection looks up the direction for a gender and month pillar.
// Stem and branch of a sexagenary pillar always share polarity.
func MajorLuckDirection(g Gender, month Pillar) LuckDirection {
	return luckDirections[g][month.Stem.Polarity()]
}

const (
	majorLuckPeriods = 10
	daysPerLuckYear  = 3.0
	minStartAge      = 1
	maxStartAge      = 10
)

// StartAgeDetail is the start of the first major luck period to the month.
type StartAgeDetail struct {
	Years  int `json:"years" yaml:"years"`
	Months int `json:"months" yaml:"months"`
}

// MajorLuckPillar is one decade of major luck.
type MajorLuckPillar struct {
	Index        int    `json:"index" yaml:"index"`
	Pillar       Pillar `json:"pillar" yaml:"pillar"`
	StartAge     int    `json:"start_age" yaml:"start_age"`
	EndAge       int    `json:"end_age" yaml:"end_age"`
	StartYear    int    `json:"start_year" yaml:"start_year"`
	StemTenGod   TenGod `json:"stem_ten_god" yaml:"stem_ten_god"`
	BranchTenGod TenGod `json:"branch_ten_god" yaml:"branch_ten_god"`
}

// MajorLuck is the full decade sequence of a chart.
type MajorLuck struct {
	Direction      LuckDirection     `json:"direction" yaml:"direction"`
	StartAge       int               `json:"start_age" yaml:"start_age"`
	StartAgeDetail StartAgeDetail    `json:"start_age_detail" yaml:"start_age_detail"`
	BoundaryTerm   SolarTermEvent    `json:"boundary_term" yaml:"boundary_term"`
	DaysToBoundary float64           `json:"days_to_boundary" yaml:"days_to_boundary"`
	Pillars        []MajorLuckPillar `json:"pillars" yaml:"pillars"`
}

// Current returns the decade covering year, if any.
func (m MajorLuck) Current(year int) (MajorLuckPillar, bool) {
	for _, p := range m.Pillars {
		if year >= p.StartYear && year < p.StartYear+10 {
			return p, true
		}
	}
	return MajorLuckPillar{}, false
}

// CalculateMajorLuck derives ten decades from the month pillar. Forward
// luck counts days to the next 節, backward luck days since the previous
// one; every three days is one year of age.
func CalculateMajorLuck(fp FourPillars, birthMillis int64, birthYear int, g Gender) (MajorLuck, error) {
	if !g.Valid() {
		return MajorLuck{}, ErrInvalidGender
	}
	dir := MajorLuckDirection(g, fp.Month)

	var boundary SolarTermEvent
	var days float64
	if dir == Forward {
		boundary = nextJie(birthMillis)
		days = float64(boundary.Millis-birthMillis) / msPerDay
	} else {
		boundary = previousJie(birthMillis)
		days = float64(birthMillis-boundary.Millis) / msPerDay
	}

	// Both figures share the 1..10 year bounds.
	totalMonths := int(math.Round(days * 12 / daysPerLuckYear))
	totalMonths = min(max(totalMonths, minStartAge*12), maxStartAge*12)
	detail := StartAgeDetail{Years: totalMonths / 12, Months: totalMonths % 12}

	startAge := int(math.Round(days / daysPerLuckYear))
	startAge = min(max(startAge, minStartAge), maxStartAge)

	step := 1
	if dir == Backward {
		step = -1
	}
	base := fp.Month.SexagenaryIndex()
	dm := fp.Day.Stem

	pillars := make([]MajorLuckPillar, 0, majorLuckPeriods)
	for i := 1; i <= majorLuckPeriods; i++ {
		p := PillarFromIndex(base + step*i)
		age := startAge + (i-1)*10
		pillars = append(pillars, MajorLuckPillar{
			Index:        i,
			Pillar:       p,
			StartAge:     age,
			EndAge:       age + 9,
			StartYear:    birthYear + age,
			StemTenGod:   TenGodOf(dm, p.Stem),
			BranchTenGod: BranchTenGodOf(dm, p.Branch),
		})
	}

	return MajorLuck{
		Direction:      dir,
		StartAge:       startAge,
		StartAgeDetail: detail,
		BoundaryTerm:   boundary,
		DaysToBoundary: math.Round(days*100) / 100,
		Pillars:        pillars,
	}, nil
}

// YearRange is an inclusive span of calendar years.
type YearRange struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

// YearlyLuckPillar is the pillar of one calendar year.
type YearlyLuckPillar struct {
	Year         int    `json:"year" yaml:"year"`
	Age          int    `json:"age" yaml:"age"`
	Pillar       Pillar `json:"pillar" yaml:"pillar"`
	StemTenGod   TenGod `json:"stem_ten_god" yaml:"stem_ten_god"`
	BranchTenGod TenGod `json:"branch_ten_god" yaml:"branch_ten_god"`
}

// CalculateYearlyLuck lists one pillar per year in [from, to]. An inverted
// range yields an empty, non-nil slice.
func CalculateYearlyLuck(birthYear, from, to int, dayMaster Stem) []YearlyLuckPillar {
	if from > to {
		return []YearlyLuckPillar{}
	}
	out := make([]YearlyLuckPillar, 0, to-from+1)
	for y := from; y <= to; y++ {
		p := YearPillar(y)
		out = append(out, YearlyLuckPillar{
			Year:         y,
			Age:          y - birthYear,
			Pillar:       p,
			StemTenGod:   TenGodOf(dayMaster, p.Stem),
			BranchTenGod: BranchTenGodOf(dayMaster, p.Branch),
		})
	}
	return out
}
