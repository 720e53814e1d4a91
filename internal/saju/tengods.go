package saju

// TenGod classifies a stem relative to the day master.
type TenGod string

const (
	Friend           TenGod = "friend"            // 比肩 비견
	RobWealth        TenGod = "rob_wealth"        // 劫財 겁재
	EatingGod        TenGod = "eating_god"        // 食神 식신
	HurtingOfficer   TenGod = "hurting_officer"   // 傷官 상관
	IndirectWealth   TenGod = "indirect_wealth"   // 偏財 편재
	DirectWealth     TenGod = "direct_wealth"     // 正財 정재
	IndirectOfficer  TenGod = "indirect_officer"  // 偏官 편관
	DirectOfficer    TenGod = "direct_officer"    // 正官 정관
	IndirectResource TenGod = "indirect_resource" // 偏印 편인
	DirectResource   TenGod = "direct_resource"   // 正印 정인
	DayMaster        TenGod = "day_master"        // 日干 일간
)

var tenGodNames = map[TenGod][2]string{
	Friend:           {"比肩", "비견"},
	RobWealth:        {"劫財", "겁재"},
	EatingGod:        {"食神", "식신"},
	HurtingOfficer:   {"傷官", "상관"},
	IndirectWealth:   {"偏財", "편재"},
	DirectWealth:     {"正財", "정재"},
	IndirectOfficer:  {"偏官", "편관"},
	DirectOfficer:    {"正官", "정관"},
	IndirectResource: {"偏印", "편인"},
	DirectResource:   {"正印", "정인"},
	DayMaster:        {"日干", "일간"},
}

// Hanja returns the classical name.
func (g TenGod) Hanja() string { return tenGodNames[g][0] }

// Korean returns the Hangul name.
func (g TenGod) Korean() string { return tenGodNames[g][1] }

// TenGodOf classifies stem s against the day master dm.
func TenGodOf(dm, s Stem) TenGod {
	same := dm.Polarity() == s.Polarity()
	pick := func(samePol, diffPol TenGod) TenGod {
		if same {
			return samePol
		}
		return diffPol
	}

	de, se := dm.Element(), s.Element()
	switch se {
	case de:
		return pick(Friend, RobWealth)
	case de.Generates():
		return pick(EatingGod, HurtingOfficer)
	case de.Controls():
		return pick(IndirectWealth, DirectWealth)
	case de.ControlledBy():
		return pick(IndirectOfficer, DirectOfficer)
	default:
		return pick(IndirectResource, DirectResource)
	}
}

// BranchTenGodOf classifies a branch through its main hidden stem.
func BranchTenGodOf(dm Stem, b Branch) TenGod {
	return TenGodOf(dm, b.MainStem())
}

// StemTenGod is one classified stem.
type StemTenGod struct {
	Stem     Stem     `json:"stem" yaml:"stem"`
	Element  Element  `json:"element" yaml:"element"`
	Polarity Polarity `json:"polarity" yaml:"polarity"`
	TenGod   TenGod   `json:"ten_god" yaml:"ten_god"`
}

// HiddenStemTenGod is one classified hidden stem.
type HiddenStemTenGod struct {
	Stem    Stem       `json:"stem" yaml:"stem"`
	Role    HiddenRole `json:"role" yaml:"role"`
	Days    int        `json:"days" yaml:"days"`
	Element Element    `json:"element" yaml:"element"`
	TenGod  TenGod     `json:"ten_god" yaml:"ten_god"`
}

// BranchTenGod is one classified branch with its hidden stems.
type BranchTenGod struct {
	Branch      Branch             `json:"branch" yaml:"branch"`
	Element     Element            `json:"element" yaml:"element"`
	Polarity    Polarity           `json:"polarity" yaml:"polarity"`
	TenGod      TenGod             `json:"ten_god" yaml:"ten_god"`
	HiddenStems []HiddenStemTenGod `json:"hidden_stems" yaml:"hidden_stems"`
}

// PillarTenGods holds the classification of one pillar.
type PillarTenGods struct {
	Stem   StemTenGod   `json:"stem" yaml:"stem"`
	Branch BranchTenGod `json:"branch" yaml:"branch"`
}

// FourPillarsTenGods holds the classification of a whole chart.
type FourPillarsTenGods struct {
	DayMaster Stem          `json:"day_master" yaml:"day_master"`
	Year      PillarTenGods `json:"year" yaml:"year"`
	Month     PillarTenGods `json:"month" yaml:"month"`
	Day       PillarTenGods `json:"day" yaml:"day"`
	Hour      PillarTenGods `json:"hour" yaml:"hour"`
}

// Positions returns the pillars in year, month, day, hour order.
func (t FourPillarsTenGods) Positions() [4]PillarTenGods {
	return [4]PillarTenGods{t.Year, t.Month, t.Day, t.Hour}
}

// AnalyzeTenGods classifies every stem, branch and hidden stem of fp.
func AnalyzeTenGods(fp FourPillars) FourPillarsTenGods {
	dm := fp.Day.Stem
	classify := func(p Pillar, isDay bool) PillarTenGods {
		stemGod := TenGodOf(dm, p.Stem)
		if isDay {
			stemGod = DayMaster
		}

		hidden := p.Branch.HiddenStems()
		hs := make([]HiddenStemTenGod, 0, len(hidden))
		for _, h := range hidden {
			hs = append(hs, HiddenStemTenGod{
				Stem:    h.Stem,
				Role:    h.Role,
				Days:    h.Days,
				Element: h.Stem.Element(),
				TenGod:  TenGodOf(dm, h.Stem),
			})
		}

		return PillarTenGods{
			Stem: StemTenGod{
				Stem:     p.Stem,
				Element:  p.Stem.Element(),
				Polarity: p.Stem.Polarity(),
				TenGod:   stemGod,
			},
			Branch: BranchTenGod{
				Branch:      p.Branch,
				Element:     p.Branch.Element(),
				Polarity:    p.Branch.Polarity(),
				TenGod:      BranchTenGodOf(dm, p.Branch),
				HiddenStems: hs,
			},
		}
	}

	return FourPillarsTenGods{
		DayMaster: dm,
		Year:      classify(fp.Year, false),
		Month:     classify(fp.Month, false),
		Day:       classify(fp.Day, true),
		Hour:      classify(fp.Hour, false),
	}
}

// ElementCounts tallies characters per element.
type ElementCounts map[Element]int

// Total sums all counts.
func (c ElementCounts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

func newElementCounts() ElementCounts {
	c := make(ElementCounts, len(Elements))
	for _, e := range Elements {
		c[e] = 0
	}
	return c
}

// CountElements tallies the eight visible characters: four stems and four
// branches, the day master included.
func CountElements(t FourPillarsTenGods) ElementCounts {
	c := newElementCounts()
	for _, p := range t.Positions() {
		c[p.Stem.Element]++
		c[p.Branch.Element]++
	}
	return c
}

// CountElementsWithHidden adds every hidden stem to CountElements.
func CountElementsWithHidden(t FourPillarsTenGods) ElementCounts {
	c := CountElements(t)
	for _, p := range t.Positions() {
		for _, h := range p.Branch.HiddenStems {
			c[h.Element]++
		}
	}
	return c
}
