package saju

import (
	"fmt"
	"math"
	"strings"
)

// StrengthLevel is a discrete band of day master strength.
type StrengthLevel string

const (
	ExtremelyWeak   StrengthLevel = "extremely_weak"   // 극약
	VeryWeak        StrengthLevel = "very_weak"        // 태약
	Weak            StrengthLevel = "weak"             // 신약
	Balanced        StrengthLevel = "balanced"         // 중화
	Strong          StrengthLevel = "strong"           // 신강
	VeryStrong      StrengthLevel = "very_strong"      // 태강
	ExtremelyStrong StrengthLevel = "extremely_strong" // 극왕
)

// StrengthBand maps a score range onto a level.
type StrengthBand struct {
	Level  StrengthLevel
	Korean string
	// Max is the exclusive upper bound of the score; the last band is open.
	Max float64
}

// StrengthLevels is ordered from weakest to strongest.
var StrengthLevels = []StrengthBand{
	{ExtremelyWeak, "극약", 15},
	{VeryWeak, "태약", 30},
	{Weak, "신약", 45},
	{Balanced, "중화", 55},
	{Strong, "신강", 70},
	{VeryStrong, "태강", 85},
	{ExtremelyStrong, "극왕", math.Inf(1)},
}

// IsStrong reports whether the level sits above balanced.
func (l StrengthLevel) IsStrong() bool {
	return l == Strong || l == VeryStrong || l == ExtremelyStrong
}

// IsWeak reports whether the level sits below balanced.
func (l StrengthLevel) IsWeak() bool {
	return l == Weak || l == VeryWeak || l == ExtremelyWeak
}

// position weights: month branch dominates (득령), day branch next (득지).
const (
	weightStem        = 1.0
	weightYearBranch  = 1.0
	weightMonthBranch = 3.0
	weightDayBranch   = 1.5
	weightHourBranch  = 1.0
)

// StrengthResult scores how well the day master is supported.
type StrengthResult struct {
	DayMaster   Stem          `json:"day_master" yaml:"day_master"`
	Element     Element       `json:"element" yaml:"element"`
	Score       float64       `json:"score" yaml:"score"`
	Level       StrengthLevel `json:"level" yaml:"level"`
	Support     float64       `json:"support" yaml:"support"`
	Opposition  float64       `json:"opposition" yaml:"opposition"`
	DeukRyeong  bool          `json:"deuk_ryeong" yaml:"deuk_ryeong"` // month branch supports
	DeukJi      bool          `json:"deuk_ji" yaml:"deuk_ji"`         // day branch supports
	DeukSe      bool          `json:"deuk_se" yaml:"deuk_se"`         // most other characters support
	Description string        `json:"description" yaml:"description"`
}

// supports reports whether e strengthens a day master of element dm:
// the same element (비겁) or the one feeding it (인성).
func supports(dm, e Element) bool {
	return e == dm || e == dm.GeneratedBy()
}

// branchSupport is the share of a branch's hidden stems that support dm.
func branchSupport(dm Element, b Branch) float64 {
	var sup, total int
	for _, h := range hiddenStems[b.norm()] {
		total += h.Days
		if supports(dm, h.Stem.Element()) {
			sup += h.Days
		}
	}
	return float64(sup) / float64(total)
}

// AnalyzeStrength scores the day master on a 0-100 scale.
func AnalyzeStrength(fp FourPillars) StrengthResult {
	dm := fp.Day.Stem
	de := dm.Element()

	var support, total float64
	addStem := func(s Stem) {
		total += weightStem
		if supports(de, s.Element()) {
			support += weightStem
		}
	}
	addBranch := func(b Branch, w float64) {
		total += w
		support += w * branchSupport(de, b)
	}

	addStem(fp.Year.Stem)
	addStem(fp.Month.Stem)
	addStem(fp.Hour.Stem)
	addBranch(fp.Year.Branch, weightYearBranch)
	addBranch(fp.Month.Branch, weightMonthBranch)
	addBranch(fp.Day.Branch, weightDayBranch)
	addBranch(fp.Hour.Branch, weightHourBranch)

	score := math.Round(support/total*1000) / 10

	visible := 0
	for _, s := range []Stem{fp.Year.Stem, fp.Month.Stem, fp.Hour.Stem} {
		if supports(de, s.Element()) {
			visible++
		}
	}
	for _, b := range []Branch{fp.Year.Branch, fp.Month.Branch, fp.Day.Branch, fp.Hour.Branch} {
		if supports(de, b.MainStem().Element()) {
			visible++
		}
	}

	res := StrengthResult{
		DayMaster:  dm,
		Element:    de,
		Score:      score,
		Level:      strengthLevel(score),
		Support:    math.Round(support*100) / 100,
		Opposition: math.Round((total-support)*100) / 100,
		DeukRyeong: supports(de, fp.Month.Branch.MainStem().Element()),
		DeukJi:     supports(de, fp.Day.Branch.MainStem().Element()),
		DeukSe:     visible >= 4,
	}
	res.Description = describeStrength(res)
	return res
}

func strengthLevel(score float64) StrengthLevel {
	for _, band := range StrengthLevels {
		if score < band.Max {
			return band.Level
		}
	}
	return ExtremelyStrong
}

func describeStrength(r StrengthResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Day master %s (%s) is %s with a support score of %.1f.",
		r.DayMaster, r.Element, strings.ReplaceAll(string(r.Level), "_", " "), r.Score)

	var held []string
	if r.DeukRyeong {
		held = append(held, "the month branch")
	}
	if r.DeukJi {
		held = append(held, "the day branch")
	}
	if r.DeukSe {
		held = append(held, "most surrounding characters")
	}
	if len(held) > 0 {
		fmt.Fprintf(&b, " Supported by %s.", strings.Join(held, " and "))
	} else {
		b.WriteString(" No position lends direct support.")
	}
	return b.String()
}
