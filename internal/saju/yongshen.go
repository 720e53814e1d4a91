package saju

import (
	"fmt"
	"slices"
)

// YongShenMethod names the rule that produced a recommendation.
type YongShenMethod string

const (
	MethodClimate  YongShenMethod = "climate"  // 조후
	MethodFollow   YongShenMethod = "follow"   // 종격
	MethodSuppress YongShenMethod = "suppress" // 억부, strong day master
	MethodSupport  YongShenMethod = "support"  // 억부, weak day master
	MethodBalance  YongShenMethod = "balance"  // 통관/균형
)

// YongShenResult is the useful-god recommendation for a chart.
type YongShenResult struct {
	Primary   Element        `json:"primary" yaml:"primary"`
	Secondary Element        `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	Avoid     Element        `json:"avoid,omitempty" yaml:"avoid,omitempty"`
	Method    YongShenMethod `json:"method" yaml:"method"`
	Reasoning string         `json:"reasoning" yaml:"reasoning"`
}

var (
	winterBranches = []Branch{BranchHae, BranchJa, BranchChuk}
	summerBranches = []Branch{BranchSa, BranchO, BranchMi}
)

// AnalyzeYongShen walks the rule table in order: climate, follow,
// suppress/support, balance. The first rule that applies wins.
func AnalyzeYongShen(fp FourPillars, strength StrengthResult) YongShenResult {
	dm := strength.Element
	counts := CountElements(AnalyzeTenGods(fp))
	month := fp.Month.Branch

	switch {
	case slices.Contains(winterBranches, month) && counts[Fire] == 0:
		return YongShenResult{
			Primary:   Fire,
			Secondary: Wood,
			Avoid:     Water,
			Method:    MethodClimate,
			Reasoning: fmt.Sprintf("Born in the cold %s month with no fire in the chart; fire warms it and wood feeds the fire.", month),
		}
	case slices.Contains(summerBranches, month) && counts[Water] == 0:
		return YongShenResult{
			Primary:   Water,
			Secondary: Metal,
			Avoid:     Fire,
			Method:    MethodClimate,
			Reasoning: fmt.Sprintf("Born in the hot %s month with no water in the chart; water cools it and metal feeds the water.", month),
		}
	}

	switch strength.Level {
	case ExtremelyWeak:
		dominant := dominantElement(counts, dm)
		return YongShenResult{
			Primary:   dominant,
			Secondary: dominant.GeneratedBy(),
			Avoid:     dm.GeneratedBy(),
			Method:    MethodFollow,
			Reasoning: fmt.Sprintf("The %s day master has almost no support, so the chart follows its dominant element %s.", dm, dominant),
		}
	case ExtremelyStrong:
		return YongShenResult{
			Primary:   dm,
			Secondary: dm.GeneratedBy(),
			Avoid:     dm.ControlledBy(),
			Method:    MethodFollow,
			Reasoning: fmt.Sprintf("The %s day master overwhelms the chart, so it is followed rather than restrained.", dm),
		}
	}

	switch {
	case strength.Level.IsStrong():
		return YongShenResult{
			Primary:   dm.Generates(),
			Secondary: dm.Controls(),
			Avoid:     dm.GeneratedBy(),
			Method:    MethodSuppress,
			Reasoning: fmt.Sprintf("The %s day master is strong; %s drains its excess and %s spends it.", dm, dm.Generates(), dm.Controls()),
		}
	case strength.Level.IsWeak():
		return YongShenResult{
			Primary:   dm.GeneratedBy(),
			Secondary: dm,
			Avoid:     dm.ControlledBy(),
			Method:    MethodSupport,
			Reasoning: fmt.Sprintf("The %s day master is weak; %s nourishes it and %s stands beside it.", dm, dm.GeneratedBy(), dm),
		}
	}

	weakest, strongest := extremeElements(counts)
	return YongShenResult{
		Primary:   weakest,
		Avoid:     strongest,
		Method:    MethodBalance,
		Reasoning: fmt.Sprintf("The %s day master is balanced; the scarce %s evens out the surplus of %s.", dm, weakest, strongest),
	}
}

// dominantElement is the most counted element other than the day master's
// own element and its resource. Ties resolve in Elements order.
func dominantElement(counts ElementCounts, dm Element) Element {
	best := dm.ControlledBy()
	bestN := -1
	for _, e := range Elements {
		if supports(dm, e) {
			continue
		}
		if counts[e] > bestN {
			best, bestN = e, counts[e]
		}
	}
	return best
}

// extremeElements returns the least and most counted elements, ties
// resolved in Elements order.
func extremeElements(counts ElementCounts) (weakest, strongest Element) {
	weakest, strongest = Elements[0], Elements[0]
	for _, e := range Elements[1:] {
		if counts[e] < counts[weakest] {
			weakest = e
		}
		if counts[e] > counts[strongest] {
			strongest = e
		}
	}
	return weakest, strongest
}
