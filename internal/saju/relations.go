package saju

// Position names a pillar slot.
type Position string

const (
	PosYear  Position = "year"
	PosMonth Position = "month"
	PosDay   Position = "day"
	PosHour  Position = "hour"
)

var positions = [4]Position{PosYear, PosMonth, PosDay, PosHour}

// RelationKind names an interaction between characters.
type RelationKind string

const (
	StemCombination        RelationKind = "stem_combination"        // 天干合
	StemClash              RelationKind = "stem_clash"              // 天干沖
	SixCombination         RelationKind = "six_combination"         // 六合
	TripleCombination      RelationKind = "triple_combination"      // 三合
	HalfCombination        RelationKind = "half_combination"        // 半合
	DirectionalCombination RelationKind = "directional_combination" // 方合
	Clash                  RelationKind = "clash"                   // 沖
	Harm                   RelationKind = "harm"                    // 害
	Punishment             RelationKind = "punishment"              // 刑
	SelfPunishment         RelationKind = "self_punishment"         // 自刑
	Destruction            RelationKind = "destruction"             // 破
)

// Relation is one matched interaction.
type Relation struct {
	Kind      RelationKind `json:"kind" yaml:"kind"`
	Positions []Position   `json:"positions" yaml:"positions"`
	Chars     string       `json:"chars" yaml:"chars"`
	// Element is the transformed element of a combination, empty otherwise.
	Element Element `json:"element,omitempty" yaml:"element,omitempty"`
}

// RelationsResult groups every match found in a chart.
type RelationsResult struct {
	Stems        []Relation `json:"stems" yaml:"stems"`
	Combinations []Relation `json:"combinations" yaml:"combinations"`
	Clashes      []Relation `json:"clashes" yaml:"clashes"`
	Harms        []Relation `json:"harms" yaml:"harms"`
	Punishments  []Relation `json:"punishments" yaml:"punishments"`
	Destructions []Relation `json:"destructions" yaml:"destructions"`
}

// All returns every relation in table order.
func (r RelationsResult) All() []Relation {
	var out []Relation
	for _, group := range [][]Relation{r.Stems, r.Combinations, r.Clashes, r.Harms, r.Punishments, r.Destructions} {
		out = append(out, group...)
	}
	return out
}

type stemPairRule struct {
	a, b    Stem
	element Element
}

type branchPairRule struct {
	a, b    Branch
	element Element
}

type branchTripleRule struct {
	members [3]Branch
	element Element
}

var stemCombinations = []stemPairRule{
	{StemGap, StemGi, Earth},
	{StemEul, StemGyeong, Metal},
	{StemByeong, StemSin, Water},
	{StemJeong, StemIm, Wood},
	{StemMu, StemGye, Fire},
}

var stemClashes = []stemPairRule{
	{StemGap, StemGyeong, ""},
	{StemEul, StemSin, ""},
	{StemByeong, StemIm, ""},
	{StemJeong, StemGye, ""},
}

var sixCombinations = []branchPairRule{
	{BranchJa, BranchChuk, Earth},
	{BranchIn, BranchHae, Wood},
	{BranchMyo, BranchSul, Fire},
	{BranchJin, BranchYu, Metal},
	{BranchSa, BranchSin, Water},
	{BranchO, BranchMi, Fire},
}

// Triple combinations list the center branch second; a half combination
// needs the center plus one of the others.
var tripleCombinations = []branchTripleRule{
	{[3]Branch{BranchSin, BranchJa, BranchJin}, Water},
	{[3]Branch{BranchHae, BranchMyo, BranchMi}, Wood},
	{[3]Branch{BranchIn, BranchO, BranchSul}, Fire},
	{[3]Branch{BranchSa, BranchYu, BranchChuk}, Metal},
}

var directionalCombinations = []branchTripleRule{
	{[3]Branch{BranchIn, BranchMyo, BranchJin}, Wood},
	{[3]Branch{BranchSa, BranchO, BranchMi}, Fire},
	{[3]Branch{BranchSin, BranchYu, BranchSul}, Metal},
	{[3]Branch{BranchHae, BranchJa, BranchChuk}, Water},
}

var branchClashes = []branchPairRule{
	{BranchJa, BranchO, ""},
	{BranchChuk, BranchMi, ""},
	{BranchIn, BranchSin, ""},
	{BranchMyo, BranchYu, ""},
	{BranchJin, BranchSul, ""},
	{BranchSa, BranchHae, ""},
}

var branchHarms = []branchPairRule{
	{BranchJa, BranchMi, ""},
	{BranchChuk, BranchO, ""},
	{BranchIn, BranchSa, ""},
	{BranchMyo, BranchJin, ""},
	{BranchSin, BranchHae, ""},
	{BranchYu, BranchSul, ""},
}

var branchDestructions = []branchPairRule{
	{BranchJa, BranchYu, ""},
	{BranchChuk, BranchJin, ""},
	{BranchIn, BranchHae, ""},
	{BranchMyo, BranchO, ""},
	{BranchSa, BranchSin, ""},
	{BranchMi, BranchSul, ""},
}

// 寅巳申 and 丑戌未 punish as full triples and as pairs; 子卯 only as a pair.
var punishmentTriples = []branchTripleRule{
	{[3]Branch{BranchIn, BranchSa, BranchSin}, ""},
	{[3]Branch{BranchChuk, BranchSul, BranchMi}, ""},
}

var punishmentPairs = []branchPairRule{
	{BranchIn, BranchSa, ""},
	{BranchSa, BranchSin, ""},
	{BranchIn, BranchSin, ""},
	{BranchChuk, BranchSul, ""},
	{BranchSul, BranchMi, ""},
	{BranchChuk, BranchMi, ""},
	{BranchJa, BranchMyo, ""},
}

var selfPunishing = []Branch{BranchJin, BranchO, BranchYu, BranchHae}

// AnalyzeRelations scans every stem pair and branch pair/triple of fp.
func AnalyzeRelations(fp FourPillars) RelationsResult {
	ps := fp.Positions()
	var stems [4]Stem
	var branches [4]Branch
	for i, p := range ps {
		stems[i] = p.Stem
		branches[i] = p.Branch
	}

	// Empty groups encode as [] rather than null.
	res := RelationsResult{
		Stems:        []Relation{},
		Combinations: []Relation{},
		Clashes:      []Relation{},
		Harms:        []Relation{},
		Punishments:  []Relation{},
		Destructions: []Relation{},
	}

	for _, rule := range stemCombinations {
		res.Stems = append(res.Stems, matchStemPairs(stems, rule, StemCombination)...)
	}
	for _, rule := range stemClashes {
		res.Stems = append(res.Stems, matchStemPairs(stems, rule, StemClash)...)
	}

	for _, rule := range sixCombinations {
		res.Combinations = append(res.Combinations, matchBranchPairs(branches, rule, SixCombination)...)
	}
	for _, rule := range tripleCombinations {
		full := matchTriples(branches, rule, TripleCombination)
		res.Combinations = append(res.Combinations, full...)
		center := rule.members[1]
		for _, other := range []Branch{rule.members[0], rule.members[2]} {
			half := branchPairRule{center, other, rule.element}
			res.Combinations = append(res.Combinations, matchBranchPairs(branches, half, HalfCombination)...)
		}
	}
	for _, rule := range directionalCombinations {
		res.Combinations = append(res.Combinations, matchTriples(branches, rule, DirectionalCombination)...)
	}

	for _, rule := range branchClashes {
		res.Clashes = append(res.Clashes, matchBranchPairs(branches, rule, Clash)...)
	}
	for _, rule := range branchHarms {
		res.Harms = append(res.Harms, matchBranchPairs(branches, rule, Harm)...)
	}

	for _, rule := range punishmentTriples {
		res.Punishments = append(res.Punishments, matchTriples(branches, rule, Punishment)...)
	}
	for _, rule := range punishmentPairs {
		res.Punishments = append(res.Punishments, matchBranchPairs(branches, rule, Punishment)...)
	}
	for _, b := range selfPunishing {
		res.Punishments = append(res.Punishments, matchBranchPairs(branches, branchPairRule{b, b, ""}, SelfPunishment)...)
	}

	for _, rule := range branchDestructions {
		res.Destructions = append(res.Destructions, matchBranchPairs(branches, rule, Destruction)...)
	}

	return res
}

func matchStemPairs(stems [4]Stem, rule stemPairRule, kind RelationKind) []Relation {
	var out []Relation
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			a, b := stems[i], stems[j]
			if (a == rule.a && b == rule.b) || (a == rule.b && b == rule.a) {
				out = append(out, Relation{
					Kind:      kind,
					Positions: []Position{positions[i], positions[j]},
					Chars:     a.String() + b.String(),
					Element:   rule.element,
				})
			}
		}
	}
	return out
}

func matchBranchPairs(branches [4]Branch, rule branchPairRule, kind RelationKind) []Relation {
	var out []Relation
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			a, b := branches[i], branches[j]
			if (a == rule.a && b == rule.b) || (a == rule.b && b == rule.a) {
				out = append(out, Relation{
					Kind:      kind,
					Positions: []Position{positions[i], positions[j]},
					Chars:     a.String() + b.String(),
					Element:   rule.element,
				})
			}
		}
	}
	return out
}

// matchTriples finds every three-position subset holding exactly the
// rule's members.
func matchTriples(branches [4]Branch, rule branchTripleRule, kind RelationKind) []Relation {
	var out []Relation
	for skip := 3; skip >= 0; skip-- {
		var idx []int
		for i := 0; i < 4; i++ {
			if i != skip {
				idx = append(idx, i)
			}
		}
		var seen [3]bool
		ok := true
		for _, i := range idx {
			found := false
			for k, m := range rule.members {
				if !seen[k] && branches[i] == m {
					seen[k] = true
					found = true
					break
				}
			}
			if !found {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		rel := Relation{Kind: kind, Element: rule.element}
		for _, i := range idx {
			rel.Positions = append(rel.Positions, positions[i])
			rel.Chars += branches[i].String()
		}
		out = append(out, rel)
	}
	return out
}
