// Package saju computes Korean four-pillars (사주) charts.
//
// The calculation is a single synchronous pass: a birth moment is turned into
// year, month, day and hour pillars, which then feed the ten gods, strength,
// relations, useful-god, solar term and luck analyzers. All lookup tables in
// this package are read-only after init, so concurrent calls are safe.
package saju

import (
	"fmt"
	"strings"
)

// Element is one of the five phases.
type Element string

const (
	Wood  Element = "wood"
	Fire  Element = "fire"
	Earth Element = "earth"
	Metal Element = "metal"
	Water Element = "water"
)

// Elements lists the five phases in generating order.
var Elements = [5]Element{Wood, Fire, Earth, Metal, Water}

var elementHanja = map[Element]string{Wood: "木", Fire: "火", Earth: "土", Metal: "金", Water: "水"}
var elementKorean = map[Element]string{Wood: "목", Fire: "화", Earth: "토", Metal: "금", Water: "수"}

func (e Element) index() int {
	for i, x := range Elements {
		if x == e {
			return i
		}
	}
	return -1
}

// Hanja returns the Chinese character for the element.
func (e Element) Hanja() string { return elementHanja[e] }

// Korean returns the Hangul reading for the element.
func (e Element) Korean() string { return elementKorean[e] }

// Generates returns the element e produces (wood feeds fire).
func (e Element) Generates() Element { return Elements[(e.index()+1)%5] }

// GeneratedBy returns the element that produces e.
func (e Element) GeneratedBy() Element { return Elements[(e.index()+4)%5] }

// Controls returns the element e overcomes (wood parts earth).
func (e Element) Controls() Element { return Elements[(e.index()+2)%5] }

// ControlledBy returns the element that overcomes e.
func (e Element) ControlledBy() Element { return Elements[(e.index()+3)%5] }

// Polarity is yin or yang.
type Polarity string

const (
	Yang Polarity = "yang"
	Yin  Polarity = "yin"
)

// Stem is one of the ten heavenly stems, 0 (甲) through 9 (癸).
type Stem int

const (
	StemGap    Stem = iota // 甲
	StemEul                // 乙
	StemByeong             // 丙
	StemJeong              // 丁
	StemMu                 // 戊
	StemGi                 // 己
	StemGyeong             // 庚
	StemSin                // 辛
	StemIm                 // 壬
	StemGye                // 癸
)

var stemHanja = [10]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
var stemKorean = [10]string{"갑", "을", "병", "정", "무", "기", "경", "신", "임", "계"}

func (s Stem) String() string { return stemHanja[s.norm()] }

// Korean returns the Hangul reading.
func (s Stem) Korean() string { return stemKorean[s.norm()] }

// Element of a stem: pairs of stems share a phase in generating order.
func (s Stem) Element() Element { return Elements[s.norm()/2] }

// Polarity of a stem alternates starting with yang 甲.
func (s Stem) Polarity() Polarity {
	if s.norm()%2 == 0 {
		return Yang
	}
	return Yin
}

func (s Stem) norm() int { return mod(int(s), 10) }

// MarshalText renders the stem as its Hanja character.
func (s Stem) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText accepts Hanja or Hangul.
func (s *Stem) UnmarshalText(b []byte) error {
	v, err := ParseStem(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStem parses a stem from Hanja or Hangul.
func ParseStem(v string) (Stem, error) {
	for i := range stemHanja {
		if v == stemHanja[i] || v == stemKorean[i] {
			return Stem(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stem %q", v)
}

// Branch is one of the twelve earthly branches, 0 (子) through 11 (亥).
type Branch int

const (
	BranchJa   Branch = iota // 子
	BranchChuk               // 丑
	BranchIn                 // 寅
	BranchMyo                // 卯
	BranchJin                // 辰
	BranchSa                 // 巳
	BranchO                  // 午
	BranchMi                 // 未
	BranchSin                // 申
	BranchYu                 // 酉
	BranchSul                // 戌
	BranchHae                // 亥
)

var branchHanja = [12]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
var branchKorean = [12]string{"자", "축", "인", "묘", "진", "사", "오", "미", "신", "유", "술", "해"}
var branchAnimal = [12]string{"rat", "ox", "tiger", "rabbit", "dragon", "snake", "horse", "goat", "monkey", "rooster", "dog", "pig"}

var branchElement = [12]Element{Water, Earth, Wood, Wood, Earth, Fire, Fire, Earth, Metal, Metal, Earth, Water}

func (b Branch) String() string { return branchHanja[b.norm()] }

// Korean returns the Hangul reading.
func (b Branch) Korean() string { return branchKorean[b.norm()] }

// Animal returns the zodiac animal of the branch.
func (b Branch) Animal() string { return branchAnimal[b.norm()] }

// Element returns the branch's own phase.
func (b Branch) Element() Element { return branchElement[b.norm()] }

// Polarity of the branch itself. Ten-god classification of a branch goes
// through its main hidden stem instead, which flips 子, 午, 巳 and 亥.
func (b Branch) Polarity() Polarity {
	if b.norm()%2 == 0 {
		return Yang
	}
	return Yin
}

func (b Branch) norm() int { return mod(int(b), 12) }

// MarshalText renders the branch as its Hanja character.
func (b Branch) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// UnmarshalText accepts Hanja or Hangul.
func (b *Branch) UnmarshalText(text []byte) error {
	v, err := ParseBranch(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// ParseBranch parses a branch from Hanja or Hangul.
func ParseBranch(v string) (Branch, error) {
	for i := range branchHanja {
		if v == branchHanja[i] || v == branchKorean[i] {
			return Branch(i), nil
		}
	}
	return 0, fmt.Errorf("unknown branch %q", v)
}

// HiddenRole is the slot a hidden stem occupies inside a branch.
type HiddenRole string

const (
	HiddenInitial HiddenRole = "initial" // 여기
	HiddenMiddle  HiddenRole = "middle"  // 중기
	HiddenMain    HiddenRole = "main"    // 정기
)

// HiddenStem is a stem stored inside a branch with its share of the month.
type HiddenStem struct {
	Stem Stem       `json:"stem" yaml:"stem"`
	Role HiddenRole `json:"role" yaml:"role"`
	Days int        `json:"days" yaml:"days"`
}

// hiddenStems lists each branch's stems in initial, middle, main order.
// Day shares add up to 30 per branch.
var hiddenStems = [12][]HiddenStem{
	{{StemIm, HiddenInitial, 10}, {StemGye, HiddenMain, 20}},
	{{StemGye, HiddenInitial, 9}, {StemSin, HiddenMiddle, 3}, {StemGi, HiddenMain, 18}},
	{{StemMu, HiddenInitial, 7}, {StemByeong, HiddenMiddle, 7}, {StemGap, HiddenMain, 16}},
	{{StemGap, HiddenInitial, 10}, {StemEul, HiddenMain, 20}},
	{{StemEul, HiddenInitial, 9}, {StemGye, HiddenMiddle, 3}, {StemMu, HiddenMain, 18}},
	{{StemMu, HiddenInitial, 7}, {StemGyeong, HiddenMiddle, 7}, {StemByeong, HiddenMain, 16}},
	{{StemByeong, HiddenInitial, 10}, {StemGi, HiddenMiddle, 9}, {StemJeong, HiddenMain, 11}},
	{{StemJeong, HiddenInitial, 9}, {StemEul, HiddenMiddle, 3}, {StemGi, HiddenMain, 18}},
	{{StemMu, HiddenInitial, 7}, {StemIm, HiddenMiddle, 7}, {StemGyeong, HiddenMain, 16}},
	{{StemGyeong, HiddenInitial, 10}, {StemSin, HiddenMain, 20}},
	{{StemSin, HiddenInitial, 9}, {StemJeong, HiddenMiddle, 3}, {StemMu, HiddenMain, 18}},
	{{StemMu, HiddenInitial, 7}, {StemGap, HiddenMiddle, 7}, {StemIm, HiddenMain, 16}},
}

// HiddenStems returns a copy of the branch's hidden stems.
func (b Branch) HiddenStems() []HiddenStem {
	src := hiddenStems[b.norm()]
	out := make([]HiddenStem, len(src))
	copy(out, src)
	return out
}

// MainStem returns the branch's main (정기) hidden stem.
func (b Branch) MainStem() Stem {
	hs := hiddenStems[b.norm()]
	return hs[len(hs)-1].Stem
}

// Pillar is a stem-branch pair such as 甲子.
type Pillar struct {
	Stem   Stem
	Branch Branch
}

// PillarFromIndex returns the pillar at position i of the sixty cycle.
// Any integer is accepted; it wraps modulo 60.
func PillarFromIndex(i int) Pillar {
	i = mod(i, 60)
	return Pillar{Stem: Stem(i % 10), Branch: Branch(i % 12)}
}

// SexagenaryIndex returns the position of p in the sixty cycle (甲子 = 0).
// Only pairs of equal polarity exist in the cycle; mixed pairs still map to
// a value but it will not round-trip.
func (p Pillar) SexagenaryIndex() int {
	return mod(6*p.Stem.norm()-5*p.Branch.norm(), 60)
}

func (p Pillar) String() string { return p.Stem.String() + p.Branch.String() }

// Korean renders the pillar in Hangul, e.g. 갑자.
func (p Pillar) Korean() string { return p.Stem.Korean() + p.Branch.Korean() }

// MarshalText renders the pillar as two Hanja characters.
func (p Pillar) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText parses a pillar written in Hanja or Hangul.
func (p *Pillar) UnmarshalText(text []byte) error {
	v, err := ParsePillar(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParsePillar parses a two-character pillar such as "甲子" or "갑자".
func ParsePillar(v string) (Pillar, error) {
	runes := []rune(strings.TrimSpace(v))
	if len(runes) != 2 {
		return Pillar{}, fmt.Errorf("pillar %q must have two characters", v)
	}
	s, err := ParseStem(string(runes[0]))
	if err != nil {
		return Pillar{}, err
	}
	b, err := ParseBranch(string(runes[1]))
	if err != nil {
		return Pillar{}, err
	}
	return Pillar{Stem: s, Branch: b}, nil
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
