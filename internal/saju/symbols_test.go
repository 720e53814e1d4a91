package saju

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementCycle(t *testing.T) {
	for _, e := range Elements {
		assert.Equal(t, e, e.Generates().GeneratedBy(), "generates/generated-by round trip for %s", e)
		assert.Equal(t, e, e.Controls().ControlledBy(), "controls/controlled-by round trip for %s", e)
	}
	assert.Equal(t, Fire, Wood.Generates())
	assert.Equal(t, Earth, Wood.Controls())
	assert.Equal(t, Fire, Metal.ControlledBy())
	assert.Equal(t, Earth, Metal.GeneratedBy())
}

func TestStemTables(t *testing.T) {
	tests := []struct {
		stem     Stem
		hanja    string
		korean   string
		element  Element
		polarity Polarity
	}{
		{StemGap, "甲", "갑", Wood, Yang},
		{StemEul, "乙", "을", Wood, Yin},
		{StemMu, "戊", "무", Earth, Yang},
		{StemGyeong, "庚", "경", Metal, Yang},
		{StemGye, "癸", "계", Water, Yin},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.hanja, tt.stem.String())
		assert.Equal(t, tt.korean, tt.stem.Korean())
		assert.Equal(t, tt.element, tt.stem.Element())
		assert.Equal(t, tt.polarity, tt.stem.Polarity())
	}
}

func TestBranchTables(t *testing.T) {
	tests := []struct {
		branch  Branch
		hanja   string
		animal  string
		element Element
		main    Stem
	}{
		{BranchJa, "子", "rat", Water, StemGye},
		{BranchChuk, "丑", "ox", Earth, StemGi},
		{BranchIn, "寅", "tiger", Wood, StemGap},
		{BranchO, "午", "horse", Fire, StemJeong},
		{BranchHae, "亥", "pig", Water, StemIm},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.hanja, tt.branch.String())
		assert.Equal(t, tt.animal, tt.branch.Animal())
		assert.Equal(t, tt.element, tt.branch.Element())
		assert.Equal(t, tt.main, tt.branch.MainStem())
	}
}

func TestHiddenStemDaysSumToThirty(t *testing.T) {
	for b := BranchJa; b <= BranchHae; b++ {
		total := 0
		hs := b.HiddenStems()
		for _, h := range hs {
			total += h.Days
		}
		assert.Equal(t, 30, total, "branch %s", b)
		assert.Equal(t, HiddenMain, hs[len(hs)-1].Role, "branch %s", b)
	}
}

func TestHiddenStemsReturnsCopy(t *testing.T) {
	hs := BranchJa.HiddenStems()
	hs[0].Stem = StemGap
	assert.Equal(t, StemIm, BranchJa.HiddenStems()[0].Stem)
}

func TestPillarIndexRoundTrip(t *testing.T) {
	for i := range 60 {
		p := PillarFromIndex(i)
		assert.Equal(t, i, p.SexagenaryIndex(), "pillar %s", p)
		assert.Equal(t, p.Stem.Polarity(), p.Branch.Polarity(), "pillar %s", p)
	}
	assert.Equal(t, "甲子", PillarFromIndex(0).String())
	assert.Equal(t, "癸亥", PillarFromIndex(59).String())
	assert.Equal(t, "癸亥", PillarFromIndex(-1).String())
	assert.Equal(t, "甲子", PillarFromIndex(120).String())
}

func TestParsePillar(t *testing.T) {
	p, err := ParsePillar("庚辰")
	require.NoError(t, err)
	assert.Equal(t, Pillar{Stem: StemGyeong, Branch: BranchJin}, p)

	p, err = ParsePillar("경진")
	require.NoError(t, err)
	assert.Equal(t, "庚辰", p.String())
	assert.Equal(t, "경진", p.Korean())

	_, err = ParsePillar("庚")
	assert.Error(t, err)
	_, err = ParsePillar("辰庚")
	assert.Error(t, err)
}

func TestPillarTextMarshalling(t *testing.T) {
	b, err := Pillar{Stem: StemByeong, Branch: BranchJa}.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "丙子", string(b))

	var p Pillar
	require.NoError(t, p.UnmarshalText([]byte("丁丑")))
	assert.Equal(t, Pillar{Stem: StemJeong, Branch: BranchChuk}, p)
}
