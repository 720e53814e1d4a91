package saju

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustChart builds four pillars from "year month day hour" Hanja.
func mustChart(t *testing.T, year, month, day, hour string) FourPillars {
	t.Helper()
	var fp FourPillars
	for _, f := range []struct {
		dst *Pillar
		src string
	}{{&fp.Year, year}, {&fp.Month, month}, {&fp.Day, day}, {&fp.Hour, hour}} {
		p, err := ParsePillar(f.src)
		require.NoError(t, err)
		*f.dst = p
	}
	return fp
}

func regressionChart(t *testing.T) FourPillars {
	return mustChart(t, "己巳", "丁丑", "庚辰", "丙子")
}

func TestTenGodOf(t *testing.T) {
	tests := []struct {
		dm, s Stem
		want  TenGod
	}{
		{StemGap, StemGap, Friend},
		{StemGap, StemEul, RobWealth},
		{StemGap, StemByeong, EatingGod},
		{StemGap, StemJeong, HurtingOfficer},
		{StemGap, StemMu, IndirectWealth},
		{StemGap, StemGi, DirectWealth},
		{StemGap, StemGyeong, IndirectOfficer},
		{StemGap, StemSin, DirectOfficer},
		{StemGap, StemIm, IndirectResource},
		{StemGap, StemGye, DirectResource},
		{StemGyeong, StemGi, DirectResource},
		{StemGyeong, StemJeong, DirectOfficer},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TenGodOf(tt.dm, tt.s), "%s vs %s", tt.dm, tt.s)
	}
}

func TestAnalyzeTenGods(t *testing.T) {
	tg := AnalyzeTenGods(regressionChart(t))

	assert.Equal(t, StemGyeong, tg.DayMaster)
	assert.Equal(t, DayMaster, tg.Day.Stem.TenGod)
	assert.Equal(t, DirectResource, tg.Year.Stem.TenGod)
	assert.Equal(t, DirectOfficer, tg.Month.Stem.TenGod)
	assert.Equal(t, IndirectOfficer, tg.Hour.Stem.TenGod)

	assert.Equal(t, IndirectOfficer, tg.Year.Branch.TenGod)
	assert.Equal(t, DirectResource, tg.Month.Branch.TenGod)
	assert.Equal(t, IndirectResource, tg.Day.Branch.TenGod)
	assert.Equal(t, HurtingOfficer, tg.Hour.Branch.TenGod)

	require.Len(t, tg.Month.Branch.HiddenStems, 3)
	assert.Equal(t, StemGye, tg.Month.Branch.HiddenStems[0].Stem)
	assert.Equal(t, HurtingOfficer, tg.Month.Branch.HiddenStems[0].TenGod)
	assert.Equal(t, "정인", DirectResource.Korean())
	assert.Equal(t, "正印", DirectResource.Hanja())
}

func TestCountElements(t *testing.T) {
	tg := AnalyzeTenGods(regressionChart(t))

	counts := CountElements(tg)
	assert.Equal(t, 8, counts.Total())
	assert.Equal(t, ElementCounts{Wood: 0, Fire: 3, Earth: 3, Metal: 1, Water: 1}, counts)

	withHidden := CountElementsWithHidden(tg)
	// 巳, 丑 and 辰 hold three stems each, 子 holds two
	assert.Equal(t, 8+11, withHidden.Total())
	assert.Equal(t, 6, withHidden[Earth])
}

func TestAnalyzeStrength(t *testing.T) {
	s := AnalyzeStrength(regressionChart(t))

	assert.Equal(t, StemGyeong, s.DayMaster)
	assert.Equal(t, Metal, s.Element)
	assert.InDelta(t, 47.0, s.Score, 0.05)
	assert.Equal(t, Balanced, s.Level)
	assert.True(t, s.DeukRyeong)
	assert.True(t, s.DeukJi)
	assert.False(t, s.DeukSe)
	assert.InDelta(t, 9.5, s.Support+s.Opposition, 0.02)
	assert.Contains(t, s.Description, "balanced")
}

func TestStrengthExtremes(t *testing.T) {
	strong := AnalyzeStrength(mustChart(t, "辛酉", "辛酉", "庚申", "辛酉"))
	assert.Equal(t, ExtremelyStrong, strong.Level)
	assert.True(t, strong.Level.IsStrong())

	weak := AnalyzeStrength(mustChart(t, "甲寅", "乙卯", "庚寅", "乙卯"))
	assert.Equal(t, ExtremelyWeak, weak.Level)
	assert.True(t, weak.Level.IsWeak())
	assert.Contains(t, weak.Description, "No position lends direct support")
}

func TestStrengthLevelsOrdered(t *testing.T) {
	for i := 1; i < len(StrengthLevels); i++ {
		assert.Greater(t, StrengthLevels[i].Max, StrengthLevels[i-1].Max)
	}
	assert.Equal(t, Balanced, strengthLevel(50))
	assert.Equal(t, Weak, strengthLevel(44.9))
	assert.Equal(t, Balanced, strengthLevel(45))
	assert.Equal(t, ExtremelyStrong, strengthLevel(100))
}

func TestAnalyzeRelationsRegressionChart(t *testing.T) {
	r := AnalyzeRelations(regressionChart(t))

	assert.Empty(t, r.Stems)
	assert.Empty(t, r.Clashes)
	assert.Empty(t, r.Harms)
	assert.Empty(t, r.Punishments)

	assert.Equal(t, []Relation{
		{Kind: SixCombination, Positions: []Position{PosMonth, PosHour}, Chars: "丑子", Element: Earth},
		{Kind: HalfCombination, Positions: []Position{PosDay, PosHour}, Chars: "辰子", Element: Water},
	}, r.Combinations)
	assert.Equal(t, []Relation{
		{Kind: Destruction, Positions: []Position{PosMonth, PosDay}, Chars: "丑辰"},
	}, r.Destructions)
	assert.Len(t, r.All(), 3)
}

func TestAnalyzeRelationsEmptyGroupsEncodeAsArrays(t *testing.T) {
	b, err := json.Marshal(AnalyzeRelations(regressionChart(t)))
	require.NoError(t, err)

	out := string(b)
	for _, key := range []string{`"stems":[]`, `"clashes":[]`, `"harms":[]`, `"punishments":[]`} {
		assert.Contains(t, out, key)
	}
	assert.NotContains(t, out, "null")
}

func TestAnalyzeRelations(t *testing.T) {
	t.Run("stem combination and clash", func(t *testing.T) {
		r := AnalyzeRelations(mustChart(t, "甲子", "己巳", "庚午", "丙子"))
		require.Len(t, r.Stems, 2)
		assert.Equal(t, StemCombination, r.Stems[0].Kind)
		assert.Equal(t, Earth, r.Stems[0].Element)
		assert.Equal(t, []Position{PosYear, PosMonth}, r.Stems[0].Positions)
		assert.Equal(t, StemClash, r.Stems[1].Kind)
		assert.Equal(t, "甲庚", r.Stems[1].Chars)
	})

	t.Run("branch clashes", func(t *testing.T) {
		r := AnalyzeRelations(mustChart(t, "甲子", "丙午", "甲子", "丙寅"))
		require.Len(t, r.Clashes, 2)
		assert.Equal(t, []Position{PosYear, PosMonth}, r.Clashes[0].Positions)
		assert.Equal(t, []Position{PosMonth, PosDay}, r.Clashes[1].Positions)
	})

	t.Run("triple combination with its halves", func(t *testing.T) {
		r := AnalyzeRelations(mustChart(t, "庚申", "丙子", "甲辰", "丙寅"))
		var kinds []RelationKind
		for _, c := range r.Combinations {
			kinds = append(kinds, c.Kind)
		}
		assert.Equal(t, []RelationKind{TripleCombination, HalfCombination, HalfCombination}, kinds)
		assert.Equal(t, "申子辰", r.Combinations[0].Chars)
		assert.Equal(t, Water, r.Combinations[0].Element)
	})

	t.Run("directional combination", func(t *testing.T) {
		r := AnalyzeRelations(mustChart(t, "丙寅", "丁卯", "甲辰", "丙子"))
		var found bool
		for _, c := range r.Combinations {
			if c.Kind == DirectionalCombination {
				found = true
				assert.Equal(t, Wood, c.Element)
				assert.Equal(t, []Position{PosYear, PosMonth, PosDay}, c.Positions)
			}
		}
		assert.True(t, found)
	})

	t.Run("punishments", func(t *testing.T) {
		r := AnalyzeRelations(mustChart(t, "甲寅", "己巳", "壬申", "丙午"))
		kinds := map[RelationKind]int{}
		for _, p := range r.Punishments {
			kinds[p.Kind]++
		}
		// full 寅巳申 triple plus its three pairs
		assert.Equal(t, 4, kinds[Punishment])
		assert.Zero(t, kinds[SelfPunishment])
	})

	t.Run("self punishment", func(t *testing.T) {
		r := AnalyzeRelations(mustChart(t, "甲午", "庚午", "甲子", "丙寅"))
		require.NotEmpty(t, r.Punishments)
		assert.Equal(t, SelfPunishment, r.Punishments[0].Kind)
		assert.Equal(t, "午午", r.Punishments[0].Chars)
	})

	t.Run("harm", func(t *testing.T) {
		r := AnalyzeRelations(mustChart(t, "甲子", "丁未", "甲子", "丙寅"))
		assert.Len(t, r.Harms, 2)
	})
}

func TestAnalyzeYongShen(t *testing.T) {
	t.Run("balanced chart evens out elements", func(t *testing.T) {
		fp := regressionChart(t)
		y := AnalyzeYongShen(fp, AnalyzeStrength(fp))
		assert.Equal(t, MethodBalance, y.Method)
		assert.Equal(t, Wood, y.Primary)
		assert.Equal(t, Fire, y.Avoid)
		assert.NotEmpty(t, y.Reasoning)
	})

	t.Run("cold chart without fire", func(t *testing.T) {
		fp := mustChart(t, "壬子", "辛亥", "庚子", "戊子")
		y := AnalyzeYongShen(fp, AnalyzeStrength(fp))
		assert.Equal(t, MethodClimate, y.Method)
		assert.Equal(t, Fire, y.Primary)
		assert.Equal(t, Wood, y.Secondary)
	})

	t.Run("hot chart without water", func(t *testing.T) {
		fp := mustChart(t, "丙午", "甲午", "戊午", "丁巳")
		y := AnalyzeYongShen(fp, AnalyzeStrength(fp))
		assert.Equal(t, MethodClimate, y.Method)
		assert.Equal(t, Water, y.Primary)
	})

	t.Run("overwhelming day master is followed", func(t *testing.T) {
		fp := mustChart(t, "辛酉", "辛酉", "庚申", "辛酉")
		y := AnalyzeYongShen(fp, AnalyzeStrength(fp))
		assert.Equal(t, MethodFollow, y.Method)
		assert.Equal(t, Metal, y.Primary)
	})

	t.Run("helpless day master follows the dominant element", func(t *testing.T) {
		fp := mustChart(t, "甲寅", "乙卯", "庚寅", "乙卯")
		y := AnalyzeYongShen(fp, AnalyzeStrength(fp))
		assert.Equal(t, MethodFollow, y.Method)
		assert.Equal(t, Wood, y.Primary)
	})

	t.Run("weak day master is supported", func(t *testing.T) {
		fp := mustChart(t, "庚申", "辛酉", "甲子", "丙寅")
		s := StrengthResult{DayMaster: StemGap, Element: Wood, Level: Weak}
		y := AnalyzeYongShen(fp, s)
		assert.Equal(t, MethodSupport, y.Method)
		assert.Equal(t, Water, y.Primary)
		assert.Equal(t, Wood, y.Secondary)
		assert.Equal(t, Metal, y.Avoid)
	})

	t.Run("strong day master is drained", func(t *testing.T) {
		fp := mustChart(t, "甲寅", "丙寅", "甲子", "丙寅")
		s := StrengthResult{DayMaster: StemGap, Element: Wood, Level: Strong}
		y := AnalyzeYongShen(fp, s)
		assert.Equal(t, MethodSuppress, y.Method)
		assert.Equal(t, Fire, y.Primary)
		assert.Equal(t, Earth, y.Secondary)
		assert.Equal(t, Water, y.Avoid)
	})
}
