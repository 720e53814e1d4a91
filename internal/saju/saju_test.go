package saju

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/saju-api/internal/dateadapter"
)

func TestGetSajuStd(t *testing.T) {
	a, err := dateadapter.NewStd()
	require.NoError(t, err)
	runGetSajuSuite(t, a)
}

func TestGetSajuCarbon(t *testing.T) {
	a, err := dateadapter.NewCarbon()
	require.NoError(t, err)
	runGetSajuSuite(t, a)
}

func runGetSajuSuite[T any](t *testing.T, a dateadapter.Adapter[T]) {
	t.Helper()

	birth, err := a.Create(1990, 1, 15, 23, 0, 0, "Asia/Seoul")
	require.NoError(t, err)
	opts := Options{LongitudeDeg: seoulLongitude, Gender: Male, CurrentYear: 2024}

	t.Run("regression chart", func(t *testing.T) {
		res, err := GetSaju(a, birth, opts)
		require.NoError(t, err)

		assert.Equal(t, "己巳 丁丑 庚辰 丙子", res.Pillars.String())
		assert.Equal(t, BranchJa, res.Pillars.Hour.Branch)
		assert.Equal(t, LunarDate{Year: 1989, Month: 12, Day: 19}, res.Lunar)
		assert.Equal(t, 8, res.Elements.Total())
		assert.Equal(t, Balanced, res.Strength.Level)
		assert.Equal(t, MethodBalance, res.YongShen.Method)
		assert.Equal(t, "小寒", res.SolarTerms.Current.Hanja)
		assert.Equal(t, Backward, res.MajorLuck.Direction)
		assert.Equal(t, 3, res.MajorLuck.StartAge)
		require.NotNil(t, res.CurrentMajorLuck)
		assert.Equal(t, "癸酉", res.CurrentMajorLuck.Pillar.String())

		require.Len(t, res.YearlyLuck, 11)
		assert.Equal(t, 2024, res.YearlyLuck[0].Year)
		assert.Equal(t, 2034, res.YearlyLuck[10].Year)
		assert.Equal(t, 1989, res.Meta.SolarYear)
	})

	t.Run("month polarity sets direction", func(t *testing.T) {
		spring, err := a.Create(1990, 3, 15, 12, 0, 0, "Asia/Seoul")
		require.NoError(t, err)
		res, err := GetSaju(a, spring, opts)
		require.NoError(t, err)

		assert.Equal(t, "庚午 己卯 己卯 庚午", res.Pillars.String())
		assert.Equal(t, Backward, res.MajorLuck.Direction)
	})

	t.Run("deterministic", func(t *testing.T) {
		first, err := GetSaju(a, birth, opts)
		require.NoError(t, err)
		second, err := GetSaju(a, birth, opts)
		require.NoError(t, err)

		b1, err := json.Marshal(first)
		require.NoError(t, err)
		b2, err := json.Marshal(second)
		require.NoError(t, err)
		assert.JSONEq(t, string(b1), string(b2))
	})

	t.Run("explicit yearly range", func(t *testing.T) {
		o := opts
		o.YearlyLuckRange = &YearRange{From: 2000, To: 2004}
		res, err := GetSaju(a, birth, o)
		require.NoError(t, err)
		require.Len(t, res.YearlyLuck, 5)
		assert.Equal(t, "庚辰", res.YearlyLuck[0].Pillar.String())
	})

	t.Run("inverted yearly range is empty", func(t *testing.T) {
		o := opts
		o.YearlyLuckRange = &YearRange{From: 2010, To: 2000}
		res, err := GetSaju(a, birth, o)
		require.NoError(t, err)
		assert.Empty(t, res.YearlyLuck)
	})

	t.Run("invalid gender", func(t *testing.T) {
		o := opts
		o.Gender = "unknown"
		_, err := GetSaju(a, birth, o)
		assert.ErrorIs(t, err, ErrInvalidGender)
	})

	t.Run("out of range", func(t *testing.T) {
		old, err := a.Create(1880, 3, 1, 12, 0, 0, "UTC")
		require.NoError(t, err)
		_, err = GetSaju(a, old, opts)
		assert.ErrorIs(t, err, ErrDateOutOfRange)
	})
}

func TestGetSajuBackendsAgree(t *testing.T) {
	std, err := dateadapter.NewStd()
	require.NoError(t, err)
	cb, err := dateadapter.NewCarbon()
	require.NoError(t, err)

	preset := TraditionalPreset
	opts := Options{LongitudeDeg: seoulLongitude, Gender: Female, CurrentYear: 2024, Preset: &preset}

	for _, tc := range [][5]int{{1990, 1, 15, 23, 50}, {2024, 2, 4, 17, 0}, {1975, 8, 30, 6, 15}, {2008, 12, 31, 23, 59}} {
		sb, err := std.Create(tc[0], tc[1], tc[2], tc[3], tc[4], 0, "Asia/Seoul")
		require.NoError(t, err)
		cbv, err := cb.Create(tc[0], tc[1], tc[2], tc[3], tc[4], 0, "Asia/Seoul")
		require.NoError(t, err)

		rs, err := GetSaju(std, sb, opts)
		require.NoError(t, err)
		rc, err := GetSaju(cb, cbv, opts)
		require.NoError(t, err)

		js, err := json.Marshal(rs)
		require.NoError(t, err)
		jc, err := json.Marshal(rc)
		require.NoError(t, err)
		assert.JSONEq(t, string(js), string(jc), "birth %v", tc)
	}
}
