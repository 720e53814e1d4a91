package saju

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// published instants of a few terms, UTC
var knownTerms = []struct {
	year  int
	index int
	want  time.Time
}{
	{1990, 19, time.Date(1990, 1, 5, 14, 33, 0, 0, time.UTC)},
	{1990, 21, time.Date(1990, 2, 4, 2, 14, 0, 0, time.UTC)},
	{2024, 21, time.Date(2024, 2, 4, 8, 27, 0, 0, time.UTC)},
	{2024, 6, time.Date(2024, 6, 20, 20, 51, 0, 0, time.UTC)},
	{2024, 18, time.Date(2024, 12, 21, 9, 21, 0, 0, time.UTC)},
}

func TestSolarTermInstantMatchesPublishedTimes(t *testing.T) {
	for _, tt := range knownTerms {
		got := time.UnixMilli(SolarTermInstant(tt.year, SolarTerms[tt.index])).UTC()
		assert.WithinDuration(t, tt.want, got, 15*time.Minute, "%d %s", tt.year, SolarTerms[tt.index].Hanja)
	}
}

func TestSunLongitudeAtTermInstant(t *testing.T) {
	ms := SolarTermInstant(2024, SolarTerms[21])
	assert.InDelta(t, 315.0, SunLongitude(ms), 1e-5)
}

func TestSolarTermsForYear(t *testing.T) {
	events := SolarTermsForYear(2024)
	require.Len(t, events, 24)

	assert.Equal(t, "小寒", events[0].Hanja)
	assert.Equal(t, "冬至", events[23].Hanja)
	for i, ev := range events {
		assert.Equal(t, 2024, time.UnixMilli(ev.Millis).UTC().Year(), "term %s", ev.Hanja)
		if i > 0 {
			assert.Greater(t, ev.Millis, events[i-1].Millis, "term %s", ev.Hanja)
		}
	}
}

func TestSolarTermsJieFlags(t *testing.T) {
	jie := 0
	for i, def := range SolarTerms {
		assert.Equal(t, i, def.Index)
		assert.Equal(t, float64(i*15), def.Longitude)
		if def.Jie {
			jie++
			assert.Equal(t, 1, i%2, "jie %s must sit on an odd index", def.Hanja)
		}
	}
	assert.Equal(t, 12, jie)
}

func TestAnalyzeSolarTerms(t *testing.T) {
	// 1990-01-15 23:00 KST
	ms := time.Date(1990, 1, 15, 14, 0, 0, 0, time.UTC).UnixMilli()
	info := AnalyzeSolarTerms(ms)

	assert.Equal(t, "小寒", info.Current.Hanja)
	assert.Equal(t, "大寒", info.Next.Hanja)
	assert.Equal(t, 9, info.DaysSinceCurrent)
	assert.Equal(t, 4, info.DaysUntilNext)
	assert.Less(t, info.Current.Millis, ms)
	assert.Greater(t, info.Next.Millis, ms)
	assert.InDelta(t, 295, info.SunLongitude, 1)
}

func TestAnalyzeSolarTermsJustAfterTerm(t *testing.T) {
	lichun := SolarTermInstant(2024, SolarTerms[21])
	info := AnalyzeSolarTerms(lichun + 60_000)

	assert.Equal(t, "立春", info.Current.Hanja)
	assert.InDelta(t, lichun, info.Current.Millis, 1000)
	assert.Equal(t, 0, info.DaysSinceCurrent)
	assert.Equal(t, "雨水", info.Next.Hanja)
}

func TestJieNeighbours(t *testing.T) {
	ms := time.Date(1990, 1, 15, 14, 0, 0, 0, time.UTC).UnixMilli()

	prev := previousJie(ms)
	assert.Equal(t, "小寒", prev.Hanja)
	assert.WithinDuration(t, time.Date(1990, 1, 5, 14, 33, 0, 0, time.UTC), time.UnixMilli(prev.Millis), 15*time.Minute)

	next := nextJie(ms)
	assert.Equal(t, "立春", next.Hanja)
	assert.WithinDuration(t, time.Date(1990, 2, 4, 2, 14, 0, 0, time.UTC), time.UnixMilli(next.Millis), 15*time.Minute)
}
