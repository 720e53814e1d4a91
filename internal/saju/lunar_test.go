package saju

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToLunar(t *testing.T) {
	tests := []struct {
		name    string
		y, m, d int
		want    LunarDate
	}{
		{"epoch", 1900, 1, 31, LunarDate{Year: 1900, Month: 1, Day: 1}},
		{"new year 2024", 2024, 2, 10, LunarDate{Year: 2024, Month: 1, Day: 1}},
		{"eve of 2024", 2024, 2, 9, LunarDate{Year: 2023, Month: 12, Day: 30}},
		{"first day of leap month", 2023, 3, 22, LunarDate{Year: 2023, Month: 2, Day: 1, IsLeapMonth: true}},
		{"last day of leap month", 2023, 4, 19, LunarDate{Year: 2023, Month: 2, Day: 29, IsLeapMonth: true}},
		{"month after leap month", 2023, 4, 20, LunarDate{Year: 2023, Month: 3, Day: 1}},
		{"new year 2000", 2000, 2, 5, LunarDate{Year: 2000, Month: 1, Day: 1}},
		{"regression birth date", 1990, 1, 15, LunarDate{Year: 1989, Month: 12, Day: 19}},
		{"new year 1990", 1990, 1, 27, LunarDate{Year: 1990, Month: 1, Day: 1}},
		{"leap sixth month 2025", 2025, 7, 25, LunarDate{Year: 2025, Month: 6, Day: 1, IsLeapMonth: true}},
		{"last supported day", 2100, 12, 31, LunarDate{Year: 2100, Month: 12, Day: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToLunar(tt.y, tt.m, tt.d)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToLunarOutOfRange(t *testing.T) {
	for _, d := range [][3]int{{1900, 1, 30}, {1850, 6, 1}, {2101, 6, 1}} {
		_, err := ToLunar(d[0], d[1], d[2])
		assert.ErrorIs(t, err, ErrDateOutOfRange, "date %v", d)
	}
}

func TestToSolar(t *testing.T) {
	tests := []struct {
		lunar   LunarDate
		y, m, d int
	}{
		{LunarDate{Year: 2024, Month: 1, Day: 1}, 2024, 2, 10},
		{LunarDate{Year: 2023, Month: 2, Day: 1, IsLeapMonth: true}, 2023, 3, 22},
		{LunarDate{Year: 2023, Month: 3, Day: 1}, 2023, 4, 20},
		{LunarDate{Year: 1989, Month: 12, Day: 19}, 1990, 1, 15},
		{LunarDate{Year: 1900, Month: 1, Day: 1}, 1900, 1, 31},
	}

	for _, tt := range tests {
		y, m, d, err := ToSolar(tt.lunar)
		require.NoError(t, err, "lunar %s", tt.lunar)
		assert.Equal(t, [3]int{tt.y, tt.m, tt.d}, [3]int{y, m, d}, "lunar %s", tt.lunar)
	}
}

func TestToSolarRejectsInvalidDates(t *testing.T) {
	tests := []struct {
		name  string
		lunar LunarDate
		want  error
	}{
		{"year before table", LunarDate{Year: 1899, Month: 1, Day: 1}, ErrDateOutOfRange},
		{"month zero", LunarDate{Year: 2024, Month: 0, Day: 1}, ErrInvalidLunarDate},
		{"missing leap month", LunarDate{Year: 2024, Month: 2, Day: 1, IsLeapMonth: true}, ErrInvalidLunarDate},
		{"day past month end", LunarDate{Year: 2023, Month: 2, Day: 30, IsLeapMonth: true}, ErrInvalidLunarDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := ToSolar(tt.lunar)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLunarRoundTrip(t *testing.T) {
	for jdn := julianDayNumber(1990, 1, 1); jdn < julianDayNumber(1992, 1, 1); jdn += 7 {
		y, m, d := civilFromJulianDayNumber(jdn)
		l, err := ToLunar(y, m, d)
		require.NoError(t, err)
		gy, gm, gd, err := ToSolar(l)
		require.NoError(t, err)
		assert.Equal(t, [3]int{y, m, d}, [3]int{gy, gm, gd}, "lunar %s", l)
	}
}
