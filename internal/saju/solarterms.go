package saju

import (
	"math"
	"time"
)

// SolarTermDef is one of the 24 divisions of the tropical year.
type SolarTermDef struct {
	Index     int     `json:"index" yaml:"index"`
	Hanja     string  `json:"hanja" yaml:"hanja"`
	Korean    string  `json:"korean" yaml:"korean"`
	English   string  `json:"english" yaml:"english"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	// Jie terms (절기) open a saju month; the others are mid-month (중기).
	Jie bool `json:"jie" yaml:"jie"`
}

// SolarTerms is indexed by longitude/15, starting at the spring equinox.
var SolarTerms = [24]SolarTermDef{
	{0, "春分", "춘분", "Spring Equinox", 0, false},
	{1, "清明", "청명", "Clear and Bright", 15, true},
	{2, "穀雨", "곡우", "Grain Rain", 30, false},
	{3, "立夏", "입하", "Start of Summer", 45, true},
	{4, "小滿", "소만", "Grain Buds", 60, false},
	{5, "芒種", "망종", "Grain in Ear", 75, true},
	{6, "夏至", "하지", "Summer Solstice", 90, false},
	{7, "小暑", "소서", "Minor Heat", 105, true},
	{8, "大暑", "대서", "Major Heat", 120, false},
	{9, "立秋", "입추", "Start of Autumn", 135, true},
	{10, "處暑", "처서", "End of Heat", 150, false},
	{11, "白露", "백로", "White Dew", 165, true},
	{12, "秋分", "추분", "Autumn Equinox", 180, false},
	{13, "寒露", "한로", "Cold Dew", 195, true},
	{14, "霜降", "상강", "Frost Descent", 210, false},
	{15, "立冬", "입동", "Start of Winter", 225, true},
	{16, "小雪", "소설", "Minor Snow", 240, false},
	{17, "大雪", "대설", "Major Snow", 255, true},
	{18, "冬至", "동지", "Winter Solstice", 270, false},
	{19, "小寒", "소한", "Minor Cold", 285, true},
	{20, "大寒", "대한", "Major Cold", 300, false},
	{21, "立春", "입춘", "Start of Spring", 315, true},
	{22, "雨水", "우수", "Rain Water", 330, false},
	{23, "驚蟄", "경칩", "Awakening of Insects", 345, true},
}

// lichunLongitude is where the saju year and the 寅 month begin.
const lichunLongitude = 315.0

// SolarTermEvent is a term together with the instant it begins.
type SolarTermEvent struct {
	SolarTermDef `yaml:",inline"`
	Millis       int64  `json:"millis" yaml:"millis"`
	UTC          string `json:"utc" yaml:"utc"`
}

func newEvent(def SolarTermDef, ms int64) SolarTermEvent {
	return SolarTermEvent{
		SolarTermDef: def,
		Millis:       ms,
		UTC:          time.UnixMilli(ms).UTC().Format(time.RFC3339),
	}
}

// SolarTermInfo places a birth instant between two consecutive terms.
type SolarTermInfo struct {
	Current          SolarTermEvent `json:"current" yaml:"current"`
	Next             SolarTermEvent `json:"next" yaml:"next"`
	DaysSinceCurrent int            `json:"days_since_current" yaml:"days_since_current"`
	DaysUntilNext    int            `json:"days_until_next" yaml:"days_until_next"`
	SunLongitude     float64        `json:"sun_longitude" yaml:"sun_longitude"`
}

// SolarTermInstant returns the Unix millisecond instant at which the sun
// reaches the longitude of def during Gregorian year y.
func SolarTermInstant(year int, def SolarTermDef) int64 {
	offset := def.Longitude
	// 小寒 through 驚蟄 fall before the March equinox of the same year.
	if offset >= 285 {
		offset -= 360
	}
	equinox := time.Date(year, time.March, 20, 12, 0, 0, 0, time.UTC).UnixMilli()
	guess := equinox + int64(offset/meanSunMotion*msPerDay)
	return findLongitudeInstant(guess, def.Longitude)
}

// SolarTermsForYear lists the 24 terms of Gregorian year y in date order,
// from 小寒 in early January to 冬至 in late December.
func SolarTermsForYear(year int) []SolarTermEvent {
	out := make([]SolarTermEvent, 0, len(SolarTerms))
	for i := range SolarTerms {
		def := SolarTerms[(19+i)%24]
		out = append(out, newEvent(def, SolarTermInstant(year, def)))
	}
	return out
}

// AnalyzeSolarTerms finds the term in force at ms and the one after it.
func AnalyzeSolarTerms(ms int64) SolarTermInfo {
	lon := SunLongitude(ms)
	idx := int(math.Floor(lon/15)) % 24
	cur := SolarTerms[idx]
	next := SolarTerms[(idx+1)%24]

	curMs := termBefore(ms, lon, cur.Longitude)
	nextMs := termAfter(ms, lon, next.Longitude)

	return SolarTermInfo{
		Current:          newEvent(cur, curMs),
		Next:             newEvent(next, nextMs),
		DaysSinceCurrent: int((ms - curMs) / msPerDay),
		DaysUntilNext:    int((nextMs - ms) / msPerDay),
		SunLongitude:     lon,
	}
}

// termBefore finds the latest instant <= ms at which the sun was at target.
func termBefore(ms int64, lon, target float64) int64 {
	back := normalizeDegrees(lon - target)
	guess := ms - int64(back/meanSunMotion*msPerDay)
	t := findLongitudeInstant(guess, target)
	if t > ms {
		if t-ms < 60_000 {
			// rounding noise: the term starts at ms itself
			return ms
		}
		// sun sits just short of target; step back a full year
		t = findLongitudeInstant(t-int64(tropicalYear*msPerDay), target)
	}
	return t
}

// termAfter finds the earliest instant > ms at which the sun reaches target.
func termAfter(ms int64, lon, target float64) int64 {
	ahead := normalizeDegrees(target - lon)
	guess := ms + int64(ahead/meanSunMotion*msPerDay)
	t := findLongitudeInstant(guess, target)
	if t <= ms {
		t = findLongitudeInstant(t+int64(tropicalYear*msPerDay), target)
	}
	return t
}

// previousJie returns the most recent month-opening term at or before ms.
func previousJie(ms int64) SolarTermEvent {
	lon := SunLongitude(ms)
	// jie longitudes are 15 + 30k
	target := normalizeDegrees(math.Floor((lon-15)/30)*30 + 15)
	def := SolarTerms[int(target/15)%24]
	return newEvent(def, termBefore(ms, lon, def.Longitude))
}

// nextJie returns the first month-opening term strictly after ms.
func nextJie(ms int64) SolarTermEvent {
	lon := SunLongitude(ms)
	target := normalizeDegrees(math.Floor((lon-15)/30)*30 + 45)
	def := SolarTerms[int(target/15)%24]
	return newEvent(def, termAfter(ms, lon, def.Longitude))
}
