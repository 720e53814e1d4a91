package saju

import "math"

const (
	msPerDay      = 86_400_000
	unixEpochJD   = 2440587.5
	j2000         = 2451545.0
	tropicalYear  = 365.2422
	meanSunMotion = 360 / tropicalYear // degrees per day
)

// julianDayFromMillis converts a Unix millisecond instant (UT) to a Julian day.
func julianDayFromMillis(ms int64) float64 {
	return float64(ms)/msPerDay + unixEpochJD
}

func millisFromJulianDay(jd float64) int64 {
	return int64(math.Round((jd - unixEpochJD) * msPerDay))
}

// julianDayNumber returns the integer Julian day number of a Gregorian date.
func julianDayNumber(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// civilFromJulianDayNumber is the inverse of julianDayNumber.
func civilFromJulianDayNumber(jdn int) (year, month, day int) {
	a := jdn + 32044
	b := (4*a + 3) / 146097
	c := a - 146097*b/4
	d := (4*c + 3) / 1461
	e := c - 1461*d/4
	m := (5*e + 2) / 153
	day = e - (153*m+2)/5 + 1
	month = m + 3 - 12*(m/10)
	year = 100*b + d - 4800 + m/10
	return year, month, day
}

// deltaT approximates TT − UT in seconds (Espenak & Meeus polynomials).
func deltaT(year float64) float64 {
	switch {
	case year >= 1900 && year < 1920:
		t := year - 1900
		return -2.79 + 1.494119*t - 0.0598939*t*t + 0.0061966*t*t*t - 0.000197*t*t*t*t
	case year >= 1920 && year < 1941:
		t := year - 1920
		return 21.20 + 0.84493*t - 0.076100*t*t + 0.0020936*t*t*t
	case year >= 1941 && year < 1961:
		t := year - 1950
		return 29.07 + 0.407*t - t*t/233 + t*t*t/2547
	case year >= 1961 && year < 1986:
		t := year - 1975
		return 45.45 + 1.067*t - t*t/260 - t*t*t/718
	case year >= 1986 && year < 2005:
		t := year - 2000
		return 63.86 + 0.3345*t - 0.060374*t*t + 0.0017275*t*t*t + 0.000651814*t*t*t*t + 0.00002373599*t*t*t*t*t
	case year >= 2005 && year < 2050:
		t := year - 2000
		return 62.92 + 0.32217*t + 0.005589*t*t
	case year >= 2050 && year < 2150:
		u := (year - 1820) / 100
		return -20 + 32*u*u - 0.5628*(2150-year)
	default:
		u := (year - 1820) / 100
		return -20 + 32*u*u
	}
}

// SunLongitude returns the apparent ecliptic longitude of the sun in degrees
// [0, 360) at the given Unix millisecond instant.
//
// Low precision solar coordinates (Meeus, Astronomical Algorithms ch. 25);
// good to about 0.01°, which places solar terms within a few minutes.
func SunLongitude(ms int64) float64 {
	jd := julianDayFromMillis(ms)
	year := 2000 + (jd-j2000)/365.25
	jde := jd + deltaT(year)/86400

	t := (jde - j2000) / 36525
	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	m := radians(357.52911 + 35999.05029*t - 0.0001537*t*t)
	c := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(m) +
		(0.019993-0.000101*t)*math.Sin(2*m) +
		0.000289*math.Sin(3*m)
	omega := radians(125.04 - 1934.136*t)
	apparent := l0 + c - 0.00569 - 0.00478*math.Sin(omega)

	return normalizeDegrees(apparent)
}

// findLongitudeInstant refines a guess until the sun sits at target degrees.
func findLongitudeInstant(guessMs int64, target float64) int64 {
	jd := julianDayFromMillis(guessMs)
	for range 50 {
		diff := signedDegrees(target - SunLongitude(millisFromJulianDay(jd)))
		if math.Abs(diff) < 1e-7 {
			break
		}
		jd += diff / meanSunMotion
	}
	return millisFromJulianDay(jd)
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// signedDegrees maps an angle into [-180, 180).
func signedDegrees(deg float64) float64 {
	return normalizeDegrees(deg+180) - 180
}
