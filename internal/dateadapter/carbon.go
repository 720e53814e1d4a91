package dateadapter

import (
	"fmt"
	"time"

	"github.com/golang-module/carbon/v2"
)

// Carbon implements Adapter over carbon.Carbon.
//
// Carbon reports construction failures through its Error field instead of a
// return value; every constructor here surfaces that field as an error.
type Carbon struct{}

// NewCarbon returns the carbon backed adapter.
func NewCarbon() (*Carbon, error) {
	return &Carbon{}, nil
}

func (Carbon) Year(c carbon.Carbon) int { return c.Year() }
func (Carbon) Month(c carbon.Carbon) int { return c.Month() }
func (Carbon) Day(c carbon.Carbon) int { return c.Day() }
func (Carbon) Hour(c carbon.Carbon) int { return c.Hour() }
func (Carbon) Minute(c carbon.Carbon) int { return c.Minute() }
func (Carbon) Second(c carbon.Carbon) int { return c.Second() }

func (Carbon) ZoneName(c carbon.Carbon) string { return c.ToStdTime().Location().String() }

func (Carbon) PlusMinutes(c carbon.Carbon, n int) carbon.Carbon { return c.AddMinutes(n) }
func (Carbon) PlusDays(c carbon.Carbon, n int) carbon.Carbon { return c.AddDays(n) }
func (Carbon) MinusDays(c carbon.Carbon, n int) carbon.Carbon { return c.SubDays(n) }

func (Carbon) ToUTC(c carbon.Carbon) carbon.Carbon { return c.SetTimezone(carbon.UTC) }

func (Carbon) SetZone(c carbon.Carbon, zone string) (carbon.Carbon, error) {
	out := c.SetTimezone(zone)
	if out.Error != nil {
		return carbon.Carbon{}, fmt.Errorf("%w: %q: %v", ErrInvalidZone, zone, out.Error)
	}
	return out, nil
}

func (Carbon) ToMillis(c carbon.Carbon) int64 { return c.TimestampMilli() }

func (Carbon) FromMillis(ms int64, zone string) (carbon.Carbon, error) {
	c := carbon.CreateFromTimestampMilli(ms, zone)
	if c.Error != nil {
		return carbon.Carbon{}, fmt.Errorf("%w: %q: %v", ErrInvalidZone, zone, c.Error)
	}
	return c, nil
}

func (Carbon) CreateUTC(year, month, day, hour, minute, second int) carbon.Carbon {
	return carbon.CreateFromDateTime(year, month, day, hour, minute, second, carbon.UTC)
}

func (Carbon) Create(year, month, day, hour, minute, second int, zone string) (carbon.Carbon, error) {
	c := carbon.CreateFromDateTime(year, month, day, hour, minute, second, zone)
	if c.Error != nil {
		return carbon.Carbon{}, fmt.Errorf("%w: %q: %v", ErrInvalidZone, zone, c.Error)
	}
	return c, nil
}

func (Carbon) IsGreaterThanOrEqual(a, b carbon.Carbon) bool { return a.Gte(b) }

func (Carbon) ToISO(c carbon.Carbon) string { return c.ToStdTime().Format(time.RFC3339) }

var _ Adapter[carbon.Carbon] = Carbon{}
