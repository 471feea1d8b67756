package calendar

import (
	"encoding/json"
	"fmt"
	"time"
)

// isoLayout is the ISO calendar-date layout used on the wire and in URLs.
const isoLayout = "2006-01-02"

// MarketDate is a calendar date in the market timezone.
//
// It is stored as noon UTC of that civil date so whole-day arithmetic can never
// slip across a daylight-saving boundary into a neighbouring day. The zero value
// is not a valid date; use NewMarketDate, ParseMarketDate or DateOf.
type MarketDate struct {
	t time.Time
}

// NewMarketDate builds the civil date y-m-d.
func NewMarketDate(y int, m time.Month, d int) MarketDate {
	return MarketDate{t: time.Date(y, m, d, 12, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of the instant t as observed in loc.
func DateOf(t time.Time, loc *time.Location) MarketDate {
	y, m, d := t.In(loc).Date()
	return NewMarketDate(y, m, d)
}

// ParseMarketDate parses an ISO date (YYYY-MM-DD).
func ParseMarketDate(s string) (MarketDate, error) {
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return MarketDate{}, fmt.Errorf("parse market date %q: %w", s, err)
	}
	return NewMarketDate(t.Year(), t.Month(), t.Day()), nil
}

// AddDays moves the date by n whole calendar days.
func (d MarketDate) AddDays(n int) MarketDate {
	return MarketDate{t: d.t.AddDate(0, 0, n)}
}

// ISO renders the date as YYYY-MM-DD.
func (d MarketDate) ISO() string { return d.t.Format(isoLayout) }

// Weekday is the day of week of the civil date (Sunday=0..Saturday=6).
func (d MarketDate) Weekday() time.Weekday { return d.t.Weekday() }

// WeekdayName is the full English weekday name, e.g. "Tuesday".
func (d MarketDate) WeekdayName() string { return d.t.Weekday().String() }

// Before reports whether d is strictly earlier than o.
func (d MarketDate) Before(o MarketDate) bool { return d.t.Before(o.t) }

// Equal reports whether both values name the same calendar date.
func (d MarketDate) Equal(o MarketDate) bool { return d.t.Equal(o.t) }

// IsZero reports whether d was never set.
func (d MarketDate) IsZero() bool { return d.t.IsZero() }

// DaysUntil counts whole days from d to o (negative when o is earlier).
func (d MarketDate) DaysUntil(o MarketDate) int {
	return int(o.t.Sub(d.t).Hours() / 24)
}

// Time returns midnight of the date in UTC, the shape database DATE columns expect.
func (d MarketDate) Time() time.Time {
	y, m, day := d.t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func (d MarketDate) String() string { return d.ISO() }

// MarshalJSON encodes the date as an ISO string.
func (d MarketDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ISO())
}

// UnmarshalJSON decodes an ISO string.
func (d *MarketDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseMarketDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
