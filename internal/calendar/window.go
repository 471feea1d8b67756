// Package calendar resolves the five ex-dividend target dates shown on the
// dashboard: Tuesday, Wednesday, Thursday, Friday and the following Monday,
// counted from a market-day anchor in a fixed market timezone.
package calendar

import (
	"fmt"
	"time"
	_ "time/tzdata" // named market zones without relying on host zoneinfo
)

// AnchorPolicy selects how "today" is turned into a market-day anchor.
type AnchorPolicy string

const (
	// OpenGated treats the hours before the market open as belonging to the
	// previous business day.
	OpenGated AnchorPolicy = "open-gated"
	// CalendarDay uses the market-timezone calendar date with no gating.
	CalendarDay AnchorPolicy = "calendar-day"
)

// windowOffsets are whole-day offsets from the anchor Tuesday:
// Tue, Wed, Thu, Fri and, skipping the weekend, the next Monday.
var windowOffsets = [...]int{0, 1, 2, 3, 6}

// WindowSize is the number of dates in a window.
const WindowSize = len(windowOffsets)

// Tile is one target date of the window with its weekday label.
type Tile struct {
	Date    MarketDate `json:"date"`
	Weekday string     `json:"weekday"`
}

// Resolver computes target windows for a market.
type Resolver struct {
	loc        *time.Location
	openHour   int
	openMinute int
	policy     AnchorPolicy
}

// NewResolver builds a Resolver for loc. open is the market open as "HH:MM"
// and only matters for the OpenGated policy.
func NewResolver(loc *time.Location, open string, policy AnchorPolicy) (*Resolver, error) {
	if loc == nil {
		return nil, fmt.Errorf("calendar: nil location")
	}
	switch policy {
	case OpenGated, CalendarDay:
	default:
		return nil, fmt.Errorf("calendar: unknown anchor policy %q", policy)
	}
	ot, err := time.Parse("15:04", open)
	if err != nil {
		return nil, fmt.Errorf("calendar: parse open time %q: %w", open, err)
	}
	return &Resolver{loc: loc, openHour: ot.Hour(), openMinute: ot.Minute(), policy: policy}, nil
}

// NewYorkResolver is the default market: America/New_York, open 09:30, open-gated.
func NewYorkResolver() (*Resolver, error) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("calendar: load America/New_York: %w", err)
	}
	return NewResolver(loc, "09:30", OpenGated)
}

// Location is the market timezone.
func (r *Resolver) Location() *time.Location { return r.loc }

// Policy is the anchor policy in use.
func (r *Resolver) Policy() AnchorPolicy { return r.policy }

// Anchor returns the market day now belongs to.
func (r *Resolver) Anchor(now time.Time) MarketDate {
	local := now.In(r.loc)
	today := NewMarketDate(local.Year(), local.Month(), local.Day())
	if r.policy == CalendarDay {
		return today
	}
	h, m := local.Hour(), local.Minute()
	beforeOpen := h < r.openHour || (h == r.openHour && m < r.openMinute)
	if beforeOpen {
		return PrevBusinessDay(today)
	}
	return today
}

// StartTuesday returns the Tuesday that opens the window for now. An anchor
// that is already a Tuesday is kept.
func (r *Resolver) StartTuesday(now time.Time) MarketDate {
	return NextWeekday(r.Anchor(now), time.Tuesday)
}

// Window returns the five target dates for now in chronological order.
func (r *Resolver) Window(now time.Time) []Tile {
	tue := r.StartTuesday(now)
	out := make([]Tile, 0, WindowSize)
	for _, off := range windowOffsets {
		d := tue.AddDays(off)
		out = append(out, Tile{Date: d, Weekday: d.WeekdayName()})
	}
	return out
}
