package models

import (
	"github.com/guttosm/exdivpulse/internal/calendar"
	"github.com/guttosm/exdivpulse/internal/stats"
)

// DayTile summarises one target date. It is derived on every request and
// never stored.
type DayTile struct {
	Date    calendar.MarketDate
	Weekday string
	Count   int
	Stats   stats.DayStats
}

// IsMonday flags the tile that follows the weekend gap.
func (t DayTile) IsMonday() bool { return t.Weekday == "Monday" }

// Dashboard is everything one page view needs.
//
// BannerTotal is nil when the banner must be hidden. Rows are the upstream
// events for SelectedDate in upstream order; sorting and paging happen in the
// table package.
type Dashboard struct {
	StartDate       string
	EndDate         string
	Timezone        string
	Tiles           []DayTile
	BannerTotal     *float64
	SelectedDate    string
	SelectedWeekday string
	Rows            []DividendEvent
}
