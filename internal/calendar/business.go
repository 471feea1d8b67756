package calendar

import "time"

// IsWeekend reports whether the weekday is Saturday or Sunday.
func IsWeekend(wd time.Weekday) bool {
	return wd == time.Saturday || wd == time.Sunday
}

// IsBusinessDay returns true for Monday through Friday.
// Exchange holidays are not modelled; the dividend window only skips weekends.
func IsBusinessDay(d MarketDate) bool {
	return !IsWeekend(d.Weekday())
}

// PrevBusinessDay returns the closest business day strictly before d.
func PrevBusinessDay(d MarketDate) MarketDate {
	p := d.AddDays(-1)
	for !IsBusinessDay(p) {
		p = p.AddDays(-1)
	}
	return p
}

// NextWeekday returns the first date on or after d that falls on wd.
// A date already on wd is returned unchanged.
func NextWeekday(d MarketDate, wd time.Weekday) MarketDate {
	delta := (int(wd) - int(d.Weekday()) + 7) % 7
	return d.AddDays(delta)
}
