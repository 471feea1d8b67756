package table

import (
	"github.com/shopspring/decimal"

	"github.com/guttosm/exdivpulse/internal/domain/models"
	"github.com/guttosm/exdivpulse/internal/format"
)

// Row is a dividend event plus the columns derived from an investment amount.
type Row struct {
	models.DividendEvent
	Shares *float64
	Payout *float64
}

// Derive builds table rows from events. When amount is positive each row gets
// Shares = amount / price (4 dp) and Payout = Shares * per-share (2 dp); rows
// missing a usable price or per-share amount keep those fields nil.
//
// It is recomputed from scratch on every call; nothing is cached.
func Derive(events []models.DividendEvent, amount *decimal.Decimal) []Row {
	rows := make([]Row, len(events))
	invest := amount != nil && amount.IsPositive()
	for i, ev := range events {
		rows[i] = Row{DividendEvent: ev}
		if !invest {
			continue
		}
		if !format.IsFinite(ev.CurrentPricePerShare) || *ev.CurrentPricePerShare <= 0 {
			continue
		}
		sh := amount.Div(decimal.NewFromFloat(*ev.CurrentPricePerShare)).Round(4)
		shf := sh.InexactFloat64()
		rows[i].Shares = &shf

		if !format.IsFinite(ev.PerShare) {
			continue
		}
		po := sh.Mul(decimal.NewFromFloat(*ev.PerShare)).Round(2).InexactFloat64()
		rows[i].Payout = &po
	}
	return rows
}

// ParseAmount reads an investment amount such as "1000" or "2,500.50".
// Empty, malformed and non-positive input yields nil.
func ParseAmount(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	clean := make([]rune, 0, len(s))
	for _, r := range s {
		if r == ',' || r == '$' || r == ' ' {
			continue
		}
		clean = append(clean, r)
	}
	d, err := decimal.NewFromString(string(clean))
	if err != nil || !d.IsPositive() {
		return nil
	}
	return &d
}
