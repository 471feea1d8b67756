// Package table describes the ex-dividend detail table declaratively: each
// column carries its key, label, formatter and comparator so that ordering and
// formatting rules stay pure and testable apart from any rendering.
package table

import (
	"cmp"
	"strings"

	"github.com/guttosm/exdivpulse/internal/format"
)

// Column keys. They double as the "sort" query parameter values.
const (
	KeyTicker     = "ticker"
	KeyPerShare   = "per_share"
	KeyPrice      = "current_price_per_share"
	KeyReturn     = "computed_return"
	KeyFrequency  = "frequency"
	KeyCurrency   = "currency"
	KeyExDate     = "ex_dividend_date"
	KeyPayDate    = "payment_date"
	KeyName       = "name"
	KeyShares     = "shares"
	KeyPayout     = "estimated_payout"
	DefaultSortBy = KeyReturn
)

// Column is one table column.
//
// Compare orders two rows whose value is present; Present reports whether a
// row has a value at all (nil means always). Rows without a value sort last
// in either direction. Tone, when set, returns a CSS class for the cell.
type Column struct {
	Key     string
	Label   string
	Numeric bool
	Format  func(Row) string
	Compare func(a, b Row) int
	Present func(Row) bool
	Tone    func(Row) string
}

func floatPresent(get func(Row) *float64) func(Row) bool {
	return func(r Row) bool { return format.IsFinite(get(r)) }
}

func floatCompare(get func(Row) *float64) func(a, b Row) int {
	return func(a, b Row) int { return cmp.Compare(*get(a), *get(b)) }
}

func stringPresent(get func(Row) *string) func(Row) bool {
	return func(r Row) bool {
		s := get(r)
		return s != nil && *s != ""
	}
}

func stringCompare(get func(Row) *string) func(a, b Row) int {
	return func(a, b Row) int { return strings.Compare(*get(a), *get(b)) }
}

func frequencyCompare(a, b Row) int {
	return cmp.Compare(format.FrequencyRank(a.Frequency), format.FrequencyRank(b.Frequency))
}

func perShare(r Row) *float64  { return r.PerShare }
func price(r Row) *float64     { return r.CurrentPricePerShare }
func estReturn(r Row) *float64 { return r.ComputedReturn }
func shares(r Row) *float64    { return r.Shares }
func payout(r Row) *float64    { return r.Payout }
func currency(r Row) *string   { return r.Currency }
func payDate(r Row) *string    { return r.PaymentDate }
func name(r Row) *string       { return r.Name }
func exDate(r Row) *string     { return &r.ExDividendDate }

// Columns returns the table layout. withInvestment appends the Shares and
// Est. Payout columns derived from an investment amount.
func Columns(withInvestment bool) []Column {
	cols := []Column{
		{
			Key:     KeyTicker,
			Label:   "Ticker",
			Format:  func(r Row) string { return r.Ticker },
			Compare: func(a, b Row) int { return strings.Compare(a.Ticker, b.Ticker) },
		},
		{
			Key:     KeyPerShare,
			Label:   "Div",
			Numeric: true,
			Format:  func(r Row) string { return format.Dollars(r.PerShare) },
			Compare: floatCompare(perShare),
			Present: floatPresent(perShare),
		},
		{
			Key:     KeyPrice,
			Label:   "Price",
			Numeric: true,
			Format:  func(r Row) string { return format.Dollars(r.CurrentPricePerShare) },
			Compare: floatCompare(price),
			Present: floatPresent(price),
		},
		{
			Key:     KeyReturn,
			Label:   "Est. %",
			Numeric: true,
			Format:  func(r Row) string { return format.Percent(r.ComputedReturn) },
			Compare: floatCompare(estReturn),
			Present: floatPresent(estReturn),
			Tone: func(r Row) string {
				if !format.IsFinite(r.ComputedReturn) {
					return ""
				}
				if *r.ComputedReturn >= 0 {
					return "pos"
				}
				return "neg"
			},
		},
		{
			Key:     KeyFrequency,
			Label:   "Freq",
			Format:  func(r Row) string { return format.FrequencyWithCode(r.Frequency) },
			Compare: frequencyCompare,
		},
		{
			Key:     KeyCurrency,
			Label:   "Currency",
			Format:  func(r Row) string { return format.Text(r.Currency) },
			Compare: stringCompare(currency),
			Present: stringPresent(currency),
		},
		{
			Key:     KeyExDate,
			Label:   "Ex Date",
			Format:  func(r Row) string { return format.Text(exDate(r)) },
			Compare: stringCompare(exDate),
			Present: stringPresent(exDate),
		},
		{
			Key:     KeyPayDate,
			Label:   "Pay Date",
			Format:  func(r Row) string { return format.Text(r.PaymentDate) },
			Compare: stringCompare(payDate),
			Present: stringPresent(payDate),
		},
		{
			Key:     KeyName,
			Label:   "Name",
			Format:  func(r Row) string { return format.Text(r.Name) },
			Compare: stringCompare(name),
			Present: stringPresent(name),
		},
	}
	if !withInvestment {
		return cols
	}
	return append(cols,
		Column{
			Key:     KeyShares,
			Label:   "Shares",
			Numeric: true,
			Format:  func(r Row) string { return format.Fixed(r.Shares, 4) },
			Compare: floatCompare(shares),
			Present: floatPresent(shares),
		},
		Column{
			Key:     KeyPayout,
			Label:   "Est. Payout",
			Numeric: true,
			Format:  func(r Row) string { return format.Dollars(r.Payout) },
			Compare: floatCompare(payout),
			Present: floatPresent(payout),
		},
	)
}

// Find returns the column with key, if any.
func Find(cols []Column, key string) (Column, bool) {
	for _, c := range cols {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}
