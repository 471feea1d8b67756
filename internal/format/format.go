// Package format turns dividend values into display strings.
package format

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// Dash is the placeholder for absent or non-finite values.
const Dash = "—"

// frequencyLabels maps payments-per-year to a cadence label.
var frequencyLabels = map[int]string{
	365: "Daily",
	52:  "Weekly",
	26:  "Biweekly",
	24:  "Semi-monthly",
	12:  "Monthly",
	6:   "Bimonthly",
	4:   "Quarterly",
	2:   "Semiannual",
	1:   "Annual",
}

// frequencyRanks orders cadences from most frequent (9) to least (1).
var frequencyRanks = map[int]int{
	365: 9,
	52:  8,
	26:  7,
	24:  6,
	12:  5,
	6:   4,
	4:   3,
	2:   2,
	1:   1,
}

// Frequency returns the cadence label, "{n}×/yr" for unknown codes and Dash for nil.
func Frequency(n *int) string {
	if n == nil {
		return Dash
	}
	if label, ok := frequencyLabels[*n]; ok {
		return label
	}
	return fmt.Sprintf("%d×/yr", *n)
}

// FrequencyWithCode renders "Monthly (12)", or Dash when absent.
func FrequencyWithCode(n *int) string {
	if n == nil {
		return Dash
	}
	return fmt.Sprintf("%s (%d)", Frequency(n), *n)
}

// FrequencyRank sorts cadences: known codes 1..9, unknown 0, absent -1.
func FrequencyRank(n *int) int {
	if n == nil {
		return -1
	}
	return frequencyRanks[*n]
}

// KnownFrequencies lists the labelled codes from most to least frequent.
func KnownFrequencies() []int {
	return []int{365, 52, 26, 24, 12, 6, 4, 2, 1}
}

// IsFinite reports whether v is present and a real number.
func IsFinite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// Percent renders a fraction as "12.34%".
func Percent(v *float64) string {
	if !IsFinite(v) {
		return Dash
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}

// Dollars renders "$12.34" (negative as "-$12.34") with thousands separators.
func Dollars(v *float64) string {
	if !IsFinite(v) {
		return Dash
	}
	x := *v
	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", x)
}

// Fixed renders v with the given number of decimals.
func Fixed(v *float64, decimals int) string {
	if !IsFinite(v) {
		return Dash
	}
	return fmt.Sprintf("%.*f", decimals, *v)
}

// Text returns Dash for nil or empty strings.
func Text(s *string) string {
	if s == nil || *s == "" {
		return Dash
	}
	return *s
}

// Count renders "1 ticker" / "3 tickers".
func Count(n int) string {
	if n == 1 {
		return "1 ticker"
	}
	return fmt.Sprintf("%d tickers", n)
}
