// Package stats aggregates estimated returns for a single ex-dividend date.
package stats

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// topN is how many of the best returns feed AvgTop5.
const topN = 5

// DayStats summarises one date. A nil field means there was no usable data.
type DayStats struct {
	Highest *float64 `json:"highest"`
	AvgTop5 *float64 `json:"avg_top5"`
	AvgAll  *float64 `json:"avg_all"`
}

// Finite keeps only present, finite values.
func Finite(values []*float64) stats.Float64Data {
	out := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			continue
		}
		out = append(out, *v)
	}
	return out
}

// Aggregate computes the highest value, the mean of the top five and the mean
// of all finite values. Absent and non-finite inputs are ignored; with nothing
// left every field is nil.
func Aggregate(values []*float64) DayStats {
	vals := Finite(values)
	if len(vals) == 0 {
		return DayStats{}
	}

	highest, err := stats.Max(vals)
	if err != nil {
		return DayStats{}
	}
	avgAll, err := stats.Mean(vals)
	if err != nil {
		return DayStats{}
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	if len(sorted) > topN {
		sorted = sorted[:topN]
	}
	avgTop, err := stats.Mean(sorted)
	if err != nil {
		return DayStats{}
	}

	return DayStats{Highest: &highest, AvgTop5: &avgTop, AvgAll: &avgAll}
}

// BannerTotal sums the daily maxima. A missing maximum contributes zero.
// ok is false when the sum is not finite, in which case the banner is hidden.
func BannerTotal(highests []*float64) (total float64, ok bool) {
	for _, h := range Finite(highests) {
		total += h
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, false
	}
	return total, true
}
