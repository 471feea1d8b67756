package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func ptrs(vs ...float64) []*float64 {
	out := make([]*float64, len(vs))
	for i := range vs {
		out[i] = fp(vs[i])
	}
	return out
}

func TestAggregate_NoData(t *testing.T) {
	cases := map[string][]*float64{
		"nil":         nil,
		"empty":       {},
		"nan and nil": {fp(math.NaN()), nil},
		"infinities":  {fp(math.Inf(1)), fp(math.Inf(-1))},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			got := Aggregate(in)
			assert.Nil(t, got.Highest)
			assert.Nil(t, got.AvgTop5)
			assert.Nil(t, got.AvgAll)
		})
	}
}

func TestAggregate_SixValues(t *testing.T) {
	got := Aggregate(ptrs(0.05, 0.03, 0.10, 0.02, 0.08, 0.01))
	require.NotNil(t, got.Highest)
	require.NotNil(t, got.AvgTop5)
	require.NotNil(t, got.AvgAll)

	assert.InDelta(t, 0.10, *got.Highest, 1e-12)
	assert.InDelta(t, 0.056, *got.AvgTop5, 1e-12)
	assert.InDelta(t, 0.29/6, *got.AvgAll, 1e-12)
}

func TestAggregate_SingleValue(t *testing.T) {
	got := Aggregate(ptrs(0.07))
	require.NotNil(t, got.Highest)
	assert.Equal(t, 0.07, *got.Highest)
	assert.InDelta(t, 0.07, *got.AvgTop5, 1e-12)
	assert.InDelta(t, 0.07, *got.AvgAll, 1e-12)
}

func TestAggregate_SkipsNonFiniteAndKeepsDuplicates(t *testing.T) {
	in := []*float64{fp(0.04), nil, fp(math.NaN()), fp(0.04), fp(-0.01), fp(math.Inf(1))}
	got := Aggregate(in)
	require.NotNil(t, got.Highest)
	assert.InDelta(t, 0.04, *got.Highest, 1e-12)
	assert.InDelta(t, 0.07/3, *got.AvgTop5, 1e-12)
	assert.InDelta(t, 0.07/3, *got.AvgAll, 1e-12)
}

func TestAggregate_DoesNotReorderInput(t *testing.T) {
	in := ptrs(0.01, 0.09, 0.05)
	_ = Aggregate(in)
	assert.Equal(t, []float64{0.01, 0.09, 0.05}, []float64{*in[0], *in[1], *in[2]})
}

func TestBannerTotal(t *testing.T) {
	total, ok := BannerTotal([]*float64{fp(0.02), nil, fp(0.05), fp(0.01), nil})
	assert.True(t, ok)
	assert.InDelta(t, 0.08, total, 1e-12)

	total, ok = BannerTotal([]*float64{nil, nil, nil, nil, nil})
	assert.True(t, ok)
	assert.Equal(t, 0.0, total)

	_, ok = BannerTotal(ptrs(math.MaxFloat64, math.MaxFloat64))
	assert.False(t, ok, "overflowing sum must suppress the banner")
}
