package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/exdivpulse/internal/calendar"
	"github.com/guttosm/exdivpulse/internal/domain/models"
	"github.com/guttosm/exdivpulse/internal/stats"
	"github.com/guttosm/exdivpulse/internal/table"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }
func sp(v string) *string   { return &v }

func sampleDashboard() *models.Dashboard {
	tue := calendar.NewMarketDate(2026, 10, 20)
	tiles := make([]models.DayTile, 0, 5)
	for _, off := range []int{0, 1, 2, 3, 6} {
		d := tue.AddDays(off)
		tiles = append(tiles, models.DayTile{Date: d, Weekday: d.WeekdayName()})
	}
	tiles[0].Count = 2
	tiles[0].Stats = stats.Aggregate([]*float64{fp(0.02), fp(0.01)})
	total := 0.02

	return &models.Dashboard{
		StartDate:       "2026-10-20",
		EndDate:         "2026-11-02",
		Timezone:        "America/New_York",
		Tiles:           tiles,
		BannerTotal:     &total,
		SelectedDate:    "2026-10-20",
		SelectedWeekday: "Tuesday",
		Rows: []models.DividendEvent{
			{Ticker: "AAA", ExDividendDate: "2026-10-20", ComputedReturn: fp(0.02), Frequency: ip(12), PrimaryLogoURL: sp("https://img.example/aaa.png")},
			{Ticker: "BBB", ExDividendDate: "2026-10-20", ComputedReturn: fp(0.01), Frequency: ip(4)},
		},
	}
}

func TestParams_Query(t *testing.T) {
	assert.Equal(t, "?", Params{}.Query())
	assert.Equal(t, "?d=2026-10-20", Params{Date: "2026-10-20", Page: 1}.Query())
	assert.Equal(t,
		"?amount=1000&d=2026-10-21&desc=false&freq=12&page=3&sort=ticker",
		Params{Date: "2026-10-21", Amount: "1000", Sort: "ticker", Freq: ip(12), Page: 3}.Query())
}

func TestBannerAndOptionLabel(t *testing.T) {
	assert.Equal(t, "You could make up to 8.00% in the next 5 business days.", BannerText(0.08))
	assert.Equal(t, "Monday • 1 ticker • 5.00% highest • 5.00% Top 5 • 5.00% Avg",
		OptionLabel(TileView{Weekday: "Monday", CountLabel: "1 ticker", Highest: "5.00%", AvgTop5: "5.00%", AvgAll: "5.00%"}))
}

func TestNewPageData(t *testing.T) {
	d := sampleDashboard()
	rows := table.Derive(d.Rows, nil)
	view := table.Build(rows, table.Columns(false), table.Query{Sort: table.KeyReturn, Desc: true, Page: 1, PageSize: 1})

	data := NewPageData(d, view, table.FrequencyOptions(rows), Params{Amount: "500"})

	assert.Equal(t, "Source window: 2026-10-20 → 2026-11-02 (America/New_York)", data.Source)
	assert.Equal(t, "You could make up to 2.00% in the next 5 business days.", data.Banner)
	require.Len(t, data.Tiles, 5)
	assert.True(t, data.Tiles[0].Selected)
	assert.False(t, data.Tiles[0].Monday)
	assert.True(t, data.Tiles[4].Monday)
	assert.Equal(t, "2 tickers", data.Tiles[0].CountLabel)
	assert.Equal(t, "—", data.Tiles[1].Highest)
	assert.Contains(t, data.Tiles[4].Href, "d=2026-10-26")
	assert.Contains(t, data.Tiles[4].Href, "amount=500")

	require.Len(t, data.Rows, 1)
	assert.Equal(t, "AAA", data.Rows[0].Ticker)
	assert.Equal(t, "https://img.example/aaa.png", data.Rows[0].Logo)
	assert.Equal(t, 2, data.Pages)
	assert.Empty(t, data.PrevHref)
	assert.Contains(t, data.NextHref, "page=2")

	var active HeaderView
	for _, h := range data.Headers {
		if h.Active {
			active = h
		}
	}
	assert.Equal(t, "Est. %", active.Label)
	assert.Contains(t, active.Href, "desc=false")

	require.Len(t, data.FreqOptions, 2)
	assert.Equal(t, "Monthly (12)", data.FreqOptions[0].Label)
}

func TestRenderer_Page(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	d := sampleDashboard()
	rows := table.Derive(d.Rows, nil)
	view := table.Build(rows, table.Columns(false), table.DefaultQuery(10))

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, NewPageData(d, view, nil, Params{})))
	html := buf.String()

	assert.Contains(t, html, "Upcoming Ex-Dividends (Tue → Fri → Mon)")
	assert.Contains(t, html, "You could make up to 2.00% in the next 5 business days.")
	assert.Contains(t, html, "tile monday")
	assert.Contains(t, html, "Tuesday • 2 tickers • 2.00% highest • 1.50% Top 5 • 1.50% Avg")
	assert.Contains(t, html, "AAA")
	assert.NotContains(t, html, "No tickers for this date.")
}

func TestRenderer_MobileSelectorKeepsTableState(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	d := sampleDashboard()
	rows := table.Derive(d.Rows, nil)
	q := table.Query{Sort: table.KeyTicker, Desc: false, Frequency: ip(12), Page: 1, PageSize: 10}
	view := table.Build(rows, table.Columns(false), q)

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, NewPageData(d, view, table.FrequencyOptions(rows), Params{Amount: "500", Freq: ip(12)})))
	html := buf.String()

	start := strings.Index(html, `<form class="mobile"`)
	require.GreaterOrEqual(t, start, 0)
	end := strings.Index(html[start:], "</form>")
	require.Greater(t, end, 0)
	form := html[start : start+end]

	assert.Contains(t, form, `name="d"`)
	assert.Contains(t, form, `<input type="hidden" name="amount" value="500">`)
	assert.Contains(t, form, `<input type="hidden" name="sort" value="ticker">`)
	assert.Contains(t, form, `<input type="hidden" name="desc" value="false">`)
	assert.Contains(t, form, `<input type="hidden" name="freq" value="12">`)
}

func TestRenderer_EmptyTableAndHiddenBanner(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	d := sampleDashboard()
	d.BannerTotal = nil
	d.Rows = nil
	view := table.Build(nil, table.Columns(false), table.DefaultQuery(10))

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, NewPageData(d, view, nil, Params{})))
	html := buf.String()

	assert.Contains(t, html, "No tickers for this date.")
	assert.False(t, strings.Contains(html, "You could make up to"))
}

func TestRenderer_Failure(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Failure(&buf))
	assert.Contains(t, buf.String(), "Failed to load upcoming ex-dividends")
}
