package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/exdivpulse/internal/calendar"
	"github.com/guttosm/exdivpulse/internal/domain/models"
	"github.com/guttosm/exdivpulse/internal/logger"
	"github.com/guttosm/exdivpulse/internal/stats"
	"github.com/guttosm/exdivpulse/internal/upstream"
)

// ErrUpstream marks every failure to obtain the upstream payload.
var ErrUpstream = errors.New("upstream dividends unavailable")

// DashboardService builds the five-day ex-dividend dashboard.
type DashboardService interface {
	Build(ctx context.Context, selected string) (*models.Dashboard, error)
	Window() []calendar.Tile
	Anchor() calendar.MarketDate
	Timezone() string
	Policy() calendar.AnchorPolicy
}

// Options tunes the upstream request.
type Options struct {
	Days         int
	IncludeToday bool
}

type dashboardService struct {
	fetcher  upstream.Fetcher
	resolver *calendar.Resolver
	opts     Options
	now      func() time.Time
}

// NewDashboardService wires a fetcher and a resolver. now defaults to time.Now.
func NewDashboardService(fetcher upstream.Fetcher, resolver *calendar.Resolver, opts Options, now func() time.Time) DashboardService {
	if now == nil {
		now = time.Now
	}
	if opts.Days < 1 {
		opts.Days = 14
	}
	return &dashboardService{fetcher: fetcher, resolver: resolver, opts: opts, now: now}
}

func (s *dashboardService) Window() []calendar.Tile { return s.resolver.Window(s.now()) }

func (s *dashboardService) Anchor() calendar.MarketDate { return s.resolver.Anchor(s.now()) }

func (s *dashboardService) Timezone() string { return s.resolver.Location().String() }

func (s *dashboardService) Policy() calendar.AnchorPolicy { return s.resolver.Policy() }

// Build fetches once, groups items by date, lays out the five tiles with their
// statistics and the banner total, and picks the selected date. An unknown
// selected value falls back to the first tile. Any fetch failure aborts the
// whole build.
func (s *dashboardService) Build(ctx context.Context, selected string) (*models.Dashboard, error) {
	data, err := s.fetcher.FetchUpcomingEx(ctx, s.opts.Days, s.opts.IncludeToday)
	if err != nil {
		logger.L().Error().Err(err).Int("days", s.opts.Days).Msg("fetch upcoming ex-dividends failed")
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if data == nil {
		data = &models.UpcomingResponse{}
	}

	byDate := data.ByDate()
	window := s.resolver.Window(s.now())

	tiles := make([]models.DayTile, 0, len(window))
	highests := make([]*float64, 0, len(window))
	for _, w := range window {
		items := byDate[w.Date.ISO()]
		returns := make([]*float64, len(items))
		for i := range items {
			returns[i] = items[i].ComputedReturn
		}
		st := stats.Aggregate(returns)
		tiles = append(tiles, models.DayTile{
			Date:    w.Date,
			Weekday: w.Weekday,
			Count:   len(items),
			Stats:   st,
		})
		highests = append(highests, st.Highest)
	}

	dash := &models.Dashboard{
		StartDate: data.StartDate,
		EndDate:   data.EndDate,
		Timezone:  data.Timezone,
		Tiles:     tiles,
	}
	if total, ok := stats.BannerTotal(highests); ok {
		dash.BannerTotal = &total
	}

	dash.SelectedDate, dash.SelectedWeekday = selectTile(tiles, selected)
	if dash.SelectedDate != "" {
		dash.Rows = byDate[dash.SelectedDate]
	}
	if dash.Rows == nil {
		dash.Rows = []models.DividendEvent{}
	}
	return dash, nil
}

// selectTile returns the tile matching selected, else the first tile.
func selectTile(tiles []models.DayTile, selected string) (string, string) {
	if len(tiles) == 0 {
		return "", ""
	}
	for _, t := range tiles {
		if t.Date.ISO() == selected {
			return t.Date.ISO(), t.Weekday
		}
	}
	return tiles[0].Date.ISO(), tiles[0].Weekday
}
