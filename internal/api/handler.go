package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/guttosm/exdivpulse/internal/domain/dto"
	"github.com/guttosm/exdivpulse/internal/domain/models"
	"github.com/guttosm/exdivpulse/internal/middleware"
	"github.com/guttosm/exdivpulse/internal/render"
	"github.com/guttosm/exdivpulse/internal/service"
	"github.com/guttosm/exdivpulse/internal/table"
)

// Handler serves the dashboard page and its JSON counterparts.
//
// Responsibilities:
//   - Read the page query parameters (d, amount, sort, desc, freq, page)
//   - Ask the service for the dashboard and cut the requested table page
//   - Render HTML or JSON; upstream failures become 502
type Handler struct {
	svc      service.DashboardService
	renderer *render.Renderer
	pageSize int
}

// NewHandler constructs a Handler. pageSize < 1 uses table.DefaultPageSize.
func NewHandler(svc service.DashboardService, renderer *render.Renderer, pageSize int) *Handler {
	if pageSize < 1 {
		pageSize = table.DefaultPageSize
	}
	return &Handler{svc: svc, renderer: renderer, pageSize: pageSize}
}

// request is the parsed query string. Malformed values are dropped so the
// defaults apply.
type request struct {
	selected string
	amount   *decimal.Decimal
	query    table.Query
	params   render.Params
}

func (h *Handler) parseRequest(c *gin.Context) request {
	req := request{
		selected: strings.TrimSpace(c.Query("d")),
		query:    table.DefaultQuery(h.pageSize),
	}

	if raw := strings.TrimSpace(c.Query("amount")); raw != "" {
		if amt := table.ParseAmount(raw); amt != nil {
			req.amount = amt
			req.params.Amount = raw
		}
	}
	if s := c.Query("sort"); s != "" {
		req.query.Sort, req.query.Desc = s, false
	}
	if b, err := strconv.ParseBool(c.Query("desc")); err == nil {
		req.query.Desc = b
	}
	if n, err := strconv.Atoi(c.Query("freq")); err == nil {
		req.query.Frequency = &n
		req.params.Freq = &n
	}
	if n, err := strconv.Atoi(c.Query("page")); err == nil && n > 0 {
		req.query.Page = n
	}
	return req
}

func (h *Handler) tableFor(d *models.Dashboard, req request) (table.View, []int) {
	rows := table.Derive(d.Rows, req.amount)
	view := table.Build(rows, table.Columns(req.amount != nil), req.query)
	return view, table.FrequencyOptions(rows)
}

// GetPage handles GET /.
//
// It renders the whole dashboard as HTML. When the upstream payload cannot be
// loaded a generic failure page is returned with 502; nothing partial is shown.
func (h *Handler) GetPage(c *gin.Context) {
	req := h.parseRequest(c)

	dash, err := h.svc.Build(c.Request.Context(), req.selected)
	if err != nil {
		_ = c.Error(err)
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrUpstream) {
			status = http.StatusBadGateway
		}
		c.Status(status)
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Header("Cache-Control", "no-store")
		if rerr := h.renderer.Failure(c.Writer); rerr != nil {
			_ = c.Error(rerr)
		}
		return
	}

	view, freqs := h.tableFor(dash, req)
	data := render.NewPageData(dash, view, freqs, req.params)

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Header("Cache-Control", "no-store")
	if err := h.renderer.Page(c.Writer, data); err != nil {
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
	}
}

// GetDashboard godoc
// @Summary      Five-day ex-dividend dashboard
// @Description  Tiles (Tue, Wed, Thu, Fri, next Mon) with return statistics, the banner total and one page of the selected date's tickers
// @Tags         dashboard
// @Produce      json
// @Param        d       query     string  false  "Selected date (YYYY-MM-DD); unknown values fall back to the first tile"  example(2026-10-20)
// @Param        amount  query     string  false  "Investment amount used for the Shares and Est. Payout columns"  example(1000)
// @Param        sort    query     string  false  "Sort column key"  example(computed_return)
// @Param        desc    query     bool    false  "Sort descending"
// @Param        freq    query     int     false  "Frequency code filter"  example(12)
// @Param        page    query     int     false  "1-based page"  example(1)
// @Success      200     {object}  dto.DashboardResponse
// @Failure      502     {object}  dto.ErrorResponse  "Upstream unavailable"
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/v1/dashboard [get]
func (h *Handler) GetDashboard(c *gin.Context) {
	req := h.parseRequest(c)

	dash, err := h.svc.Build(c.Request.Context(), req.selected)
	if err != nil {
		if errors.Is(err, service.ErrUpstream) {
			middleware.AbortWithError(c, http.StatusBadGateway, "failed to load upcoming dividends", err)
			return
		}
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to build dashboard", err)
		return
	}

	view, _ := h.tableFor(dash, req)
	c.JSON(http.StatusOK, toDashboardResponse(dash, view))
}

// GetWindow godoc
// @Summary      Resolved five-day window
// @Description  The five target dates for the current instant, without calling the upstream API
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.WindowResponse
// @Router       /api/v1/window [get]
func (h *Handler) GetWindow(c *gin.Context) {
	tiles := h.svc.Window()
	resp := dto.WindowResponse{
		Timezone: h.svc.Timezone(),
		Policy:   string(h.svc.Policy()),
		Anchor:   h.svc.Anchor().ISO(),
		Dates:    make([]dto.WindowDate, 0, len(tiles)),
	}
	for _, t := range tiles {
		resp.Dates = append(resp.Dates, dto.WindowDate{Date: t.Date.ISO(), Weekday: t.Weekday})
	}
	c.JSON(http.StatusOK, resp)
}

func toDashboardResponse(d *models.Dashboard, view table.View) dto.DashboardResponse {
	resp := dto.DashboardResponse{
		StartDate:       d.StartDate,
		EndDate:         d.EndDate,
		Timezone:        d.Timezone,
		Tiles:           make([]dto.TileResponse, 0, len(d.Tiles)),
		BannerTotal:     d.BannerTotal,
		SelectedDate:    d.SelectedDate,
		SelectedWeekday: d.SelectedWeekday,
		Sort:            view.Sort,
		Desc:            view.Desc,
		Rows:            make([]dto.RowResponse, 0, len(view.Rows)),
		Page: dto.PageInfo{
			Page:     view.Page,
			PageSize: view.PageSize,
			Pages:    view.Pages,
			Total:    view.Total,
		},
	}
	for _, t := range d.Tiles {
		resp.Tiles = append(resp.Tiles, dto.TileResponse{
			Date:     t.Date.ISO(),
			Weekday:  t.Weekday,
			Count:    t.Count,
			Highest:  t.Stats.Highest,
			AvgTop5:  t.Stats.AvgTop5,
			AvgAll:   t.Stats.AvgAll,
			Selected: t.Date.ISO() == d.SelectedDate,
		})
	}
	for _, r := range view.Rows {
		resp.Rows = append(resp.Rows, dto.RowResponse{DividendEvent: r.DividendEvent, Shares: r.Shares, Payout: r.Payout})
	}
	return resp
}
