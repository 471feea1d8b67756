package dto

import "github.com/guttosm/exdivpulse/internal/domain/models"

// TileResponse is one of the five day tiles.
type TileResponse struct {
	Date     string   `json:"date" example:"2026-10-20"`
	Weekday  string   `json:"weekday" example:"Tuesday"`
	Count    int      `json:"count" example:"12"`
	Highest  *float64 `json:"highest" example:"0.0123"`
	AvgTop5  *float64 `json:"avg_top5" example:"0.0081"`
	AvgAll   *float64 `json:"avg_all" example:"0.0032"`
	Selected bool     `json:"selected"`
}

// RowResponse is a dividend event plus the investment-derived columns.
type RowResponse struct {
	models.DividendEvent
	Shares *float64 `json:"shares,omitempty" example:"19.1939"`
	Payout *float64 `json:"estimated_payout,omitempty" example:"4.80"`
}

// PageInfo describes the slice of rows returned.
type PageInfo struct {
	Page     int `json:"page" example:"1"`
	PageSize int `json:"page_size" example:"10"`
	Pages    int `json:"pages" example:"3"`
	Total    int `json:"total" example:"24"`
}

// DashboardResponse is returned by GET /api/v1/dashboard.
type DashboardResponse struct {
	StartDate       string         `json:"start_date" example:"2026-10-20"`
	EndDate         string         `json:"end_date" example:"2026-11-02"`
	Timezone        string         `json:"timezone" example:"America/New_York"`
	Tiles           []TileResponse `json:"tiles"`
	BannerTotal     *float64       `json:"banner_total" example:"0.0412"`
	SelectedDate    string         `json:"selected_date" example:"2026-10-20"`
	SelectedWeekday string         `json:"selected_weekday" example:"Tuesday"`
	Sort            string         `json:"sort" example:"computed_return"`
	Desc            bool           `json:"desc" example:"true"`
	Rows            []RowResponse  `json:"rows"`
	Page            PageInfo       `json:"page"`
}

// WindowDate is one resolver output.
type WindowDate struct {
	Date    string `json:"date" example:"2026-10-20"`
	Weekday string `json:"weekday" example:"Tuesday"`
}

// WindowResponse is returned by GET /api/v1/window.
type WindowResponse struct {
	Timezone string       `json:"timezone" example:"America/New_York"`
	Policy   string       `json:"policy" example:"open-gated"`
	Anchor   string       `json:"anchor" example:"2026-10-19"`
	Dates    []WindowDate `json:"dates"`
}
