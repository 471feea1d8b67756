package models

// DividendEvent is one upcoming ex-dividend entry as produced by the upstream API.
//
// Only Ticker and ExDividendDate are guaranteed; every other field may be absent
// and is modelled as a pointer. ComputedReturn is a signed fraction (0.012 = 1.2%)
// estimated upstream.
//
// swagger:model DividendEvent
type DividendEvent struct {
	Ticker               string   `json:"ticker" example:"MAIN"`
	Name                 *string  `json:"name" example:"Main Street Capital"`
	PerShare             *float64 `json:"per_share" example:"0.25"`
	Currency             *string  `json:"currency" example:"USD"`
	Frequency            *int     `json:"frequency" example:"12"`
	ExDividendDate       string   `json:"ex_dividend_date" example:"2026-10-20"`
	PaymentDate          *string  `json:"payment_date" example:"2026-11-14"`
	LogoURL              *string  `json:"logo_url,omitempty"`
	PrimaryLogoURL       *string  `json:"primary_logo_url,omitempty"`
	CurrentPricePerShare *float64 `json:"current_price_per_share" example:"52.10"`
	ComputedReturn       *float64 `json:"computed_return" example:"0.0048"`
}

// Logo returns the preferred logo URL, or "" when none is known.
func (e DividendEvent) Logo() string {
	switch {
	case e.PrimaryLogoURL != nil && *e.PrimaryLogoURL != "":
		return *e.PrimaryLogoURL
	case e.LogoURL != nil:
		return *e.LogoURL
	default:
		return ""
	}
}

// UpcomingGroup holds the events sharing one ex-dividend date.
type UpcomingGroup struct {
	Date    string          `json:"date" example:"2026-10-20"`
	Weekday string          `json:"weekday" example:"Tuesday"`
	Items   []DividendEvent `json:"items"`
}

// UpcomingResponse is the upstream payload for GET /api/dividends/upcoming/ex.
type UpcomingResponse struct {
	StartDate string          `json:"start_date" example:"2026-10-20"`
	EndDate   string          `json:"end_date" example:"2026-11-02"`
	Timezone  string          `json:"timezone" example:"America/New_York"`
	Days      int             `json:"days" example:"14"`
	Groups    []UpcomingGroup `json:"groups"`
}

// ByDate indexes group items by their date. Later groups with a repeated
// date are appended to the earlier ones.
func (r UpcomingResponse) ByDate() map[string][]DividendEvent {
	m := make(map[string][]DividendEvent, len(r.Groups))
	for _, g := range r.Groups {
		m[g.Date] = append(m[g.Date], g.Items...)
	}
	return m
}
