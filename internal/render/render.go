// Package render turns a built dashboard into HTML using the embedded
// templates.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"

	"github.com/guttosm/exdivpulse/internal/domain/models"
	"github.com/guttosm/exdivpulse/internal/format"
	"github.com/guttosm/exdivpulse/internal/table"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageTitle     = "Upcoming Ex-Dividends (Tue → Fri → Mon)"
	failureText   = "Failed to load upcoming ex-dividends. Please try again later."
	emptyRowsText = "No tickers for this date."
)

// Params are the query parameters of the dashboard page. Links rendered on
// the page carry them forward.
type Params struct {
	Date   string
	Amount string
	Sort   string
	Desc   bool
	Freq   *int
	Page   int
}

// Query encodes p as "?k=v&..." (empty values are left out).
func (p Params) Query() string {
	q := url.Values{}
	if p.Date != "" {
		q.Set("d", p.Date)
	}
	if p.Amount != "" {
		q.Set("amount", p.Amount)
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
		q.Set("desc", strconv.FormatBool(p.Desc))
	}
	if p.Freq != nil {
		q.Set("freq", strconv.Itoa(*p.Freq))
	}
	if p.Page > 1 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if len(q) == 0 {
		return "?"
	}
	return "?" + q.Encode()
}

// TileView is a day tile ready for the template.
type TileView struct {
	Date        string
	Weekday     string
	CountLabel  string
	Highest     string
	AvgTop5     string
	AvgAll      string
	Monday      bool
	Selected    bool
	Href        string
	OptionLabel string
}

// HeaderView is a sortable column header.
type HeaderView struct {
	Label   string
	Numeric bool
	Href    string
	Active  bool
	Desc    bool
}

// RowView is a table row: logo, ticker and formatted cells.
type RowView struct {
	Logo   string
	Ticker string
	Cells  []table.Cell
}

// FreqOption is one entry of the frequency filter.
type FreqOption struct {
	Code     int
	Label    string
	Selected bool
}

// PageData is the full template model.
type PageData struct {
	Title           string
	Source          string
	Banner          string
	Tiles           []TileView
	SelectedDate    string
	SelectedWeekday string
	Headers         []HeaderView
	Rows            []RowView
	EmptyText       string
	Params          Params
	FreqOptions     []FreqOption
	Page            int
	Pages           int
	Total           int
	PrevHref        string
	NextHref        string
}

// NewPageData assembles the template model from a built dashboard and one
// page of its table.
func NewPageData(d *models.Dashboard, view table.View, freqs []int, p Params) PageData {
	p.Date = d.SelectedDate
	p.Sort, p.Desc, p.Page = view.Sort, view.Desc, view.Page

	data := PageData{
		Title:           pageTitle,
		Source:          fmt.Sprintf("Source window: %s → %s (%s)", d.StartDate, d.EndDate, d.Timezone),
		SelectedDate:    d.SelectedDate,
		SelectedWeekday: d.SelectedWeekday,
		EmptyText:       emptyRowsText,
		Params:          p,
		Page:            view.Page,
		Pages:           view.Pages,
		Total:           view.Total,
	}
	if d.BannerTotal != nil {
		data.Banner = BannerText(*d.BannerTotal)
	}

	for _, t := range d.Tiles {
		tp := p
		tp.Date, tp.Page = t.Date.ISO(), 1
		tv := TileView{
			Date:       t.Date.ISO(),
			Weekday:    t.Weekday,
			CountLabel: format.Count(t.Count),
			Highest:    format.Percent(t.Stats.Highest),
			AvgTop5:    format.Percent(t.Stats.AvgTop5),
			AvgAll:     format.Percent(t.Stats.AvgAll),
			Monday:     t.IsMonday(),
			Selected:   t.Date.ISO() == d.SelectedDate,
			Href:       tp.Query(),
		}
		tv.OptionLabel = OptionLabel(tv)
		data.Tiles = append(data.Tiles, tv)
	}

	for _, c := range view.Columns {
		hp := p
		hp.Sort, hp.Page = c.Key, 1
		hp.Desc = true
		if c.Key == view.Sort {
			hp.Desc = !view.Desc
		}
		data.Headers = append(data.Headers, HeaderView{
			Label:   c.Label,
			Numeric: c.Numeric,
			Href:    hp.Query(),
			Active:  c.Key == view.Sort,
			Desc:    view.Desc,
		})
	}

	for i, r := range view.Rows {
		data.Rows = append(data.Rows, RowView{Logo: r.Logo(), Ticker: r.Ticker, Cells: view.Cells[i]})
	}

	for _, code := range freqs {
		data.FreqOptions = append(data.FreqOptions, FreqOption{
			Code:     code,
			Label:    format.FrequencyWithCode(&code),
			Selected: p.Freq != nil && *p.Freq == code,
		})
	}

	if view.Page > 1 {
		pp := p
		pp.Page = view.Page - 1
		data.PrevHref = pp.Query()
	}
	if view.Page < view.Pages {
		np := p
		np.Page = view.Page + 1
		data.NextHref = np.Query()
	}
	return data
}

// BannerText is the headline shown above the tiles.
func BannerText(total float64) string {
	return fmt.Sprintf("You could make up to %s in the next 5 business days.", format.Percent(&total))
}

// OptionLabel is the compact tile label used by the mobile day selector.
func OptionLabel(t TileView) string {
	return fmt.Sprintf("%s • %s • %s highest • %s Top 5 • %s Avg",
		t.Weekday, t.CountLabel, t.Highest, t.AvgTop5, t.AvgAll)
}

// Renderer executes the parsed page templates.
type Renderer struct {
	page    *template.Template
	failure *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	page, err := template.New("page.html").ParseFS(templateFS, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	failure, err := template.New("error.html").ParseFS(templateFS, "templates/error.html")
	if err != nil {
		return nil, fmt.Errorf("parse error template: %w", err)
	}
	return &Renderer{page: page, failure: failure}, nil
}

// Page writes the dashboard. The output is buffered so a template error never
// leaves a half-written page behind.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	var buf bytes.Buffer
	if err := r.page.Execute(&buf, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Failure writes the generic error page.
func (r *Renderer) Failure(w io.Writer) error {
	var buf bytes.Buffer
	if err := r.failure.Execute(&buf, struct{ Title, Message string }{pageTitle, failureText}); err != nil {
		return fmt.Errorf("render failure page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
