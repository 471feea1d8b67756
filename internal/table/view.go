package table

import (
	"slices"
	"sort"

	"github.com/guttosm/exdivpulse/internal/format"
)

// DefaultPageSize matches the dashboard's compact table.
const DefaultPageSize = 10

// Query selects how rows are filtered, ordered and paged.
type Query struct {
	Sort      string
	Desc      bool
	Frequency *int
	Page      int
	PageSize  int
}

// DefaultQuery sorts by estimated return, highest first.
func DefaultQuery(pageSize int) Query {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return Query{Sort: DefaultSortBy, Desc: true, Page: 1, PageSize: pageSize}
}

// Cell is a formatted value ready to print.
type Cell struct {
	Text    string
	Numeric bool
	Tone    string
}

// View is one page of the table.
type View struct {
	Columns  []Column
	Rows     []Row
	Cells    [][]Cell
	Sort     string
	Desc     bool
	Page     int
	Pages    int
	PageSize int
	Total    int
}

// Build filters rows by frequency, sorts them by the requested column (unknown
// keys fall back to the default sort) and cuts out the requested page. Pages
// outside the range are clamped.
func Build(rows []Row, cols []Column, q Query) View {
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}

	filtered := Filter(rows, q.Frequency)

	col, ok := Find(cols, q.Sort)
	if !ok {
		q.Sort, q.Desc = DefaultSortBy, true
		col, ok = Find(cols, q.Sort)
	}
	if ok {
		Sort(filtered, col, q.Desc)
	}

	total := len(filtered)
	pages := (total + q.PageSize - 1) / q.PageSize
	if pages < 1 {
		pages = 1
	}
	page := min(max(q.Page, 1), pages)

	start := (page - 1) * q.PageSize
	end := min(start+q.PageSize, total)
	pageRows := filtered[start:end]

	cells := make([][]Cell, len(pageRows))
	for i, r := range pageRows {
		line := make([]Cell, len(cols))
		for j, c := range cols {
			cell := Cell{Text: c.Format(r), Numeric: c.Numeric}
			if c.Tone != nil {
				cell.Tone = c.Tone(r)
			}
			line[j] = cell
		}
		cells[i] = line
	}

	return View{
		Columns:  cols,
		Rows:     pageRows,
		Cells:    cells,
		Sort:     q.Sort,
		Desc:     q.Desc,
		Page:     page,
		Pages:    pages,
		PageSize: q.PageSize,
		Total:    total,
	}
}

// Filter keeps rows whose frequency equals freq. A nil freq keeps everything.
// The input slice is not modified.
func Filter(rows []Row, freq *int) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if freq != nil && (r.Frequency == nil || *r.Frequency != *freq) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Sort orders rows in place by col. Rows without a value go last regardless of
// direction; ties keep their original order.
func Sort(rows []Row, col Column, desc bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if col.Present != nil {
			ap, bp := col.Present(a), col.Present(b)
			if ap != bp {
				return ap
			}
			if !ap {
				return false
			}
		}
		c := col.Compare(a, b)
		if desc {
			return c > 0
		}
		return c < 0
	})
}

// FrequencyOptions lists the distinct frequency codes present in rows, most
// frequent cadence first, for the filter menu.
func FrequencyOptions(rows []Row) []int {
	seen := map[int]struct{}{}
	var out []int
	for _, r := range rows {
		if r.Frequency == nil {
			continue
		}
		if _, ok := seen[*r.Frequency]; ok {
			continue
		}
		seen[*r.Frequency] = struct{}{}
		out = append(out, *r.Frequency)
	}
	slices.SortFunc(out, func(a, b int) int {
		ra, rb := format.FrequencyRank(&a), format.FrequencyRank(&b)
		if ra != rb {
			return rb - ra
		}
		return b - a
	})
	return out
}
