package viz

import (
	"fmt"
	"sort"

	"yoyboard/domain/expenditure"

	"gonum.org/v1/gonum/stat"
)

// LinePoint is one (year, value) observation in a line series
type LinePoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// LineSeries is one country's line
type LineSeries struct {
	Country string      `json:"country"`
	Points  []LinePoint `json:"points"`
}

// LineChart is the year-over-year line view: one series per country, a tick at
// every integer year, and a dashed reference line at zero.
type LineChart struct {
	Title        string       `json:"title"`
	Series       []LineSeries `json:"series"`
	Years        []int        `json:"years"`
	ShowZeroLine bool         `json:"show_zero_line"`
}

// HeatCell is one annotated heatmap cell
type HeatCell struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
	Color string  `json:"color"`
}

// Heatmap is the country-by-year matrix view. Its gradient is pinned at zero,
// unlike the table view's per-column span gradient.
type Heatmap struct {
	Title       string       `json:"title"`
	Countries   []string     `json:"countries"`
	YearColumns []string     `json:"year_columns"`
	Cells       [][]HeatCell `json:"cells"`
	Height      int          `json:"height"`
}

// Bar is one country's average bar
type Bar struct {
	Country string  `json:"country"`
	Mean    float64 `json:"mean"`
	Label   string  `json:"label"`
	Color   string  `json:"color"`
}

// BarChart is the average-YoY view: one bar per country, sorted descending by
// mean, colored by the zero-centered gradient.
type BarChart struct {
	Title        string `json:"title"`
	Bars         []Bar  `json:"bars"`
	ShowZeroLine bool   `json:"show_zero_line"`
}

// Heatmap row sizing: a fixed header allowance plus a fixed band per country,
// so figure height grows linearly with the number of rows.
const (
	heatmapBaseHeight = 120
	heatmapRowHeight  = 44
)

// BuildLineChart groups the long table into one series per country, preserving
// first-appearance order, with the x axis ticked at every integer year.
func BuildLineChart(long *expenditure.LongTable) *LineChart {
	chart := &LineChart{
		Title:        "Year-over-Year Percentage Change in Health Expenditure",
		ShowZeroLine: true,
	}

	index := make(map[string]int)
	minYear, maxYear := 0, 0
	for n, row := range long.Rows {
		i, ok := index[row.CountryName]
		if !ok {
			i = len(chart.Series)
			index[row.CountryName] = i
			chart.Series = append(chart.Series, LineSeries{Country: row.CountryName})
		}
		chart.Series[i].Points = append(chart.Series[i].Points, LinePoint{Year: row.Year, Value: row.Value})
		if n == 0 || row.Year < minYear {
			minYear = row.Year
		}
		if n == 0 || row.Year > maxYear {
			maxYear = row.Year
		}
	}

	// Tick every integer year across the span, including years with no
	// observations.
	if len(long.Rows) > 0 {
		for year := minYear; year <= maxYear; year++ {
			chart.Years = append(chart.Years, year)
		}
	}

	for i := range chart.Series {
		points := chart.Series[i].Points
		sort.Slice(points, func(a, b int) bool { return points[a].Year < points[b].Year })
	}

	return chart
}

// BuildHeatmap renders the wide table as an annotated matrix with a
// zero-centered gradient over all values.
func BuildHeatmap(wide *expenditure.WideTable) *Heatmap {
	all := make([]float64, 0, len(wide.Rows)*len(wide.YearColumns))
	for _, row := range wide.Rows {
		all = append(all, row.Values...)
	}
	scale := NewZeroCenteredScale(all)

	hm := &Heatmap{
		Title:       "Heatmap of Year-over-Year Change in Health Expenditure (%)",
		Countries:   wide.CountryNames(),
		YearColumns: wide.YearColumns,
		Cells:       make([][]HeatCell, len(wide.Rows)),
		Height:      heatmapBaseHeight + heatmapRowHeight*len(wide.Rows),
	}

	for i, row := range wide.Rows {
		cells := make([]HeatCell, len(row.Values))
		for j, v := range row.Values {
			cells[j] = HeatCell{
				Value: v,
				Label: fmt.Sprintf("%.1f", v),
				Color: scale.Hex(v),
			}
		}
		hm.Cells[i] = cells
	}

	return hm
}

// BuildBarChart computes each country's arithmetic mean across all year columns
// and orders the bars descending by that mean.
func BuildBarChart(wide *expenditure.WideTable) *BarChart {
	chart := &BarChart{
		Title:        "Average Year-over-Year Change in Health Expenditure",
		Bars:         make([]Bar, len(wide.Rows)),
		ShowZeroLine: true,
	}

	means := make([]float64, len(wide.Rows))
	for i, row := range wide.Rows {
		means[i] = stat.Mean(row.Values, nil)
	}
	scale := NewZeroCenteredScale(means)

	for i, row := range wide.Rows {
		chart.Bars[i] = Bar{
			Country: row.CountryName,
			Mean:    means[i],
			Label:   fmt.Sprintf("%.1f%%", means[i]),
			Color:   scale.Hex(means[i]),
		}
	}

	sort.SliceStable(chart.Bars, func(a, b int) bool { return chart.Bars[a].Mean > chart.Bars[b].Mean })

	return chart
}
