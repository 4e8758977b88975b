package viz

import (
	"fmt"

	"yoyboard/domain/expenditure"
)

// TableCell is one formatted year value with its gradient background
type TableCell struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// TableRow is one country's row in the formatted table view
type TableRow struct {
	CountryName string      `json:"country_name"`
	CountryCode string      `json:"country_code"`
	Cells       []TableCell `json:"cells"`
}

// TableView is the wide table prepared for display: every YoY value formatted
// to one decimal with a trailing percent glyph, and a per-column diverging
// gradient spanning that column's own min and max.
type TableView struct {
	YearColumns []string   `json:"year_columns"`
	Rows        []TableRow `json:"rows"`
}

// BuildTableView formats the wide table for display
func BuildTableView(wide *expenditure.WideTable) *TableView {
	view := &TableView{
		YearColumns: wide.YearColumns,
		Rows:        make([]TableRow, len(wide.Rows)),
	}

	// One scale per column, spanning that column's own range.
	scales := make([]ColorScale, len(wide.YearColumns))
	for j := range wide.YearColumns {
		column := make([]float64, len(wide.Rows))
		for i, row := range wide.Rows {
			column[i] = row.Values[j]
		}
		scales[j] = NewSpanScale(column)
	}

	for i, row := range wide.Rows {
		cells := make([]TableCell, len(row.Values))
		for j, v := range row.Values {
			cells[j] = TableCell{
				Text:  fmt.Sprintf("%.1f%%", v),
				Color: scales[j].Hex(v),
			}
		}
		view.Rows[i] = TableRow{
			CountryName: row.CountryName,
			CountryCode: row.CountryCode,
			Cells:       cells,
		}
	}

	return view
}
