package expenditure

// SheetName is the one sheet this application reads from an uploaded workbook.
const SheetName = "YoY_Health_Expenditure"

// Identity column labels required in the source sheet. Every other column is a
// year column and must carry the YoYMarker substring plus a 4-digit year.
const (
	ColCountryName = "Country Name"
	ColCountryCode = "Country Code"
	YoYMarker      = "YoY"
)

// WideTable is the as-uploaded shape: one row per country, one value column per
// year. YearColumns preserves the sheet's column order; every row's Values slice
// is aligned with it.
type WideTable struct {
	YearColumns []string
	Rows        []WideRow
}

// WideRow is one country's row in the wide table.
type WideRow struct {
	CountryName string
	CountryCode string
	Values      []float64
}

// LongRow is one (country, year) observation derived from the wide table.
type LongRow struct {
	CountryName string `json:"country_name"`
	CountryCode string `json:"country_code"`
	Year        int    `json:"year"`
	Value       float64 `json:"yoy_change_pct"`
}

// LongTable is the melted form: exactly one row per (country, year) pair.
type LongTable struct {
	Rows []LongRow
}

// CountryNames returns the country names in table order
func (w *WideTable) CountryNames() []string {
	names := make([]string, len(w.Rows))
	for i, row := range w.Rows {
		names[i] = row.CountryName
	}
	return names
}

// RowCount returns the number of countries in the table
func (w *WideTable) RowCount() int {
	return len(w.Rows)
}

// YearCount returns the number of year columns
func (w *WideTable) YearCount() int {
	return len(w.YearColumns)
}
