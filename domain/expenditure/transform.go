package expenditure

import (
	"fmt"
	"regexp"
)

var digitRun = regexp.MustCompile(`\d+`)

// ExtractYear parses the year out of a wide-table column label. The year is the
// first run of exactly four digits; a label without one is a fatal parse error
// rather than a silently dropped row.
func ExtractYear(label string) (int, error) {
	for _, run := range digitRun.FindAllString(label, -1) {
		if len(run) == 4 {
			year := 0
			for _, ch := range run {
				year = year*10 + int(ch-'0')
			}
			return year, nil
		}
	}
	return 0, fmt.Errorf("column label %q contains no 4-digit year", label)
}

// Melt pivots the wide table into long form: every year column becomes one
// (country, year, value) row, identity columns carried through unchanged. The
// output has exactly RowCount x YearCount rows; no information is lost.
func Melt(wide *WideTable) (*LongTable, error) {
	if wide == nil {
		return nil, nil
	}

	years := make([]int, len(wide.YearColumns))
	for i, label := range wide.YearColumns {
		year, err := ExtractYear(label)
		if err != nil {
			return nil, fmt.Errorf("melt failed: %w", err)
		}
		years[i] = year
	}

	long := &LongTable{Rows: make([]LongRow, 0, len(wide.Rows)*len(wide.YearColumns))}
	for _, row := range wide.Rows {
		for i := range wide.YearColumns {
			long.Rows = append(long.Rows, LongRow{
				CountryName: row.CountryName,
				CountryCode: row.CountryCode,
				Year:        years[i],
				Value:       row.Values[i],
			})
		}
	}

	return long, nil
}
