package excel

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"yoyboard/domain/expenditure"
	"yoyboard/internal/errors"

	"github.com/xuri/excelize/v2"
)

// WorkbookReader reads uploaded workbooks into the wide-table domain shape
type WorkbookReader struct{}

// NewWorkbookReader creates a new workbook reader
func NewWorkbookReader() *WorkbookReader {
	return &WorkbookReader{}
}

// ReadWorkbook opens a workbook from raw bytes, requires the
// YoY_Health_Expenditure sheet, validates its schema, and returns the wide
// table together with the workbook's sheet list. A missing sheet or any
// malformed cell aborts the whole read; there is no partial extraction.
func (r *WorkbookReader) ReadWorkbook(ctx context.Context, content []byte) (*Workbook, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open workbook")
	}
	defer f.Close()
	log.Printf("[WorkbookReader] Workbook opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	sheets := f.GetSheetList()
	if !containsSheet(sheets, expenditure.SheetName) {
		log.Printf("[WorkbookReader] FAILED - sheet %q not found (available: %v)", expenditure.SheetName, sheets)
		return nil, errors.MissingSheet(expenditure.SheetName, sheets)
	}

	readStart := time.Now()
	rows, err := f.GetRows(expenditure.SheetName)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %q", expenditure.SheetName)
	}
	log.Printf("[WorkbookReader] Sheet %q read in %.2fms (%d rows)",
		expenditure.SheetName, float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	wide, err := buildWideTable(rows)
	if err != nil {
		return nil, err
	}

	log.Printf("[WorkbookReader] Workbook processed (%d countries, %d year columns)",
		wide.RowCount(), wide.YearCount())

	return &Workbook{Wide: wide, Sheets: sheets}, nil
}

// buildWideTable validates the header schema and parses data rows. Fails fast
// on any schema or cell-level problem rather than coercing bad data.
func buildWideTable(rows [][]string) (*expenditure.WideTable, error) {
	if len(rows) < 2 {
		return nil, errors.SchemaMismatch("sheet must have a header row and at least one data row")
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.TrimSpace(cell)
	}

	if len(header) < 3 || header[0] != expenditure.ColCountryName || header[1] != expenditure.ColCountryCode {
		return nil, errors.SchemaMismatch(fmt.Sprintf(
			"sheet must start with %q and %q columns followed by at least one year column, got %v",
			expenditure.ColCountryName, expenditure.ColCountryCode, header))
	}

	yearColumns := header[2:]
	for _, label := range yearColumns {
		if !strings.Contains(label, expenditure.YoYMarker) {
			return nil, errors.SchemaMismatch(fmt.Sprintf(
				"year column %q does not contain the %q marker", label, expenditure.YoYMarker))
		}
		if _, err := expenditure.ExtractYear(label); err != nil {
			return nil, errors.SchemaMismatch(err.Error())
		}
	}

	wide := &expenditure.WideTable{YearColumns: yearColumns}
	seen := make(map[string]bool, len(rows)-1)

	for i, row := range rows[1:] {
		// excelize trims trailing empty cells; skip fully blank rows.
		if isBlankRow(row) {
			continue
		}
		if len(row) < len(header) {
			return nil, errors.InvalidInput(fmt.Sprintf(
				"data row %d has %d cells, expected %d", i+2, len(row), len(header)))
		}

		name := strings.TrimSpace(row[0])
		code := strings.TrimSpace(row[1])
		if name == "" {
			return nil, errors.InvalidInput(fmt.Sprintf("data row %d has an empty %s", i+2, expenditure.ColCountryName))
		}
		if seen[name] {
			return nil, errors.InvalidInput(fmt.Sprintf("duplicate %s %q", expenditure.ColCountryName, name))
		}
		seen[name] = true

		values := make([]float64, len(yearColumns))
		for j, cell := range row[2 : 2+len(yearColumns)] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, errors.InvalidInput(fmt.Sprintf(
					"non-numeric value %q for %q in column %q", cell, name, yearColumns[j]))
			}
			values[j] = v
		}

		wide.Rows = append(wide.Rows, expenditure.WideRow{
			CountryName: name,
			CountryCode: code,
			Values:      values,
		})
	}

	if len(wide.Rows) == 0 {
		return nil, errors.SchemaMismatch("sheet has no data rows")
	}

	return wide, nil
}

func containsSheet(sheets []string, name string) bool {
	for _, s := range sheets {
		if s == name {
			return true
		}
	}
	return false
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
