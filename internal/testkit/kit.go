package testkit

import (
	"bytes"
	"fmt"

	"yoyboard/domain/expenditure"

	"github.com/xuri/excelize/v2"
)

// TestKit provides the built-in demonstration dataset: year-over-year change in
// domestic government health expenditure for five East Asia & Pacific lower
// middle income countries, 2006-2015. The same fixture backs the UI's sample
// data checkbox and the package tests.
type TestKit struct{}

// NewTestKit creates a new test kit instance
func NewTestKit() *TestKit {
	return &TestKit{}
}

// SampleWideTable returns the demonstration dataset in wide form
func (k *TestKit) SampleWideTable() *expenditure.WideTable {
	years := make([]string, 0, 10)
	for y := 2006; y <= 2015; y++ {
		years = append(years, fmt.Sprintf("%d YoY (%%)", y))
	}

	return &expenditure.WideTable{
		YearColumns: years,
		Rows: []expenditure.WideRow{
			{CountryName: "Indonesia", CountryCode: "IDN",
				Values: []float64{9.7, 13.7, -2.3, -0.3, -32.6, -0.9, 12.1, 8.1, 17.6, 18.2}},
			{CountryName: "Philippines", CountryCode: "PHL",
				Values: []float64{-3.0, -2.4, -3.8, 1.7, 4.1, -17.3, -0.4, -0.3, 30.1, 10.4}},
			{CountryName: "Viet Nam", CountryCode: "VNM",
				Values: []float64{-1.9, -2.0, 6.7, -3.8, 9.3, -2.3, 8.3, 12.4, -10.9, -0.4}},
			{CountryName: "Myanmar", CountryCode: "MMR",
				Values: []float64{63.9, -15.9, -19.3, 6.9, 13.6, 21.5, 44.0, 9.6, 28.1, -9.1}},
			{CountryName: "Cambodia", CountryCode: "KHM",
				Values: []float64{-12.0, 26.3, -21.6, 3.4, 22.8, -13.6, 13.6, 3.1, -7.4, 17.3}},
		},
	}
}

// SampleWorkbook renders the demonstration dataset as xlsx bytes, shaped the
// way an uploaded file is expected to be shaped. Tests feed it through the
// workbook reader; the UI offers it as a downloadable example file.
func (k *TestKit) SampleWorkbook() ([]byte, error) {
	return k.WorkbookWithSheet(expenditure.SheetName)
}

// WorkbookWithSheet renders the demonstration dataset into a workbook whose one
// sheet carries the given name. Tests use a wrong name to exercise the
// missing-sheet path.
func (k *TestKit) WorkbookWithSheet(sheetName string) ([]byte, error) {
	wide := k.SampleWideTable()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	header := append([]string{expenditure.ColCountryName, expenditure.ColCountryCode}, wide.YearColumns...)
	for col, label := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, label); err != nil {
			return nil, fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for rowIdx, row := range wide.Rows {
		cells := make([]interface{}, 0, len(header))
		cells = append(cells, row.CountryName, row.CountryCode)
		for _, v := range row.Values {
			cells = append(cells, v)
		}
		for col, v := range cells {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address data cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write data cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
