package excel

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"yoyboard/domain/expenditure"
	"yoyboard/internal/errors"
	"yoyboard/internal/testkit"
)

func TestReadWorkbook_SampleRoundTrip(t *testing.T) {
	kit := testkit.NewTestKit()
	content, err := kit.SampleWorkbook()
	if err != nil {
		t.Fatalf("Failed to build sample workbook: %v", err)
	}

	wb, err := NewWorkbookReader().ReadWorkbook(context.Background(), content)
	if err != nil {
		t.Fatalf("ReadWorkbook failed: %v", err)
	}

	if wb.Wide.RowCount() != 5 {
		t.Errorf("Expected 5 countries, got %d", wb.Wide.RowCount())
	}
	if wb.Wide.YearCount() != 10 {
		t.Errorf("Expected 10 year columns, got %d", wb.Wide.YearCount())
	}

	found := false
	for _, sheet := range wb.Sheets {
		if sheet == expenditure.SheetName {
			found = true
		}
	}
	if !found {
		t.Errorf("Sheet list %v should contain %q", wb.Sheets, expenditure.SheetName)
	}

	// Myanmar's 2010 value is a known fixture anchor.
	var myanmar *expenditure.WideRow
	for i := range wb.Wide.Rows {
		if wb.Wide.Rows[i].CountryName == "Myanmar" {
			myanmar = &wb.Wide.Rows[i]
		}
	}
	if myanmar == nil {
		t.Fatal("Myanmar missing from parsed table")
	}
	if got := myanmar.Values[4]; got != 13.6 {
		t.Errorf("Myanmar 2010 value = %f, want 13.6", got)
	}
}

func TestReadWorkbook_MissingSheet(t *testing.T) {
	kit := testkit.NewTestKit()
	content, err := kit.WorkbookWithSheet("Some_Other_Sheet")
	if err != nil {
		t.Fatalf("Failed to build workbook: %v", err)
	}

	wb, err := NewWorkbookReader().ReadWorkbook(context.Background(), content)
	if err == nil {
		t.Fatal("Expected missing-sheet error")
	}
	if wb != nil {
		t.Error("No data may be returned on a missing sheet")
	}
	if code := errors.GetCode(err); code != errors.CodeMissingSheet {
		t.Errorf("Expected code %s, got %s", errors.CodeMissingSheet, code)
	}
	if !strings.Contains(err.Error(), "Some_Other_Sheet") {
		t.Errorf("Error should name the available sheets, got: %v", err)
	}
}

func TestReadWorkbook_SchemaMismatch(t *testing.T) {
	content := buildWorkbook(t, [][]interface{}{
		{"Nation", "Code", "2006 YoY (%)"},
		{"Indonesia", "IDN", 9.7},
	})

	_, err := NewWorkbookReader().ReadWorkbook(context.Background(), content)
	if err == nil {
		t.Fatal("Expected schema mismatch error")
	}
	if code := errors.GetCode(err); code != errors.CodeSchemaMismatch {
		t.Errorf("Expected code %s, got %s", errors.CodeSchemaMismatch, code)
	}
}

func TestReadWorkbook_YearColumnWithoutMarker(t *testing.T) {
	content := buildWorkbook(t, [][]interface{}{
		{"Country Name", "Country Code", "2006 change"},
		{"Indonesia", "IDN", 9.7},
	})

	_, err := NewWorkbookReader().ReadWorkbook(context.Background(), content)
	if err == nil {
		t.Fatal("Expected schema mismatch for column without YoY marker")
	}
	if code := errors.GetCode(err); code != errors.CodeSchemaMismatch {
		t.Errorf("Expected code %s, got %s", errors.CodeSchemaMismatch, code)
	}
}

func TestReadWorkbook_NonNumericCell(t *testing.T) {
	content := buildWorkbook(t, [][]interface{}{
		{"Country Name", "Country Code", "2006 YoY (%)"},
		{"Indonesia", "IDN", "not a number"},
	})

	_, err := NewWorkbookReader().ReadWorkbook(context.Background(), content)
	if err == nil {
		t.Fatal("Expected invalid-input error for non-numeric cell")
	}
	if code := errors.GetCode(err); code != errors.CodeInvalidInput {
		t.Errorf("Expected code %s, got %s", errors.CodeInvalidInput, code)
	}
}

func TestReadWorkbook_DuplicateCountry(t *testing.T) {
	content := buildWorkbook(t, [][]interface{}{
		{"Country Name", "Country Code", "2006 YoY (%)"},
		{"Indonesia", "IDN", 9.7},
		{"Indonesia", "IDN", 1.2},
	})

	_, err := NewWorkbookReader().ReadWorkbook(context.Background(), content)
	if err == nil {
		t.Fatal("Expected error for duplicate country name")
	}
	if code := errors.GetCode(err); code != errors.CodeInvalidInput {
		t.Errorf("Expected code %s, got %s", errors.CodeInvalidInput, code)
	}
}

// buildWorkbook writes rows into a YoY_Health_Expenditure sheet and returns the
// serialized workbook.
func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", expenditure.SheetName); err != nil {
		t.Fatalf("Failed to rename sheet: %v", err)
	}

	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("Failed to address cell: %v", err)
			}
			if err := f.SetCellValue(expenditure.SheetName, cell, v); err != nil {
				t.Fatalf("Failed to write cell: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Failed to serialize workbook: %v", err)
	}
	return buf.Bytes()
}
