package expenditure

import (
	"fmt"
	"testing"
)

func testWide() *WideTable {
	return &WideTable{
		YearColumns: []string{"2006 YoY (%)", "2007 YoY (%)", "2008 YoY (%)"},
		Rows: []WideRow{
			{CountryName: "Indonesia", CountryCode: "IDN", Values: []float64{9.7, 13.7, -2.3}},
			{CountryName: "Cambodia", CountryCode: "KHM", Values: []float64{-12.0, 26.3, -21.6}},
		},
	}
}

func TestExtractYear(t *testing.T) {
	cases := []struct {
		label   string
		year    int
		wantErr bool
	}{
		{"2006 YoY (%)", 2006, false},
		{"YoY 1999", 1999, false},
		{"prefix2014suffix", 2014, false},
		{"12 then 2010 YoY", 2010, false},
		{"YoY Change", 0, true},
		{"12345 YoY", 0, true}, // five-digit run is not a year
		{"", 0, true},
	}

	for _, tc := range cases {
		year, err := ExtractYear(tc.label)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ExtractYear(%q) expected error, got %d", tc.label, year)
			}
			continue
		}
		if err != nil {
			t.Errorf("ExtractYear(%q) unexpected error: %v", tc.label, err)
			continue
		}
		if year != tc.year {
			t.Errorf("ExtractYear(%q) = %d, want %d", tc.label, year, tc.year)
		}
	}
}

func TestExtractYear_Idempotent(t *testing.T) {
	// Extraction is total and stable over well-formed labels.
	for y := 2006; y <= 2015; y++ {
		label := fmt.Sprintf("%d YoY (%%)", y)
		for i := 0; i < 2; i++ {
			year, err := ExtractYear(label)
			if err != nil {
				t.Fatalf("ExtractYear(%q) unexpected error: %v", label, err)
			}
			if year != y {
				t.Fatalf("ExtractYear(%q) = %d, want %d", label, year, y)
			}
		}
	}
}

func TestMelt_RowCountAndNoDuplicates(t *testing.T) {
	wide := testWide()

	long, err := Melt(wide)
	if err != nil {
		t.Fatalf("Melt failed: %v", err)
	}

	want := wide.RowCount() * wide.YearCount()
	if len(long.Rows) != want {
		t.Fatalf("Expected %d long rows, got %d", want, len(long.Rows))
	}

	seen := make(map[string]bool)
	for _, row := range long.Rows {
		key := fmt.Sprintf("%s|%d", row.CountryName, row.Year)
		if seen[key] {
			t.Errorf("Duplicate (country, year) pair: %s", key)
		}
		seen[key] = true
	}
}

func TestMelt_NoInformationLoss(t *testing.T) {
	wide := testWide()

	long, err := Melt(wide)
	if err != nil {
		t.Fatalf("Melt failed: %v", err)
	}

	// Every wide cell must appear as exactly one long row with the right
	// identity columns and parsed year.
	for _, wr := range wide.Rows {
		for j, label := range wide.YearColumns {
			year, _ := ExtractYear(label)
			found := false
			for _, lr := range long.Rows {
				if lr.CountryName == wr.CountryName && lr.Year == year {
					if lr.Value != wr.Values[j] {
						t.Errorf("Value mismatch for %s %d: %f vs %f", wr.CountryName, year, lr.Value, wr.Values[j])
					}
					if lr.CountryCode != wr.CountryCode {
						t.Errorf("Country code mismatch for %s: %s vs %s", wr.CountryName, lr.CountryCode, wr.CountryCode)
					}
					found = true
					break
				}
			}
			if !found {
				t.Errorf("No long row for %s %d", wr.CountryName, year)
			}
		}
	}
}

func TestMelt_UnparseableLabelFailsWholeLoad(t *testing.T) {
	wide := testWide()
	wide.YearColumns[1] = "YoY no year here"

	long, err := Melt(wide)
	if err == nil {
		t.Fatal("Expected error for label without a 4-digit year")
	}
	if long != nil {
		t.Errorf("Expected nil long table on failure, got %d rows", len(long.Rows))
	}
}

func TestMelt_NilInput(t *testing.T) {
	long, err := Melt(nil)
	if err != nil {
		t.Fatalf("Melt(nil) unexpected error: %v", err)
	}
	if long != nil {
		t.Error("Melt(nil) should return nil")
	}
}
