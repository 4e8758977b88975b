package expenditure

import "testing"

func TestFilterWide_EmptySelectionIsNoOp(t *testing.T) {
	wide := testWide()

	got := FilterWide(wide, nil)
	if got != wide {
		t.Error("Empty selection should return the input table unchanged")
	}

	got = FilterWide(wide, []string{})
	if got != wide {
		t.Error("Empty (non-nil) selection should return the input table unchanged")
	}
}

func TestFilterWide_Subset(t *testing.T) {
	wide := testWide()

	got := FilterWide(wide, []string{"Cambodia"})
	if got.RowCount() != 1 {
		t.Fatalf("Expected 1 row, got %d", got.RowCount())
	}
	if got.Rows[0].CountryName != "Cambodia" {
		t.Errorf("Expected Cambodia, got %s", got.Rows[0].CountryName)
	}
	if got.YearCount() != wide.YearCount() {
		t.Errorf("Year columns must be preserved: %d vs %d", got.YearCount(), wide.YearCount())
	}
}

func TestFilterWide_CaseSensitive(t *testing.T) {
	wide := testWide()

	got := FilterWide(wide, []string{"cambodia", "INDONESIA"})
	if got.RowCount() != 0 {
		t.Errorf("Matching is case-sensitive, expected 0 rows, got %d", got.RowCount())
	}
}

func TestFilterLong_MatchesWideCardinality(t *testing.T) {
	wide := testWide()
	long, err := Melt(wide)
	if err != nil {
		t.Fatalf("Melt failed: %v", err)
	}

	selection := []string{"Indonesia"}
	filteredWide := FilterWide(wide, selection)
	filteredLong := FilterLong(long, selection)

	want := filteredWide.RowCount() * wide.YearCount()
	if len(filteredLong.Rows) != want {
		t.Errorf("Expected %d long rows, got %d", want, len(filteredLong.Rows))
	}
	for _, row := range filteredLong.Rows {
		if row.CountryName != "Indonesia" {
			t.Errorf("Unexpected country in filtered long table: %s", row.CountryName)
		}
	}
}

func TestFilterLong_EmptySelectionIsNoOp(t *testing.T) {
	wide := testWide()
	long, err := Melt(wide)
	if err != nil {
		t.Fatalf("Melt failed: %v", err)
	}

	if got := FilterLong(long, nil); got != long {
		t.Error("Empty selection should return the input table unchanged")
	}
}
