package expenditure

// FilterWide restricts the wide table to the selected country names. Selection
// is exact and case-sensitive. An empty selection is a no-op: the input table is
// returned unchanged.
func FilterWide(wide *WideTable, selected []string) *WideTable {
	if wide == nil || len(selected) == 0 {
		return wide
	}

	keep := toSet(selected)
	out := &WideTable{YearColumns: wide.YearColumns}
	for _, row := range wide.Rows {
		if keep[row.CountryName] {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// FilterLong restricts the long table to the selected country names with the
// same semantics as FilterWide.
func FilterLong(long *LongTable, selected []string) *LongTable {
	if long == nil || len(selected) == 0 {
		return long
	}

	keep := toSet(selected)
	out := &LongTable{}
	for _, row := range long.Rows {
		if keep[row.CountryName] {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
