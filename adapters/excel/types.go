package excel

import "yoyboard/domain/expenditure"

// Workbook is the result of one successful read: the wide table from the
// required sheet, plus the full sheet list for diagnostic display.
type Workbook struct {
	Wide   *expenditure.WideTable
	Sheets []string
}
