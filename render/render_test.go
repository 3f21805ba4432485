package render_test

import (
	"tstyle/table"
)

// fakeTable is a minimal grid with deterministic synthetic spans so tests
// can address markers per cell.
type fakeTable struct {
	headers []string
	rows    [][]string
	decl    table.Declarations
	missing map[[2]int]bool
}

func (f *fakeTable) RowCount() int { return len(f.rows) }

func (f *fakeTable) ColumnCount() int {
	n := len(f.headers)
	for _, r := range f.rows {
		if len(r) > n {
			n = len(r)
		}
	}
	return n
}

func (f *fakeTable) CellText(row, column int) string {
	if row < 1 || row > len(f.rows) {
		return ""
	}
	r := f.rows[row-1]
	if column < 1 || column > len(r) {
		return ""
	}
	return r[column-1]
}

func (f *fakeTable) CellSpan(row, column int) (table.Span, bool) {
	if f.missing[[2]int{row, column}] {
		return table.Span{}, false
	}
	if row < 1 || row > len(f.rows) || column < 1 || column > len(f.rows[row-1]) {
		return table.Span{}, false
	}
	return cellSpan(row, column, f.rows[row-1][column-1]), true
}

func (f *fakeTable) Declarations() table.Declarations { return f.decl }

func (f *fakeTable) Headers() []string { return f.headers }

func cellSpan(row, column int, text string) table.Span {
	start := row*100 + column*10
	return table.Span{Start: start, End: start + len(text)}
}
