package textdoc

import (
	"tstyle/table"
)

// Table is a live view of one pipe table inside a Document. It implements
// the engine's grid and declaration contracts and notifies subscribers about
// structural edits. Views read the current parse on every call, so a view
// obtained before an edit stays valid after it.
type Table struct {
	doc   *Document
	index int
	feed  table.EditFeed
}

// snapshot returns the current parse of this table, nil when the table no
// longer exists (all its rows were deleted).
func (t *Table) snapshot() *tableData {
	if t.index < len(t.doc.tables) {
		return t.doc.tables[t.index]
	}
	return nil
}

// ID returns the declared table id or the synthesized UUID.
func (t *Table) ID() string {
	if td := t.snapshot(); td != nil {
		return td.id
	}
	return ""
}

// Span returns the byte range of the table's lines within the document.
func (t *Table) Span() table.Span {
	if td := t.snapshot(); td != nil {
		return td.span
	}
	return table.Span{}
}

// RowCount returns the number of data rows. Header and separator lines do
// not count.
func (t *Table) RowCount() int {
	if td := t.snapshot(); td != nil {
		return len(td.data)
	}
	return 0
}

// ColumnCount returns the widest cell count over all rows.
func (t *Table) ColumnCount() int {
	if td := t.snapshot(); td != nil {
		return td.columns
	}
	return 0
}

// CellText returns the trimmed content of the addressed cell, empty when the
// cell does not exist. Coordinates are 1-based over data rows.
func (t *Table) CellText(row, column int) string {
	if c := t.cell(row, column); c != nil {
		return c.text
	}
	return ""
}

// CellSpan returns the byte range of the trimmed cell text. Structurally
// short rows have no span for the missing cells.
func (t *Table) CellSpan(row, column int) (table.Span, bool) {
	if c := t.cell(row, column); c != nil {
		return c.span, true
	}
	return table.Span{}, false
}

func (t *Table) cell(row, column int) *cellData {
	td := t.snapshot()
	if td == nil || row < 1 || row > len(td.data) {
		return nil
	}
	cells := td.data[row-1].cells
	if column < 1 || column > len(cells) {
		return nil
	}
	return &cells[column-1]
}

// Declarations returns the styling attributes declared above the table.
func (t *Table) Declarations() table.Declarations {
	if td := t.snapshot(); td != nil {
		return td.decl
	}
	return table.Declarations{}
}

// Headers returns the trimmed cells of the first header row, nil when the
// table has no header.
func (t *Table) Headers() []string {
	td := t.snapshot()
	if td == nil || len(td.header) == 0 {
		return nil
	}
	out := make([]string, len(td.header[0].cells))
	for i, c := range td.header[0].cells {
		out[i] = c.text
	}
	return out
}

// Subscribe registers fn for structural-edit notifications on this table.
func (t *Table) Subscribe(fn func(table.Edit)) (cancel func()) {
	return t.feed.Subscribe(fn)
}

// Sink returns the marker sink confined to this table: clearing through it
// leaves sibling tables and surrounding prose alone. The confinement span is
// evaluated per call so the sink stays correct across edits.
func (t *Table) Sink() table.Sink {
	return &tableSink{t: t}
}

type tableSink struct {
	t *Table
}

func (s *tableSink) ClearMarkers(tag string) {
	s.t.doc.markers.Scoped(s.t.Span()).ClearMarkers(tag)
}

func (s *tableSink) PublishMarker(m table.Marker) {
	s.t.doc.markers.PublishMarker(m)
}
